package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/iancoleman/orderedmap"
)

// Indent is the indentation of a written config.json.
const Indent = "    "

// Decode parses a config.json document. Known sections are copied in
// document order with duplicates collapsed; unknown sections are ignored.
func Decode(data []byte) (*Config, error) {
	doc := orderedmap.New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	c := New()
	if raw, ok := doc.Get(SectionNewDirInfos); ok {
		list, err := stringList(SectionNewDirInfos, raw)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			c.NewDirInfos.Add(p)
		}
	}

	if raw, ok := doc.Get(SectionNewDirInfosBase); ok {
		obj, ok := raw.(orderedmap.OrderedMap)
		if !ok {
			return nil, fmt.Errorf("section %q is %T, want object", SectionNewDirInfosBase, raw)
		}
		for _, key := range obj.Keys() {
			v, _ := obj.Get(key)
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%q] is %T, want string", SectionNewDirInfosBase, key, v)
			}
			c.NewDirInfosBase.Set(key, s)
		}
	}

	for _, section := range []struct {
		name   string
		target *OrderedMap[*PathSet]
	}{
		{SectionShareToVanilla, c.ShareToVanilla},
		{SectionNewDirFiles, c.NewDirFiles},
		{SectionShareToAdded, c.ShareToAdded},
	} {
		raw, ok := doc.Get(section.name)
		if !ok {
			continue
		}
		obj, ok := raw.(orderedmap.OrderedMap)
		if !ok {
			return nil, fmt.Errorf("section %q is %T, want object", section.name, raw)
		}
		for _, key := range obj.Keys() {
			v, _ := obj.Get(key)
			list, err := stringList(section.name+"["+key+"]", v)
			if err != nil {
				return nil, err
			}
			set := ensure(section.target, key)
			for _, p := range list {
				set.Add(p)
			}
		}
	}
	return c, nil
}

func stringList(where string, raw interface{}) ([]string, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s is %T, want array", where, raw)
	}
	out := make([]string, 0, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d] is %T, want string", where, i, v)
		}
		out = append(out, s)
	}
	return out, nil
}

// Load reads and decodes path. A missing file surfaces as an error wrapping
// fs.ErrNotExist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func newObject() *orderedmap.OrderedMap {
	o := orderedmap.New()
	o.SetEscapeHTML(false)
	return o
}

func setsObject(m *OrderedMap[*PathSet]) *orderedmap.OrderedMap {
	o := newObject()
	for _, key := range m.Keys() {
		set, _ := m.Get(key)
		o.Set(key, set.Items())
	}
	return o
}

// Encode serializes the configuration with sections in fixed order.
// Non-ASCII and HTML characters are written as-is.
func (c *Config) Encode() ([]byte, error) {
	base := newObject()
	for _, key := range c.NewDirInfosBase.Keys() {
		v, _ := c.NewDirInfosBase.Get(key)
		base.Set(key, v)
	}

	doc := newObject()
	doc.Set(SectionNewDirInfos, c.NewDirInfos.Items())
	doc.Set(SectionNewDirInfosBase, base)
	doc.Set(SectionShareToVanilla, setsObject(c.ShareToVanilla))
	doc.Set(SectionNewDirFiles, setsObject(c.NewDirFiles))
	doc.Set(SectionShareToAdded, setsObject(c.ShareToAdded))

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", Indent); err != nil {
		return nil, fmt.Errorf("indenting config: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Save writes the encoded configuration to path.
func (c *Config) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
