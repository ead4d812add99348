package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/iancoleman/orderedmap"

	"github.com/provide-io/reslot/pkg/reslot/codec"
	_ "github.com/provide-io/reslot/pkg/reslot/codec/compress"
	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
)

// LoadHashes reads a newline-delimited list of vanilla paths.
func LoadHashes(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading hashes: %w", err)
	}
	return paths, nil
}

// LoadDirIndex reads the directory index document
// {"dirs": {"directories": {...}, "files": [...]}, "file_array": [...]}.
// Child order follows the document.
func LoadDirIndex(r io.Reader) (*DirectoryNode, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading dir index: %w", err)
	}
	doc := orderedmap.New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, nil, fmt.Errorf("parsing dir index: %w", err)
	}

	rawDirs, ok := doc.Get("dirs")
	if !ok {
		return nil, nil, fmt.Errorf("dir index has no \"dirs\" section")
	}
	dirs, ok := rawDirs.(orderedmap.OrderedMap)
	if !ok {
		return nil, nil, fmt.Errorf("dir index \"dirs\" is %T, want object", rawDirs)
	}
	root, err := buildNode("", dirs)
	if err != nil {
		return nil, nil, err
	}

	var files []string
	if rawFiles, ok := doc.Get("file_array"); ok {
		list, ok := rawFiles.([]interface{})
		if !ok {
			return nil, nil, fmt.Errorf("dir index \"file_array\" is %T, want array", rawFiles)
		}
		files = make([]string, len(list))
		for i, v := range list {
			s, ok := v.(string)
			if !ok {
				return nil, nil, fmt.Errorf("file_array[%d] is %T, want string", i, v)
			}
			files[i] = s
		}
	}
	return root, files, nil
}

func buildNode(name string, obj orderedmap.OrderedMap) (*DirectoryNode, error) {
	node := NewDirectoryNode(name)

	if rawFiles, ok := obj.Get("files"); ok {
		list, ok := rawFiles.([]interface{})
		if !ok {
			return nil, fmt.Errorf("files of %q is %T, want array", name, rawFiles)
		}
		node.Files = make([]int, 0, len(list))
		for _, v := range list {
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("file index in %q is %T, want number", name, v)
			}
			node.Files = append(node.Files, int(f))
		}
	}

	if rawDirs, ok := obj.Get("directories"); ok {
		dirs, ok := rawDirs.(orderedmap.OrderedMap)
		if !ok {
			return nil, fmt.Errorf("directories of %q is %T, want object", name, rawDirs)
		}
		for _, key := range dirs.Keys() {
			rawChild, _ := dirs.Get(key)
			childObj, ok := rawChild.(orderedmap.OrderedMap)
			if !ok {
				return nil, fmt.Errorf("directory %q is %T, want object", key, rawChild)
			}
			child, err := buildNode(key, childObj)
			if err != nil {
				return nil, err
			}
			node.AddChild(child)
		}
	}
	return node, nil
}

// Open loads both catalog files. Either may be gzip or bzip2 compressed.
func Open(hashesPath, dirInfoPath string, logger hclog.Logger) (*Catalog, error) {
	logger = logger.Named("catalog")

	logger.Debug("📖 Loading hash catalog", "path", hashesPath)
	hr, err := codec.Open(hashesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", rerrors.ErrCatalogUnreadable, hashesPath, err)
	}
	known, err := LoadHashes(hr)
	hr.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", rerrors.ErrCatalogUnreadable, hashesPath, err)
	}

	logger.Debug("📖 Loading directory index", "path", dirInfoPath)
	dr, err := codec.Open(dirInfoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", rerrors.ErrCatalogUnreadable, dirInfoPath, err)
	}
	root, files, err := LoadDirIndex(dr)
	dr.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", rerrors.ErrCatalogUnreadable, dirInfoPath, err)
	}

	c := New(known, root, files)
	logger.Info("✅ Catalog loaded", "known", c.KnownCount(), "files", c.FileCount())
	return c, nil
}
