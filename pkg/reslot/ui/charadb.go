package ui

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/provide-io/reslot/pkg/reslot/fighters"
)

// Character database template and output names.
const (
	CharaDBTemplate = "ui_chara_db.prcxml"
	CharaDBNames    = "ui_chara_db.txt"
	CharaDBOutput   = "ui/param/database/ui_chara_db.prcxml"
)

// ErrFighterNotInCharaDB is returned when no database row names the fighter.
var ErrFighterNotInCharaDB = errors.New("❌ fighter not found in character database")

// CharaDBRows returns the database rows of fighter. Group members use fixed
// rows; other fighters are looked up by name, one row per line of names.
func CharaDBRows(fighter string, names io.Reader) ([]int, error) {
	if rows, ok := fighters.CharaDBIndexes(fighter); ok {
		return rows, nil
	}

	var rows []int
	scanner := bufio.NewScanner(newTextReader(names))
	for i := 0; scanner.Scan(); i++ {
		if strings.ToLower(strings.TrimRight(scanner.Text(), " \t\r")) == fighter {
			rows = append(rows, i)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading names: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFighterNotInCharaDB, fighter)
	}
	return rows, nil
}

// newTextReader decodes UTF-8 or, when a byte order mark says so, UTF-16.
func newTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// PatchCharaDB writes targetDir/ui/param/database/ui_chara_db.prcxml from the
// template in templateDir, giving each of fighter's rows maxColors colors.
// It returns the written path.
func PatchCharaDB(templateDir, targetDir, fighter string, maxColors int) (string, error) {
	fighter = strings.ToLower(fighter)
	templatePath := filepath.Join(templateDir, CharaDBTemplate)
	namesPath := filepath.Join(templateDir, CharaDBNames)

	names, err := os.Open(namesPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", namesPath, err)
	}
	rows, err := CharaDBRows(fighter, names)
	names.Close()
	if err != nil {
		return "", err
	}

	template, err := os.Open(templatePath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", templatePath, err)
	}
	defer template.Close()

	outPath := filepath.Join(targetDir, filepath.FromSlash(CharaDBOutput))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", outPath, err)
	}

	w := transform.NewWriter(out, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
	if err := patchColors(template, w, rows, maxColors); err != nil {
		out.Close()
		return "", fmt.Errorf("patching %s: %w", templatePath, err)
	}
	if err := w.Close(); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return outPath, nil
}

// patchColors copies the prcxml document from r to w, replacing every
// <hash40 index="N"> whose N is in rows with
// <struct index="N"><byte hash="color_num">maxColors</byte></struct>.
func patchColors(r io.Reader, w io.Writer, rows []int, maxColors int) error {
	wanted := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		wanted[strconv.Itoa(row)] = struct{}{}
	}

	dec := xml.NewDecoder(newTextReader(r))
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	enc := xml.NewEncoder(w)

	if err := enc.EncodeToken(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-16"`)}); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData("\n")); err != nil {
		return err
	}

	seenRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}
		case xml.CharData:
			if !seenRoot && len(strings.TrimSpace(string(t))) == 0 {
				continue
			}
		case xml.StartElement:
			seenRoot = true
			if t.Name.Local == "hash40" && hasIndex(t, wanted) {
				el := t.Copy()
				if err := dec.Skip(); err != nil {
					return err
				}
				if err := encodeColorStruct(enc, el, maxColors); err != nil {
					return err
				}
				continue
			}
		}
		if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return err
		}
	}
	return enc.Flush()
}

func hasIndex(el xml.StartElement, wanted map[string]struct{}) bool {
	for _, a := range el.Attr {
		if a.Name.Local == "index" {
			_, ok := wanted[a.Value]
			return ok
		}
	}
	return false
}

func encodeColorStruct(enc *xml.Encoder, el xml.StartElement, maxColors int) error {
	start := xml.StartElement{Name: xml.Name{Local: "struct"}, Attr: el.Attr}
	field := xml.StartElement{
		Name: xml.Name{Local: "byte"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "hash"}, Value: "color_num"}},
	}
	for _, tok := range []xml.Token{
		start,
		field,
		xml.CharData(strconv.Itoa(maxColors)),
		field.End(),
		start.End(),
	} {
		if err := enc.EncodeToken(tok); err != nil {
			return err
		}
	}
	return nil
}
