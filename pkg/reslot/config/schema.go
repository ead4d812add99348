package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// Document mirrors the config.json layout for schema generation.
type Document struct {
	NewDirInfos     []string            `json:"new-dir-infos" jsonschema:"description=Directory-infos the loader creates,uniqueItems=true"`
	NewDirInfosBase map[string]string   `json:"new-dir-infos-base" jsonschema:"description=New directory-info to the vanilla directory-info it inherits from"`
	ShareToVanilla  map[string][]string `json:"share-to-vanilla" jsonschema:"description=Vanilla file to new paths sharing its data"`
	NewDirFiles     map[string][]string `json:"new-dir-files" jsonschema:"description=Directory-info to the files added to it"`
	ShareToAdded    map[string][]string `json:"share-to-added" jsonschema:"description=Vanilla file to new paths sharing it as added files"`
}

// Schema reflects the JSON schema of config.json.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Document))
	schema.Title = "Reslot Config"
	schema.Description = "Slot reassignment configuration read by the mod loader"
	return schema
}

// WriteSchema writes the schema to outPath through a temporary file.
func WriteSchema(outPath string) error {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create schema directory: %w", err)
		}
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
