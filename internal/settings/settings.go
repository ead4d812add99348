// Package settings reads defaults for the CLI from the environment and an
// optional .env file.
package settings

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvHashes   = "RESLOT_HASHES"
	EnvDirInfo  = "RESLOT_DIR_INFO"
	EnvPrcDir   = "RESLOT_PRC_DIR"
	EnvLogLevel = "RESLOT_LOG_LEVEL"
)

// Defaults used when neither a flag nor the environment sets a value.
const (
	DefaultHashes  = "Hashes_all.txt"
	DefaultDirInfo = "dir_info_with_files_trimmed.json"
	DefaultPrcDir  = "."
)

// Settings are the resolved CLI defaults.
type Settings struct {
	Hashes   string
	DirInfo  string
	PrcDir   string
	LogLevel string
}

// Load reads envFiles (".env" when none are given) into the environment
// without overriding variables already set, then resolves the settings.
// Missing files are ignored.
func Load(envFiles ...string) *Settings {
	_ = godotenv.Load(envFiles...)

	return &Settings{
		Hashes:   firstNonEmpty(os.Getenv(EnvHashes), DefaultHashes),
		DirInfo:  firstNonEmpty(os.Getenv(EnvDirInfo), DefaultDirInfo),
		PrcDir:   firstNonEmpty(os.Getenv(EnvPrcDir), DefaultPrcDir),
		LogLevel: strings.TrimSpace(os.Getenv(EnvLogLevel)),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
