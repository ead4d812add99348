package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Prefix marks every human-readable log line.
const Prefix = "🎮 "

// Level describes a resolved log level and where it came from.
type Level struct {
	Name   string
	JSON   bool
	Source string
}

// ResolveLevel picks the level from the CLI flag, then RESLOT_LOG_LEVEL,
// then "info". A "json" or "json:<level>" value switches to JSON output.
func ResolveLevel(cliLevel string) Level {
	lvl := Level{Name: "info", Source: "default"}
	switch {
	case cliLevel != "":
		lvl.Name, lvl.Source = cliLevel, "CLI --log-level"
	case os.Getenv("RESLOT_LOG_LEVEL") != "":
		lvl.Name, lvl.Source = os.Getenv("RESLOT_LOG_LEVEL"), "RESLOT_LOG_LEVEL"
	}

	if strings.HasPrefix(lvl.Name, "json") {
		lvl.JSON = true
		if _, after, ok := strings.Cut(lvl.Name, ":"); ok && after != "" {
			lvl.Name = after
		} else {
			lvl.Name = "info"
		}
	}
	if os.Getenv("RESLOT_JSON_LOG") == "1" {
		lvl.JSON = true
	}
	return lvl
}

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	return NewLoggerWithLevel(name, ResolveLevel(level), output)
}

// NewLoggerWithLevel creates a logger from an already resolved level.
func NewLoggerWithLevel(name string, lvl Level, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	if !lvl.JSON {
		output = NewPrefixWriter(Prefix, output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(lvl.Name),
		JSONFormat: lvl.JSON,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// NewTestLogger returns a trace-level logger for tests.
func NewTestLogger(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: hclog.Trace,
	})
}
