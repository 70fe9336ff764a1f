// Package logging builds the process-wide zerolog logger.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

type Config struct {
	Level   string `yaml:"level" json:"level"`
	Console bool   `yaml:"console" json:"console"`
}

// New builds the root logger. Console mode gets the human-readable writer;
// anything else ships JSON lines for log collectors.
func New(cfg Config) zerolog.Logger {
	level := ParseLevel(cfg.Level, zerolog.InfoLevel)

	if cfg.Console {
		w := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: consoleTimeFormat}
		return zerolog.New(w).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a config string to a zerolog level, falling back to def
// on anything it does not recognize.
func ParseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return def
	}
}
