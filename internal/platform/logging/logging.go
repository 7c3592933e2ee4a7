package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// New builds the root logger. Subsystems derive their own with Named, which
// keeps the firmware's [Drying]/[Storage]/[Buttons] tags as logger names.
func New(level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "dryscale",
		Level:  hclog.LevelFromString(level),
		Output: os.Stderr,
	})
}

// Discard is used by tests and by the TUI, which owns the terminal.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: io.Discard})
}
