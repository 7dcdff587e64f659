// Package logging builds the file-backed diagnostic logger. The TUI owns
// the terminal, so nothing may write to stdout or stderr while it runs.
package logging

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open returns a logger appending to the given file, creating parent
// directories as needed. When the file cannot be opened the logger is
// disabled rather than failing startup: diagnostics are never worth
// refusing to run over.
func Open(path string) zerolog.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop()
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(file).With().Timestamp().Logger()
}
