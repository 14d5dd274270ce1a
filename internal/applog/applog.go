// Package applog wires zerolog to both the console and an append-only,
// one-file-per-day log under <data-dir>/logs, the way other_examples' lox
// pokerforbots server does for its own zerolog.Logger field.
package applog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Open creates (or appends to) logs/poker-YYYY-MM-DD.log under dataDir and
// returns a Logger that writes to both that file and a human-readable
// console writer. The returned io.Closer must be closed at shutdown.
func Open(dataDir string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	dir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("applog: mkdir %s: %w", dir, err)
	}
	name := fmt.Sprintf("poker-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("applog: open log file: %w", err)
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	multi := zerolog.MultiLevelWriter(console, f)
	log := zerolog.New(multi).Level(level).With().Timestamp().Logger()
	return log, f, nil
}
