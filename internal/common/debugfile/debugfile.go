// Package debugfile writes diagnostic files while debug mode is active.
package debugfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/owlwatch/owlwatch/internal/common/logger"
	"github.com/owlwatch/owlwatch/internal/common/state"
)

// timestampLayout is ISO-8601 at seconds precision with ':' replaced by '-'
const timestampLayout = "2006-01-02T15-04-05"

// Writer saves debug artifacts to a directory. Writes are no-ops unless the
// shared state has debug enabled.
type Writer struct {
	dir     string
	state   *state.State
	log     *logger.Logger
	nowFunc func() time.Time
}

// Option configures a Writer
type Option func(*Writer)

// WithNowFunc sets a custom time function for testing
func WithNowFunc(fn func() time.Time) Option {
	return func(w *Writer) {
		w.nowFunc = fn
	}
}

// WithLogger sets the logger used to announce saved files
func WithLogger(l *logger.Logger) Option {
	return func(w *Writer) {
		w.log = l
	}
}

// DefaultDir returns $XDG_STATE_HOME/owlwatch/debug
func DefaultDir() (string, error) {
	dir, err := logger.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "debug"), nil
}

// NewWriter creates a Writer for dir gated by st
func NewWriter(dir string, st *state.State, opts ...Option) *Writer {
	w := &Writer{
		dir:     dir,
		state:   st,
		log:     logger.Default(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the artifact directory
func (w *Writer) Dir() string {
	return w.dir
}

// FileName returns the artifact file name for name at t
func FileName(name string, t time.Time) string {
	return fmt.Sprintf("%s_%s.txt", name, t.Format(timestampLayout))
}

// Write saves content as {name}_{timestamp}.txt and returns the file path.
// It returns "" and writes nothing when debug mode is off.
func (w *Writer) Write(name, content string) (string, error) {
	if w == nil || w.state == nil || !w.state.Debug() {
		return "", nil
	}

	path := filepath.Join(w.dir, FileName(name, w.nowFunc()))
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	w.log.LogDebug("SavingDebugFile", fmt.Sprintf(`Saving debug file to "%s" ...`, path))

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write debug file: %w", err)
	}

	return path, nil
}
