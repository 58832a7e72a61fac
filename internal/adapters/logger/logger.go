// Package logger implements the logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/oaspect/oaspect/internal/core/ports"
)

// messager describes an error that can report its own message without the
// chain. This matches the Message() method provided by zerr.Error; errors
// without it fall back to standard handling.
type messager interface {
	Message() string
}

// metadated describes an error carrying structured metadata, as zerr.Error
// does.
type metadated interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger on top of log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	jsonMode bool
	output   io.Writer
}

// New creates a logger writing human-readable lines to stderr.
func New() *Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput redirects log output. Used by tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and text output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jsonMode = enable
	l.rebuild()
}

// rebuild swaps the slog handler for the current mode. Callers hold l.mu.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = slog.NewTextHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its cause chain flattened into one message and
// any structured metadata attached as attributes.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}

	messages, metadata := flattenChain(err)
	attrs := make([]any, 0, len(metadata)*2)
	for _, key := range sortedMetaKeys(metadata) {
		attrs = append(attrs, key, metadata[key])
	}
	l.logger.Error(strings.Join(messages, ": "), attrs...)
}

// flattenChain walks the error chain collecting per-layer messages and
// merging metadata, outermost value winning on key collision.
func flattenChain(err error) ([]string, map[string]any) {
	var messages []string
	metadata := make(map[string]any)

	for current := err; current != nil; {
		if m, ok := current.(metadated); ok {
			for k, v := range m.Metadata() {
				if _, exists := metadata[k]; !exists {
					metadata[k] = v
				}
			}
		}
		if m, ok := current.(messager); ok {
			// Metadata-only layers carry an empty message.
			if msg := m.Message(); msg != "" {
				messages = append(messages, msg)
			}
			current = errors.Unwrap(current)
			continue
		}
		messages = append(messages, current.Error())
		break
	}

	return messages, metadata
}

func sortedMetaKeys(metadata map[string]any) []string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

var _ ports.Logger = (*Logger)(nil)
