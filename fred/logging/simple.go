package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// levelFatal sits above slog.LevelError.
const levelFatal = slog.Level(12)

var slogLevels = [numLevels]slog.Level{
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
	LevelFatal: levelFatal,
	LevelDebug: slog.LevelDebug,
}

// SimpleLogger writes each level to its own io.Writer through log/slog.
// By default WARN, ERROR and FATAL are enabled and go to stderr; INFO goes
// to stdout and DEBUG to stderr but both start disabled.
type SimpleLogger struct {
	switches

	mu       sync.Mutex
	json     bool
	channels [numLevels]*slog.Logger
	writers  [numLevels]io.Writer
	files    map[string]*os.File
}

// NewSimpleLogger returns a SimpleLogger with the default outputs.
func NewSimpleLogger() *SimpleLogger {
	s := &SimpleLogger{files: make(map[string]*os.File)}
	s.defaults()
	s.SetOutput(os.Stderr)
	s.SetLevelOutput(LevelInfo, os.Stdout)
	return s
}

// UseJSON switches every channel, existing and future, between slog's
// JSON and text handlers.
func (s *SimpleLogger) UseJSON(on bool) *SimpleLogger {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.json = on
	for lvl, w := range s.writers {
		if w != nil {
			s.channels[lvl] = slog.New(s.handler(w))
		}
	}
	return s
}

// SetOutput sends every level to w.
func (s *SimpleLogger) SetOutput(w io.Writer) {
	for lvl := LevelInfo; lvl < numLevels; lvl++ {
		s.SetLevelOutput(lvl, w)
	}
}

// SetLevelOutput sends one level to w.
func (s *SimpleLogger) SetLevelOutput(level Level, w io.Writer) {
	if !level.valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writers[level] = w
	s.channels[level] = slog.New(s.handler(w))
}

// SetLevelFile appends one level to the file at path. Levels pointed at
// the same path share one open file.
func (s *SimpleLogger) SetLevelFile(level Level, path string) error {
	s.mu.Lock()
	f, ok := s.files[path]
	if !ok {
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("opening log file: %w", err)
		}
		s.files[path] = f
	}
	s.mu.Unlock()
	s.SetLevelOutput(level, f)
	return nil
}

// SetFile appends every level to the file at path.
func (s *SimpleLogger) SetFile(path string) error {
	for lvl := LevelInfo; lvl < numLevels; lvl++ {
		if err := s.SetLevelFile(lvl, path); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the log files opened by SetLevelFile.
func (s *SimpleLogger) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var first error
	for path, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		delete(s.files, path)
	}
	return first
}

func (s *SimpleLogger) LogMessage(level Level, message string, ctx Context) {
	if !s.LevelEnabled(level) {
		return
	}
	s.mu.Lock()
	l := s.channels[level]
	s.mu.Unlock()
	if l == nil {
		return
	}
	l.LogAttrs(context.Background(), slogLevels[level], message,
		slog.String("source", fmt.Sprintf("%s:%d", ctx.File, ctx.Line)),
		slog.String("func", ctx.Func),
	)
}

func (s *SimpleLogger) handler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == levelFatal {
					a.Value = slog.StringValue("FATAL")
				}
			}
			return a
		},
	}
	if s.json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
