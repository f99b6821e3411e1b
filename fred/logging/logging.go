// Package logging is the logging layer of the fred client: a small Logger
// interface with per-level switches, the Log facility the client writes
// through, and slog and zap backed implementations.
package logging

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Level is a log message category. Levels are switched on and off
// individually rather than by threshold.
type Level int

const (
	LevelNull Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelDebug

	numLevels
)

var levelNames = [numLevels]string{
	LevelNull:  "NULL",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
	LevelDebug: "DEBUG",
}

func (l Level) String() string {
	if l >= 0 && l < numLevels {
		return levelNames[l]
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

func (l Level) valid() bool {
	return l > LevelNull && l < numLevels
}

// severity orders levels from most to least verbose.
func (l Level) severity() int {
	switch l {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	case LevelWarn:
		return 2
	case LevelError:
		return 3
	case LevelFatal:
		return 4
	}
	return -1
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}
	return LevelNull, fmt.Errorf("unknown log level %q (valid: debug|info|warn|error|fatal)", s)
}

// Context is the source location a message was logged from.
type Context struct {
	File string
	Line int
	Func string
}

// Caller returns the Context of the function skip frames above the caller
// of Caller.
func Caller(skip int) Context {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Context{}
	}
	ctx := Context{File: filepath.Base(file), Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		ctx.Func = fn.Name()
	}
	return ctx
}

func (c Context) String() string {
	return fmt.Sprintf("%s:%d %s", c.File, c.Line, c.Func)
}

// Logger is the sink the client writes to. EnableLevel and DisableLevel
// return the previous state of the level.
type Logger interface {
	LogMessage(level Level, message string, ctx Context)
	LevelEnabled(level Level) bool
	EnableLevel(level Level) bool
	DisableLevel(level Level) bool
}

// SetThreshold enables every level at least as severe as threshold and
// disables the others.
func SetThreshold(l Logger, threshold Level) {
	for lvl := LevelInfo; lvl < numLevels; lvl++ {
		if lvl.severity() >= threshold.severity() {
			l.EnableLevel(lvl)
		} else {
			l.DisableLevel(lvl)
		}
	}
}

// ─── Level switches ───────────────────────────────────────────────────────────

// switches holds the per-level on/off state shared by the implementations.
type switches struct {
	lock sync.RWMutex
	on   [numLevels]bool
}

func (s *switches) LevelEnabled(level Level) bool {
	if !level.valid() {
		return false
	}
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.on[level]
}

func (s *switches) EnableLevel(level Level) bool {
	return s.set(level, true)
}

func (s *switches) DisableLevel(level Level) bool {
	return s.set(level, false)
}

func (s *switches) set(level Level, on bool) bool {
	if !level.valid() {
		return false
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	prev := s.on[level]
	s.on[level] = on
	return prev
}

// defaults enables WARN, ERROR and FATAL only.
func (s *switches) defaults() {
	s.on = [numLevels]bool{LevelWarn: true, LevelError: true, LevelFatal: true}
}

// ─── Nop ──────────────────────────────────────────────────────────────────────

// Nop discards everything and reports every level disabled.
type Nop struct{}

func (Nop) LogMessage(Level, string, Context) {}
func (Nop) LevelEnabled(Level) bool          { return false }
func (Nop) EnableLevel(Level) bool           { return false }
func (Nop) DisableLevel(Level) bool          { return false }
