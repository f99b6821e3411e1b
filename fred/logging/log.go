package logging

import "fmt"

// Log is the logging facility of one API instance. It formats messages
// only for enabled levels, stamps them with the caller's location and
// drops debug messages deeper than its debug depth. A nil *Log discards
// everything.
type Log struct {
	logger Logger
	depth  int
}

// NewLog returns a facility writing to logger. A nil logger is replaced
// by Nop.
func NewLog(logger Logger) *Log {
	if logger == nil {
		logger = Nop{}
	}
	return &Log{logger: logger}
}

// WithDebugDepth sets the deepest debug level that is still logged.
// Depth 0 passes plain Debug messages only.
func (l *Log) WithDebugDepth(depth int) *Log {
	l.depth = depth
	return l
}

// DebugDepth returns the configured debug depth.
func (l *Log) DebugDepth() int {
	if l == nil {
		return 0
	}
	return l.depth
}

// Logger returns the underlying sink.
func (l *Log) Logger() Logger {
	if l == nil {
		return Nop{}
	}
	return l.logger
}

func (l *Log) Enabled(level Level) bool {
	return l != nil && l.logger.LevelEnabled(level)
}

func (l *Log) Info(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Log) Warn(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Log) Error(format string, args ...any) { l.logf(LevelError, format, args...) }

// Fatal logs at FATAL. It does not exit.
func (l *Log) Fatal(format string, args ...any) { l.logf(LevelFatal, format, args...) }

func (l *Log) Debug(format string, args ...any) { l.debugf(0, format, args...) }

// DebugN logs a debug message of the given depth. Larger depths are more
// detailed, such as response bodies.
func (l *Log) DebugN(depth int, format string, args ...any) { l.debugf(depth, format, args...) }

func (l *Log) debugf(depth int, format string, args ...any) {
	if l == nil || depth > l.depth {
		return
	}
	l.logf(LevelDebug, format, args...)
}

func (l *Log) logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	// skip logf, the level method and debugf when present
	skip := 2
	if level == LevelDebug {
		skip = 3
	}
	l.logger.LogMessage(level, fmt.Sprintf(format, args...), Caller(skip))
}
