package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var zapLevels = [numLevels]zapcore.Level{
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
	LevelFatal: zapcore.FatalLevel,
	LevelDebug: zapcore.DebugLevel,
}

// ZapLogger adapts a *zap.Logger. Messages are written straight to the
// core, so FATAL is recorded without exiting the process.
type ZapLogger struct {
	switches
	z *zap.Logger
}

// NewZapLogger wraps z with the default level switches.
func NewZapLogger(z *zap.Logger) *ZapLogger {
	l := &ZapLogger{z: z}
	l.defaults()
	return l
}

// ZapConfig configures NewZap.
type ZapConfig struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	OutputPaths []string
}

// NewZap builds a zap logger from cfg and wraps it. Levels at or above
// cfg.Level are enabled.
func NewZap(cfg ZapConfig) (*ZapLogger, error) {
	threshold := LevelWarn
	if cfg.Level != "" {
		var err error
		if threshold, err = ParseLevel(cfg.Level); err != nil {
			return nil, err
		}
	}
	if len(cfg.OutputPaths) == 0 {
		cfg.OutputPaths = []string{"stderr"}
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Development:       cfg.Development,
		Encoding:          encodingFormat(cfg.Development),
		EncoderConfig:     encoderConfig(cfg.Development),
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	z, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	l := NewZapLogger(z)
	SetThreshold(l, threshold)
	return l, nil
}

// Zap returns the wrapped logger.
func (l *ZapLogger) Zap() *zap.Logger { return l.z }

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error { return l.z.Sync() }

func (l *ZapLogger) LogMessage(level Level, message string, ctx Context) {
	if !l.LevelEnabled(level) {
		return
	}
	ent := zapcore.Entry{
		Level:   zapLevels[level],
		Time:    time.Now(),
		Message: message,
		Caller: zapcore.EntryCaller{
			Defined:  ctx.File != "",
			File:     ctx.File,
			Line:     ctx.Line,
			Function: ctx.Func,
		},
	}
	if ce := l.z.Core().Check(ent, nil); ce != nil {
		ce.Write()
	}
}

func encodingFormat(development bool) string {
	if development {
		return "console"
	}
	return "json"
}

func encoderConfig(development bool) zapcore.EncoderConfig {
	if development {
		return zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			CallerKey:      "C",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		CallerKey:      "caller",
		FunctionKey:    "func",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
