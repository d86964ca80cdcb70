// Package log provides the structured logger used across the PVDKG core.
package log

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used by every package in this module.
//
//nolint:interfacebloat
type Logger interface {
	Info(keyvals ...interface{})
	Debug(keyvals ...interface{})
	Warn(keyvals ...interface{})
	Error(keyvals ...interface{})
	Infow(msg string, keyvals ...interface{})
	Debugw(msg string, keyvals ...interface{})
	Warnw(msg string, keyvals ...interface{})
	Errorw(msg string, keyvals ...interface{})
	With(args ...interface{}) Logger
	Named(s string) Logger
}

type log struct {
	*zap.SugaredLogger
}

func (l *log) With(args ...interface{}) Logger {
	return &log{l.SugaredLogger.With(args...)}
}

func (l *log) Named(s string) Logger {
	return &log{l.SugaredLogger.Named(s)}
}

const (
	InfoLevel  = int(zapcore.InfoLevel)
	DebugLevel = int(zapcore.DebugLevel)
	ErrorLevel = int(zapcore.ErrorLevel)
	WarnLevel  = int(zapcore.WarnLevel)
)

// DefaultLevel is the level the package-level default logger is created at.
var DefaultLevel = InfoLevel

var defaultOnce sync.Once
var defaultLogger Logger

// DefaultLogger returns the process-wide default logger, built lazily.
func DefaultLogger() Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(os.Stderr, DefaultLevel, true)
	})
	return defaultLogger
}

// New builds a logger writing to output at the given level.
func New(output zapcore.WriteSyncer, level int, jsonFormat bool) Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if jsonFormat {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	if output == nil {
		output = os.Stderr
	}

	core := zapcore.NewCore(encoder, output, zapcore.Level(level))
	return &log{zap.New(core, zap.WithCaller(true)).Sugar()}
}

type ctxKey string

const loggerCtxKey ctxKey = "pvdkgLogger"

// ToContext attaches a logger to ctx.
func ToContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, l)
}

// FromContextOrDefault returns the logger attached to ctx, or the default.
func FromContextOrDefault(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerCtxKey).(Logger); ok {
		return l
	}
	return DefaultLogger()
}
