// Package logx is a thin leveled logging facade over zap. Packages log through
// it so the binary decides the sink and level in one place.
package logx

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var (
	atom  = zap.NewAtomicLevelAt(LevelInfo)
	sugar = newLogger().Sugar()
)

func newLogger() *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), atom)
	return zap.New(core, zap.AddCallerSkip(1))
}

// SetLevel changes the minimum level for all subsequent log calls.
func SetLevel(l Level) { atom.SetLevel(l) }

func Debug(args ...any)                 { sugar.Debug(args...) }
func Debugf(format string, args ...any) { sugar.Debugf(format, args...) }
func Info(args ...any)                  { sugar.Info(args...) }
func Infof(format string, args ...any)  { sugar.Infof(format, args...) }
func Warn(args ...any)                  { sugar.Warn(args...) }
func Warnf(format string, args ...any)  { sugar.Warnf(format, args...) }
func Error(args ...any)                 { sugar.Error(args...) }
func Errorf(format string, args ...any) { sugar.Errorf(format, args...) }
func Fatal(args ...any)                 { sugar.Fatal(args...) }
func Fatalf(format string, args ...any) { sugar.Fatalf(format, args...) }
