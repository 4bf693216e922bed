// Package logger holds the process-wide zap logger for the meshkit commands.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log discards everything until Setup runs, so packages may log
// unconditionally.
var Log = zap.NewNop()

// Log file rotation limits.
const (
	rotateSizeMB  = 10
	rotateBackups = 3
	rotateAgeDays = 7
)

// Options selects the level and sinks for Setup.
type Options struct {
	Level string // debug, info, warn or error; empty means info
	File  string // rotated JSON log; empty disables it

	// Console writes human-readable entries to stderr. Leave it off while a
	// full-screen view owns the terminal.
	Console bool
}

// Setup replaces Log according to opts. An unknown level is an error and
// leaves Log unchanged.
func Setup(opts Options) error {
	lvl := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}

	var cores []zapcore.Core
	if opts.Console {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), lvl))
	}
	if opts.File != "" {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    rotateSizeMB,
			MaxBackups: rotateBackups,
			MaxAge:     rotateAgeDays,
			LocalTime:  true,
		})
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = "time"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), sink, lvl))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return nil
}

// Named returns a child of Log tagged with a component name.
func Named(name string) *zap.Logger {
	return Log.Named(name)
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}
