// Package logger sets up the process-wide slog default. Output is JSON
// lines, written to stdout and, when a log file is configured, to a
// size-rotated file as well.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"projectlog/internal/config"

	"gopkg.in/lumberjack.v2"
)

func Init(cfg config.LogConfig) {
	h := slog.NewJSONHandler(sink(cfg), &slog.HandlerOptions{Level: level(cfg.Level)})
	slog.SetDefault(slog.New(h))
	Info("logging configured", "level", cfg.Level, "file", cfg.File)
}

// sink combines the configured outputs. A config that disables both
// still gets stdout: a server with no log destination helps nobody.
func sink(cfg config.LogConfig) io.Writer {
	var outs []io.Writer
	if cfg.Console {
		outs = append(outs, os.Stdout)
	}
	if cfg.File != "" {
		outs = append(outs, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		})
	}
	switch len(outs) {
	case 0:
		return os.Stdout
	case 1:
		return outs[0]
	default:
		return io.MultiWriter(outs...)
	}
}

func Debug(msg string, args ...any) { slog.Debug(msg, args...) }
func Info(msg string, args ...any)  { slog.Info(msg, args...) }
func Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func Error(msg string, args ...any) { slog.Error(msg, args...) }

// level maps the config string to a slog level, defaulting to info on
// anything unrecognized rather than failing startup.
func level(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
