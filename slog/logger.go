// Package slog provides logger construction and logging decorators for
// fetcher services.
package slog

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits.
const (
	MaxLogSizeMB  = 10
	MaxLogBackups = 3
	MaxLogAgeDays = 28
)

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewFileWriter returns a writer appending to path, rotating the file once
// it grows past MaxLogSizeMB. The file is created on first write.
func NewFileWriter(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    MaxLogSizeMB,
		MaxBackups: MaxLogBackups,
		MaxAge:     MaxLogAgeDays,
	}
}
