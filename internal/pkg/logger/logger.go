// Package logger adapts log/slog to the ports.Logger interface.
package logger

import (
	"log/slog"
	"os"

	"github.com/asoraledecnal/vantage/internal/ports"
)

// SlogLogger writes structured log lines through a slog.Logger.
type SlogLogger struct {
	log *slog.Logger
}

// New builds a text logger on stderr. Debug lines are emitted only when
// verbose is set.
func New(verbose bool) *SlogLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &SlogLogger{log: slog.New(handler)}
}

// FromSlog wraps an existing slog.Logger.
func FromSlog(log *slog.Logger) *SlogLogger {
	return &SlogLogger{log: log}
}

func (l *SlogLogger) Debug(msg string, fields map[string]any) {
	l.log.Debug(msg, attrs(fields)...)
}

func (l *SlogLogger) Info(msg string, fields map[string]any) {
	l.log.Info(msg, attrs(fields)...)
}

func (l *SlogLogger) Warn(msg string, fields map[string]any) {
	l.log.Warn(msg, attrs(fields)...)
}

func (l *SlogLogger) Error(msg string, err error, fields map[string]any) {
	args := attrs(fields)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.log.Error(msg, args...)
}

func attrs(fields map[string]any) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}

var _ ports.Logger = (*SlogLogger)(nil)
