package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/goliatone/go-meta-tokens/core"
)

const levelTrace = slog.Level(-8)

// slogLogger adapts log/slog to the glog interfaces used by core.Service.
// Fields arrive as key/value args, so it skips glog.FieldsLogger.
type slogLogger struct {
	logger *slog.Logger
	ctx    context.Context
}

func newSlogLogger(w io.Writer, verbose bool) *slogLogger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{logger: slog.New(handler), ctx: context.Background()}
}

func (l *slogLogger) Trace(msg string, args ...any) { l.log(levelTrace, msg, args...) }
func (l *slogLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

// Fatal logs at error level. Exiting is left to the command.
func (l *slogLogger) Fatal(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

func (l *slogLogger) WithContext(ctx context.Context) core.Logger {
	if ctx == nil {
		return l
	}
	return &slogLogger{logger: l.logger, ctx: ctx}
}

func (l *slogLogger) log(level slog.Level, msg string, args ...any) {
	l.logger.Log(l.ctx, level, msg, args...)
}
