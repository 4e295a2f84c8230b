package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelForVerbosity maps the -v count to a console log level.
func LevelForVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// NewConsoleHandler returns a tint handler without timestamps, suited to
// line-oriented progress output.
func NewConsoleHandler(w io.Writer, level slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})
}

// Setup installs the default logger. When logFile is set, every record down
// to debug level is also written to a rotated log file.
func Setup(console io.Writer, verbosity int, noColor bool, logFile string) error {
	var handler slog.Handler = NewConsoleHandler(console, LevelForVerbosity(verbosity), noColor)

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return err
		}
		lumber := &lumberjack.Logger{
			Filename: logFile,
			Compress: true,
		}
		handler = &teeHandler{
			handlers: []slog.Handler{
				handler,
				tint.NewHandler(lumber, &tint.Options{
					Level:      slog.LevelDebug,
					TimeFormat: time.RFC3339,
					NoColor:    true,
				}),
			},
		}
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// teeHandler forwards records to every handler that accepts their level.
type teeHandler struct {
	handlers []slog.Handler
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, hh := range h.handlers {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &teeHandler{}
	for _, hh := range h.handlers {
		next.handlers = append(next.handlers, hh.WithAttrs(attrs))
	}
	return next
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	next := &teeHandler{}
	for _, hh := range h.handlers {
		next.handlers = append(next.handlers, hh.WithGroup(name))
	}
	return next
}
