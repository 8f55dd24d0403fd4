package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/chriscorrea/warpeace/internal/app"
)

// LevelFatal is logged for failures that make the run meaningless, such as an
// unreadable term list. It sorts above slog.LevelError.
const LevelFatal = slog.Level(12)

// setupLogger configures the default slog logger. debug wins over quiet.
func setupLogger(w io.Writer, debug, quiet bool) {
	level := slog.LevelInfo
	switch {
	case debug:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) > 0 {
				return a
			}
			if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelFatal {
				a.Value = slog.StringValue("FATAL")
			}
			return a
		},
	})
	slog.SetDefault(slog.New(handler))
}

// logFailure writes err as a single log record at the level its kind calls for.
func logFailure(err error) {
	level := slog.LevelError
	if app.KindOf(err) == app.KindFatal {
		level = LevelFatal
	}

	var appErr *app.Error
	if errors.As(err, &appErr) {
		slog.Log(context.Background(), level, appErr.Op, "error", appErr.Err, "stage", appErr.Stage, "kind", appErr.Kind)
		return
	}
	slog.Log(context.Background(), level, err.Error())
}
