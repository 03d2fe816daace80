package log

import (
	"context"
	"io"
	"log/slog"

	"github.com/samber/lo"
)

type contextKey struct{}

var discardLogger = New(io.Discard, slog.LevelInfo)

func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return lo.Ternary(a.Key == slog.TimeKey, slog.Attr{}, a)
		},
	}))
}

// Level maps the debug toggle onto a slog level.
func Level(debug bool) slog.Level {
	return lo.Ternary(debug, slog.LevelDebug, slog.LevelInfo)
}

func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

func FromContextOrDiscard(ctx context.Context) *slog.Logger {
	if v, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return v
	}
	return discardLogger
}
