package logging

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

type loggerKey struct{}

var fallbackLogger = sync.OnceValue(func() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("service", "brawltools"),
		slog.String("logger", "fallback"),
	)
})

// FromContext returns the logger stored in ctx, or a shared stdout logger tagged as a fallback
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return fallbackLogger()
}

func AddToContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// AddMetaToContext stores a logger carrying attrs in addition to the current meta
func AddMetaToContext(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}

	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}

	return AddToContext(ctx, FromContext(ctx).With(args...))
}

// WithEndpoint tags everything logged through ctx with the brawltools API endpoint being queried
func WithEndpoint(ctx context.Context, endpoint string) context.Context {
	return AddMetaToContext(ctx, slog.String("endpoint", endpoint))
}
