package database

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/tracelog"
)

// newQueryTracer routes pgx query logs into slog. Per-query entries are only
// produced when the default logger has debug enabled.
func newQueryTracer() *tracelog.TraceLog {
	level := tracelog.LogLevelWarn
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		level = tracelog.LogLevelInfo
	}
	return &tracelog.TraceLog{
		Logger:   tracelog.LoggerFunc(logQuery),
		LogLevel: level,
	}
}

func logQuery(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	attrs := make([]slog.Attr, 0, len(data))
	for k, v := range data {
		attrs = append(attrs, slog.Any(k, v))
	}
	slog.LogAttrs(ctx, slogLevel(level), "pgx: "+msg, attrs...)
}

// slogLevel maps pgx levels onto slog. Routine query traces are demoted to debug.
func slogLevel(level tracelog.LogLevel) slog.Level {
	switch level {
	case tracelog.LogLevelError:
		return slog.LevelError
	case tracelog.LogLevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}
