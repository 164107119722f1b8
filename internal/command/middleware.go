package command

import (
	"context"
	"log/slog"

	"github.com/fabworks/caseboard/pkg/ctxutil"
)

// Logging returns the built-in middleware that logs every dispatch with
// command name, duration, and outcome. Failed dispatches log at error
// level; the error itself still propagates to the caller.
func Logging(log *slog.Logger) Middleware {
	return func(ctx context.Context, obs Observation) {
		attrs := []slog.Attr{
			slog.String("command", obs.Command.Name),
			slog.Duration("elapsed", obs.Elapsed),
		}
		if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
			attrs = append(attrs, slog.String("request_id", id))
		}

		level := slog.LevelInfo
		if obs.Err != nil {
			level = slog.LevelError
			attrs = append(attrs, slog.String("error", obs.Err.Error()))
		}
		log.LogAttrs(ctx, level, "command.dispatch", attrs...)
	}
}
