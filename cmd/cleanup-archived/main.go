// Command cleanup-archived hard-deletes archived cases older than the
// configured retention window. It is intended to be invoked by an
// external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/fabworks/caseboard/internal/adapter/postgres"
	caserepo "github.com/fabworks/caseboard/internal/adapter/postgres/cases"
	"github.com/fabworks/caseboard/internal/app"
	"github.com/fabworks/caseboard/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.Retention.ArchivedDays)

	deleted, err := caserepo.New(pool).DeleteArchivedBefore(ctx, cutoff)
	if err != nil {
		logger.Error("cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff),
		)
		os.Exit(1)
	}

	logger.Info("cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff),
	)
}
