package app

import (
	"context"
	"log/slog"

	"github.com/fabworks/caseboard/internal/config"
)

// Run is the application entry point. It loads configuration,
// initializes the logger, opens a session, and drives it until ctx is
// canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting caseboard",
		slog.String("version", BuildVersion()),
		slog.String("actor", cfg.Session.Actor),
		slog.String("log_level", cfg.Log.Level),
	)

	session, err := NewSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	return session.Run(ctx)
}
