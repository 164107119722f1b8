// Package presence implements the roster read command for the board
// header.
package presence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fabworks/caseboard/internal/command"
	"github.com/fabworks/caseboard/internal/domain"
)

// CmdListPresence is the command name owned by this service.
const CmdListPresence = "list_presence"

type roster interface {
	List(ctx context.Context) ([]domain.Presence, error)
}

// Service provides presence query operations.
type Service struct {
	roster roster
	log    *slog.Logger
}

// NewService creates a new presence service.
func NewService(log *slog.Logger, roster roster) *Service {
	return &Service{
		roster: roster,
		log:    log.With("service", "presence"),
	}
}

// Register binds this service's handlers onto the dispatcher.
func (s *Service) Register(d *command.Dispatcher) {
	d.Register(CmdListPresence, s.listPresence)
}

// listPresence returns the live roster. The command takes no payload.
func (s *Service) listPresence(ctx context.Context, _ command.Env, _ any) (any, error) {
	roster, err := s.roster.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list presence: %w", err)
	}
	return roster, nil
}
