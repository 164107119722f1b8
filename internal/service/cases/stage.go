package cases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fabworks/caseboard/internal/audit"
	"github.com/fabworks/caseboard/internal/command"
	"github.com/fabworks/caseboard/internal/domain"
)

// SetStage moves a case to a workflow stage. The stage namespace is
// exclusive: setting a stage replaces any existing marker. History uses
// the dedicated stage message, not the generic differ.
func (s *Service) SetStage(ctx context.Context, env command.Env, input SetStageInput) (any, error) {
	if _, ok := env.Actor(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	prev, err := s.current(ctx, env, input.ID)
	if err != nil {
		return nil, err
	}

	next := prev
	stage := input.Stage
	next.Modifiers.Stage = &stage
	next.UpdatedAt = s.now().UTC()

	updated, err := s.persistUpdate(ctx, env, &next, []string{audit.StageMessage(stage, input.Repair)})
	if err != nil {
		return nil, fmt.Errorf("set stage: %w", err)
	}

	s.log.InfoContext(ctx, "case stage set",
		slog.String("case_id", updated.ID.String()),
		slog.String("stage", stage.String()),
		slog.Bool("repair", input.Repair),
	)

	return updated, nil
}
