package cases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fabworks/caseboard/internal/command"
	"github.com/fabworks/caseboard/internal/domain"
)

// ArchiveCase marks a case archived with a timestamp. The cache drops
// the row when the archival notification comes back; the handler does
// not touch the mirror.
func (s *Service) ArchiveCase(ctx context.Context, env command.Env, input CaseRefInput) (any, error) {
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
	if prev.Archived {
		return &prev, nil
	}

	now := s.now().UTC()
	next := prev
	next.Archived = true
	next.ArchivedAt = &now
	next.UpdatedAt = now

	updated, err := s.persistUpdate(ctx, env, &next, []string{"Case archived"})
	if err != nil {
		return nil, fmt.Errorf("archive case: %w", err)
	}

	s.log.InfoContext(ctx, "case archived",
		slog.String("case_id", updated.ID.String()),
		slog.String("number", updated.Number),
	)

	return updated, nil
}
