package cases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fabworks/caseboard/internal/audit"
	"github.com/fabworks/caseboard/internal/command"
	"github.com/fabworks/caseboard/internal/domain"
)

// UpdateResult is the outcome of update_case.
type UpdateResult struct {
	Case       *domain.Case
	Entries    []string
	Duplicates []domain.Case
}

// UpdateCase applies field edits to a case and appends one history
// entry per changed field, in the differ's fixed order.
func (s *Service) UpdateCase(ctx context.Context, env command.Env, input UpdateCaseInput) (any, error) {
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
	if input.Number != nil {
		next.Number = strings.TrimSpace(*input.Number)
	}
	if input.Department != nil {
		next.Department, _ = domain.ParseDepartment(*input.Department)
	}
	if input.Due != nil {
		next.Due = domain.DueDate(*input.Due)
	}
	next.UpdatedAt = s.now().UTC()

	entries := audit.Diff(&prev, &next)

	updated, err := s.persistUpdate(ctx, env, &next, entries)
	if err != nil {
		return nil, fmt.Errorf("update case: %w", err)
	}

	s.log.InfoContext(ctx, "case updated",
		slog.String("case_id", updated.ID.String()),
		slog.Int("changes", len(entries)),
	)

	return &UpdateResult{
		Case:       updated,
		Entries:    entries,
		Duplicates: duplicatesOf(env, updated.Number, updated.ID),
	}, nil
}
