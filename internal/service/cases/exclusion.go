package cases

import (
	"context"
	"fmt"

	"github.com/fabworks/caseboard/internal/audit"
	"github.com/fabworks/caseboard/internal/command"
	"github.com/fabworks/caseboard/internal/domain"
)

// SetExclusion sets or clears a case's statistics exclusion. The
// exclusion namespace is exclusive: one marker at a time, the reason
// lives and dies with it.
func (s *Service) SetExclusion(ctx context.Context, env command.Env, input SetExclusionInput) (any, error) {
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
	scope := input.Scope
	if input.Excluded {
		next.Modifiers.Exclusion = &domain.Exclusion{Scope: scope, Reason: input.Reason}
	} else {
		// Clearing logs the scope that was in force, not the one asked for.
		if prev.Modifiers.Exclusion != nil {
			scope = prev.Modifiers.Exclusion.Scope
		} else if scope == "" {
			scope = domain.ExclusionAll
		}
		next.Modifiers.Exclusion = nil
	}
	next.UpdatedAt = s.now().UTC()

	updated, err := s.persistUpdate(ctx, env, &next, []string{audit.ExclusionMessage(scope, input.Excluded)})
	if err != nil {
		return nil, fmt.Errorf("set exclusion: %w", err)
	}

	return updated, nil
}
