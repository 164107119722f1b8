package cases

import (
	"context"
	"fmt"

	"github.com/fabworks/caseboard/internal/audit"
	"github.com/fabworks/caseboard/internal/command"
	"github.com/fabworks/caseboard/internal/domain"
)

// TogglePriority flips the priority flag. History comes from the differ
// ("Priority added" / "Priority removed").
func (s *Service) TogglePriority(ctx context.Context, env command.Env, input CaseRefInput) (any, error) {
	return s.toggle(ctx, env, input, func(c *domain.Case) {
		c.Priority = !c.Priority
	})
}

// ToggleRush flips the rush flag.
func (s *Service) ToggleRush(ctx context.Context, env command.Env, input CaseRefInput) (any, error) {
	return s.toggle(ctx, env, input, func(c *domain.Case) {
		c.Modifiers.Rush = !c.Modifiers.Rush
	})
}

// ToggleHold flips the hold flag.
func (s *Service) ToggleHold(ctx context.Context, env command.Env, input CaseRefInput) (any, error) {
	return s.toggle(ctx, env, input, func(c *domain.Case) {
		c.Modifiers.Hold = !c.Modifiers.Hold
	})
}

// ToggleBBS flips the bbs flag.
func (s *Service) ToggleBBS(ctx context.Context, env command.Env, input CaseRefInput) (any, error) {
	return s.toggle(ctx, env, input, func(c *domain.Case) {
		c.Modifiers.BBS = !c.Modifiers.BBS
	})
}

// ToggleFlex flips the flex flag.
func (s *Service) ToggleFlex(ctx context.Context, env command.Env, input CaseRefInput) (any, error) {
	return s.toggle(ctx, env, input, func(c *domain.Case) {
		c.Modifiers.Flex = !c.Modifiers.Flex
	})
}

// ToggleStage2 flips the stage2 flag, moving a metal case between
// development and finishing ("Moved to Stage 2" / "Moved back to
// Stage 1").
func (s *Service) ToggleStage2(ctx context.Context, env command.Env, input CaseRefInput) (any, error) {
	return s.toggle(ctx, env, input, func(c *domain.Case) {
		c.Modifiers.Stage2 = !c.Modifiers.Stage2
	})
}

// ToggleCompleted flips the completed flag. The differ does not cover
// completion, so the entry is written here.
func (s *Service) ToggleCompleted(ctx context.Context, env command.Env, input CaseRefInput) (any, error) {
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
	next.Completed = !prev.Completed
	next.UpdatedAt = s.now().UTC()

	entry := "Marked complete"
	if !next.Completed {
		entry = "Marked incomplete"
	}

	updated, err := s.persistUpdate(ctx, env, &next, []string{entry})
	if err != nil {
		return nil, fmt.Errorf("toggle completed: %w", err)
	}

	return updated, nil
}

// toggle is the shared flip-persist-audit path for the flag commands.
// The history entries come from the generic differ, so each toggle logs
// exactly its own transition.
func (s *Service) toggle(ctx context.Context, env command.Env, input CaseRefInput, flip func(*domain.Case)) (any, error) {
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
	flip(&next)
	next.UpdatedAt = s.now().UTC()

	entries := audit.Diff(&prev, &next)

	updated, err := s.persistUpdate(ctx, env, &next, entries)
	if err != nil {
		return nil, fmt.Errorf("toggle: %w", err)
	}

	return updated, nil
}
