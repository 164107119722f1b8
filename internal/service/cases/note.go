package cases

import (
	"context"
	"strings"

	"github.com/fabworks/caseboard/internal/command"
	"github.com/fabworks/caseboard/internal/domain"
)

// AddNote appends a free-text history entry to a case. The case itself
// is not modified.
func (s *Service) AddNote(ctx context.Context, env command.Env, input AddNoteInput) (any, error) {
	if _, ok := env.Actor(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// The case must exist; a dangling note helps nobody.
	if _, err := s.current(ctx, env, input.ID); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.Text)
	if err := s.appendHistory(ctx, env, input.ID, []string{text}); err != nil {
		return nil, err
	}
	return text, nil
}
