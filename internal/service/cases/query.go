package cases

import (
	"context"

	"github.com/google/uuid"

	"github.com/fabworks/caseboard/internal/command"
	"github.com/fabworks/caseboard/internal/domain"
)

// GetCase returns the current snapshot of one case.
func (s *Service) GetCase(ctx context.Context, env command.Env, input CaseRefInput) (any, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	c, err := s.current(ctx, env, input.ID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCases returns the mirror's cases due on the given date, in
// display order.
func (s *Service) ListCases(ctx context.Context, env command.Env, input ListCasesInput) (any, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var out []domain.Case
	for _, c := range env.Cases() {
		if domain.SameDay(c.Due, input.Due) {
			out = append(out, c)
		}
	}
	return out, nil
}

// FindDuplicates returns the advisory duplicate candidates for a case
// number. The finding never blocks anything; it is informational.
func (s *Service) FindDuplicates(ctx context.Context, env command.Env, input FindDuplicatesInput) (any, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return duplicatesOf(env, input.Number, input.ExcludeID), nil
}

// History returns a case's audit trail, newest first. Exposed on the
// service rather than as a command: the history pane reads it directly.
func (s *Service) History(ctx context.Context, caseID uuid.UUID, limit int) ([]domain.HistoryEntry, error) {
	if caseID == uuid.Nil {
		return nil, domain.NewValidationError("case_id", "required")
	}
	return s.history.ListByCase(ctx, caseID, limit)
}
