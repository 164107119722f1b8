package cases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/fabworks/caseboard/internal/command"
	"github.com/fabworks/caseboard/internal/domain"
)

// CreateResult is the outcome of create_case: the persisted case plus
// any advisory duplicate candidates. Duplicates never block the write.
type CreateResult struct {
	Case       *domain.Case
	Duplicates []domain.Case
}

// CreateCase persists a new case and appends its opening history entry.
func (s *Service) CreateCase(ctx context.Context, env command.Env, input CreateCaseInput) (any, error) {
	if _, ok := env.Actor(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	department, _ := domain.ParseDepartment(input.Department)
	now := s.now().UTC()

	var created *domain.Case
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.cases.Create(ctx, &domain.Case{
			ID:         uuid.New(),
			Number:     strings.TrimSpace(input.Number),
			Department: department,
			Due:        domain.DueDate(input.Due),
			Priority:   input.Priority,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return err
		}
		return s.appendHistory(ctx, env, created.ID, []string{"Case created"})
	})
	if err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}

	s.log.InfoContext(ctx, "case created",
		slog.String("case_id", created.ID.String()),
		slog.String("number", created.Number),
		slog.String("department", created.Department.String()),
	)

	return &CreateResult{
		Case:       created,
		Duplicates: duplicatesOf(env, created.Number, created.ID),
	}, nil
}

// duplicatesOf scans the mirror for non-archived, non-completed cases
// sharing the duplicate key of number, excluding the case itself.
func duplicatesOf(env command.Env, number string, exclude uuid.UUID) []domain.Case {
	if env.Cases == nil {
		return nil
	}
	key := domain.DuplicateKey(number)
	if key == "" {
		return nil
	}

	var out []domain.Case
	for _, c := range env.Cases() {
		if c.ID == exclude || c.Archived || c.Completed {
			continue
		}
		if domain.DuplicateKey(c.Number) == key {
			out = append(out, c)
		}
	}
	return out
}
