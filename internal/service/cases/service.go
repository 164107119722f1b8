// Package cases implements the command handlers that mutate case
// records. Every handler follows the same shape: read the current
// snapshot, compute the next one through the tag codec, persist it, and
// append the derived history entries. The cache mirror catches up when
// the change notification arrives; handlers never write to it directly.
package cases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fabworks/caseboard/internal/command"
	"github.com/fabworks/caseboard/internal/domain"
)

// Command names owned by this service.
const (
	CmdCreateCase      = "create_case"
	CmdUpdateCase      = "update_case"
	CmdTogglePriority  = "toggle_priority"
	CmdToggleRush      = "toggle_rush"
	CmdToggleHold      = "toggle_hold"
	CmdToggleBBS       = "toggle_bbs"
	CmdToggleFlex      = "toggle_flex"
	CmdToggleStage2    = "toggle_stage2"
	CmdToggleCompleted = "toggle_completed"
	CmdSetStage        = "set_stage"
	CmdSetExclusion    = "set_exclusion"
	CmdArchiveCase     = "archive_case"
	CmdAddNote         = "add_note"
	CmdGetCase         = "get_case"
	CmdListCases       = "list_cases"
	CmdFindDuplicates  = "find_duplicates"
)

type caseRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	Create(ctx context.Context, c *domain.Case) (*domain.Case, error)
	Update(ctx context.Context, c *domain.Case) (*domain.Case, error)
	ListActive(ctx context.Context) ([]domain.Case, error)
}

type historyRepo interface {
	Append(ctx context.Context, e domain.HistoryEntry) error
	ListByCase(ctx context.Context, caseID uuid.UUID, limit int) ([]domain.HistoryEntry, error)
}

// txManager runs a function inside one database transaction. Mutating
// commands use it so a case write and its history entries land
// together or not at all.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides case mutation and query operations.
type Service struct {
	cases   caseRepo
	history historyRepo
	tx      txManager
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new case service.
func NewService(log *slog.Logger, cases caseRepo, history historyRepo, tx txManager) *Service {
	return &Service{
		cases:   cases,
		history: history,
		tx:      tx,
		log:     log.With("service", "cases"),
		now:     time.Now,
	}
}

// Register binds all of this service's handlers onto the dispatcher.
func (s *Service) Register(d *command.Dispatcher) {
	d.Register(CmdCreateCase, handler(s.CreateCase))
	d.Register(CmdUpdateCase, handler(s.UpdateCase))
	d.Register(CmdTogglePriority, handler(s.TogglePriority))
	d.Register(CmdToggleRush, handler(s.ToggleRush))
	d.Register(CmdToggleHold, handler(s.ToggleHold))
	d.Register(CmdToggleBBS, handler(s.ToggleBBS))
	d.Register(CmdToggleFlex, handler(s.ToggleFlex))
	d.Register(CmdToggleStage2, handler(s.ToggleStage2))
	d.Register(CmdToggleCompleted, handler(s.ToggleCompleted))
	d.Register(CmdSetStage, handler(s.SetStage))
	d.Register(CmdSetExclusion, handler(s.SetExclusion))
	d.Register(CmdArchiveCase, handler(s.ArchiveCase))
	d.Register(CmdAddNote, handler(s.AddNote))
	d.Register(CmdGetCase, handler(s.GetCase))
	d.Register(CmdListCases, handler(s.ListCases))
	d.Register(CmdFindDuplicates, handler(s.FindDuplicates))
}

// handler adapts a typed service method into a command.Handler, turning
// a payload of the wrong type into a validation error.
func handler[T any](fn func(ctx context.Context, env command.Env, in T) (any, error)) command.Handler {
	return func(ctx context.Context, env command.Env, payload any) (any, error) {
		in, ok := payload.(T)
		if !ok {
			return nil, domain.NewValidationError("payload", fmt.Sprintf("want %T, got %T", in, payload))
		}
		return fn(ctx, env, in)
	}
}

// current resolves the present snapshot of a case: the cache mirror
// first, then a round trip to the store for rows the mirror has not
// caught up with yet.
func (s *Service) current(ctx context.Context, env command.Env, id uuid.UUID) (domain.Case, error) {
	if env.CaseByID != nil {
		if c, ok := env.CaseByID(id); ok {
			return c, nil
		}
	}
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return domain.Case{}, err
	}
	return *c, nil
}

// persistUpdate writes the next snapshot and its history entries in one
// transaction, returning the persisted snapshot.
func (s *Service) persistUpdate(ctx context.Context, env command.Env, next *domain.Case, entries []string) (*domain.Case, error) {
	var updated *domain.Case
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.cases.Update(ctx, next)
		if err != nil {
			return err
		}
		return s.appendHistory(ctx, env, updated.ID, entries)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// appendHistory writes one history entry per action, attributed to the
// dispatching actor, in the given order.
func (s *Service) appendHistory(ctx context.Context, env command.Env, caseID uuid.UUID, actions []string) error {
	actor, ok := env.Actor(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	for _, action := range actions {
		err := s.history.Append(ctx, domain.HistoryEntry{
			ID:        uuid.New(),
			CaseID:    caseID,
			Action:    action,
			Actor:     actor,
			CreatedAt: s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("append history %q: %w", action, err)
		}
	}
	return nil
}
