package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fabworks/caseboard/internal/domain"
	"github.com/fabworks/caseboard/internal/domain/tags"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCase inserts a case row with sensible defaults and returns the
// filled domain.Case. The row carries no modifier tags.
func SeedCase(t *testing.T, pool *pgxpool.Pool) domain.Case {
	t.Helper()

	c := domain.Case{
		ID:         uuid.New(),
		Number:     "case-" + uniqueSuffix(),
		Department: domain.DepartmentDigital,
		Due:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	insertCase(t, pool, c)
	return c
}

// SeedCaseWithTags inserts a case row carrying the given raw modifier
// tags. The returned domain.Case has Modifiers decoded from them.
func SeedCaseWithTags(t *testing.T, pool *pgxpool.Pool, rawTags []string) domain.Case {
	t.Helper()

	c := domain.Case{
		ID:         uuid.New(),
		Number:     "case-" + uniqueSuffix(),
		Department: domain.DepartmentDigital,
		Due:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Modifiers:  tags.Decode(rawTags),
	}
	insertCase(t, pool, c)
	return c
}

// SeedArchivedCase inserts an already-archived case row with the given
// archival timestamp.
func SeedArchivedCase(t *testing.T, pool *pgxpool.Pool, archivedAt time.Time) domain.Case {
	t.Helper()

	archivedAt = archivedAt.UTC().Truncate(time.Microsecond)
	c := domain.Case{
		ID:         uuid.New(),
		Number:     "case-" + uniqueSuffix(),
		Department: domain.DepartmentMetal,
		Due:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Archived:   true,
		ArchivedAt: &archivedAt,
	}
	insertCase(t, pool, c)
	return c
}

// SeedHistory appends a history row for the given case and returns it.
func SeedHistory(t *testing.T, pool *pgxpool.Pool, caseID uuid.UUID, action string) domain.HistoryEntry {
	t.Helper()
	ctx := context.Background()

	e := domain.HistoryEntry{
		ID:        uuid.New(),
		CaseID:    caseID,
		Action:    action,
		Actor:     "Seed Actor",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO case_history (id, case_id, action, actor, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.CaseID, e.Action, e.Actor, e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedHistory insert: %v", err)
	}

	return e
}

func insertCase(t *testing.T, pool *pgxpool.Pool, c domain.Case) {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO cases (id, number, department, due, priority, completed, archived, archived_at, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Number, string(c.Department), c.Due, c.Priority, c.Completed,
		c.Archived, c.ArchivedAt, tags.Encode(c.Modifiers), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: insert case: %v", err)
	}
}
