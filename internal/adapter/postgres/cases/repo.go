// Package cases implements the case repository using PostgreSQL. Rows
// carry the modifier state as a raw tag array; the tag codec translates
// between it and the structured Modifiers record at the boundary.
package cases

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/fabworks/caseboard/internal/adapter/postgres"
	"github.com/fabworks/caseboard/internal/domain"
	"github.com/fabworks/caseboard/internal/domain/tags"
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var caseColumns = []string{
	"id", "number", "department", "due", "priority", "completed",
	"archived", "archived_at", "tags", "created_at", "updated_at",
}

// Repo provides case persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new case repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// caseRow is the scan target mirroring the cases table.
type caseRow struct {
	ID         uuid.UUID  `db:"id"`
	Number     string     `db:"number"`
	Department string     `db:"department"`
	Due        time.Time  `db:"due"`
	Priority   bool       `db:"priority"`
	Completed  bool       `db:"completed"`
	Archived   bool       `db:"archived"`
	ArchivedAt *time.Time `db:"archived_at"`
	Tags       []string   `db:"tags"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// GetByID returns a case by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	query, args, err := psql.Select(caseColumns...).
		From("cases").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get case query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var row caseRow
	if err := pgxscan.Get(ctx, querier, &row, query, args...); err != nil {
		return nil, mapError(err, "case", id)
	}

	c := toDomainCase(row)
	return &c, nil
}

// ListActive returns all non-archived cases in creation order. This is
// the working set a session mirrors locally at startup.
func (r *Repo) ListActive(ctx context.Context) ([]domain.Case, error) {
	query, args, err := psql.Select(caseColumns...).
		From("cases").
		Where(sq.Eq{"archived": false}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list active query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []caseRow
	if err := pgxscan.Select(ctx, querier, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active cases: %w", err)
	}

	cases := make([]domain.Case, 0, len(rows))
	for _, row := range rows {
		cases = append(cases, toDomainCase(row))
	}
	return cases, nil
}

// Create inserts a new case and returns the persisted snapshot.
func (r *Repo) Create(ctx context.Context, c *domain.Case) (*domain.Case, error) {
	query, args, err := psql.Insert("cases").
		Columns(caseColumns...).
		Values(c.ID, c.Number, string(c.Department), c.Due, c.Priority, c.Completed,
			c.Archived, c.ArchivedAt, tags.Encode(c.Modifiers), c.CreatedAt, c.UpdatedAt).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create case query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var row caseRow
	if err := pgxscan.Get(ctx, querier, &row, query, args...); err != nil {
		return nil, mapError(err, "case", c.ID)
	}

	created := toDomainCase(row)
	return &created, nil
}

// Update overwrites a case's mutable columns and returns the persisted
// snapshot. Returns domain.ErrNotFound when the row is gone.
func (r *Repo) Update(ctx context.Context, c *domain.Case) (*domain.Case, error) {
	query, args, err := psql.Update("cases").
		Set("number", c.Number).
		Set("department", string(c.Department)).
		Set("due", c.Due).
		Set("priority", c.Priority).
		Set("completed", c.Completed).
		Set("archived", c.Archived).
		Set("archived_at", c.ArchivedAt).
		Set("tags", tags.Encode(c.Modifiers)).
		Set("updated_at", c.UpdatedAt).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update case query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var row caseRow
	if err := pgxscan.Get(ctx, querier, &row, query, args...); err != nil {
		return nil, mapError(err, "case", c.ID)
	}

	updated := toDomainCase(row)
	return &updated, nil
}

// PurgeSentinels removes every pending-update marker row. Safe to call
// when none exist.
func (r *Repo) PurgeSentinels(ctx context.Context) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx,
		`DELETE FROM cases WHERE lower(trim(number)) = 'update'`)
	if err != nil {
		return fmt.Errorf("purge sentinels: %w", err)
	}
	return nil
}

// DeleteArchivedBefore hard-deletes archived cases whose archival
// predates cutoff. History rows go with them via ON DELETE CASCADE.
// Returns the number of cases removed.
func (r *Repo) DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete("cases").
		Where(sq.Eq{"archived": true}).
		Where(sq.Lt{"archived_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete archived query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete archived cases: %w", err)
	}
	return tag.RowsAffected(), nil
}

func returningColumns() string {
	out := caseColumns[0]
	for _, col := range caseColumns[1:] {
		out += ", " + col
	}
	return out
}

// toDomainCase converts a table row to a domain.Case, decoding the raw
// tag array into the structured modifier record.
func toDomainCase(row caseRow) domain.Case {
	return domain.Case{
		ID:         row.ID,
		Number:     row.Number,
		Department: domain.Department(row.Department),
		Due:        row.Due,
		Priority:   row.Priority,
		Completed:  row.Completed,
		Archived:   row.Archived,
		ArchivedAt: row.ArchivedAt,
		Modifiers:  tags.Decode(row.Tags),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrTransient)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
