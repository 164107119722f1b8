// Package history implements the append-only case audit trail using
// PostgreSQL.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/fabworks/caseboard/internal/adapter/postgres"
	"github.com/fabworks/caseboard/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides history persistence backed by PostgreSQL. Rows are
// never updated or deleted individually; they fall away with their case.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type historyRow struct {
	ID        uuid.UUID `db:"id"`
	CaseID    uuid.UUID `db:"case_id"`
	Action    string    `db:"action"`
	Actor     string    `db:"actor"`
	CreatedAt time.Time `db:"created_at"`
}

// Append writes one history entry. A missing case surfaces as
// domain.ErrNotFound via the foreign key.
func (r *Repo) Append(ctx context.Context, e domain.HistoryEntry) error {
	query, args, err := psql.Insert("case_history").
		Columns("id", "case_id", "action", "actor", "created_at").
		Values(e.ID, e.CaseID, e.Action, e.Actor, e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build append history query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, query, args...); err != nil {
		return mapError(err, e.CaseID)
	}
	return nil
}

// ListByCase returns a case's history, newest first. A limit of 0 or
// less means no limit.
func (r *Repo) ListByCase(ctx context.Context, caseID uuid.UUID, limit int) ([]domain.HistoryEntry, error) {
	builder := psql.Select("id", "case_id", "action", "actor", "created_at").
		From("case_history").
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list history query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []historyRow
	if err := pgxscan.Select(ctx, querier, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list history for case %s: %w", caseID, err)
	}

	entries := make([]domain.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.HistoryEntry(row))
	}
	return entries, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, caseID uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("history for case %s: %w", caseID, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("history for case %s: %w", caseID, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("history for case %s: %w", caseID, domain.ErrNotFound)
		}
	}

	return fmt.Errorf("history for case %s: %w", caseID, err)
}
