// Package changefeed turns PostgreSQL LISTEN/NOTIFY events on the cases
// table into realtime notifications. A trigger on cases emits one JSON
// payload per row change on the caseboard_cases channel; the listener
// holds a dedicated connection, decodes the payloads, and forwards them
// in arrival order.
package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fabworks/caseboard/internal/domain"
	"github.com/fabworks/caseboard/internal/domain/tags"
	"github.com/fabworks/caseboard/internal/realtime"
)

// channelName is the NOTIFY channel the cases trigger emits on.
const channelName = "caseboard_cases"

// Listener consumes row-change notifications from PostgreSQL and
// forwards them as realtime.Notification values.
type Listener struct {
	pool *pgxpool.Pool
	log  *slog.Logger
	out  chan realtime.Notification
}

// NewListener creates a listener forwarding onto a channel of the given
// buffer size.
func NewListener(pool *pgxpool.Pool, log *slog.Logger, buffer int) *Listener {
	return &Listener{
		pool: pool,
		log:  log.With("component", "changefeed"),
		out:  make(chan realtime.Notification, buffer),
	}
}

// Notifications is the ordered stream of decoded row changes. It is
// closed when Run returns.
func (l *Listener) Notifications() <-chan realtime.Notification {
	return l.out
}

// Run listens until ctx is done. It holds one pool connection for the
// whole time; malformed payloads are logged and skipped rather than
// stopping the stream.
func (l *Listener) Run(ctx context.Context) error {
	defer close(l.out)

	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("changefeed: acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		return fmt.Errorf("changefeed: listen on %s: %w", channelName, err)
	}

	l.log.InfoContext(ctx, "changefeed started", slog.String("channel", channelName))

	for {
		msg, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("changefeed: wait for notification: %w", err)
		}

		n, err := decodePayload(msg.Payload)
		if err != nil {
			l.log.WarnContext(ctx, "dropping malformed changefeed payload",
				slog.String("error", err.Error()))
			continue
		}

		select {
		case l.out <- n:
		case <-ctx.Done():
			return nil
		}
	}
}

// payload mirrors the JSON the cases trigger builds with row_to_json.
type payload struct {
	Op  string   `json:"op"`
	New *caseDoc `json:"new"`
	Old *caseDoc `json:"old"`
}

type caseDoc struct {
	ID         uuid.UUID  `json:"id"`
	Number     string     `json:"number"`
	Department string     `json:"department"`
	Due        string     `json:"due"`
	Priority   bool       `json:"priority"`
	Completed  bool       `json:"completed"`
	Archived   bool       `json:"archived"`
	ArchivedAt *time.Time `json:"archived_at"`
	Tags       []string   `json:"tags"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func decodePayload(raw string) (realtime.Notification, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return realtime.Notification{}, fmt.Errorf("decode payload: %w", err)
	}

	var kind realtime.Kind
	switch p.Op {
	case "INSERT":
		kind = realtime.KindInsert
	case "UPDATE":
		kind = realtime.KindUpdate
	case "DELETE":
		kind = realtime.KindDelete
	default:
		return realtime.Notification{}, fmt.Errorf("unknown op %q", p.Op)
	}

	n := realtime.Notification{Kind: kind}
	if p.New != nil {
		c, err := p.New.toDomain()
		if err != nil {
			return realtime.Notification{}, err
		}
		n.New = &c
	}
	if p.Old != nil {
		c, err := p.Old.toDomain()
		if err != nil {
			return realtime.Notification{}, err
		}
		n.Old = &c
	}
	return n, nil
}

func (d *caseDoc) toDomain() (domain.Case, error) {
	// row_to_json renders a date column as yyyy-mm-dd without a zone.
	due, err := time.ParseInLocation(time.DateOnly, d.Due, time.UTC)
	if err != nil {
		return domain.Case{}, fmt.Errorf("parse due %q: %w", d.Due, err)
	}

	return domain.Case{
		ID:         d.ID,
		Number:     d.Number,
		Department: domain.Department(d.Department),
		Due:        due,
		Priority:   d.Priority,
		Completed:  d.Completed,
		Archived:   d.Archived,
		ArchivedAt: d.ArchivedAt,
		Modifiers:  tags.Decode(d.Tags),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}
