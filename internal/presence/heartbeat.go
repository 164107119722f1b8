// Package presence reports this client's liveness on a fixed cadence.
// The heartbeat is an owned resource: constructed, started once, and
// stopped deterministically on session teardown.
package presence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fabworks/caseboard/internal/domain"
)

// Store upserts presence records keyed by actor name.
type Store interface {
	Upsert(ctx context.Context, p domain.Presence) error
}

// Heartbeat periodically upserts one actor's presence record. Reporting
// is best-effort: a failed upsert is logged and the cadence continues.
type Heartbeat struct {
	store    Store
	actor    string
	version  string
	interval time.Duration
	now      func() time.Time
	log      *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
	started  bool
}

// New creates a heartbeat for the given actor and client version.
func New(store Store, actor, version string, interval time.Duration, log *slog.Logger) *Heartbeat {
	return &Heartbeat{
		store:    store,
		actor:    actor,
		version:  version,
		interval: interval,
		now:      time.Now,
		log:      log.With("component", "heartbeat"),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins reporting: one immediate beat, then one per interval,
// until Stop is called or ctx is canceled. Call Start at most once.
func (h *Heartbeat) Start(ctx context.Context) {
	h.started = true
	go func() {
		defer close(h.done)

		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		h.beat(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-h.stop:
				return
			case <-ticker.C:
				h.beat(ctx)
			}
		}
	}()
}

// Stop halts reporting and waits for the loop to exit. Safe to call
// more than once and before Start.
func (h *Heartbeat) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	if h.started {
		<-h.done
	}
}

func (h *Heartbeat) beat(ctx context.Context) {
	err := h.store.Upsert(ctx, domain.Presence{
		Actor:    h.actor,
		Version:  h.version,
		LastSeen: h.now().UTC(),
	})
	if err != nil {
		h.log.WarnContext(ctx, "presence upsert failed", slog.String("error", err.Error()))
	}
}
