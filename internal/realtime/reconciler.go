// Package realtime merges the ordered stream of per-row change
// notifications into the local cache mirror. Applying any notification
// twice leaves the cache unchanged; conflict resolution is
// last-applied-wins at whole-row granularity.
package realtime

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/fabworks/caseboard/internal/cache"
	"github.com/fabworks/caseboard/internal/domain"
	"github.com/fabworks/caseboard/internal/domain/tags"
)

// sentinelNumber marks a row as a pending-update control message rather
// than a real case. Compared trimmed and case-folded.
const sentinelNumber = "update"

// UpdateNotifier is the external collaborator told about pending-update
// sentinel rows. Urgency force requests an unconditional reload;
// normal/high are advisory notices (high is critical). The note is
// free text carried in the sentinel's tags.
type UpdateNotifier interface {
	PendingUpdate(ctx context.Context, urgency domain.Urgency, note string)
}

// SentinelPurger deletes observed sentinel rows from the server. Every
// client that sees a sentinel must purge it.
type SentinelPurger interface {
	PurgeSentinels(ctx context.Context) error
}

// Reconciler applies change notifications to the cache store.
type Reconciler struct {
	store    *cache.Store
	notifier UpdateNotifier
	purger   SentinelPurger
	log      *slog.Logger
}

// New creates a reconciler writing into store.
func New(store *cache.Store, notifier UpdateNotifier, purger SentinelPurger, log *slog.Logger) *Reconciler {
	return &Reconciler{
		store:    store,
		notifier: notifier,
		purger:   purger,
		log:      log.With("component", "reconciler"),
	}
}

// Run consumes notifications until ctx is canceled or the channel is
// closed. It is the only long-lived consumer of the feed; the hosting
// session owns its lifetime.
func (r *Reconciler) Run(ctx context.Context, feed <-chan Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-feed:
			if !ok {
				return
			}
			r.Apply(ctx, n)
		}
	}
}

// Apply merges one notification. Rules, first match wins:
//
//  1. archived row → remove from the cache (archival is observed as a
//     removal, never as an update)
//  2. sentinel case number on insert/update → signal the pending-update
//     collaborator, purge sentinel rows, leave the cache alone
//  3. delete → remove by id
//  4. otherwise → upsert by id, preserving display order
//
// A malformed notification (missing row or zero id) is logged and
// dropped; one bad row must not destabilize the mirror.
func (r *Reconciler) Apply(ctx context.Context, n Notification) {
	row := n.New
	if n.Kind == KindDelete {
		row = n.Old
	}
	if row == nil || row.ID == uuid.Nil {
		r.log.WarnContext(ctx, "dropping malformed notification", slog.String("kind", n.Kind.String()))
		return
	}

	if row.Archived {
		r.store.Remove(row.ID)
		return
	}

	if n.Kind != KindDelete && isSentinel(row.Number) {
		urgency, note := sentinelPayload(row.Modifiers)
		r.notifier.PendingUpdate(ctx, urgency, note)
		if err := r.purger.PurgeSentinels(ctx); err != nil {
			r.log.WarnContext(ctx, "purge sentinel rows", slog.String("error", err.Error()))
		}
		return
	}

	if n.Kind == KindDelete {
		r.store.Remove(row.ID)
		return
	}

	r.store.Upsert(*row)
}

func isSentinel(number string) bool {
	return strings.EqualFold(strings.TrimSpace(number), sentinelNumber)
}

// sentinelPayload reads the control channel out of a sentinel row's
// modifier tags: one urgency tag selects the level (default normal), the
// first remaining tag is the free-text note. The row arrived through the
// tag codec, so a note that collides with the modifier vocabulary (say
// "hold") was decoded into a structured field; re-encoding restores the
// full tag list before picking the note.
func sentinelPayload(m domain.Modifiers) (domain.Urgency, string) {
	urgency := domain.UrgencyNormal
	note := ""
	for _, t := range tags.Encode(m) {
		if u := domain.Urgency(t); u.IsValid() {
			urgency = u
			continue
		}
		if note == "" {
			note = t
		}
	}
	return urgency, note
}
