package realtime

import (
	"github.com/fabworks/caseboard/internal/domain"
)

// Kind is the event kind of one change notification.
type Kind string

const (
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

func (k Kind) String() string { return string(k) }

// Notification is one per-row change event from the transport. New is
// present for insert/update, Old for delete. The transport guarantees
// per-row ordering; the reconciler does not reorder.
type Notification struct {
	Kind Kind
	New  *domain.Case
	Old  *domain.Case
}
