package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Case is one fabrication work item on the board.
type Case struct {
	ID         uuid.UUID
	Number     string
	Department Department
	Due        time.Time
	Priority   bool
	Completed  bool
	Archived   bool
	ArchivedAt *time.Time
	Modifiers  Modifiers
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Exclusion marks a case as excluded from statistics for one scope,
// with an optional free-text reason.
type Exclusion struct {
	Scope  ExclusionScope
	Reason string
}

// Modifiers is the structured form of a case's modifier tag set. The
// persisted representation is a flat string list; tags.Decode and
// Modifiers.Encode are the only places that translate between the two.
// Flags are independent; Stage and Exclusion are each exclusive within
// their namespace. Extra holds tags this client does not understand so
// they survive a round trip untouched.
type Modifiers struct {
	Rush   bool
	Hold   bool
	BBS    bool
	Flex   bool
	Stage2 bool

	Stage     *Stage
	Exclusion *Exclusion

	Extra []string
}

// EffectiveStage returns the stage marker, or StageDesign when absent.
func (m Modifiers) EffectiveStage() Stage {
	if m.Stage != nil {
		return *m.Stage
	}
	return StageDesign
}

// DueDate truncates t to a UTC-midnight instant, the form due dates are
// stored in.
func DueDate(t time.Time) time.Time {
	y, mo, d := t.UTC().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two instants fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	return DueDate(a).Equal(DueDate(b))
}

// DuplicateKey derives the token used for advisory duplicate detection:
// the leading whitespace-delimited token of the case number, case-folded.
// "1234 redo" and "1234" share a key; "12345" does not.
func DuplicateKey(number string) string {
	fields := strings.Fields(number)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// HistoryEntry is one immutable line of a case's audit trail.
type HistoryEntry struct {
	ID        uuid.UUID
	CaseID    uuid.UUID
	Action    string
	Actor     string
	CreatedAt time.Time
}

// Presence records one connected client, keyed by actor name.
type Presence struct {
	Actor    string
	Version  string
	LastSeen time.Time
}
