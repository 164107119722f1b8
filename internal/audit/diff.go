// Package audit derives human-readable history lines from case state
// transitions. Diff is pure: it reads the two snapshots it is given and
// returns text, nothing else.
package audit

import (
	"fmt"

	"github.com/fabworks/caseboard/internal/domain"
)

// dateLayout is the date-only form history entries use for due dates.
const dateLayout = "2006-01-02"

// flagChecks are the plain modifier flags Diff inspects, in the fixed
// order their entries must appear.
var flagChecks = []struct {
	name string
	get  func(domain.Modifiers) bool
}{
	{"rush", func(m domain.Modifiers) bool { return m.Rush }},
	{"hold", func(m domain.Modifiers) bool { return m.Hold }},
	{"bbs", func(m domain.Modifiers) bool { return m.BBS }},
	{"flex", func(m domain.Modifiers) bool { return m.Flex }},
}

// Diff returns one entry per changed field, in a fixed order: stage2,
// the plain flags, priority, case number, department, due date. Fields
// that did not change produce no entry. Stage markers and statistics
// exclusions are deliberately not inspected here; their transitions get
// dedicated messages at the call sites that change them.
func Diff(prev, next *domain.Case) []string {
	var entries []string

	if prev.Modifiers.Stage2 != next.Modifiers.Stage2 {
		if next.Modifiers.Stage2 {
			entries = append(entries, "Moved to Stage 2")
		} else {
			entries = append(entries, "Moved back to Stage 1")
		}
	}

	for _, f := range flagChecks {
		was, is := f.get(prev.Modifiers), f.get(next.Modifiers)
		if was == is {
			continue
		}
		if is {
			entries = append(entries, fmt.Sprintf("%s added", f.name))
		} else {
			entries = append(entries, fmt.Sprintf("%s removed", f.name))
		}
	}

	if prev.Priority != next.Priority {
		if next.Priority {
			entries = append(entries, "Priority added")
		} else {
			entries = append(entries, "Priority removed")
		}
	}

	if prev.Number != next.Number {
		entries = append(entries, fmt.Sprintf("Case # changed from %s to %s", prev.Number, next.Number))
	}

	if prev.Department != next.Department {
		entries = append(entries, fmt.Sprintf("Department changed from %s to %s", prev.Department, next.Department))
	}

	if !domain.SameDay(prev.Due, next.Due) {
		entries = append(entries, fmt.Sprintf("Due changed from %s to %s",
			prev.Due.UTC().Format(dateLayout), next.Due.UTC().Format(dateLayout)))
	}

	return entries
}

// StageMessage is the dedicated history line for a stage transition.
// The repair flavor is used when a case is bounced back to Finishing
// for rework rather than progressing forward.
func StageMessage(stage domain.Stage, repair bool) string {
	if repair && stage == domain.StageFinishing {
		return "Case sent to Finishing for repair"
	}
	return fmt.Sprintf("Case moved to %s", stage.Title())
}

// ExclusionMessage is the dedicated history line for toggling a
// statistics exclusion on or off.
func ExclusionMessage(scope domain.ExclusionScope, excluded bool) string {
	if excluded {
		return fmt.Sprintf("Excluded from %s statistics", scope)
	}
	return fmt.Sprintf("Included in %s statistics", scope)
}
