// Package tags translates between a case's persisted modifier tag list and
// the structured domain.Modifiers record. The tag list is a flat, unordered
// collection of strings; flags are independent members, while stage and
// exclusion markers are each exclusive within their prefix namespace.
//
// All functions treat the input slice as immutable and return a new slice.
package tags

import (
	"slices"
	"strings"

	"github.com/fabworks/caseboard/internal/domain"
)

// Namespace prefixes. ReasonPrefix must be checked before ExcludePrefix:
// every reason tag also begins with the exclude prefix.
const (
	StagePrefix   = "stage-"
	ExcludePrefix = "stats-exclude"
	ReasonPrefix  = "stats-exclude-reason:"
)

// Flag names whose presence in the tag list means true.
const (
	FlagRush   = "rush"
	FlagHold   = "hold"
	FlagBBS    = "bbs"
	FlagFlex   = "flex"
	FlagStage2 = "stage2"
)

// HasFlag reports whether name is a member of tags.
func HasFlag(tags []string, name string) bool {
	return slices.Contains(tags, name)
}

// WithFlag returns tags with the plain flag added or removed. The input is
// returned as-is when it is already in the desired state.
func WithFlag(tags []string, name string, present bool) []string {
	if HasFlag(tags, name) == present {
		return tags
	}
	if present {
		out := make([]string, len(tags), len(tags)+1)
		copy(out, tags)
		return append(out, name)
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != name {
			out = append(out, t)
		}
	}
	return out
}

// SetNamespaced removes every tag beginning with prefix, then, if value is
// non-empty, appends prefix+value. An empty value clears the namespace.
func SetNamespaced(tags []string, prefix, value string) []string {
	out := make([]string, 0, len(tags)+1)
	for _, t := range tags {
		if !strings.HasPrefix(t, prefix) {
			out = append(out, t)
		}
	}
	if value != "" {
		out = append(out, prefix+value)
	}
	return out
}

// GetNamespaced returns the suffix of the unique tag beginning with prefix.
// The second return is false when no such tag exists.
func GetNamespaced(tags []string, prefix string) (string, bool) {
	for _, t := range tags {
		if strings.HasPrefix(t, prefix) {
			return strings.TrimPrefix(t, prefix), true
		}
	}
	return "", false
}

// Decode parses a persisted tag list into a structured Modifiers record.
// Tags it does not recognize are preserved in Extra (deduplicated) so that
// re-encoding never strips another client's tags.
func Decode(list []string) domain.Modifiers {
	var m domain.Modifiers
	seen := make(map[string]struct{}, len(list))

	for _, t := range list {
		switch {
		case t == FlagRush:
			m.Rush = true
		case t == FlagHold:
			m.Hold = true
		case t == FlagBBS:
			m.BBS = true
		case t == FlagFlex:
			m.Flex = true
		case t == FlagStage2:
			m.Stage2 = true
		case strings.HasPrefix(t, StagePrefix):
			// Kept even when the suffix is not a known stage: the board
			// buckets unknown stages separately rather than dropping them.
			s := domain.Stage(strings.TrimPrefix(t, StagePrefix))
			m.Stage = &s
		case strings.HasPrefix(t, ReasonPrefix):
			reason := strings.TrimPrefix(t, ReasonPrefix)
			if m.Exclusion == nil {
				m.Exclusion = &domain.Exclusion{Scope: domain.ExclusionAll}
			}
			m.Exclusion.Reason = reason
		case strings.HasPrefix(t, ExcludePrefix):
			scope := domain.ExclusionAll
			if suffix := strings.TrimPrefix(t, ExcludePrefix); strings.HasPrefix(suffix, ":") {
				if v := strings.TrimPrefix(suffix, ":"); v != "" && v != "all" {
					scope = domain.ExclusionScope(v)
				}
			}
			if m.Exclusion == nil {
				m.Exclusion = &domain.Exclusion{Scope: scope}
			} else {
				m.Exclusion.Scope = scope
			}
		default:
			if _, dup := seen[t]; !dup {
				seen[t] = struct{}{}
				m.Extra = append(m.Extra, t)
			}
		}
	}

	return m
}

// Encode renders a Modifiers record back into its persisted tag list.
// Output order is deterministic: flags, stage marker, exclusion marker,
// exclusion reason, then unrecognized extras.
func Encode(m domain.Modifiers) []string {
	var out []string

	for _, f := range []struct {
		name string
		on   bool
	}{
		{FlagRush, m.Rush},
		{FlagHold, m.Hold},
		{FlagBBS, m.BBS},
		{FlagFlex, m.Flex},
		{FlagStage2, m.Stage2},
	} {
		if f.on {
			out = append(out, f.name)
		}
	}

	if m.Stage != nil {
		out = append(out, StagePrefix+string(*m.Stage))
	}

	if m.Exclusion != nil {
		out = append(out, ExcludePrefix+":"+string(m.Exclusion.Scope))
		if m.Exclusion.Reason != "" {
			out = append(out, ReasonPrefix+m.Exclusion.Reason)
		}
	}

	for _, t := range m.Extra {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}

	return out
}
