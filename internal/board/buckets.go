// Package board groups the cases of one board column into display buckets
// and computes the leading priority band. It only reads case snapshots.
package board

import (
	"github.com/google/uuid"

	"github.com/fabworks/caseboard/internal/domain"
)

// Bucket names one display group within a column. Every case lands in
// exactly one bucket; empty buckets suppress their divider in the UI.
type Bucket string

const (
	BucketDesign      Bucket = "design"
	BucketProduction  Bucket = "production"
	BucketFinishing   Bucket = "finishing"
	BucketQC          Bucket = "qc"
	BucketDevelopment Bucket = "development"
	BucketOther       Bucket = "other"
)

// Order is the top-to-bottom divider order the board renders buckets in.
var Order = []Bucket{
	BucketDesign,
	BucketProduction,
	BucketFinishing,
	BucketQC,
	BucketDevelopment,
	BucketOther,
}

// BucketOf resolves the single bucket a case belongs to.
//
// Digital cases still in flight follow their stage marker; a marker that
// is not a known stage falls to other. Metal cases in flight sit in
// development until the stage2 flag moves them to finishing. Everything
// else, including completed cases, is other.
func BucketOf(c domain.Case) Bucket {
	if c.Completed {
		return BucketOther
	}

	switch c.Department {
	case domain.DepartmentDigital:
		switch c.Modifiers.EffectiveStage() {
		case domain.StageDesign:
			return BucketDesign
		case domain.StageProduction:
			return BucketProduction
		case domain.StageFinishing:
			return BucketFinishing
		case domain.StageQC:
			return BucketQC
		default:
			return BucketOther
		}
	case domain.DepartmentMetal:
		if c.Modifiers.Stage2 {
			return BucketFinishing
		}
		return BucketDevelopment
	default:
		return BucketOther
	}
}

// Group partitions a column's cases into buckets, preserving the input
// (display) order within each bucket.
func Group(cases []domain.Case) map[Bucket][]domain.Case {
	groups := make(map[Bucket][]domain.Case)
	for _, c := range cases {
		b := BucketOf(c)
		groups[b] = append(groups[b], c)
	}
	return groups
}

// PriorityRun returns the ids of the contiguous leading run of
// prioritized, uncompleted cases in display order. The walk stops at the
// first case that fails either test; later qualifying cases are not part
// of the band.
func PriorityRun(cases []domain.Case) []uuid.UUID {
	var run []uuid.UUID
	for _, c := range cases {
		if !c.Priority || c.Completed {
			break
		}
		run = append(run, c.ID)
	}
	return run
}
