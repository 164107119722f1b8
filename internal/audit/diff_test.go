package audit

import (
	"reflect"
	"testing"
	"time"

	"github.com/fabworks/caseboard/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func baseCase() domain.Case {
	return domain.Case{
		Number:     "1001",
		Department: domain.DepartmentDigital,
		Due:        day("2024-01-01"),
	}
}

func TestDiff_NoChange(t *testing.T) {
	t.Parallel()

	c := baseCase()
	if got := Diff(&c, &c); len(got) != 0 {
		t.Errorf("expected no entries, got %v", got)
	}
}

func TestDiff_Order(t *testing.T) {
	t.Parallel()

	prev := baseCase()
	next := baseCase()
	next.Priority = true
	next.Due = day("2024-01-02")

	want := []string{"Priority added", "Due changed from 2024-01-01 to 2024-01-02"}
	if got := Diff(&prev, &next); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiff_AllFields(t *testing.T) {
	t.Parallel()

	prev := baseCase()
	prev.Modifiers.Hold = true
	prev.Priority = true

	next := baseCase()
	next.Modifiers.Stage2 = true
	next.Modifiers.Rush = true
	next.Number = "1002 redo"
	next.Department = domain.DepartmentMetal
	next.Due = day("2024-02-10")

	want := []string{
		"Moved to Stage 2",
		"rush added",
		"hold removed",
		"Priority removed",
		"Case # changed from 1001 to 1002 redo",
		"Department changed from digital to metal",
		"Due changed from 2024-01-01 to 2024-02-10",
	}
	if got := Diff(&prev, &next); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiff_Stage2Back(t *testing.T) {
	t.Parallel()

	prev := baseCase()
	prev.Modifiers.Stage2 = true
	next := baseCase()

	want := []string{"Moved back to Stage 1"}
	if got := Diff(&prev, &next); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiff_DueIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	prev := baseCase()
	next := baseCase()
	next.Due = prev.Due.Add(5 * time.Hour)

	if got := Diff(&prev, &next); len(got) != 0 {
		t.Errorf("time-of-day drift must not log, got %v", got)
	}
}

func TestDiff_IgnoresStageAndExclusion(t *testing.T) {
	t.Parallel()

	qc := domain.StageQC
	prev := baseCase()
	next := baseCase()
	next.Modifiers.Stage = &qc
	next.Modifiers.Exclusion = &domain.Exclusion{Scope: domain.ExclusionAll}

	if got := Diff(&prev, &next); len(got) != 0 {
		t.Errorf("stage/exclusion transitions are not Diff's job, got %v", got)
	}
}

func TestStageMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stage  domain.Stage
		repair bool
		want   string
	}{
		{domain.StageProduction, false, "Case moved to Production"},
		{domain.StageQC, false, "Case moved to QC"},
		{domain.StageFinishing, false, "Case moved to Finishing"},
		{domain.StageFinishing, true, "Case sent to Finishing for repair"},
		{domain.StageDesign, true, "Case moved to Design"}, // repair only applies to finishing
	}
	for _, tt := range tests {
		if got := StageMessage(tt.stage, tt.repair); got != tt.want {
			t.Errorf("StageMessage(%q, %v): got %q, want %q", tt.stage, tt.repair, got, tt.want)
		}
	}
}

func TestExclusionMessage(t *testing.T) {
	t.Parallel()

	if got := ExclusionMessage(domain.ExclusionAll, true); got != "Excluded from all statistics" {
		t.Errorf("got %q", got)
	}
	if got := ExclusionMessage(domain.ExclusionScope("qc"), false); got != "Included in qc statistics" {
		t.Errorf("got %q", got)
	}
}
