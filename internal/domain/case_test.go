package domain

import (
	"testing"
	"time"
)

func TestParseDepartment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Department
		ok    bool
	}{
		{"canonical digital", "digital", DepartmentDigital, true},
		{"alias folds to digital", "cadcam", DepartmentDigital, true},
		{"alias is case-insensitive", "CadCam", DepartmentDigital, true},
		{"metal", "metal", DepartmentMetal, true},
		{"whitespace trimmed", "  ceramics ", DepartmentCeramics, true},
		{"unknown rejected", "plastics", "", false},
		{"empty rejected", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseDepartment(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("department: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDepartmentDisplay(t *testing.T) {
	t.Parallel()

	if got := DepartmentDigital.Display(); got != "cadcam" {
		t.Errorf("digital display: got %q, want %q", got, "cadcam")
	}
	if got := DepartmentMetal.Display(); got != "metal" {
		t.Errorf("metal display: got %q, want %q", got, "metal")
	}
}

func TestStageTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stage Stage
		want  string
	}{
		{StageDesign, "Design"},
		{StageProduction, "Production"},
		{StageFinishing, "Finishing"},
		{StageQC, "QC"},
	}
	for _, tt := range tests {
		if got := tt.stage.Title(); got != tt.want {
			t.Errorf("Title(%q): got %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func TestEffectiveStage(t *testing.T) {
	t.Parallel()

	var m Modifiers
	if got := m.EffectiveStage(); got != StageDesign {
		t.Errorf("default stage: got %q, want %q", got, StageDesign)
	}

	qc := StageQC
	m.Stage = &qc
	if got := m.EffectiveStage(); got != StageQC {
		t.Errorf("explicit stage: got %q, want %q", got, StageQC)
	}
}

func TestDueDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+3", 3*3600)
	in := time.Date(2024, 1, 2, 1, 30, 0, 0, loc) // 2024-01-01T22:30Z

	got := DueDate(in)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DueDate: got %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)
	c := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("same date with different times should match")
	}
	if SameDay(a, c) {
		t.Error("different dates should not match")
	}
}

func TestDuplicateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		number string
		want   string
	}{
		{"1234", "1234"},
		{"1234 redo", "1234"},
		{"  1234\tremake", "1234"},
		{"AB-77 Crown", "ab-77"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := DuplicateKey(tt.number); got != tt.want {
			t.Errorf("DuplicateKey(%q): got %q, want %q", tt.number, got, tt.want)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	t.Parallel()

	if !StageQC.IsValid() || Stage("polish").IsValid() {
		t.Error("stage validity")
	}
	if !ExclusionAll.IsValid() || !ExclusionScope("qc").IsValid() || ExclusionScope("bogus").IsValid() {
		t.Error("exclusion scope validity")
	}
	if !UrgencyForce.IsValid() || Urgency("urgent").IsValid() {
		t.Error("urgency validity")
	}
}
