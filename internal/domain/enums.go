package domain

import "strings"

// Department identifies the lab department a case is routed through.
// Values are the canonical stored form; the board displays "cadcam" for
// DepartmentDigital, and ParseDepartment folds that alias back so the
// alias never reaches the cache or the store.
type Department string

const (
	DepartmentDigital  Department = "digital"
	DepartmentMetal    Department = "metal"
	DepartmentCeramics Department = "ceramics"
	DepartmentAcrylic  Department = "acrylic"
)

// departmentAlias maps presentation-layer department names onto stored values.
var departmentAlias = map[string]Department{
	"cadcam": DepartmentDigital,
}

func (d Department) String() string { return string(d) }

func (d Department) IsValid() bool {
	switch d {
	case DepartmentDigital, DepartmentMetal, DepartmentCeramics, DepartmentAcrylic:
		return true
	}
	return false
}

// Display returns the board-facing name for the department.
func (d Department) Display() string {
	if d == DepartmentDigital {
		return "cadcam"
	}
	return string(d)
}

// ParseDepartment resolves a department name, folding case and the
// presentation alias to the canonical stored value.
func ParseDepartment(s string) (Department, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if d, ok := departmentAlias[name]; ok {
		return d, true
	}
	d := Department(name)
	return d, d.IsValid()
}

// Stage is the digital-department workflow stage. The zero value is not
// valid; absence of a stage marker means StageDesign.
type Stage string

const (
	StageDesign     Stage = "design"
	StageProduction Stage = "production"
	StageFinishing  Stage = "finishing"
	StageQC         Stage = "qc"
)

func (s Stage) String() string { return string(s) }

func (s Stage) IsValid() bool {
	switch s {
	case StageDesign, StageProduction, StageFinishing, StageQC:
		return true
	}
	return false
}

// Title returns the stage name capitalized for history entries.
func (s Stage) Title() string {
	switch s {
	case StageQC:
		return "QC"
	case "":
		return ""
	default:
		return strings.ToUpper(string(s[0])) + string(s[1:])
	}
}

// ExclusionScope names what a case is excluded from in statistics:
// a single stage, or everything.
type ExclusionScope string

const ExclusionAll ExclusionScope = "all"

func (e ExclusionScope) String() string { return string(e) }

func (e ExclusionScope) IsValid() bool {
	if e == ExclusionAll {
		return true
	}
	return Stage(e).IsValid()
}

// Urgency is the priority level of a sentinel "pending update" row.
type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyForce  Urgency = "force"
)

func (u Urgency) String() string { return string(u) }

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyNormal, UrgencyHigh, UrgencyForce:
		return true
	}
	return false
}
