package cases

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fabworks/caseboard/internal/domain"
)

const maxNumberLen = 120

// CreateCaseInput holds the parameters for creating a case.
type CreateCaseInput struct {
	Number     string
	Department string
	Due        time.Time
	Priority   bool
}

// Validate checks all fields and collects all errors.
func (i CreateCaseInput) Validate() error {
	var errs []domain.FieldError

	number := strings.TrimSpace(i.Number)
	if number == "" {
		errs = append(errs, domain.FieldError{Field: "number", Message: "required"})
	}
	if len(number) > maxNumberLen {
		errs = append(errs, domain.FieldError{Field: "number", Message: "max 120 characters"})
	}
	if _, ok := domain.ParseDepartment(i.Department); !ok {
		errs = append(errs, domain.FieldError{Field: "department", Message: "unknown department"})
	}
	if i.Due.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateCaseInput holds the editable fields of a case. Nil means leave
// the field unchanged.
type UpdateCaseInput struct {
	ID         uuid.UUID
	Number     *string
	Department *string
	Due        *time.Time
}

// Validate checks all fields and collects all errors.
func (i UpdateCaseInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Number != nil {
		number := strings.TrimSpace(*i.Number)
		if number == "" {
			errs = append(errs, domain.FieldError{Field: "number", Message: "must not be empty"})
		}
		if len(number) > maxNumberLen {
			errs = append(errs, domain.FieldError{Field: "number", Message: "max 120 characters"})
		}
	}
	if i.Department != nil {
		if _, ok := domain.ParseDepartment(*i.Department); !ok {
			errs = append(errs, domain.FieldError{Field: "department", Message: "unknown department"})
		}
	}
	if i.Due != nil && i.Due.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due", Message: "must not be zero"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CaseRefInput identifies one case for the single-target commands
// (toggles, archive, get).
type CaseRefInput struct {
	ID uuid.UUID
}

// Validate checks all fields.
func (i CaseRefInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return nil
}

// SetStageInput moves a digital case to a workflow stage. Repair selects
// the "sent to Finishing for repair" history flavor.
type SetStageInput struct {
	ID     uuid.UUID
	Stage  domain.Stage
	Repair bool
}

// Validate checks all fields and collects all errors.
func (i SetStageInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if !i.Stage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "stage", Message: "unknown stage"})
	}
	if i.Repair && i.Stage != domain.StageFinishing {
		errs = append(errs, domain.FieldError{Field: "repair", Message: "repair only applies to finishing"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetExclusionInput toggles a statistics exclusion. Excluded true sets
// the marker for Scope (with an optional Reason); false clears it.
type SetExclusionInput struct {
	ID       uuid.UUID
	Excluded bool
	Scope    domain.ExclusionScope
	Reason   string
}

// Validate checks all fields and collects all errors.
func (i SetExclusionInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Excluded && !i.Scope.IsValid() {
		errs = append(errs, domain.FieldError{Field: "scope", Message: "unknown scope"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddNoteInput appends a free-text history entry to a case.
type AddNoteInput struct {
	ID   uuid.UUID
	Text string
}

// Validate checks all fields and collects all errors.
func (i AddNoteInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListCasesInput selects one board column by due date.
type ListCasesInput struct {
	Due time.Time
}

// Validate checks all fields.
func (i ListCasesInput) Validate() error {
	if i.Due.IsZero() {
		return domain.NewValidationError("due", "required")
	}
	return nil
}

// FindDuplicatesInput asks for the advisory duplicate candidates of a
// case number. ExcludeID removes the case itself from its own result.
type FindDuplicatesInput struct {
	Number    string
	ExcludeID uuid.UUID
}

// Validate checks all fields.
func (i FindDuplicatesInput) Validate() error {
	if strings.TrimSpace(i.Number) == "" {
		return domain.NewValidationError("number", "required")
	}
	return nil
}
