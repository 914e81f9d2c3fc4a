// Package form validates what a front end collects before it reaches the
// task list. The list itself accepts anything.
package form

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

// DueDateLayout is DD/MM/YYYY in time.Parse terms.
const DueDateLayout = "02/01/2006"

var (
	ErrEmptyDescription = errors.New("task description cannot be empty")
	ErrDueDateFormat    = errors.New("invalid due date format, use DD/MM/YYYY")
	ErrDueDateInvalid   = errors.New("invalid due date, not a real calendar day")
)

var dueDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// Input is one submission of the task form.
type Input struct {
	Description string         `json:"description" yaml:"description"`
	Priority    model.Priority `json:"priority" yaml:"priority"`
	Reminder    bool           `json:"reminder" yaml:"reminder"`
	DueDate     string         `json:"due,omitempty" yaml:"due"`
}

// Validate checks the description first, then the due date.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return &FieldError{Field: "description", Err: ErrEmptyDescription}
	}
	if in.DueDate == "" {
		return nil
	}
	if err := ValidateDueDate(in.DueDate); err != nil {
		return &FieldError{Field: "due", Err: err}
	}
	return nil
}

// ValidateDueDate accepts exactly two digits, '/', two digits, '/', four
// digits, naming a real day. "31/02/2024" has the right shape and is still
// rejected.
func ValidateDueDate(s string) error {
	if !dueDatePattern.MatchString(s) {
		return ErrDueDateFormat
	}
	t, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return ErrDueDateInvalid
	}
	// the Gregorian calendar has no year zero
	if t.Year() < 1 {
		return ErrDueDateInvalid
	}
	return nil
}

// ParseDueDate validates s and returns the date it names.
func ParseDueDate(s string) (time.Time, error) {
	if err := ValidateDueDate(s); err != nil {
		return time.Time{}, err
	}
	return time.Parse(DueDateLayout, s)
}
