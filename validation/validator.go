package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/redisfacade/errors"
)

// Validator collects argument errors for a single call.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an INVALID_INPUT AppError listing every field error, or
// nil when there are none.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": v.errors}
	if len(v.errors) == 1 {
		appErr.Details["field"] = v.errors[0].Field
	}
	return appErr
}

// Err is Validate typed as error, so a clean validator yields a nil interface.
func (v *Validator) Err() error {
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// Positive checks that a number is strictly greater than zero.
func (v *Validator) Positive(field string, value float64) *Validator {
	if !(value > 0) {
		v.AddError(field, fmt.Sprintf("must be greater than 0 (got %v)", value))
	}
	return v
}

// PositiveInt checks that an integer is strictly greater than zero.
func (v *Validator) PositiveInt(field string, value int) *Validator {
	if value <= 0 {
		v.AddError(field, fmt.Sprintf("must be greater than 0 (got %d)", value))
	}
	return v
}

// Between checks that a number lies in the closed interval [minVal, maxVal].
// NaN is always rejected.
func (v *Validator) Between(field string, value, minVal, maxVal float64) *Validator {
	if !(value >= minVal && value <= maxVal) {
		v.AddError(field, fmt.Sprintf("must be between %v and %v (got %v)", minVal, maxVal, value))
	}
	return v
}

// MinDuration checks that d is at least minVal.
func (v *Validator) MinDuration(field string, d, minVal time.Duration) *Validator {
	if d < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %s (got %s)", minVal, d))
	}
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// Required validates a single required field and returns an error if empty.
func Required(field, value string) error {
	return New().Required(field, value).Err()
}

// ValidateUUID validates and parses a UUID string.
func ValidateUUID(field, value string) (uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil, errors.InvalidInput(field, fmt.Sprintf("%s is required", field))
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.InvalidInput(field, fmt.Sprintf("%s must be a valid UUID", field)).WithCause(err)
	}

	return id, nil
}
