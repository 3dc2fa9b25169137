package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/smcemu/errors"
)

// Validator collects validation errors.
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
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}

	return appErr
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// NotNil checks that a reference argument was supplied.
func (v *Validator) NotNil(field string, present bool) *Validator {
	if !present {
		v.AddError(field, "must not be nil")
	}
	return v
}

// NotEmpty checks that a collection argument has at least one element.
func (v *Validator) NotEmpty(field string, length int) *Validator {
	if length == 0 {
		v.AddError(field, "must not be empty")
	}
	return v
}

// InRange checks that an index lies in [0, count).
func (v *Validator) InRange(field string, id, count int) *Validator {
	if id < 0 || id >= count {
		v.AddError(field, fmt.Sprintf("%d is out of range [0, %d)", id, count))
	}
	return v
}

// Min checks if a number meets minimum value.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %d", minVal))
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

// Index returns an INVALID_INDEX error when id is outside [0, count).
func Index(collection string, id, count int) error {
	if id < 0 || id >= count {
		return errors.InvalidIndex(collection, id, count)
	}
	return nil
}

// InsertIndex returns an INVALID_INDEX error when id is outside [0, count],
// the legal positions for inserting into a list of count elements.
func InsertIndex(collection string, id, count int) error {
	if id < 0 || id > count {
		return errors.InvalidIndex(collection, id, count+1)
	}
	return nil
}
