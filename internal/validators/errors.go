package validators

import (
	"errors"
	"strings"

	"github.com/MKhiriev/escrow-api/models"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrValidation is matched by every [*ValidationError].
	ErrValidation = errors.New("invalid request")
)

// ValidationError lists the field-level violations of a request.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FieldErrors accumulates violations while a request is inspected.
type FieldErrors []models.FieldError

// Add records a violation of field.
func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, models.FieldError{Field: field, Message: message})
}

// Err returns nil when nothing was recorded, a *ValidationError otherwise.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}

// NewValidationError is a shortcut for a single violation.
func NewValidationError(field, message string) error {
	var fe FieldErrors
	fe.Add(field, message)
	return fe.Err()
}
