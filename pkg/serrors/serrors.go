package serrors

import "fmt"

// Base is an error carrying a stable machine-readable code alongside the
// human-readable message. Field is set for validation errors so callers can
// point at the offending input.
type Base struct {
	Code    string
	Message string
	Field   string
}

func (e *Base) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, field string) *Base {
	return &Base{Code: code, Message: message, Field: field}
}

// NewValidationError marks a single input field as invalid. Validation errors
// are never retried; they indicate a caller or input bug.
func NewValidationError(field, message string) *Base {
	return &Base{Code: "VALIDATION_ERROR", Message: message, Field: field}
}

// ValidationErrors maps field names to their error messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(v))
}
