package calculation

import (
	"fmt"
)

// ValidationError reports a calculation input that violates the engine's
// contract. The whole calculation is rejected; the engine never clamps or
// repairs bad fields.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input: %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the named input field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConfigurationError reports a law regime that cannot be resolved. This is a
// deployment defect, not a bad user request: retrying the same calculation
// cannot succeed until the regime table changes.
type ConfigurationError struct {
	RegimeID string
	Message  string
	Err      error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("regime configuration: %q: %s: %v", e.RegimeID, e.Message, e.Err)
	}
	return fmt.Sprintf("regime configuration: %q: %s", e.RegimeID, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a new ConfigurationError for the given regime id.
func NewConfigurationError(regimeID, message string) error {
	return &ConfigurationError{RegimeID: regimeID, Message: message}
}
