package errors

import (
	"fmt"
)

// --- logzen Core Error Types ---

// ConfigError represents an error encountered while loading or parsing the
// logzen configuration file or while applying facility options.
type ConfigError struct {
	Message string
	Cause   error
}

func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{Message: message, Cause: cause}
}
func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}
func (e *ConfigError) Unwrap() error { return e.Cause }

// ValidationError indicates that some input (e.g., config structure,
// schema version, level names) failed validation checks.
type ValidationError struct {
	Message string
	Cause   error
}

func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{Message: message, Cause: cause}
}
func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
func (e *ValidationError) Unwrap() error { return e.Cause }

// InvalidCategoryError is returned when a category name coming from a dynamic
// source (config file, CLI flag) is not part of the closed category set.
type InvalidCategoryError struct {
	Name string
}

func NewInvalidCategoryError(name string) *InvalidCategoryError {
	return &InvalidCategoryError{Name: name}
}
func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid logging category: %q", e.Name)
}

// LoggingDescription keeps the rejected name quoted so odd input stays on one line.
func (e *InvalidCategoryError) LoggingDescription() string {
	return fmt.Sprintf("{ category: %q }", e.Name)
}

// FormatError reports a malformed format string. Offset is the
// byte index of the offending directive within Format.
type FormatError struct {
	Format string
	Offset int
	Reason string
}

func NewFormatError(format string, offset int, reason string) *FormatError {
	return &FormatError{Format: format, Offset: offset, Reason: reason}
}
func (e *FormatError) Error() string {
	return fmt.Sprintf("format error at offset %d: %s", e.Offset, e.Reason)
}
