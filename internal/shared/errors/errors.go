package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeUnknownSystemClass indicates a requested archetype is not in the registry
	ErrorTypeUnknownSystemClass ErrorType = "unknown_system_class"
	// ErrorTypeNumericDomain indicates a physics formula received an out-of-domain input
	ErrorTypeNumericDomain ErrorType = "numeric_domain"
	// ErrorTypeEvolutionInput indicates evolution was called with a malformed config
	ErrorTypeEvolutionInput ErrorType = "evolution_input"
	// ErrorTypeInvalidConfig indicates a system config violates its invariants
	ErrorTypeInvalidConfig ErrorType = "invalid_config"
	// ErrorTypeNotFound indicates a stored resource was not found
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation indicates invalid input data
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"
)

// AppError is the base error type for application errors
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// UnknownSystemClass creates an error for an archetype missing from the registry
func UnknownSystemClass(class string) error {
	return &AppError{
		Type:    ErrorTypeUnknownSystemClass,
		Message: fmt.Sprintf("unknown system class %q", class),
	}
}

// NumericDomainf creates a numeric domain error with formatting
func NumericDomainf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeNumericDomain,
		Message: fmt.Sprintf(format, args...),
	}
}

// EvolutionInputf creates an evolution input error with formatting
func EvolutionInputf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeEvolutionInput,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapEvolutionInput wraps an error as an evolution input error
func WrapEvolutionInput(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeEvolutionInput,
		Message: message,
		Err:     err,
	}
}

// InvalidConfigf creates an invalid config error with formatting
func InvalidConfigf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeInvalidConfig,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFoundf creates a not found error with formatting
func NotFoundf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validationf creates a validation error with formatting
func Validationf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapValidation wraps an error as a validation error
func WrapValidation(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Err:     err,
	}
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// GetType returns the error type of an error
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// Is reports whether err carries the given error type anywhere in its chain
func Is(err error, t ErrorType) bool {
	return err != nil && GetType(err) == t
}
