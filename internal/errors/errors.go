// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies application errors
type ErrorType string

const (
	// Generic error types
	ErrorTypeValidation ErrorType = "validation_error"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeError      ErrorType = "processing_error"

	// Domain error types
	ErrorTypeUnknownCategory  ErrorType = "unknown_category"
	ErrorTypeUnknownComponent ErrorType = "unknown_component"
	ErrorTypeInvalidCount     ErrorType = "invalid_count"
	ErrorTypeMissingRuleData  ErrorType = "missing_rule_data"
)

// AppError is the application error structure. Value carries the offending
// input and Valid the accepted alternatives, when they are known.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Code    string // user-facing error code
	Value   string
	Valid   []string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements error chaining
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(errType ErrorType, message string, originalError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     originalError,
		Code:    generateErrorCode(errType),
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeValidation, message, originalError)
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, originalError)
}

// NewProcessingError creates a processing error
func NewProcessingError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeError, message, originalError)
}

// NewUnknownCategoryError reports a category name outside the fixed catalog
func NewUnknownCategoryError(name string, available []string) *AppError {
	err := NewAppError(ErrorTypeUnknownCategory,
		fmt.Sprintf("unknown category: %s. Available: %s", name, strings.Join(available, ", ")), nil)
	err.Value = name
	err.Valid = available
	return err
}

// NewUnknownComponentError reports a refinement target that is not a section key
func NewUnknownComponentError(name string, available []string) *AppError {
	err := NewAppError(ErrorTypeUnknownComponent,
		fmt.Sprintf("unknown component: %s. Available: %s", name, strings.Join(available, ", ")), nil)
	err.Value = name
	err.Valid = available
	return err
}

// NewInvalidCountError reports a variant count outside [1,5]
func NewInvalidCountError(count int) *AppError {
	err := NewAppError(ErrorTypeInvalidCount,
		fmt.Sprintf("count must be between 1 and 5, got %d", count), nil)
	err.Value = fmt.Sprintf("%d", count)
	return err
}

// NewMissingRuleDataError reports a catalog load failure. Fatal at startup.
func NewMissingRuleDataError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeMissingRuleData, message, originalError)
}

// IsValidationError checks for a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsNotFoundError checks for a not-found error
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsUnknownCategoryError checks for an unknown-category error
func IsUnknownCategoryError(err error) bool {
	return hasType(err, ErrorTypeUnknownCategory)
}

// IsUnknownComponentError checks for an unknown-component error
func IsUnknownComponentError(err error) bool {
	return hasType(err, ErrorTypeUnknownComponent)
}

// IsInvalidCountError checks for an invalid-count error
func IsInvalidCountError(err error) bool {
	return hasType(err, ErrorTypeInvalidCount)
}

// IsMissingRuleDataError checks for a catalog load failure
func IsMissingRuleDataError(err error) bool {
	return hasType(err, ErrorTypeMissingRuleData)
}

func hasType(err error, errType ErrorType) bool {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Type == errType
	}
	return false
}

// AsAppError extracts an AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError, true
	}
	return nil, false
}

// generateErrorCode maps an error type to its user-facing code
func generateErrorCode(errType ErrorType) string {
	switch errType {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND"
	case ErrorTypeError:
		return "PROCESSING_ERROR"
	case ErrorTypeUnknownCategory:
		return "UNKNOWN_CATEGORY"
	case ErrorTypeUnknownComponent:
		return "UNKNOWN_COMPONENT"
	case ErrorTypeInvalidCount:
		return "INVALID_COUNT"
	case ErrorTypeMissingRuleData:
		return "MISSING_RULE_DATA"
	default:
		return "UNKNOWN_ERROR"
	}
}

// WrapError wraps an existing error
func WrapError(err error, message string, errType ErrorType) error {
	if err == nil {
		return nil
	}

	var appError *AppError
	if errors.As(err, &appError) {
		// Already an AppError, only extend the message
		return &AppError{
			Type:    appError.Type,
			Message: fmt.Sprintf("%s: %s", message, appError.Message),
			Err:     appError,
			Code:    appError.Code,
			Value:   appError.Value,
			Valid:   appError.Valid,
		}
	}

	return NewAppError(errType, message, err)
}
