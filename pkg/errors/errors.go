package errors

import (
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from external service
	ErrorTypeExternal ErrorType = "EXTERNAL"

	// ErrorTypeDataAccess indicates the historical data source was unreachable
	// or its schema is missing required join keys
	ErrorTypeDataAccess ErrorType = "DATA_ACCESS"

	// ErrorTypeUnknownUser indicates a user with no recorded visit history.
	// This is an expected outcome, not a failure: callers must distinguish it
	// from an empty recommendation list.
	ErrorTypeUnknownUser ErrorType = "UNKNOWN_USER"

	// ErrorTypeScoringInput indicates the feature schema and the feature
	// builder disagree. This is a deployment inconsistency between the model
	// artifact and this service; halt rather than degrade.
	ErrorTypeScoringInput ErrorType = "SCORING_INPUT"

	// ErrorTypeModelInference indicates the scoring call itself failed
	ErrorTypeModelInference ErrorType = "MODEL_INFERENCE"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is an *AppError of the given type
func IsType(err error, t ErrorType) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Type == t
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}

// NewDataAccessError creates a new data access error
func NewDataAccessError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeDataAccess,
		Message: message,
		Err:     err,
	}
}

// NewUnknownUserError creates the signal for a user with no visit history
func NewUnknownUserError(userID int) *AppError {
	return &AppError{
		Type:    ErrorTypeUnknownUser,
		Message: fmt.Sprintf("no historical data found for user %d", userID),
	}
}

// NewScoringInputError creates a new scoring input error
func NewScoringInputError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeScoringInput,
		Message: message,
	}
}

// NewModelInferenceError creates a new model inference error
func NewModelInferenceError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeModelInference,
		Message: message,
		Err:     err,
	}
}
