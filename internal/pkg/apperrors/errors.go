package apperrors

import (
	"errors"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Student errors
var (
	ErrStudentNotFound      = wrap(ErrResourceNotFound, "student not found")
	ErrDuplicateVaccination = wrap(ErrConflict, "student already vaccinated with this vaccine")
)

// Drive errors
var (
	ErrDriveNotFound   = wrap(ErrResourceNotFound, "drive not found")
	ErrDuplicateDrive  = wrap(ErrConflict, "a drive for the same vaccine is already scheduled on this date for the same grades")
	ErrInvalidSchedule = wrap(ErrValidationFailed, "drive date is too soon")
	ErrPastDrive       = wrap(ErrValidationFailed, "cannot edit past drives")
)

// Import errors
var (
	ErrMalformedCSV = wrap(ErrValidationFailed, "failed to parse CSV")
)

// wrap builds a domain sentinel that still matches its taxonomy parent under errors.Is.
func wrap(parent error, message string) error {
	return &CustomError{Err: parent, Message: message}
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// Message extracts the human readable part of err for API responses.
func Message(err error) string {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Error()
	}
	return err.Error()
}
