// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")

	// State errors
	ErrStateTransition   = errors.New("invalid state transition")
	ErrCapacityExceeded  = errors.New("classroom capacity exceeded")
	ErrInactiveClassroom = errors.New("classroom is inactive")
	ErrInvalidGrade      = errors.New("grade out of range")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "student", "classroom", "assignment"
	Op      string // Operation that failed, e.g., "Enroll", "Grade"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Student domain errors
var (
	ErrStudentNotFound   = NewDomainError("student", "Find", ErrNotFound, "student not found")
	ErrAlreadyEnrolled   = NewDomainError("student", "Enroll", ErrAlreadyExists, "student already enrolled")
	ErrNotEnrolled       = NewDomainError("student", "Unenroll", ErrNotFound, "student not enrolled")
	ErrInvalidStudentID  = NewDomainError("student", "Validate", ErrInvalidID, "invalid student ID format")
	ErrInvalidEmail      = NewDomainError("student", "Validate", ErrInvalidFormat, "invalid email format")
	ErrInvalidPersonName = NewDomainError("student", "Validate", ErrInvalidFormat, "invalid name format")
)

// Classroom domain errors
var (
	ErrClassroomNotFound     = NewDomainError("classroom", "Find", ErrNotFound, "classroom not found")
	ErrClassroomExists       = NewDomainError("classroom", "Create", ErrAlreadyExists, "classroom already exists")
	ErrInvalidClassroomName  = NewDomainError("classroom", "Validate", ErrInvalidFormat, "invalid classroom name format")
	ErrClassroomFull         = NewDomainError("classroom", "AddStudent", ErrCapacityExceeded, "classroom has reached maximum capacity")
	ErrClassroomInactive     = NewDomainError("classroom", "CheckStatus", ErrInactiveClassroom, "classroom is not active")
	ErrCapacityTooSmall      = NewDomainError("classroom", "UpdateInfo", ErrValueOutOfRange, "capacity below current enrollment")
	ErrStudentNotInClassroom = NewDomainError("classroom", "RemoveStudent", ErrNotFound, "student not found in classroom")
)

// Assignment domain errors
var (
	ErrAssignmentNotFound = NewDomainError("assignment", "Find", ErrNotFound, "assignment not found")
	ErrDuplicateTitle     = NewDomainError("assignment", "Schedule", ErrAlreadyExists, "assignment with this title already exists")
	ErrInvalidTitle       = NewDomainError("assignment", "Validate", ErrInvalidFormat, "invalid assignment title format")
	ErrDuplicateFile      = NewDomainError("assignment", "AddSubmittedFile", ErrAlreadyExists, "file already submitted")
	ErrNotSubmitted       = NewDomainError("assignment", "Grade", ErrStateTransition, "cannot grade an assignment that was not submitted")
	ErrGradeOutOfRange    = NewDomainError("assignment", "Grade", ErrInvalidGrade, "grade must be between 0 and maxPoints")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange)
}

// IsStateTransition checks if the error is an invalid state transition.
func IsStateTransition(err error) bool {
	return errors.Is(err, ErrStateTransition)
}
