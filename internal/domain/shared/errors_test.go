package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	err := NewDomainError("classroom", "AddStudent", ErrCapacityExceeded, "classroom is full")

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDomainError_SurvivesWrapping(t *testing.T) {
	inner := NewDomainError("student", "Enroll", ErrAlreadyExists, "already enrolled")
	wrapped := fmt.Errorf("add_student: %w", inner)

	assert.True(t, IsAlreadyExists(wrapped))

	var domainErr *DomainError
	assert.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, "student", domainErr.Domain)
	assert.Equal(t, "Enroll", domainErr.Op)
}

func TestWrapError_UnwrapsToUnderlying(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError("engine", "add_student", ErrValidation, "invalid command arguments", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "engine.add_student")
}

func TestErrorClassifiers(t *testing.T) {
	assert.True(t, IsNotFound(ErrStudentNotFound))
	assert.True(t, IsNotFound(ErrClassroomNotFound))
	assert.True(t, IsAlreadyExists(ErrDuplicateTitle))
	assert.True(t, IsValidation(ErrInvalidEmail))
	assert.True(t, IsValidation(ErrInvalidStudentID))
	assert.True(t, IsStateTransition(ErrNotSubmitted))

	assert.False(t, IsNotFound(ErrDuplicateTitle))
	assert.False(t, IsValidation(ErrClassroomFull))
}
