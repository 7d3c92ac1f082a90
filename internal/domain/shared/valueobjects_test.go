package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentID_IsValid(t *testing.T) {
	assert.True(t, StudentID("AB1234").IsValid())
	assert.True(t, StudentID("XY123456").IsValid())

	assert.False(t, StudentID("ab1234").IsValid())   // lowercase prefix
	assert.False(t, StudentID("A1234").IsValid())    // one letter
	assert.False(t, StudentID("AB123").IsValid())    // too few digits
	assert.False(t, StudentID("AB1234567").IsValid()) // too many digits
	assert.False(t, StudentID("").IsValid())
}

func TestNewStudentID_RejectsInvalid(t *testing.T) {
	id, err := NewStudentID("AB1234")
	assert.NoError(t, err)
	assert.Equal(t, StudentID("AB1234"), id)

	_, err = NewStudentID("1234AB")
	assert.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestEmail_IsValid(t *testing.T) {
	assert.True(t, Email("john.doe@example.com").IsValid())
	assert.True(t, Email("a+b@sub.domain.org").IsValid())

	assert.False(t, Email("no-at-sign").IsValid())
	assert.False(t, Email("user@domain").IsValid()) // no TLD
	assert.False(t, Email("").IsValid())
}

func TestEmail_Masked(t *testing.T) {
	assert.Equal(t, "jo***@example.com", Email("john@example.com").Masked())
	assert.Equal(t, "al***@test.org", Email("alice.smith@test.org").Masked())
}

func TestPersonName_IsValid(t *testing.T) {
	assert.True(t, PersonName("John Doe").IsValid())
	assert.True(t, PersonName("Li").IsValid())

	assert.False(t, PersonName("J").IsValid())
	assert.False(t, PersonName("John123").IsValid())
	assert.False(t, PersonName("").IsValid())
}

func TestClassroomName_IsValid(t *testing.T) {
	assert.True(t, ClassroomName("Math 101").IsValid())
	assert.True(t, ClassroomName("CS-Advanced_2").IsValid())

	assert.False(t, ClassroomName("A").IsValid())
	assert.False(t, ClassroomName("Bad!Name").IsValid())
}

func TestAssignmentTitle_EqualsFold(t *testing.T) {
	assert.True(t, AssignmentTitle("HW1").EqualsFold("hw1"))
	assert.True(t, AssignmentTitle("Final Exam").EqualsFold("FINAL EXAM"))
	assert.False(t, AssignmentTitle("HW1").EqualsFold("HW2"))
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ValidateRange(50, 0, 100, "points"))
	assert.NoError(t, ValidateRange(0, 0, 100, "points"))
	assert.NoError(t, ValidateRange(100, 0, 100, "points"))

	err := ValidateRange(101, 0, 100, "points")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestPagination_Slice(t *testing.T) {
	p := NewPagination(0, 10)
	start, end := p.Slice(25)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = NewPagination(2, 10).Slice(25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	// out-of-range page yields an empty window, not an error
	start, end = NewPagination(5, 10).Slice(25)
	assert.Equal(t, start, end)
}

func TestNewPagination_ClampsPageSize(t *testing.T) {
	p := NewPagination(-1, 0)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = NewPagination(0, 500)
	assert.Equal(t, MaxPageSize, p.PageSize)
}
