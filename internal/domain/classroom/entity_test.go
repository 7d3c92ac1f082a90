package classroom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/assignment"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/student"
)

func newTestClassroom(t *testing.T, capacity int) *Classroom {
	t.Helper()
	c, err := New(Config{Name: "Math 101", Description: "Intro algebra", MaxCapacity: capacity})
	require.NoError(t, err)
	return c
}

func newTestStudent(t *testing.T, id string) *student.Student {
	t.Helper()
	s, err := student.New(student.Config{
		ID:    id,
		Name:  "John Doe",
		Email: "john@example.com",
	})
	require.NoError(t, err)
	return s
}

func newTestAssignment(t *testing.T, title string, maxPoints int) *assignment.Assignment {
	t.Helper()
	a, err := assignment.New(assignment.Config{
		Title:       title,
		Description: "test work",
		MaxPoints:   maxPoints,
	})
	require.NoError(t, err)
	return a
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Name: "Math 101", MaxCapacity: 0})
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)

	_, err = New(Config{Name: "X", MaxCapacity: 10})
	assert.True(t, shared.IsValidation(err))

	c := newTestClassroom(t, 30)
	assert.True(t, c.IsActive())
	assert.Contains(t, c.ID, "CLS-")
}

func TestAddStudent_CapacityEnforced(t *testing.T) {
	c := newTestClassroom(t, 2)

	require.NoError(t, c.AddStudent(newTestStudent(t, "AB1111")))
	require.NoError(t, c.AddStudent(newTestStudent(t, "AB2222")))

	err := c.AddStudent(newTestStudent(t, "AB3333"))
	assert.ErrorIs(t, err, shared.ErrCapacityExceeded)
	assert.Equal(t, 2, c.EnrolledCount())
}

func TestAddStudent_DuplicateRejected(t *testing.T) {
	c := newTestClassroom(t, 10)
	s := newTestStudent(t, "AB1234")

	require.NoError(t, c.AddStudent(s))
	err := c.AddStudent(s)
	assert.True(t, shared.IsAlreadyExists(err))
	assert.Equal(t, 1, c.EnrolledCount())
	assert.Equal(t, 1, s.EnrollmentCount())
}

func TestAddStudent_InactiveClassroom(t *testing.T) {
	c := newTestClassroom(t, 10)
	c.Deactivate()

	err := c.AddStudent(newTestStudent(t, "AB1234"))
	assert.ErrorIs(t, err, shared.ErrInactiveClassroom)

	c.Activate()
	assert.NoError(t, c.AddStudent(newTestStudent(t, "AB1234")))
}

func TestAddStudent_BidirectionalEnrollment(t *testing.T) {
	c := newTestClassroom(t, 10)
	s := newTestStudent(t, "AB1234")

	require.NoError(t, c.AddStudent(s))
	assert.True(t, c.HasStudent(s.ID))
	assert.True(t, s.IsEnrolledIn(c.Name))
	assert.Same(t, s, c.StudentByID(s.ID))
}

func TestRemoveStudent(t *testing.T) {
	c := newTestClassroom(t, 10)
	s := newTestStudent(t, "AB1234")
	require.NoError(t, c.AddStudent(s))

	require.NoError(t, c.RemoveStudent(s.ID))
	assert.False(t, c.HasStudent(s.ID))
	assert.False(t, s.IsEnrolledIn(c.Name))

	err := c.RemoveStudent(s.ID)
	assert.True(t, shared.IsNotFound(err))
}

func TestStudents_PaginationAndFilter(t *testing.T) {
	c := newTestClassroom(t, 30)
	for i := 0; i < 25; i++ {
		s, err := student.New(student.Config{
			ID:    shared.StudentID(fmt.Sprintf("AB%04d", i)).String(),
			Name:  "John Doe",
			Email: "john@example.com",
		})
		require.NoError(t, err)
		require.NoError(t, c.AddStudent(s))
	}

	page := c.Students(shared.NewPagination(0, 10), "")
	require.Len(t, page, 10)
	// enrollment order is stable
	assert.Equal(t, shared.StudentID("AB0000"), page[0].ID)

	page = c.Students(shared.NewPagination(2, 10), "")
	assert.Len(t, page, 5)

	page = c.Students(shared.NewPagination(9, 10), "")
	assert.Empty(t, page)

	filtered := c.Students(shared.NewPagination(0, 100), "ab001")
	assert.Len(t, filtered, 10) // AB0010 .. AB0019
}

func TestScheduleAssignment_DuplicateTitleCaseInsensitive(t *testing.T) {
	c := newTestClassroom(t, 10)

	require.NoError(t, c.ScheduleAssignment(newTestAssignment(t, "HW1", 10)))
	err := c.ScheduleAssignment(newTestAssignment(t, "hw1", 10))
	assert.True(t, shared.IsAlreadyExists(err))
	assert.Equal(t, 1, c.AssignmentCount())
}

func TestScheduleAssignment_InactiveClassroom(t *testing.T) {
	c := newTestClassroom(t, 10)
	c.Deactivate()

	err := c.ScheduleAssignment(newTestAssignment(t, "HW1", 10))
	assert.ErrorIs(t, err, shared.ErrInactiveClassroom)
}

func TestFindAssignmentByTitle(t *testing.T) {
	c := newTestClassroom(t, 10)
	a := newTestAssignment(t, "Final Exam", 100)
	require.NoError(t, c.ScheduleAssignment(a))

	assert.Same(t, a, c.FindAssignmentByTitle("final exam"))
	assert.Same(t, a, c.FindAssignmentByTitle("  Final Exam "))
	assert.Nil(t, c.FindAssignmentByTitle("Midterm"))
}

func TestAssignments_FilterByCategory(t *testing.T) {
	c := newTestClassroom(t, 10)
	hw, err := assignment.New(assignment.Config{
		Title: "HW1", Description: "d", Category: assignment.CategoryHomework,
	})
	require.NoError(t, err)
	quiz, err := assignment.New(assignment.Config{
		Title: "Quiz 1", Description: "d", Category: assignment.CategoryQuiz,
	})
	require.NoError(t, err)
	require.NoError(t, c.ScheduleAssignment(hw))
	require.NoError(t, c.ScheduleAssignment(quiz))

	assert.Len(t, c.AllAssignments(), 2)
	assert.Len(t, c.Assignments(assignment.CategoryQuiz), 1)
	assert.Empty(t, c.Assignments(assignment.CategoryExam))
}

func TestMarkAttendance_OmittedStudentsAbsent(t *testing.T) {
	c := newTestClassroom(t, 10)
	ids := []shared.StudentID{"AB1111", "AB2222", "AB3333", "AB4444", "AB5555"}
	for _, id := range ids {
		require.NoError(t, c.AddStudent(newTestStudent(t, id.String())))
	}

	err := c.MarkAttendance(map[shared.StudentID]bool{
		"AB1111": true,
		"AB2222": true,
		"AB3333": true,
	})
	require.NoError(t, err)

	snapshot := c.AttendanceSnapshot()
	assert.Len(t, snapshot, 5)
	assert.True(t, snapshot["AB1111"])
	assert.False(t, snapshot["AB4444"])
	assert.False(t, snapshot["AB5555"])
	assert.Equal(t, 60.0, c.OverallAttendancePercentage())
}

func TestMarkAttendance_UnknownIDRejectedBeforeMutation(t *testing.T) {
	c := newTestClassroom(t, 10)
	require.NoError(t, c.AddStudent(newTestStudent(t, "AB1111")))
	require.NoError(t, c.MarkAttendance(map[shared.StudentID]bool{"AB1111": true}))

	err := c.MarkAttendance(map[shared.StudentID]bool{"ZZ9999": true})
	assert.True(t, shared.IsNotFound(err))

	// the earlier snapshot is untouched
	assert.True(t, c.AttendanceSnapshot()["AB1111"])
	assert.Equal(t, 100.0, c.OverallAttendancePercentage())
}

func TestOverallAttendancePercentage_AfterRemoval(t *testing.T) {
	c := newTestClassroom(t, 10)
	s1 := newTestStudent(t, "AB1111")
	s2 := newTestStudent(t, "AB2222")
	require.NoError(t, c.AddStudent(s1))
	require.NoError(t, c.AddStudent(s2))

	require.NoError(t, c.MarkAttendance(map[shared.StudentID]bool{
		"AB1111": true,
		"AB2222": true,
	}))
	require.NoError(t, c.RemoveStudent(s1.ID))

	// the removed student's slot leaves the snapshot; the rate stays
	// present/enrolled and can never exceed 100
	assert.Len(t, c.AttendanceSnapshot(), 1)
	assert.Equal(t, 100.0, c.OverallAttendancePercentage())

	// the student's own record survives the removal
	assert.True(t, s1.AttendanceRecord()[c.Name])
}

func TestOverallAttendancePercentage_NoSnapshot(t *testing.T) {
	c := newTestClassroom(t, 10)
	require.NoError(t, c.AddStudent(newTestStudent(t, "AB1111")))
	assert.Equal(t, 0.0, c.OverallAttendancePercentage())
}

func TestUpdateInfo(t *testing.T) {
	c := newTestClassroom(t, 10)
	require.NoError(t, c.AddStudent(newTestStudent(t, "AB1111")))
	require.NoError(t, c.AddStudent(newTestStudent(t, "AB2222")))

	newName := "Math 102"
	newDesc := "Advanced algebra"
	require.NoError(t, c.UpdateInfo(InfoUpdate{Name: &newName, Description: &newDesc}))
	assert.Equal(t, shared.ClassroomName("Math 102"), c.Name)
	assert.Equal(t, "Advanced algebra", c.Description)

	tooSmall := 1
	err := c.UpdateInfo(InfoUpdate{MaxCapacity: &tooSmall})
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)
	assert.Equal(t, 10, c.MaxCapacity())

	bigger := 40
	require.NoError(t, c.UpdateInfo(InfoUpdate{MaxCapacity: &bigger}))
	assert.Equal(t, 40, c.MaxCapacity())

	badName := "!"
	err = c.UpdateInfo(InfoUpdate{Name: &badName})
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, shared.ClassroomName("Math 102"), c.Name)
}
