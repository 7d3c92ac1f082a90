package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/classroom"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/notification"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/student"
)

func newClassroom(t *testing.T, name string) *classroom.Classroom {
	t.Helper()
	c, err := classroom.New(classroom.Config{Name: name, Description: "d", MaxCapacity: 10})
	require.NoError(t, err)
	return c
}

func TestClassroomRegistry(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.ClassroomCount())

	math := newClassroom(t, "Math 101")
	physics := newClassroom(t, "Physics")
	s.PutClassroom(math)
	s.PutClassroom(physics)

	got, ok := s.Classroom("Math 101")
	require.True(t, ok)
	assert.Same(t, math, got)

	_, ok = s.Classroom("Chemistry")
	assert.False(t, ok)

	// registration order survives lookups and counts
	all := s.Classrooms()
	require.Len(t, all, 2)
	assert.Same(t, math, all[0])
	assert.Same(t, physics, all[1])
}

func TestRemoveClassroom(t *testing.T) {
	s := New()
	s.PutClassroom(newClassroom(t, "Math 101"))
	s.PutClassroom(newClassroom(t, "Physics"))

	s.RemoveClassroom("Math 101")
	assert.Equal(t, 1, s.ClassroomCount())
	_, ok := s.Classroom("Math 101")
	assert.False(t, ok)

	all := s.Classrooms()
	require.Len(t, all, 1)
	assert.Equal(t, shared.ClassroomName("Physics"), all[0].Name)

	// removing a missing classroom is a no-op
	s.RemoveClassroom("Math 101")
	assert.Equal(t, 1, s.ClassroomCount())
}

func TestRekeyClassroom_KeepsOrder(t *testing.T) {
	s := New()
	math := newClassroom(t, "Math 101")
	s.PutClassroom(math)
	s.PutClassroom(newClassroom(t, "Physics"))

	s.RekeyClassroom("Math 101", "Math 102")

	_, ok := s.Classroom("Math 101")
	assert.False(t, ok)
	got, ok := s.Classroom("Math 102")
	require.True(t, ok)
	assert.Same(t, math, got)

	all := s.Classrooms()
	require.Len(t, all, 2)
	assert.Same(t, math, all[0])
}

func TestStudentRegistry_SharedReference(t *testing.T) {
	s := New()
	st, err := student.New(student.Config{ID: "AB1234", Name: "John Doe", Email: "john@example.com"})
	require.NoError(t, err)

	s.PutStudent(st)
	assert.Equal(t, 1, s.StudentCount())

	got, ok := s.Student("AB1234")
	require.True(t, ok)
	assert.Same(t, st, got)

	_, ok = s.Student("ZZ9999")
	assert.False(t, ok)
}

func TestNotificationLog_AppendOnly(t *testing.T) {
	s := New()
	assert.Empty(t, s.Notifications())

	s.AppendNotification(notification.New(notification.TypeWelcomeEmail, "AB1234", "welcome"))
	s.AppendNotification(notification.New(notification.TypeGradePublished, "AB1234", "graded"))

	log := s.Notifications()
	require.Len(t, log, 2)
	assert.Equal(t, notification.TypeWelcomeEmail, log[0].Type)
	assert.Equal(t, notification.TypeGradePublished, log[1].Type)
	assert.Equal(t, 2, s.NotificationCount())

	// mutating the returned copy must not touch the log
	log[0].Message = "tampered"
	assert.Equal(t, "welcome", s.Notifications()[0].Message)
}
