// Package store holds the in-memory registries behind the command engine:
// classrooms by name, students by id, and the append-only notification log.
// The store is an explicit object injected into the engine at construction,
// scoped to one run of the process. It is not goroutine-safe; the engine
// executes commands strictly sequentially.
package store

import (
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/classroom"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/notification"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/student"
)

// Store owns the global entity registries. A student enrolled in several
// classrooms is the same *student.Student everywhere; classrooms hold
// references into this registry, never copies.
type Store struct {
	classrooms     map[shared.ClassroomName]*classroom.Classroom
	classroomOrder []shared.ClassroomName
	students       map[shared.StudentID]*student.Student
	notifications  []notification.Notification
}

// New creates an empty store.
func New() *Store {
	return &Store{
		classrooms: make(map[shared.ClassroomName]*classroom.Classroom),
		students:   make(map[shared.StudentID]*student.Student),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Classrooms
// ─────────────────────────────────────────────────────────────────────────────

// Classroom returns the classroom registered under the name.
func (s *Store) Classroom(name shared.ClassroomName) (*classroom.Classroom, bool) {
	c, ok := s.classrooms[name]
	return c, ok
}

// PutClassroom registers a classroom under its name.
func (s *Store) PutClassroom(c *classroom.Classroom) {
	if _, ok := s.classrooms[c.Name]; !ok {
		s.classroomOrder = append(s.classroomOrder, c.Name)
	}
	s.classrooms[c.Name] = c
}

// RemoveClassroom drops the classroom from the registry.
func (s *Store) RemoveClassroom(name shared.ClassroomName) {
	if _, ok := s.classrooms[name]; !ok {
		return
	}
	delete(s.classrooms, name)
	for i, n := range s.classroomOrder {
		if n == name {
			s.classroomOrder = append(s.classroomOrder[:i], s.classroomOrder[i+1:]...)
			break
		}
	}
}

// RekeyClassroom moves a classroom's registry entry to a new name,
// keeping its position in the registration order.
func (s *Store) RekeyClassroom(oldName, newName shared.ClassroomName) {
	c, ok := s.classrooms[oldName]
	if !ok {
		return
	}
	delete(s.classrooms, oldName)
	s.classrooms[newName] = c
	for i, n := range s.classroomOrder {
		if n == oldName {
			s.classroomOrder[i] = newName
			break
		}
	}
}

// Classrooms returns all classrooms in registration order.
func (s *Store) Classrooms() []*classroom.Classroom {
	out := make([]*classroom.Classroom, 0, len(s.classroomOrder))
	for _, name := range s.classroomOrder {
		out = append(out, s.classrooms[name])
	}
	return out
}

// ClassroomCount returns the number of registered classrooms.
func (s *Store) ClassroomCount() int {
	return len(s.classrooms)
}

// ─────────────────────────────────────────────────────────────────────────────
// Students
// ─────────────────────────────────────────────────────────────────────────────

// Student returns the student registered under the id.
func (s *Store) Student(id shared.StudentID) (*student.Student, bool) {
	st, ok := s.students[id]
	return st, ok
}

// PutStudent registers a student under its id.
func (s *Store) PutStudent(st *student.Student) {
	s.students[st.ID] = st
}

// StudentCount returns the number of registered students.
func (s *Store) StudentCount() int {
	return len(s.students)
}

// ─────────────────────────────────────────────────────────────────────────────
// Notifications
// ─────────────────────────────────────────────────────────────────────────────

// AppendNotification records a simulated outbound message. The log is
// append-only; nothing ever removes entries.
func (s *Store) AppendNotification(n notification.Notification) {
	s.notifications = append(s.notifications, n)
}

// Notifications returns a copy of the notification log in append order.
func (s *Store) Notifications() []notification.Notification {
	out := make([]notification.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// NotificationCount returns the size of the notification log.
func (s *Store) NotificationCount() int {
	return len(s.notifications)
}
