// Package student contains the domain model for a learner record.
// A Student is created once per unique id and shared by reference between
// the global registry and every classroom roster it belongs to.
package student

import (
	"fmt"
	"sort"
	"time"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/assignment"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
)

// Student is a learner record: identity, enrollment set, per-class
// submission index, per-class attendance slot, and running grade totals.
type Student struct {
	ID         shared.StudentID
	Name       shared.PersonName
	Email      shared.Email
	EnrolledAt time.Time

	enrolledClassrooms   map[shared.ClassroomName]struct{}
	submittedAssignments map[shared.ClassroomName][]*assignment.Assignment

	// attendance holds one present/absent slot per classroom,
	// overwritten on each attendance pass. Not a historical log.
	attendance map[shared.ClassroomName]bool

	totalGrade     float64
	totalSubmitted int
}

// Config carries the fields needed to create a Student.
type Config struct {
	ID    string
	Name  string
	Email string
}

// New validates the config and creates a Student.
func New(cfg Config) (*Student, error) {
	id, err := shared.NewStudentID(cfg.ID)
	if err != nil {
		return nil, err
	}
	name, err := shared.NewPersonName(cfg.Name)
	if err != nil {
		return nil, err
	}
	email, err := shared.NewEmail(cfg.Email)
	if err != nil {
		return nil, err
	}

	return &Student{
		ID:                   id,
		Name:                 name,
		Email:                email,
		EnrolledAt:           time.Now(),
		enrolledClassrooms:   make(map[shared.ClassroomName]struct{}),
		submittedAssignments: make(map[shared.ClassroomName][]*assignment.Assignment),
		attendance:           make(map[shared.ClassroomName]bool),
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Enrollment
// ─────────────────────────────────────────────────────────────────────────────

// Enroll adds the classroom to the student's enrollment set.
func (s *Student) Enroll(className shared.ClassroomName) error {
	if _, ok := s.enrolledClassrooms[className]; ok {
		return shared.NewDomainError("student", "Enroll", shared.ErrAlreadyExists,
			fmt.Sprintf("student %s already enrolled in: %s", s.ID, className))
	}
	s.enrolledClassrooms[className] = struct{}{}
	return nil
}

// Unenroll removes the classroom from the enrollment set. Submission and
// attendance history for the classroom is retained, not purged.
func (s *Student) Unenroll(className shared.ClassroomName) error {
	if _, ok := s.enrolledClassrooms[className]; !ok {
		return shared.NewDomainError("student", "Unenroll", shared.ErrNotFound,
			fmt.Sprintf("student %s not enrolled in: %s", s.ID, className))
	}
	delete(s.enrolledClassrooms, className)
	return nil
}

// IsEnrolledIn reports whether the student currently belongs to the classroom.
func (s *Student) IsEnrolledIn(className shared.ClassroomName) bool {
	_, ok := s.enrolledClassrooms[className]
	return ok
}

// EnrolledClassrooms returns the classrooms the student belongs to, sorted.
func (s *Student) EnrolledClassrooms() []shared.ClassroomName {
	names := make([]shared.ClassroomName, 0, len(s.enrolledClassrooms))
	for name := range s.enrolledClassrooms {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// EnrollmentCount returns how many classrooms the student belongs to.
func (s *Student) EnrollmentCount() int {
	return len(s.enrolledClassrooms)
}

// RenameClassroom migrates enrollment, submission history, and the attendance
// slot from the old classroom name to the new one. Keeps the bidirectional
// enrollment relationship intact when a classroom is renamed.
func (s *Student) RenameClassroom(oldName, newName shared.ClassroomName) {
	if _, ok := s.enrolledClassrooms[oldName]; ok {
		delete(s.enrolledClassrooms, oldName)
		s.enrolledClassrooms[newName] = struct{}{}
	}
	if submissions, ok := s.submittedAssignments[oldName]; ok {
		delete(s.submittedAssignments, oldName)
		s.submittedAssignments[newName] = submissions
	}
	if present, ok := s.attendance[oldName]; ok {
		delete(s.attendance, oldName)
		s.attendance[newName] = present
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Submissions and grades
// ─────────────────────────────────────────────────────────────────────────────

// SubmitAssignment records the assignment in the student's per-class
// submission list. The running grade totals absorb whatever grade the
// assignment carries for this student at submission time; a grade recorded
// later does not retroactively update the average.
func (s *Student) SubmitAssignment(className shared.ClassroomName, a *assignment.Assignment) error {
	if a == nil {
		return shared.NewDomainError("student", "SubmitAssignment", shared.ErrEmptyValue, "assignment is nil")
	}
	if !s.IsEnrolledIn(className) {
		return shared.NewDomainError("student", "SubmitAssignment", shared.ErrNotFound,
			fmt.Sprintf("student %s is not enrolled in classroom: %s", s.ID, className))
	}

	s.submittedAssignments[className] = append(s.submittedAssignments[className], a)
	s.totalSubmitted++
	if grade, ok := a.GradeFor(s.ID); ok {
		s.totalGrade += grade
	}
	return nil
}

// SubmittedAssignments returns the student's submissions for the classroom.
func (s *Student) SubmittedAssignments(className shared.ClassroomName) []*assignment.Assignment {
	submissions := s.submittedAssignments[className]
	out := make([]*assignment.Assignment, len(submissions))
	copy(out, submissions)
	return out
}

// AllSubmittedAssignments returns submissions grouped by classroom name.
func (s *Student) AllSubmittedAssignments() map[shared.ClassroomName][]*assignment.Assignment {
	out := make(map[shared.ClassroomName][]*assignment.Assignment, len(s.submittedAssignments))
	for name, submissions := range s.submittedAssignments {
		list := make([]*assignment.Assignment, len(submissions))
		copy(list, submissions)
		out[name] = list
	}
	return out
}

// TotalSubmitted returns the number of assignments the student has submitted
// across all classrooms.
func (s *Student) TotalSubmitted() int {
	return s.totalSubmitted
}

// GradeAverage returns the running grade total divided by the running
// submission count. 0 when nothing has been submitted.
func (s *Student) GradeAverage() float64 {
	if s.totalSubmitted == 0 {
		return 0
	}
	return s.totalGrade / float64(s.totalSubmitted)
}

// ─────────────────────────────────────────────────────────────────────────────
// Attendance
// ─────────────────────────────────────────────────────────────────────────────

// MarkAttendance upserts the student's present/absent slot for the classroom.
// Only the latest mark per classroom survives.
func (s *Student) MarkAttendance(className shared.ClassroomName, present bool) {
	s.attendance[className] = present
}

// AttendanceRecord returns a copy of the per-classroom attendance slots.
func (s *Student) AttendanceRecord() map[shared.ClassroomName]bool {
	out := make(map[shared.ClassroomName]bool, len(s.attendance))
	for name, present := range s.attendance {
		out[name] = present
	}
	return out
}

// AttendancePercentage returns present-count over attendance entries, x100.
// 0 when no attendance has ever been marked.
func (s *Student) AttendancePercentage() float64 {
	if len(s.attendance) == 0 {
		return 0
	}
	present := 0
	for _, p := range s.attendance {
		if p {
			present++
		}
	}
	return float64(present) / float64(len(s.attendance)) * 100
}

// ─────────────────────────────────────────────────────────────────────────────
// Profile updates
// ─────────────────────────────────────────────────────────────────────────────

// UpdateName replaces the student's name after format validation.
func (s *Student) UpdateName(newName string) error {
	name, err := shared.NewPersonName(newName)
	if err != nil {
		return err
	}
	s.Name = name
	return nil
}

// UpdateEmail replaces the student's email after format validation.
func (s *Student) UpdateEmail(newEmail string) error {
	email, err := shared.NewEmail(newEmail)
	if err != nil {
		return err
	}
	s.Email = email
	return nil
}

// String returns a compact representation for logs.
func (s *Student) String() string {
	return fmt.Sprintf("Student{id=%s, name=%q, classrooms=%d, submitted=%d}",
		s.ID, s.Name, len(s.enrolledClassrooms), s.totalSubmitted)
}
