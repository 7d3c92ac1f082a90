package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/notification"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/student"
	"github.com/vcm-hub/virtual-classroom-manager/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// StudentSnapshot is the engine's external view of a student.
type StudentSnapshot struct {
	ID                shared.StudentID
	Name              string
	Email             string
	EnrolledAt        time.Time
	GradeAverage      float64
	AttendancePercent float64
	TotalSubmitted    int
}

func snapshotStudent(s *student.Student) StudentSnapshot {
	return StudentSnapshot{
		ID:                s.ID,
		Name:              s.Name.String(),
		Email:             s.Email.String(),
		EnrolledAt:        s.EnrolledAt,
		GradeAverage:      s.GradeAverage(),
		AttendancePercent: s.AttendancePercentage(),
		TotalSubmitted:    s.TotalSubmitted(),
	}
}

// resolveStudent translates a student id into the registered entity,
// or a uniform not-found failure.
func (e *Engine) resolveStudent(id string) (*student.Student, error) {
	s, ok := e.store.Student(shared.StudentID(strings.TrimSpace(id)))
	if !ok {
		return nil, shared.NewDomainError("engine", "Resolve", shared.ErrNotFound,
			fmt.Sprintf("student not found: %s", id))
	}
	return s, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// add_student
// ─────────────────────────────────────────────────────────────────────────────

// AddStudentCommand enrolls a student into a classroom, creating the
// student record when the id is new.
type AddStudentCommand struct {
	StudentID string `validate:"required,student_id"`
	Name      string `validate:"required,person_name"`
	Email     string `validate:"required,email"`
	ClassName string `validate:"required,classroom_name"`
}

// AddStudentResult reports the enrollment outcome.
type AddStudentResult struct {
	Student      StudentSnapshot
	ClassName    string
	NewlyCreated bool // false when an existing student id was re-enrolled
}

// AddStudent enrolls a student. This is the one place global identity is
// enforced: an id already in the registry reuses the same Student object
// and is simply enrolled into the additional classroom.
func (e *Engine) AddStudent(cmd AddStudentCommand) (AddStudentResult, error) {
	const command = "add_student"

	if err := e.checkCommand(command, cmd); err != nil {
		return AddStudentResult{}, e.fail(command, err)
	}
	c, err := e.resolveClassroom(cmd.ClassName)
	if err != nil {
		return AddStudentResult{}, e.fail(command, err)
	}

	s, exists := e.store.Student(shared.StudentID(cmd.StudentID))
	if !exists {
		s, err = student.New(student.Config{
			ID:    cmd.StudentID,
			Name:  cmd.Name,
			Email: cmd.Email,
		})
		if err != nil {
			return AddStudentResult{}, e.fail(command, err)
		}
	}

	if err := c.AddStudent(s); err != nil {
		return AddStudentResult{}, e.fail(command, err)
	}
	if !exists {
		// Register globally only after the enrollment succeeded, so a
		// rejected add leaves no orphan record behind.
		e.store.PutStudent(s)
	}

	e.store.AppendNotification(notification.New(notification.TypeWelcomeEmail,
		s.ID.String(), fmt.Sprintf("Welcome email sent to %s", s.Email.Masked())))

	e.log.Info("student enrolled", logger.Command(command),
		logger.StudentID(cmd.StudentID), logger.ClassName(cmd.ClassName))
	return AddStudentResult{
		Student:      snapshotStudent(s),
		ClassName:    c.Name.String(),
		NewlyCreated: !exists,
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// remove_student (two-phase)
// ─────────────────────────────────────────────────────────────────────────────

// StudentRemovalPlan describes what removing a student from a classroom
// would leave unresolved. The plan mutates nothing.
type StudentRemovalPlan struct {
	StudentID            shared.StudentID
	ClassName            string
	PendingAssignments   []string // titles the student has not submitted
	RequiresConfirmation bool
}

// PlanStudentRemoval computes the removal plan for one enrollment.
func (e *Engine) PlanStudentRemoval(studentID, className string) (StudentRemovalPlan, error) {
	const command = "remove_student"

	c, err := e.resolveClassroom(className)
	if err != nil {
		return StudentRemovalPlan{}, e.fail(command, err)
	}
	id := shared.StudentID(strings.TrimSpace(studentID))
	if !c.HasStudent(id) {
		return StudentRemovalPlan{}, e.fail(command, shared.NewDomainError("engine", "PlanStudentRemoval",
			shared.ErrNotFound, fmt.Sprintf("student not enrolled in classroom: %s", studentID)))
	}

	plan := StudentRemovalPlan{StudentID: id, ClassName: c.Name.String()}
	for _, a := range c.AllAssignments() {
		if !a.HasSubmitted(id) {
			plan.PendingAssignments = append(plan.PendingAssignments, a.Title.String())
		}
	}
	plan.RequiresConfirmation = len(plan.PendingAssignments) > 0
	return plan, nil
}

// CommitStudentRemoval removes the student from the classroom roster.
// Submission and attendance history is retained. Call PlanStudentRemoval
// first and confirm when the plan requires it.
func (e *Engine) CommitStudentRemoval(studentID, className string) error {
	const command = "remove_student"

	c, err := e.resolveClassroom(className)
	if err != nil {
		return e.fail(command, err)
	}
	if err := c.RemoveStudent(shared.StudentID(strings.TrimSpace(studentID))); err != nil {
		return e.fail(command, err)
	}

	e.log.Info("student removed", logger.Command(command),
		logger.StudentID(studentID), logger.ClassName(className))
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// list_students
// ─────────────────────────────────────────────────────────────────────────────

// ListStudentsCommand pages through a classroom roster.
type ListStudentsCommand struct {
	ClassName string `validate:"required,classroom_name"`
	Page      int    `validate:"gte=0"`
	PageSize  int    `validate:"gte=0"`
	Filter    string
}

// ListStudentsResult is one page of the roster.
type ListStudentsResult struct {
	ClassName    string
	Students     []StudentSnapshot
	TotalMatched int
}

// ListStudents returns one page of the roster, filtered case-insensitively
// over name or id.
func (e *Engine) ListStudents(cmd ListStudentsCommand) (ListStudentsResult, error) {
	const command = "list_students"

	if err := e.checkCommand(command, cmd); err != nil {
		return ListStudentsResult{}, e.fail(command, err)
	}
	c, err := e.resolveClassroom(cmd.ClassName)
	if err != nil {
		return ListStudentsResult{}, e.fail(command, err)
	}
	if cmd.PageSize == 0 {
		cmd.PageSize = e.defaultPageSize
	}

	page := c.Students(shared.NewPagination(cmd.Page, cmd.PageSize), cmd.Filter)
	result := ListStudentsResult{
		ClassName:    c.Name.String(),
		Students:     make([]StudentSnapshot, 0, len(page)),
		TotalMatched: c.CountStudents(cmd.Filter),
	}
	for _, s := range page {
		result.Students = append(result.Students, snapshotStudent(s))
	}
	return result, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// student_profile
// ─────────────────────────────────────────────────────────────────────────────

// ClassEnrollment is one classroom entry in a student profile.
type ClassEnrollment struct {
	ClassName      shared.ClassroomName
	SubmittedCount int
}

// StudentProfileResult is the full profile view for one student.
type StudentProfileResult struct {
	Student     StudentSnapshot
	Enrollments []ClassEnrollment
}

// StudentProfile returns the profile for a student id.
func (e *Engine) StudentProfile(studentID string) (StudentProfileResult, error) {
	const command = "student_profile"

	s, err := e.resolveStudent(studentID)
	if err != nil {
		return StudentProfileResult{}, e.fail(command, err)
	}

	result := StudentProfileResult{Student: snapshotStudent(s)}
	for _, name := range s.EnrolledClassrooms() {
		result.Enrollments = append(result.Enrollments, ClassEnrollment{
			ClassName:      name,
			SubmittedCount: len(s.SubmittedAssignments(name)),
		})
	}
	return result, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// update_student
// ─────────────────────────────────────────────────────────────────────────────

// UpdateStudentCommand applies the non-nil fields to a student record.
type UpdateStudentCommand struct {
	StudentID string  `validate:"required,student_id"`
	NewName   *string `validate:"omitempty,person_name"`
	NewEmail  *string `validate:"omitempty,email"`
}

// UpdateStudent updates a student's mutable identity fields.
func (e *Engine) UpdateStudent(cmd UpdateStudentCommand) (StudentSnapshot, error) {
	const command = "update_student"

	if err := e.checkCommand(command, cmd); err != nil {
		return StudentSnapshot{}, e.fail(command, err)
	}
	s, err := e.resolveStudent(cmd.StudentID)
	if err != nil {
		return StudentSnapshot{}, e.fail(command, err)
	}

	if cmd.NewName != nil {
		if err := s.UpdateName(*cmd.NewName); err != nil {
			return StudentSnapshot{}, e.fail(command, err)
		}
	}
	if cmd.NewEmail != nil {
		if err := s.UpdateEmail(*cmd.NewEmail); err != nil {
			return StudentSnapshot{}, e.fail(command, err)
		}
	}

	e.log.Info("student updated", logger.Command(command), logger.StudentID(cmd.StudentID))
	return snapshotStudent(s), nil
}
