package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/assignment"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/classroom"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/notification"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
	"github.com/vcm-hub/virtual-classroom-manager/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASSIGNMENT COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// AssignmentSnapshot is the engine's external view of an assignment.
type AssignmentSnapshot struct {
	ID             string
	Title          string
	Description    string
	Category       assignment.Category
	MaxPoints      int
	Status         assignment.Status
	DueDate        time.Time
	SubmittedCount int
	GradedCount    int
	Overdue        bool
}

func snapshotAssignment(a *assignment.Assignment) AssignmentSnapshot {
	return AssignmentSnapshot{
		ID:             a.ID,
		Title:          a.Title.String(),
		Description:    a.Description,
		Category:       a.Category,
		MaxPoints:      a.MaxPoints,
		Status:         a.Status(),
		DueDate:        a.DueDate,
		SubmittedCount: a.SubmissionCount(),
		GradedCount:    len(a.GradedStudentIDs()),
		Overdue:        a.IsOverdue(),
	}
}

// resolveAssignment finds an assignment by title (case-insensitive) inside
// an already-resolved classroom.
func (e *Engine) resolveAssignment(c *classroom.Classroom, title string) (*assignment.Assignment, error) {
	a := c.FindAssignmentByTitle(title)
	if a == nil {
		return nil, shared.NewDomainError("engine", "Resolve", shared.ErrNotFound,
			fmt.Sprintf("assignment not found: %s", title))
	}
	return a, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// schedule_assignment
// ─────────────────────────────────────────────────────────────────────────────

// ScheduleAssignmentCommand schedules an assignment in a classroom.
type ScheduleAssignmentCommand struct {
	ClassName   string `validate:"required,classroom_name"`
	Title       string `validate:"required,assignment_title"`
	Description string `validate:"required"`
	Category    string // empty means HOMEWORK
	MaxPoints   int    `validate:"gte=0"` // 0 means "use the category default"
	DueDate     time.Time
}

// ScheduleAssignment creates an assignment in status SCHEDULED and attaches
// it to the classroom. Titles are unique per classroom, case-insensitively.
func (e *Engine) ScheduleAssignment(cmd ScheduleAssignmentCommand) (AssignmentSnapshot, error) {
	const command = "schedule_assignment"

	if err := e.checkCommand(command, cmd); err != nil {
		return AssignmentSnapshot{}, e.fail(command, err)
	}
	c, err := e.resolveClassroom(cmd.ClassName)
	if err != nil {
		return AssignmentSnapshot{}, e.fail(command, err)
	}

	category := assignment.CategoryHomework
	if strings.TrimSpace(cmd.Category) != "" {
		category, err = assignment.ParseCategory(cmd.Category)
		if err != nil {
			return AssignmentSnapshot{}, e.fail(command, err)
		}
	}

	a, err := assignment.New(assignment.Config{
		Title:       cmd.Title,
		Description: cmd.Description,
		Category:    category,
		MaxPoints:   cmd.MaxPoints,
		DueDate:     cmd.DueDate,
	})
	if err != nil {
		return AssignmentSnapshot{}, e.fail(command, err)
	}
	if err := c.ScheduleAssignment(a); err != nil {
		return AssignmentSnapshot{}, e.fail(command, err)
	}

	e.log.Info("assignment scheduled", logger.Command(command),
		logger.ClassName(cmd.ClassName), logger.AssignmentTitle(cmd.Title),
		logger.String("category", category.String()))
	return snapshotAssignment(a), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// submit_assignment
// ─────────────────────────────────────────────────────────────────────────────

// SubmitAssignmentCommand records one student's submission.
type SubmitAssignmentCommand struct {
	StudentID string `validate:"required,student_id"`
	ClassName string `validate:"required,classroom_name"`
	Title     string `validate:"required,assignment_title"`
	FileName  string // empty means DefaultSubmissionFile
}

// SubmitAssignmentResult reports the submission outcome.
type SubmitAssignmentResult struct {
	Assignment  AssignmentSnapshot
	FileName    string
	SubmittedAt time.Time
	Overdue     bool // the due date had already passed when submitted
}

// SubmitAssignment records a submission. Submission is one-shot per student
// per assignment; a repeat submission is rejected.
func (e *Engine) SubmitAssignment(cmd SubmitAssignmentCommand) (SubmitAssignmentResult, error) {
	const command = "submit_assignment"

	if err := e.checkCommand(command, cmd); err != nil {
		return SubmitAssignmentResult{}, e.fail(command, err)
	}
	s, err := e.resolveStudent(cmd.StudentID)
	if err != nil {
		return SubmitAssignmentResult{}, e.fail(command, err)
	}
	c, err := e.resolveClassroom(cmd.ClassName)
	if err != nil {
		return SubmitAssignmentResult{}, e.fail(command, err)
	}
	if !c.HasStudent(s.ID) {
		return SubmitAssignmentResult{}, e.fail(command, shared.NewDomainError("engine", "SubmitAssignment",
			shared.ErrStateTransition, fmt.Sprintf("student not enrolled in classroom: %s", cmd.StudentID)))
	}
	a, err := e.resolveAssignment(c, cmd.Title)
	if err != nil {
		return SubmitAssignmentResult{}, e.fail(command, err)
	}
	if a.HasSubmitted(s.ID) {
		return SubmitAssignmentResult{}, e.fail(command, shared.NewDomainError("engine", "SubmitAssignment",
			shared.ErrAlreadyExists, fmt.Sprintf("assignment already submitted: %s", cmd.Title)))
	}

	overdue := a.IsOverdue()
	fileName := strings.TrimSpace(cmd.FileName)
	if fileName == "" {
		fileName = DefaultSubmissionFile
	}

	a.MarkSubmitted(s.ID)
	if err := a.AddSubmittedFile(s.ID, fileName); err != nil {
		return SubmitAssignmentResult{}, e.fail(command, err)
	}
	if err := s.SubmitAssignment(c.Name, a); err != nil {
		return SubmitAssignmentResult{}, e.fail(command, err)
	}

	submittedAt, _ := a.SubmittedAt(s.ID)
	e.log.Info("assignment submitted", logger.Command(command),
		logger.StudentID(cmd.StudentID), logger.ClassName(cmd.ClassName),
		logger.AssignmentTitle(cmd.Title), logger.Bool("overdue", overdue))
	return SubmitAssignmentResult{
		Assignment:  snapshotAssignment(a),
		FileName:    fileName,
		SubmittedAt: submittedAt,
		Overdue:     overdue,
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// grade_assignment
// ─────────────────────────────────────────────────────────────────────────────

// GradeAssignmentCommand grades one student's submission.
type GradeAssignmentCommand struct {
	StudentID string  `validate:"required,student_id"`
	ClassName string  `validate:"required,classroom_name"`
	Title     string  `validate:"required,assignment_title"`
	Points    float64 `validate:"gte=0"`
	Feedback  string
}

// GradeAssignmentResult reports the recorded grade.
type GradeAssignmentResult struct {
	Assignment  AssignmentSnapshot
	Points      float64
	MaxPoints   int
	Percentage  float64
	LetterGrade string
	Feedback    string
}

// GradeAssignment grades a submission. Grading requires a prior submission
// and points within [0, MaxPoints]. Re-grading overwrites the previous grade.
func (e *Engine) GradeAssignment(cmd GradeAssignmentCommand) (GradeAssignmentResult, error) {
	const command = "grade_assignment"

	if err := e.checkCommand(command, cmd); err != nil {
		return GradeAssignmentResult{}, e.fail(command, err)
	}
	s, err := e.resolveStudent(cmd.StudentID)
	if err != nil {
		return GradeAssignmentResult{}, e.fail(command, err)
	}
	c, err := e.resolveClassroom(cmd.ClassName)
	if err != nil {
		return GradeAssignmentResult{}, e.fail(command, err)
	}
	a, err := e.resolveAssignment(c, cmd.Title)
	if err != nil {
		return GradeAssignmentResult{}, e.fail(command, err)
	}

	if err := a.Grade(s.ID, cmd.Points, cmd.Feedback); err != nil {
		return GradeAssignmentResult{}, e.fail(command, err)
	}

	letter := a.LetterGrade(s.ID)
	feedback, _ := a.FeedbackFor(s.ID)
	e.store.AppendNotification(notification.New(notification.TypeGradePublished,
		s.ID.String(), fmt.Sprintf("Grade published for %q: %.1f/%d (%s)",
			a.Title, cmd.Points, a.MaxPoints, letter)))

	e.log.Info("assignment graded", logger.Command(command),
		logger.StudentID(cmd.StudentID), logger.AssignmentTitle(cmd.Title),
		logger.Grade(cmd.Points), logger.String("letter", letter))
	return GradeAssignmentResult{
		Assignment:  snapshotAssignment(a),
		Points:      cmd.Points,
		MaxPoints:   a.MaxPoints,
		Percentage:  a.GradePercentage(s.ID),
		LetterGrade: letter,
		Feedback:    feedback,
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// list_assignments
// ─────────────────────────────────────────────────────────────────────────────

// ListAssignmentsCommand lists a classroom's assignments, optionally by
// category.
type ListAssignmentsCommand struct {
	ClassName string `validate:"required,classroom_name"`
	Category  string // empty means all categories
}

// ListAssignmentsResult is the classroom's assignment schedule.
type ListAssignmentsResult struct {
	ClassName   string
	Assignments []AssignmentSnapshot
}

// ListAssignments returns the classroom's assignments in schedule order.
func (e *Engine) ListAssignments(cmd ListAssignmentsCommand) (ListAssignmentsResult, error) {
	const command = "list_assignments"

	if err := e.checkCommand(command, cmd); err != nil {
		return ListAssignmentsResult{}, e.fail(command, err)
	}
	c, err := e.resolveClassroom(cmd.ClassName)
	if err != nil {
		return ListAssignmentsResult{}, e.fail(command, err)
	}

	var list []*assignment.Assignment
	if strings.TrimSpace(cmd.Category) == "" {
		list = c.AllAssignments()
	} else {
		category, err := assignment.ParseCategory(cmd.Category)
		if err != nil {
			return ListAssignmentsResult{}, e.fail(command, err)
		}
		list = c.Assignments(category)
	}

	result := ListAssignmentsResult{
		ClassName:   c.Name.String(),
		Assignments: make([]AssignmentSnapshot, 0, len(list)),
	}
	for _, a := range list {
		result.Assignments = append(result.Assignments, snapshotAssignment(a))
	}
	return result, nil
}
