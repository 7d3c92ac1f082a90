// Package assignment contains the domain model for a gradable unit of work.
// An assignment belongs to exactly one classroom; submission and grading are
// tracked per student, while the lifecycle status is a single
// classroom-wide flag (see Status).
package assignment

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Status represents the lifecycle of an assignment.
//
// The status is classroom-wide, not per student: the first submission by any
// student moves SCHEDULED to SUBMITTED, the first grade moves it to GRADED.
// Per-student progress stays queryable through HasSubmitted and GradeFor.
// There is no transition back.
type Status string

const (
	// StatusScheduled - the assignment exists but nobody has submitted.
	StatusScheduled Status = "SCHEDULED"
	// StatusSubmitted - at least one student has submitted.
	StatusSubmitted Status = "SUBMITTED"
	// StatusGraded - at least one submission has been graded.
	StatusGraded Status = "GRADED"
)

// IsValid checks if the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusSubmitted, StatusGraded:
		return true
	}
	return false
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// Category classifies an assignment and carries a default point value
// used when the caller does not supply maxPoints.
type Category string

const (
	CategoryHomework     Category = "HOMEWORK"
	CategoryProject      Category = "PROJECT"
	CategoryQuiz         Category = "QUIZ"
	CategoryExam         Category = "EXAM"
	CategoryPresentation Category = "PRESENTATION"
	CategoryResearch     Category = "RESEARCH"
	CategoryLab          Category = "LAB"
	CategoryDiscussion   Category = "DISCUSSION"
)

// IsValid checks if the category is one of the known values.
func (c Category) IsValid() bool {
	_, ok := categoryDefaults[c]
	return ok
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// DefaultMaxPoints returns the default point value for the category.
func (c Category) DefaultMaxPoints() int {
	return categoryDefaults[c]
}

var categoryDefaults = map[Category]int{
	CategoryHomework:     10,
	CategoryProject:      25,
	CategoryQuiz:         15,
	CategoryExam:         30,
	CategoryPresentation: 20,
	CategoryResearch:     25,
	CategoryLab:          15,
	CategoryDiscussion:   5,
}

// ParseCategory parses a category string, case-insensitively.
func ParseCategory(value string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(value)))
	if !c.IsValid() {
		return "", shared.NewDomainError("assignment", "ParseCategory", shared.ErrInvalidFormat,
			fmt.Sprintf("unknown assignment category: %s", value))
	}
	return c, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Assignment is a gradable unit of work scoped to one classroom.
// Multiple students submit and are graded independently.
type Assignment struct {
	ID          string
	Title       shared.AssignmentTitle
	Description string
	Category    Category
	MaxPoints   int
	DueDate     time.Time // zero value means no due date
	CreatedAt   time.Time

	status      Status
	submittedAt map[shared.StudentID]time.Time
	files       map[shared.StudentID][]string
	grades      map[shared.StudentID]float64
	feedbacks   map[shared.StudentID]string
}

// Config carries the fields needed to create an Assignment.
// All validation happens before construction; a partially valid
// Assignment never exists.
type Config struct {
	Title       string
	Description string
	Category    Category
	MaxPoints   int // 0 means "use the category default"
	DueDate     time.Time
	Now         time.Time // injectable clock for tests; zero means time.Now
}

// New validates the config and creates an Assignment in status SCHEDULED.
func New(cfg Config) (*Assignment, error) {
	title, err := shared.NewAssignmentTitle(cfg.Title)
	if err != nil {
		return nil, err
	}
	if err := shared.ValidateNotEmpty(cfg.Description, "description"); err != nil {
		return nil, shared.WrapError("assignment", "New", shared.ErrValidation, "description cannot be empty", err)
	}

	category := cfg.Category
	if category == "" {
		category = CategoryHomework
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("assignment", "New", shared.ErrInvalidFormat,
			fmt.Sprintf("unknown assignment category: %s", category))
	}

	maxPoints := cfg.MaxPoints
	if maxPoints == 0 {
		maxPoints = category.DefaultMaxPoints()
	}
	if maxPoints <= 0 {
		return nil, shared.NewDomainError("assignment", "New", shared.ErrValueOutOfRange,
			fmt.Sprintf("maxPoints must be greater than 0, got: %d", cfg.MaxPoints))
	}

	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	if !cfg.DueDate.IsZero() && cfg.DueDate.Before(now) {
		return nil, shared.NewDomainError("assignment", "New", shared.ErrValueOutOfRange,
			"due date must be in the future")
	}

	return &Assignment{
		ID:          "ASG-" + uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(cfg.Description),
		Category:    category,
		MaxPoints:   maxPoints,
		DueDate:     cfg.DueDate,
		CreatedAt:   now,
		status:      StatusScheduled,
		submittedAt: make(map[shared.StudentID]time.Time),
		files:       make(map[shared.StudentID][]string),
		grades:      make(map[shared.StudentID]float64),
		feedbacks:   make(map[shared.StudentID]string),
	}, nil
}

// Status returns the classroom-wide lifecycle status.
func (a *Assignment) Status() Status {
	return a.status
}

// ─────────────────────────────────────────────────────────────────────────────
// Submission
// ─────────────────────────────────────────────────────────────────────────────

// MarkSubmitted records that the student has submitted. Idempotent: a repeat
// call neither errors nor resets the submission time.
func (a *Assignment) MarkSubmitted(studentID shared.StudentID) {
	if _, ok := a.submittedAt[studentID]; !ok {
		a.submittedAt[studentID] = time.Now()
	}
	if a.status == StatusScheduled {
		a.status = StatusSubmitted
	}
}

// HasSubmitted reports whether the student has submitted.
func (a *Assignment) HasSubmitted(studentID shared.StudentID) bool {
	_, ok := a.submittedAt[studentID]
	return ok
}

// SubmittedAt returns the submission time for the student.
func (a *Assignment) SubmittedAt(studentID shared.StudentID) (time.Time, bool) {
	t, ok := a.submittedAt[studentID]
	return t, ok
}

// SubmittedStudentIDs returns the ids of all students who submitted, sorted.
func (a *Assignment) SubmittedStudentIDs() []shared.StudentID {
	ids := make([]shared.StudentID, 0, len(a.submittedAt))
	for id := range a.submittedAt {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SubmissionCount returns the number of students who submitted.
func (a *Assignment) SubmissionCount() int {
	return len(a.submittedAt)
}

// AddSubmittedFile records a filename for the student's submission.
// A duplicate filename for the same student is rejected.
func (a *Assignment) AddSubmittedFile(studentID shared.StudentID, fileName string) error {
	if err := shared.ValidateNotEmpty(fileName, "fileName"); err != nil {
		return err
	}
	for _, existing := range a.files[studentID] {
		if existing == fileName {
			return shared.NewDomainError("assignment", "AddSubmittedFile", shared.ErrAlreadyExists,
				fmt.Sprintf("file already submitted: %s", fileName))
		}
	}
	a.files[studentID] = append(a.files[studentID], fileName)
	return nil
}

// FilesFor returns the filenames the student has submitted, in order.
func (a *Assignment) FilesFor(studentID shared.StudentID) []string {
	files := a.files[studentID]
	out := make([]string, len(files))
	copy(out, files)
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Grading
// ─────────────────────────────────────────────────────────────────────────────

// Grade records points and feedback for a student's submission.
// Fails when the student never submitted or when points fall outside
// [0, MaxPoints]. The first grade moves the assignment to GRADED.
func (a *Assignment) Grade(studentID shared.StudentID, points float64, feedback string) error {
	if !a.HasSubmitted(studentID) {
		return shared.NewDomainError("assignment", "Grade", shared.ErrStateTransition,
			fmt.Sprintf("student %s has not submitted: %s", studentID, a.Title))
	}
	if points < 0 || points > float64(a.MaxPoints) {
		return shared.NewDomainError("assignment", "Grade", shared.ErrInvalidGrade,
			fmt.Sprintf("grade must be between 0 and %d, got: %.2f", a.MaxPoints, points))
	}

	if feedback == "" {
		feedback = "No feedback provided"
	}
	a.grades[studentID] = points
	a.feedbacks[studentID] = feedback
	a.status = StatusGraded
	return nil
}

// GradeFor returns the recorded grade for the student.
func (a *Assignment) GradeFor(studentID shared.StudentID) (float64, bool) {
	g, ok := a.grades[studentID]
	return g, ok
}

// FeedbackFor returns the recorded feedback for the student.
func (a *Assignment) FeedbackFor(studentID shared.StudentID) (string, bool) {
	f, ok := a.feedbacks[studentID]
	return f, ok
}

// GradedStudentIDs returns the ids of all graded students, sorted.
func (a *Assignment) GradedStudentIDs() []shared.StudentID {
	ids := make([]shared.StudentID, 0, len(a.grades))
	for id := range a.grades {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// GradePercentage returns the student's grade as a percentage of MaxPoints.
// Returns 0 for ungraded students.
func (a *Assignment) GradePercentage(studentID shared.StudentID) float64 {
	grade, ok := a.grades[studentID]
	if !ok || a.MaxPoints == 0 {
		return 0
	}
	return grade / float64(a.MaxPoints) * 100
}

// LetterGrade maps the student's grade percentage to an A-F band.
func (a *Assignment) LetterGrade(studentID shared.StudentID) string {
	percentage := a.GradePercentage(studentID)
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Deadlines
// ─────────────────────────────────────────────────────────────────────────────

// IsOverdue reports whether the due date has passed while the assignment
// is still SCHEDULED. Assignments without a due date are never overdue.
func (a *Assignment) IsOverdue() bool {
	if a.DueDate.IsZero() {
		return false
	}
	return time.Now().After(a.DueDate) && a.status == StatusScheduled
}

// DueWithin reports whether the assignment has a due date inside the next d,
// and is not yet overdue.
func (a *Assignment) DueWithin(d time.Duration) bool {
	if a.DueDate.IsZero() || a.IsOverdue() {
		return false
	}
	now := time.Now()
	return a.DueDate.After(now) && a.DueDate.Before(now.Add(d))
}

// String returns a compact representation for logs.
func (a *Assignment) String() string {
	return fmt.Sprintf("Assignment{id=%s, title=%q, category=%s, status=%s, submissions=%d}",
		a.ID, a.Title, a.Category, a.status, len(a.submittedAt))
}
