package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
)

func newTestAssignment(t *testing.T, cfg Config) *Assignment {
	t.Helper()
	if cfg.Title == "" {
		cfg.Title = "HW1"
	}
	if cfg.Description == "" {
		cfg.Description = "Chapter 1 exercises"
	}
	a, err := New(cfg)
	require.NoError(t, err)
	return a
}

func TestNew_Defaults(t *testing.T) {
	a := newTestAssignment(t, Config{})

	assert.Equal(t, CategoryHomework, a.Category)
	assert.Equal(t, 10, a.MaxPoints) // homework default
	assert.Equal(t, StatusScheduled, a.Status())
	assert.True(t, a.DueDate.IsZero())
	assert.Contains(t, a.ID, "ASG-")
}

func TestNew_CategoryDefaults(t *testing.T) {
	cases := map[Category]int{
		CategoryHomework:     10,
		CategoryProject:      25,
		CategoryQuiz:         15,
		CategoryExam:         30,
		CategoryPresentation: 20,
		CategoryResearch:     25,
		CategoryLab:          15,
		CategoryDiscussion:   5,
	}
	for category, points := range cases {
		a := newTestAssignment(t, Config{Category: category})
		assert.Equal(t, points, a.MaxPoints, "category %s", category)
	}
}

func TestNew_ExplicitMaxPointsWins(t *testing.T) {
	a := newTestAssignment(t, Config{Category: CategoryExam, MaxPoints: 100})
	assert.Equal(t, 100, a.MaxPoints)
}

func TestNew_Rejections(t *testing.T) {
	_, err := New(Config{Title: "X", Description: "desc"})
	assert.Error(t, err, "title too short")

	_, err = New(Config{Title: "HW1", Description: "   "})
	assert.Error(t, err, "blank description")

	_, err = New(Config{Title: "HW1", Description: "desc", Category: "SOMETHING"})
	assert.ErrorIs(t, err, shared.ErrInvalidFormat)

	now := time.Now()
	_, err = New(Config{Title: "HW1", Description: "desc", DueDate: now.Add(-time.Hour), Now: now})
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("quiz")
	assert.NoError(t, err)
	assert.Equal(t, CategoryQuiz, c)

	c, err = ParseCategory("  EXAM ")
	assert.NoError(t, err)
	assert.Equal(t, CategoryExam, c)

	_, err = ParseCategory("essay")
	assert.ErrorIs(t, err, shared.ErrInvalidFormat)
}

func TestMarkSubmitted_StatusAndIdempotency(t *testing.T) {
	a := newTestAssignment(t, Config{})
	id := shared.StudentID("AB1234")

	a.MarkSubmitted(id)
	assert.Equal(t, StatusSubmitted, a.Status())
	assert.True(t, a.HasSubmitted(id))
	first, ok := a.SubmittedAt(id)
	require.True(t, ok)

	// repeat submission keeps the original timestamp
	a.MarkSubmitted(id)
	second, _ := a.SubmittedAt(id)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, a.SubmissionCount())
}

func TestAddSubmittedFile_RejectsDuplicatePerStudent(t *testing.T) {
	a := newTestAssignment(t, Config{})
	id := shared.StudentID("AB1234")
	a.MarkSubmitted(id)

	assert.NoError(t, a.AddSubmittedFile(id, "main.go"))
	err := a.AddSubmittedFile(id, "main.go")
	assert.True(t, shared.IsAlreadyExists(err))

	// the same filename from a different student is fine
	other := shared.StudentID("CD5678")
	a.MarkSubmitted(other)
	assert.NoError(t, a.AddSubmittedFile(other, "main.go"))

	assert.Equal(t, []string{"main.go"}, a.FilesFor(id))
}

func TestGrade_RequiresSubmission(t *testing.T) {
	a := newTestAssignment(t, Config{MaxPoints: 100})
	err := a.Grade("AB1234", 50, "")
	assert.True(t, shared.IsStateTransition(err))
	assert.Equal(t, StatusScheduled, a.Status())
}

func TestGrade_RangeAndFeedback(t *testing.T) {
	a := newTestAssignment(t, Config{MaxPoints: 100})
	id := shared.StudentID("AB1234")
	a.MarkSubmitted(id)

	assert.ErrorIs(t, a.Grade(id, -1, ""), shared.ErrInvalidGrade)
	assert.ErrorIs(t, a.Grade(id, 101, ""), shared.ErrInvalidGrade)

	require.NoError(t, a.Grade(id, 92, ""))
	assert.Equal(t, StatusGraded, a.Status())

	grade, ok := a.GradeFor(id)
	require.True(t, ok)
	assert.Equal(t, 92.0, grade)

	feedback, ok := a.FeedbackFor(id)
	require.True(t, ok)
	assert.Equal(t, "No feedback provided", feedback)
}

func TestGrade_BoundariesAreValid(t *testing.T) {
	a := newTestAssignment(t, Config{MaxPoints: 100})
	id := shared.StudentID("AB1234")
	a.MarkSubmitted(id)

	assert.NoError(t, a.Grade(id, 0, "zero"))
	assert.NoError(t, a.Grade(id, 100, "full marks"))
}

func TestLetterGrade(t *testing.T) {
	a := newTestAssignment(t, Config{MaxPoints: 100})
	cases := []struct {
		points float64
		letter string
	}{
		{92, "A"}, {90, "A"}, {85, "B"}, {80, "B"},
		{75, "C"}, {65, "D"}, {59, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		id := shared.StudentID("AB1234")
		a.MarkSubmitted(id)
		require.NoError(t, a.Grade(id, tc.points, ""))
		assert.Equal(t, tc.letter, a.LetterGrade(id), "points %.0f", tc.points)
	}
}

func TestGradePercentage_UngradedIsZero(t *testing.T) {
	a := newTestAssignment(t, Config{MaxPoints: 100})
	assert.Equal(t, 0.0, a.GradePercentage("AB1234"))
}

func TestIsOverdue(t *testing.T) {
	base := time.Now()
	a := newTestAssignment(t, Config{DueDate: base.Add(10 * time.Millisecond), Now: base})
	time.Sleep(20 * time.Millisecond)

	assert.True(t, a.IsOverdue())

	// a submission clears the overdue flag: status is no longer SCHEDULED
	a.MarkSubmitted("AB1234")
	assert.False(t, a.IsOverdue())
}

func TestIsOverdue_NoDueDate(t *testing.T) {
	a := newTestAssignment(t, Config{})
	assert.False(t, a.IsOverdue())
}

func TestDueWithin(t *testing.T) {
	soon := newTestAssignment(t, Config{Title: "HW2", DueDate: time.Now().Add(48 * time.Hour)})
	far := newTestAssignment(t, Config{Title: "HW3", DueDate: time.Now().Add(30 * 24 * time.Hour)})
	none := newTestAssignment(t, Config{Title: "HW4"})

	window := 7 * 24 * time.Hour
	assert.True(t, soon.DueWithin(window))
	assert.False(t, far.DueWithin(window))
	assert.False(t, none.DueWithin(window))
}

func TestSubmittedStudentIDs_Sorted(t *testing.T) {
	a := newTestAssignment(t, Config{})
	a.MarkSubmitted("ZZ9999")
	a.MarkSubmitted("AA1111")
	a.MarkSubmitted("MM5555")

	assert.Equal(t, []shared.StudentID{"AA1111", "MM5555", "ZZ9999"}, a.SubmittedStudentIDs())
}
