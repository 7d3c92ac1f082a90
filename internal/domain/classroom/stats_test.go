package classroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/assignment"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
)

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandExcellent, BandFor(100))
	assert.Equal(t, BandExcellent, BandFor(90))
	assert.Equal(t, BandGood, BandFor(89.9))
	assert.Equal(t, BandGood, BandFor(75))
	assert.Equal(t, BandFair, BandFor(60))
	assert.Equal(t, BandNeedsImprovement, BandFor(59.9))
	assert.Equal(t, BandNeedsImprovement, BandFor(0))
}

func TestComputeStats(t *testing.T) {
	c := newTestClassroom(t, 10)
	s1 := newTestStudent(t, "AB1111")
	s2 := newTestStudent(t, "AB2222")
	require.NoError(t, c.AddStudent(s1))
	require.NoError(t, c.AddStudent(s2))

	hw := newTestAssignment(t, "HW1", 100)
	require.NoError(t, c.ScheduleAssignment(hw))
	quiz, err := assignment.New(assignment.Config{
		Title: "Quiz 1", Description: "d", Category: assignment.CategoryQuiz, MaxPoints: 100,
	})
	require.NoError(t, err)
	require.NoError(t, c.ScheduleAssignment(quiz))

	hw.MarkSubmitted(s1.ID)
	require.NoError(t, hw.Grade(s1.ID, 92, ""))
	hw.MarkSubmitted(s2.ID)
	require.NoError(t, hw.Grade(s2.ID, 72, ""))

	stats := c.ComputeStats()
	assert.Equal(t, 2, stats.EnrolledCount)
	assert.Equal(t, 2, stats.AssignmentCount)
	assert.Equal(t, 1, stats.GradedCount)
	assert.Equal(t, 82.0, stats.AverageGradePercent)
	assert.Equal(t, 1, stats.CategoryBreakdown[assignment.CategoryHomework])
	assert.Equal(t, 1, stats.CategoryBreakdown[assignment.CategoryQuiz])
	assert.Equal(t, 1, stats.GradeDistribution["A"])
	assert.Equal(t, 1, stats.GradeDistribution["C"])
}

func TestComputeSubmissionAnalytics(t *testing.T) {
	c := newTestClassroom(t, 10)
	s1 := newTestStudent(t, "AB1111")
	s2 := newTestStudent(t, "AB2222")
	require.NoError(t, c.AddStudent(s1))
	require.NoError(t, c.AddStudent(s2))

	hw := newTestAssignment(t, "HW1", 100)
	lab := newTestAssignment(t, "Lab 1", 100)
	require.NoError(t, c.ScheduleAssignment(hw))
	require.NoError(t, c.ScheduleAssignment(lab))

	hw.MarkSubmitted(s1.ID)
	hw.MarkSubmitted(s2.ID)
	lab.MarkSubmitted(s1.ID)

	analytics := c.ComputeSubmissionAnalytics()
	assert.Equal(t, 2, analytics.EnrolledCount)
	require.Len(t, analytics.Assignments, 2)
	assert.Equal(t, 2, analytics.Assignments[0].SubmittedCount)
	assert.Equal(t, 1, analytics.Assignments[1].SubmittedCount)
	// 3 submissions over 2 assignments x 2 students
	assert.Equal(t, 75.0, analytics.SubmissionRate)
}

func TestComputeSubmissionAnalytics_EmptyClassroom(t *testing.T) {
	c := newTestClassroom(t, 10)
	analytics := c.ComputeSubmissionAnalytics()
	assert.Equal(t, 0.0, analytics.SubmissionRate)
	assert.Empty(t, analytics.Assignments)
}

func TestComputeAttendanceReport_SortedByRate(t *testing.T) {
	c := newTestClassroom(t, 10)
	s1 := newTestStudent(t, "AB1111")
	s2 := newTestStudent(t, "AB2222")
	require.NoError(t, c.AddStudent(s1))
	require.NoError(t, c.AddStudent(s2))

	require.NoError(t, c.MarkAttendance(map[shared.StudentID]bool{"AB2222": true}))

	report := c.ComputeAttendanceReport()
	assert.Equal(t, 50.0, report.OverallRate)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, shared.StudentID("AB2222"), report.Entries[0].StudentID)
	assert.Equal(t, 100.0, report.Entries[0].Rate)
	assert.Equal(t, BandExcellent, report.Entries[0].Band)
	assert.Equal(t, shared.StudentID("AB1111"), report.Entries[1].StudentID)
	assert.Equal(t, BandNeedsImprovement, report.Entries[1].Band)
}
