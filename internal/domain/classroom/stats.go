package classroom

import (
	"sort"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/assignment"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ANALYTICS
// Structured results only; rendering them for display is the caller's job.
// ══════════════════════════════════════════════════════════════════════════════

// Stats is an aggregate view over the classroom's roster, assignments,
// grades, and the current attendance snapshot.
type Stats struct {
	ClassroomID          string
	Name                 string
	Active               bool
	EnrolledCount        int
	MaxCapacity          int
	AssignmentCount      int
	GradedCount          int
	AverageGradePercent  float64
	AttendancePercent    float64
	CategoryBreakdown    map[assignment.Category]int
	GradeDistribution    map[string]int // letter grade -> graded-student count
}

// ComputeStats builds the aggregate view.
func (c *Classroom) ComputeStats() Stats {
	stats := Stats{
		ClassroomID:       c.ID,
		Name:              c.Name.String(),
		Active:            c.active,
		EnrolledCount:     len(c.roster),
		MaxCapacity:       c.maxCapacity,
		AssignmentCount:   len(c.assignments),
		AttendancePercent: c.OverallAttendancePercentage(),
		CategoryBreakdown: make(map[assignment.Category]int),
		GradeDistribution: make(map[string]int),
	}

	gradedPctSum := 0.0
	gradedEntries := 0
	for _, a := range c.assignments {
		stats.CategoryBreakdown[a.Category]++
		if a.Status() == assignment.StatusGraded {
			stats.GradedCount++
		}
		for _, id := range a.GradedStudentIDs() {
			gradedPctSum += a.GradePercentage(id)
			gradedEntries++
			stats.GradeDistribution[a.LetterGrade(id)]++
		}
	}
	if gradedEntries > 0 {
		stats.AverageGradePercent = gradedPctSum / float64(gradedEntries)
	}
	return stats
}

// AssignmentSubmissionStats describes submission progress for one assignment.
type AssignmentSubmissionStats struct {
	AssignmentID   string
	Title          string
	Status         assignment.Status
	SubmittedCount int
	GradedCount    int
	Overdue        bool
}

// SubmissionAnalytics summarizes submission progress across the classroom.
type SubmissionAnalytics struct {
	Assignments    []AssignmentSubmissionStats
	EnrolledCount  int
	SubmissionRate float64 // submitted entries / (assignments x enrolled), x100
}

// ComputeSubmissionAnalytics builds the submission summary.
func (c *Classroom) ComputeSubmissionAnalytics() SubmissionAnalytics {
	analytics := SubmissionAnalytics{
		Assignments:   make([]AssignmentSubmissionStats, 0, len(c.assignments)),
		EnrolledCount: len(c.roster),
	}

	totalSubmitted := 0
	for _, a := range c.assignments {
		totalSubmitted += a.SubmissionCount()
		analytics.Assignments = append(analytics.Assignments, AssignmentSubmissionStats{
			AssignmentID:   a.ID,
			Title:          a.Title.String(),
			Status:         a.Status(),
			SubmittedCount: a.SubmissionCount(),
			GradedCount:    len(a.GradedStudentIDs()),
			Overdue:        a.IsOverdue(),
		})
	}

	possible := len(c.assignments) * len(c.roster)
	if possible > 0 {
		analytics.SubmissionRate = float64(totalSubmitted) / float64(possible) * 100
	}
	return analytics
}

// AttendanceBand labels a student's attendance rate.
type AttendanceBand string

const (
	BandExcellent        AttendanceBand = "Excellent"         // >= 90
	BandGood             AttendanceBand = "Good"              // >= 75
	BandFair             AttendanceBand = "Fair"              // >= 60
	BandNeedsImprovement AttendanceBand = "Needs Improvement" // < 60
)

// BandFor maps a percentage to its attendance band.
func BandFor(rate float64) AttendanceBand {
	switch {
	case rate >= 90:
		return BandExcellent
	case rate >= 75:
		return BandGood
	case rate >= 60:
		return BandFair
	default:
		return BandNeedsImprovement
	}
}

// AttendanceReportEntry is one student's attendance summary.
type AttendanceReportEntry struct {
	StudentID shared.StudentID
	Name      string
	Rate      float64
	Band      AttendanceBand
}

// AttendanceReport lists per-student attendance rates, highest first,
// together with the classroom-wide rate.
type AttendanceReport struct {
	OverallRate float64
	Entries     []AttendanceReportEntry
}

// ComputeAttendanceReport builds the per-student report.
func (c *Classroom) ComputeAttendanceReport() AttendanceReport {
	report := AttendanceReport{
		OverallRate: c.OverallAttendancePercentage(),
		Entries:     make([]AttendanceReportEntry, 0, len(c.rosterOrder)),
	}
	for _, id := range c.rosterOrder {
		s := c.roster[id]
		rate := s.AttendancePercentage()
		report.Entries = append(report.Entries, AttendanceReportEntry{
			StudentID: id,
			Name:      s.Name.String(),
			Rate:      rate,
			Band:      BandFor(rate),
		})
	}
	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Rate > report.Entries[j].Rate
	})
	return report
}
