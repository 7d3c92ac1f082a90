package engine

import (
	"fmt"
	"time"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/classroom"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/notification"
	"github.com/vcm-hub/virtual-classroom-manager/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ANALYTICS AND NOTIFICATION COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// DueDateReminderWindow is how far ahead notify_due_dates looks.
const DueDateReminderWindow = 7 * 24 * time.Hour

// ClassroomAnalytics returns the aggregate stats for one classroom.
func (e *Engine) ClassroomAnalytics(className string) (classroom.Stats, error) {
	const command = "classroom_analytics"

	c, err := e.resolveClassroom(className)
	if err != nil {
		return classroom.Stats{}, e.fail(command, err)
	}
	return c.ComputeStats(), nil
}

// SubmissionAnalytics returns per-assignment submission progress for one
// classroom.
func (e *Engine) SubmissionAnalytics(className string) (classroom.SubmissionAnalytics, error) {
	const command = "submission_analytics"

	c, err := e.resolveClassroom(className)
	if err != nil {
		return classroom.SubmissionAnalytics{}, e.fail(command, err)
	}
	return c.ComputeSubmissionAnalytics(), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// student_progress
// ─────────────────────────────────────────────────────────────────────────────

// ClassProgress is one classroom entry in a student progress report.
type ClassProgress struct {
	ClassName       string
	AssignmentCount int
	SubmittedCount  int
	GradedCount     int
	AveragePercent  float64 // mean grade percentage over graded submissions
}

// StudentProgressResult is the cross-classroom progress view for a student.
type StudentProgressResult struct {
	Student StudentSnapshot
	Classes []ClassProgress
}

// StudentProgress reports the student's submission and grade progress in
// every classroom they are enrolled in.
func (e *Engine) StudentProgress(studentID string) (StudentProgressResult, error) {
	const command = "student_progress"

	s, err := e.resolveStudent(studentID)
	if err != nil {
		return StudentProgressResult{}, e.fail(command, err)
	}

	result := StudentProgressResult{Student: snapshotStudent(s)}
	for _, name := range s.EnrolledClassrooms() {
		progress := ClassProgress{ClassName: name.String()}
		if c, ok := e.store.Classroom(name); ok {
			progress.AssignmentCount = c.AssignmentCount()
			for _, a := range c.AllAssignments() {
				if !a.HasSubmitted(s.ID) {
					continue
				}
				progress.SubmittedCount++
				if _, graded := a.GradeFor(s.ID); graded {
					progress.GradedCount++
					progress.AveragePercent += a.GradePercentage(s.ID)
				}
			}
			if progress.GradedCount > 0 {
				progress.AveragePercent /= float64(progress.GradedCount)
			}
		}
		result.Classes = append(result.Classes, progress)
	}
	return result, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// notify_due_dates
// ─────────────────────────────────────────────────────────────────────────────

// NotifyDueDates appends a due-date reminder for every enrolled student of
// every assignment due within the reminder window. Returns the number of
// reminders appended.
func (e *Engine) NotifyDueDates(className string) (int, error) {
	const command = "notify_due_dates"

	c, err := e.resolveClassroom(className)
	if err != nil {
		return 0, e.fail(command, err)
	}

	count := 0
	for _, a := range c.AllAssignments() {
		if !a.DueWithin(DueDateReminderWindow) {
			continue
		}
		for _, s := range c.AllStudents() {
			if a.HasSubmitted(s.ID) {
				continue
			}
			e.store.AppendNotification(notification.New(notification.TypeDueDateReminder,
				s.ID.String(), fmt.Sprintf("Assignment %q in %s is due %s",
					a.Title, c.Name, a.DueDate.Format("2006-01-02"))))
			count++
		}
	}

	e.log.Info("due date reminders sent", logger.Command(command),
		logger.ClassName(className), logger.Int("count", count))
	return count, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// notify_grades
// ─────────────────────────────────────────────────────────────────────────────

// NotifyGrades appends a grade summary record for every graded student of
// every assignment in the classroom. Returns the number of records appended.
func (e *Engine) NotifyGrades(className string) (int, error) {
	const command = "notify_grades"

	c, err := e.resolveClassroom(className)
	if err != nil {
		return 0, e.fail(command, err)
	}

	count := 0
	for _, a := range c.AllAssignments() {
		for _, id := range a.GradedStudentIDs() {
			grade, _ := a.GradeFor(id)
			e.store.AppendNotification(notification.New(notification.TypeGradePublished,
				id.String(), fmt.Sprintf("Grade summary for %q in %s: %.1f/%d (%s)",
					a.Title, c.Name, grade, a.MaxPoints, a.LetterGrade(id))))
			count++
		}
	}

	e.log.Info("grade summaries sent", logger.Command(command),
		logger.ClassName(className), logger.Int("count", count))
	return count, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// notifications
// ─────────────────────────────────────────────────────────────────────────────

// Notifications returns the full notification log in append order.
func (e *Engine) Notifications() []notification.Notification {
	return e.store.Notifications()
}
