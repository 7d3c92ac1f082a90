package engine

import (
	"fmt"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/classroom"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/notification"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
	"github.com/vcm-hub/virtual-classroom-manager/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// MarkAttendanceCommand records an attendance snapshot for a classroom.
// Enrolled students missing from Marks are recorded absent.
type MarkAttendanceCommand struct {
	ClassName string `validate:"required,classroom_name"`
	Marks     map[string]bool
}

// MarkAttendanceResult summarizes the recorded snapshot.
type MarkAttendanceResult struct {
	ClassName   string
	Present     int
	Absent      int
	Enrolled    int
	OverallRate float64
}

// MarkAttendance replaces the classroom's attendance snapshot. Every
// enrolled student gets a slot; ids outside the roster are rejected before
// anything is recorded. Each absent student in the final snapshot produces
// an absence alert.
func (e *Engine) MarkAttendance(cmd MarkAttendanceCommand) (MarkAttendanceResult, error) {
	const command = "mark_attendance"

	if err := e.checkCommand(command, cmd); err != nil {
		return MarkAttendanceResult{}, e.fail(command, err)
	}
	c, err := e.resolveClassroom(cmd.ClassName)
	if err != nil {
		return MarkAttendanceResult{}, e.fail(command, err)
	}

	marks := make(map[shared.StudentID]bool, len(cmd.Marks))
	for id, present := range cmd.Marks {
		marks[shared.StudentID(id)] = present
	}
	if err := c.MarkAttendance(marks); err != nil {
		return MarkAttendanceResult{}, e.fail(command, err)
	}

	result := MarkAttendanceResult{
		ClassName:   c.Name.String(),
		OverallRate: c.OverallAttendancePercentage(),
	}
	for id, present := range c.AttendanceSnapshot() {
		result.Enrolled++
		if present {
			result.Present++
			continue
		}
		result.Absent++
		e.store.AppendNotification(notification.New(notification.TypeAbsenceAlert,
			id.String(), fmt.Sprintf("Absence recorded in %s", c.Name)))
	}

	e.log.Info("attendance recorded", logger.Command(command),
		logger.ClassName(cmd.ClassName), logger.PresentCount(result.Present),
		logger.EnrolledCount(result.Enrolled))
	return result, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// view_attendance
// ─────────────────────────────────────────────────────────────────────────────

// ViewAttendanceResult is the classroom's current attendance snapshot.
type ViewAttendanceResult struct {
	ClassName   string
	Marks       map[shared.StudentID]bool
	OverallRate float64
}

// ViewAttendance returns the current snapshot without mutating anything.
func (e *Engine) ViewAttendance(className string) (ViewAttendanceResult, error) {
	const command = "view_attendance"

	c, err := e.resolveClassroom(className)
	if err != nil {
		return ViewAttendanceResult{}, e.fail(command, err)
	}
	return ViewAttendanceResult{
		ClassName:   c.Name.String(),
		Marks:       c.AttendanceSnapshot(),
		OverallRate: c.OverallAttendancePercentage(),
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// attendance_report
// ─────────────────────────────────────────────────────────────────────────────

// AttendanceReport returns the per-student report, highest rate first.
func (e *Engine) AttendanceReport(className string) (classroom.AttendanceReport, error) {
	const command = "attendance_report"

	c, err := e.resolveClassroom(className)
	if err != nil {
		return classroom.AttendanceReport{}, e.fail(command, err)
	}
	return c.ComputeAttendanceReport(), nil
}
