// Package main is the interactive console for the virtual classroom manager.
// It reads one command per line from stdin, dispatches it to the engine, and
// prints the result. All state is in memory and scoped to one run.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vcm-hub/virtual-classroom-manager/config"
	"github.com/vcm-hub/virtual-classroom-manager/internal/engine"
	"github.com/vcm-hub/virtual-classroom-manager/internal/store"
	"github.com/vcm-hub/virtual-classroom-manager/pkg/logger"
)

func main() {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Output: os.Stderr,
		Level:  logger.ParseLevel(cfg.Observability.LogLevel),
		Format: logger.ParseFormat(cfg.Observability.LogFormat),
	})

	eng := engine.New(store.New(), log, engine.Options{
		DefaultCapacity: cfg.Engine.DefaultCapacity,
		DefaultPageSize: cfg.Engine.DefaultPageSize,
	})

	console := &console{
		engine: eng,
		in:     bufio.NewScanner(os.Stdin),
		out:    os.Stdout,
	}

	fmt.Fprintf(console.out, "%s %s - type 'help' for commands, 'exit' to quit\n",
		cfg.App.Name, cfg.App.Version)
	console.run()
}

// ══════════════════════════════════════════════════════════════════════════════
// CONSOLE
// ══════════════════════════════════════════════════════════════════════════════

type console struct {
	engine *engine.Engine
	in     *bufio.Scanner
	out    *os.File
}

func (c *console) run() {
	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}

		args := tokenize(line)
		command := strings.ToLower(args[0])
		if command == "exit" || command == "quit" {
			fmt.Fprintln(c.out, "Bye.")
			return
		}
		if err := c.dispatch(command, args[1:]); err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

// tokenize splits a command line on spaces, honoring double quotes so
// multi-word names stay a single argument.
func tokenize(line string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' && !inQuotes:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

func (c *console) dispatch(command string, args []string) error {
	switch command {
	case "help":
		c.printHelp()
		return nil

	// Classrooms
	case "add_classroom":
		return c.addClassroom(args)
	case "list_classrooms":
		return c.listClassrooms(args)
	case "classroom_details":
		return c.classroomDetails(args)
	case "update_classroom":
		return c.updateClassroom(args)
	case "activate_classroom":
		return c.requireArgs(args, 1, func() error { return c.engine.ActivateClassroom(args[0]) })
	case "deactivate_classroom":
		return c.requireArgs(args, 1, func() error { return c.engine.DeactivateClassroom(args[0]) })
	case "remove_classroom":
		return c.removeClassroom(args)

	// Students
	case "add_student":
		return c.addStudent(args)
	case "remove_student":
		return c.removeStudent(args)
	case "list_students":
		return c.listStudents(args)
	case "student_profile":
		return c.studentProfile(args)
	case "student_progress":
		return c.studentProgress(args)
	case "update_student":
		return c.updateStudent(args)

	// Assignments
	case "schedule_assignment":
		return c.scheduleAssignment(args)
	case "submit_assignment":
		return c.submitAssignment(args)
	case "grade_assignment":
		return c.gradeAssignment(args)
	case "list_assignments":
		return c.listAssignments(args)

	// Attendance
	case "mark_attendance":
		return c.markAttendance(args)
	case "view_attendance":
		return c.viewAttendance(args)
	case "attendance_report":
		return c.attendanceReport(args)

	// Analytics
	case "classroom_analytics":
		return c.classroomAnalytics(args)
	case "submission_analytics":
		return c.submissionAnalytics(args)
	case "notify_due_dates":
		return c.notifyDueDates(args)
	case "notify_grades":
		return c.notifyGrades(args)
	case "notifications":
		return c.listNotifications()

	default:
		return fmt.Errorf("unknown command: %s (type 'help')", command)
	}
}

func (c *console) requireArgs(args []string, n int, fn func() error) error {
	if len(args) < n {
		return fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return fn()
}

// confirm asks a yes/no question on the console.
func (c *console) confirm(question string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", question)
	if !c.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

// ─────────────────────────────────────────────────────────────────────────────
// Classroom commands
// ─────────────────────────────────────────────────────────────────────────────

func (c *console) addClassroom(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: add_classroom <name> [description] [capacity]")
	}
	cmd := engine.AddClassroomCommand{Name: args[0]}
	if len(args) > 1 {
		cmd.Description = args[1]
	}
	if len(args) > 2 {
		capacity, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("capacity must be a number: %s", args[2])
		}
		cmd.MaxCapacity = capacity
	}
	snap, err := c.engine.AddClassroom(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Classroom %s has been created (capacity %d).\n", snap.Name, snap.MaxCapacity)
	return nil
}

func (c *console) listClassrooms(args []string) error {
	cmd := engine.ListClassroomsCommand{}
	if len(args) > 0 {
		page, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("page must be a number: %s", args[0])
		}
		cmd.Page = page
	}
	if len(args) > 1 {
		cmd.Filter = args[1]
	}
	result, err := c.engine.ListClassrooms(cmd)
	if err != nil {
		return err
	}
	if result.TotalMatched == 0 {
		fmt.Fprintln(c.out, "No classrooms found.")
		return nil
	}
	fmt.Fprintf(c.out, "Classrooms (%d total):\n", result.TotalMatched)
	for _, snap := range result.Classrooms {
		state := "active"
		if !snap.Active {
			state = "inactive"
		}
		fmt.Fprintf(c.out, "  %-20s %d/%d students, %d assignments [%s]\n",
			snap.Name, snap.EnrolledCount, snap.MaxCapacity, snap.AssignmentCount, state)
	}
	return nil
}

func (c *console) classroomDetails(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: classroom_details <name>")
	}
	details, err := c.engine.ClassroomDetails(args[0])
	if err != nil {
		return err
	}
	snap := details.Classroom
	fmt.Fprintf(c.out, "Classroom %s (%s)\n", snap.Name, snap.ID)
	fmt.Fprintf(c.out, "  Description: %s\n", snap.Description)
	fmt.Fprintf(c.out, "  Enrolled:    %d/%d\n", snap.EnrolledCount, snap.MaxCapacity)
	fmt.Fprintf(c.out, "  Assignments: %d (%d graded)\n", snap.AssignmentCount, details.Stats.GradedCount)
	fmt.Fprintf(c.out, "  Avg grade:   %.1f%%\n", details.Stats.AverageGradePercent)
	fmt.Fprintf(c.out, "  Attendance:  %.1f%%\n", details.Stats.AttendancePercent)
	fmt.Fprintf(c.out, "  Submissions: %.1f%% rate\n", details.Submissions.SubmissionRate)
	return nil
}

func (c *console) updateClassroom(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: update_classroom <name> <field: name|description|capacity> <value>")
	}
	cmd := engine.UpdateClassroomCommand{Name: args[0]}
	switch strings.ToLower(args[1]) {
	case "name":
		cmd.NewName = &args[2]
	case "description":
		cmd.NewDescription = &args[2]
	case "capacity":
		capacity, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("capacity must be a number: %s", args[2])
		}
		cmd.NewMaxCapacity = &capacity
	default:
		return fmt.Errorf("unknown field: %s", args[1])
	}
	snap, err := c.engine.UpdateClassroom(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Classroom %s has been updated.\n", snap.Name)
	return nil
}

func (c *console) removeClassroom(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: remove_classroom <name>")
	}
	plan, err := c.engine.PlanClassroomRemoval(args[0])
	if err != nil {
		return err
	}
	if plan.RequiresConfirmation {
		question := fmt.Sprintf("Removing %s unenrolls %d student(s) with %d pending submission(s). Continue?",
			plan.ClassName, len(plan.AffectedStudents), plan.PendingSubmissions)
		if !c.confirm(question) {
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
	}
	if err := c.engine.CommitClassroomRemoval(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Classroom %s has been removed.\n", plan.ClassName)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Student commands
// ─────────────────────────────────────────────────────────────────────────────

func (c *console) addStudent(args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: add_student <id> <name> <email> <class>")
	}
	result, err := c.engine.AddStudent(engine.AddStudentCommand{
		StudentID: args[0],
		Name:      args[1],
		Email:     args[2],
		ClassName: args[3],
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Student %s has been enrolled in %s.\n", result.Student.ID, result.ClassName)
	return nil
}

func (c *console) removeStudent(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: remove_student <id> <class>")
	}
	plan, err := c.engine.PlanStudentRemoval(args[0], args[1])
	if err != nil {
		return err
	}
	if plan.RequiresConfirmation {
		question := fmt.Sprintf("Student %s has %d pending assignment(s) in %s. Remove anyway?",
			plan.StudentID, len(plan.PendingAssignments), plan.ClassName)
		if !c.confirm(question) {
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
	}
	if err := c.engine.CommitStudentRemoval(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Student %s has been removed from %s.\n", plan.StudentID, plan.ClassName)
	return nil
}

func (c *console) listStudents(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: list_students <class> [page] [filter]")
	}
	cmd := engine.ListStudentsCommand{ClassName: args[0]}
	if len(args) > 1 {
		page, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("page must be a number: %s", args[1])
		}
		cmd.Page = page
	}
	if len(args) > 2 {
		cmd.Filter = args[2]
	}
	result, err := c.engine.ListStudents(cmd)
	if err != nil {
		return err
	}
	if result.TotalMatched == 0 {
		fmt.Fprintf(c.out, "No students in %s.\n", result.ClassName)
		return nil
	}
	fmt.Fprintf(c.out, "Students in %s (%d total):\n", result.ClassName, result.TotalMatched)
	for _, s := range result.Students {
		fmt.Fprintf(c.out, "  %-10s %-25s avg %.1f, attendance %.1f%%\n",
			s.ID, s.Name, s.GradeAverage, s.AttendancePercent)
	}
	return nil
}

func (c *console) studentProfile(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: student_profile <id>")
	}
	profile, err := c.engine.StudentProfile(args[0])
	if err != nil {
		return err
	}
	s := profile.Student
	fmt.Fprintf(c.out, "Student %s: %s <%s>\n", s.ID, s.Name, s.Email)
	fmt.Fprintf(c.out, "  Grade average: %.1f\n", s.GradeAverage)
	fmt.Fprintf(c.out, "  Attendance:    %.1f%%\n", s.AttendancePercent)
	fmt.Fprintf(c.out, "  Submitted:     %d assignment(s)\n", s.TotalSubmitted)
	for _, enr := range profile.Enrollments {
		fmt.Fprintf(c.out, "  Enrolled in %s (%d submitted)\n", enr.ClassName, enr.SubmittedCount)
	}
	return nil
}

func (c *console) studentProgress(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: student_progress <id>")
	}
	progress, err := c.engine.StudentProgress(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Progress for %s:\n", progress.Student.ID)
	for _, class := range progress.Classes {
		fmt.Fprintf(c.out, "  %-20s %d/%d submitted, %d graded, avg %.1f%%\n",
			class.ClassName, class.SubmittedCount, class.AssignmentCount,
			class.GradedCount, class.AveragePercent)
	}
	return nil
}

func (c *console) updateStudent(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: update_student <id> <field: name|email> <value>")
	}
	cmd := engine.UpdateStudentCommand{StudentID: args[0]}
	switch strings.ToLower(args[1]) {
	case "name":
		cmd.NewName = &args[2]
	case "email":
		cmd.NewEmail = &args[2]
	default:
		return fmt.Errorf("unknown field: %s", args[1])
	}
	snap, err := c.engine.UpdateStudent(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Student %s has been updated.\n", snap.ID)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Assignment commands
// ─────────────────────────────────────────────────────────────────────────────

func (c *console) scheduleAssignment(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: schedule_assignment <class> <title> <description> [category] [maxPoints]")
	}
	cmd := engine.ScheduleAssignmentCommand{
		ClassName:   args[0],
		Title:       args[1],
		Description: args[2],
	}
	if len(args) > 3 {
		cmd.Category = args[3]
	}
	if len(args) > 4 {
		points, err := strconv.Atoi(args[4])
		if err != nil {
			return fmt.Errorf("maxPoints must be a number: %s", args[4])
		}
		cmd.MaxPoints = points
	}
	snap, err := c.engine.ScheduleAssignment(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Assignment %q scheduled for %s (%s, %d points).\n",
		snap.Title, args[0], snap.Category, snap.MaxPoints)
	return nil
}

func (c *console) submitAssignment(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: submit_assignment <studentID> <class> <title> [file]")
	}
	cmd := engine.SubmitAssignmentCommand{
		StudentID: args[0],
		ClassName: args[1],
		Title:     args[2],
	}
	if len(args) > 3 {
		cmd.FileName = args[3]
	}
	result, err := c.engine.SubmitAssignment(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Assignment %q submitted by %s (%s).\n",
		result.Assignment.Title, args[0], result.FileName)
	if result.Overdue {
		fmt.Fprintln(c.out, "Warning: submission was past the due date.")
	}
	return nil
}

func (c *console) gradeAssignment(args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: grade_assignment <studentID> <class> <title> <points> [feedback]")
	}
	points, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("points must be a number: %s", args[3])
	}
	cmd := engine.GradeAssignmentCommand{
		StudentID: args[0],
		ClassName: args[1],
		Title:     args[2],
		Points:    points,
	}
	if len(args) > 4 {
		cmd.Feedback = args[4]
	}
	result, err := c.engine.GradeAssignment(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Graded %s on %q: %.1f/%d (%.1f%%, %s).\n",
		args[0], result.Assignment.Title, result.Points, result.MaxPoints,
		result.Percentage, result.LetterGrade)
	return nil
}

func (c *console) listAssignments(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: list_assignments <class> [category]")
	}
	cmd := engine.ListAssignmentsCommand{ClassName: args[0]}
	if len(args) > 1 {
		cmd.Category = args[1]
	}
	result, err := c.engine.ListAssignments(cmd)
	if err != nil {
		return err
	}
	if len(result.Assignments) == 0 {
		fmt.Fprintf(c.out, "No assignments in %s.\n", result.ClassName)
		return nil
	}
	fmt.Fprintf(c.out, "Assignments in %s:\n", result.ClassName)
	for _, a := range result.Assignments {
		overdue := ""
		if a.Overdue {
			overdue = " OVERDUE"
		}
		fmt.Fprintf(c.out, "  %-25s %-12s %d pts, %s, %d submitted%s\n",
			a.Title, a.Category, a.MaxPoints, a.Status, a.SubmittedCount, overdue)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Attendance and analytics commands
// ─────────────────────────────────────────────────────────────────────────────

// markAttendance parses "ID:present" or "ID:absent" pairs; enrolled students
// not mentioned are recorded absent.
func (c *console) markAttendance(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: mark_attendance <class> [ID:present|ID:absent ...]")
	}
	marks := make(map[string]bool, len(args)-1)
	for _, pair := range args[1:] {
		id, state, ok := strings.Cut(pair, ":")
		if !ok {
			return fmt.Errorf("expected ID:present or ID:absent, got: %s", pair)
		}
		switch strings.ToLower(state) {
		case "present", "p":
			marks[id] = true
		case "absent", "a":
			marks[id] = false
		default:
			return fmt.Errorf("unknown attendance state: %s", state)
		}
	}
	result, err := c.engine.MarkAttendance(engine.MarkAttendanceCommand{
		ClassName: args[0],
		Marks:     marks,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Attendance recorded for %s: %d present, %d absent (%.1f%%).\n",
		result.ClassName, result.Present, result.Absent, result.OverallRate)
	return nil
}

func (c *console) viewAttendance(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: view_attendance <class>")
	}
	result, err := c.engine.ViewAttendance(args[0])
	if err != nil {
		return err
	}
	if len(result.Marks) == 0 {
		fmt.Fprintf(c.out, "No attendance recorded for %s.\n", result.ClassName)
		return nil
	}
	fmt.Fprintf(c.out, "Attendance for %s (%.1f%% overall):\n", result.ClassName, result.OverallRate)
	for id, present := range result.Marks {
		state := "absent"
		if present {
			state = "present"
		}
		fmt.Fprintf(c.out, "  %-10s %s\n", id, state)
	}
	return nil
}

func (c *console) attendanceReport(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: attendance_report <class>")
	}
	report, err := c.engine.AttendanceReport(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Attendance report (%.1f%% overall):\n", report.OverallRate)
	for _, entry := range report.Entries {
		fmt.Fprintf(c.out, "  %-10s %-25s %.1f%% (%s)\n",
			entry.StudentID, entry.Name, entry.Rate, entry.Band)
	}
	return nil
}

func (c *console) classroomAnalytics(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: classroom_analytics <class>")
	}
	stats, err := c.engine.ClassroomAnalytics(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Analytics for %s:\n", stats.Name)
	fmt.Fprintf(c.out, "  Enrolled:    %d/%d\n", stats.EnrolledCount, stats.MaxCapacity)
	fmt.Fprintf(c.out, "  Assignments: %d (%d graded)\n", stats.AssignmentCount, stats.GradedCount)
	fmt.Fprintf(c.out, "  Avg grade:   %.1f%%\n", stats.AverageGradePercent)
	fmt.Fprintf(c.out, "  Attendance:  %.1f%%\n", stats.AttendancePercent)
	for category, count := range stats.CategoryBreakdown {
		fmt.Fprintf(c.out, "  %-12s x%d\n", category, count)
	}
	for letter, count := range stats.GradeDistribution {
		fmt.Fprintf(c.out, "  Grade %s: %d\n", letter, count)
	}
	return nil
}

func (c *console) submissionAnalytics(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: submission_analytics <class>")
	}
	analytics, err := c.engine.SubmissionAnalytics(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Submission rate: %.1f%% across %d student(s)\n",
		analytics.SubmissionRate, analytics.EnrolledCount)
	for _, a := range analytics.Assignments {
		fmt.Fprintf(c.out, "  %-25s %d submitted, %d graded [%s]\n",
			a.Title, a.SubmittedCount, a.GradedCount, a.Status)
	}
	return nil
}

func (c *console) notifyDueDates(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: notify_due_dates <class>")
	}
	count, err := c.engine.NotifyDueDates(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d due date reminder(s) queued.\n", count)
	return nil
}

func (c *console) notifyGrades(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: notify_grades <class>")
	}
	count, err := c.engine.NotifyGrades(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d grade summary record(s) queued.\n", count)
	return nil
}

func (c *console) listNotifications() error {
	notifications := c.engine.Notifications()
	if len(notifications) == 0 {
		fmt.Fprintln(c.out, "No notifications.")
		return nil
	}
	for _, n := range notifications {
		fmt.Fprintf(c.out, "  %s\n", n)
	}
	return nil
}

func (c *console) printHelp() {
	fmt.Fprint(c.out, `Commands:
  add_classroom <name> [description] [capacity]
  list_classrooms [page] [filter]
  classroom_details <name>
  update_classroom <name> <name|description|capacity> <value>
  activate_classroom <name> | deactivate_classroom <name>
  remove_classroom <name>

  add_student <id> <name> <email> <class>
  remove_student <id> <class>
  list_students <class> [page] [filter]
  student_profile <id> | student_progress <id>
  update_student <id> <name|email> <value>

  schedule_assignment <class> <title> <description> [category] [maxPoints]
  submit_assignment <studentID> <class> <title> [file]
  grade_assignment <studentID> <class> <title> <points> [feedback]
  list_assignments <class> [category]

  mark_attendance <class> [ID:present|ID:absent ...]
  view_attendance <class> | attendance_report <class>

  classroom_analytics <class> | submission_analytics <class>
  notify_due_dates <class> | notify_grades <class> | notifications

  help | exit

Quote multi-word values: add_classroom "Math 101" "Intro algebra" 30
`)
}
