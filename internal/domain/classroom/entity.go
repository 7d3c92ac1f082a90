// Package classroom contains the Classroom aggregate: a roster of students,
// the list of scheduled assignments, and the current attendance snapshot.
// The Classroom owns its assignments exclusively; students are shared
// references into the global registry.
package classroom

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/assignment"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/student"
)

// Classroom enforces capacity and uniqueness over its roster and owns the
// per-class attendance ledger.
type Classroom struct {
	ID          string
	Name        shared.ClassroomName
	Description string
	CreatedAt   time.Time

	maxCapacity int
	active      bool

	roster      map[shared.StudentID]*student.Student
	rosterOrder []shared.StudentID // insertion order, keeps pagination stable
	assignments []*assignment.Assignment

	// attendance is the single current snapshot for the classroom,
	// overwritten wholesale on each MarkAttendance call.
	attendance map[shared.StudentID]bool
}

// Config carries the fields needed to create a Classroom.
type Config struct {
	Name        string
	Description string
	MaxCapacity int
}

// New validates the config and creates an active, empty Classroom.
func New(cfg Config) (*Classroom, error) {
	name, err := shared.NewClassroomName(cfg.Name)
	if err != nil {
		return nil, err
	}
	if cfg.MaxCapacity <= 0 {
		return nil, shared.NewDomainError("classroom", "New", shared.ErrValueOutOfRange,
			fmt.Sprintf("maxCapacity must be greater than 0, got: %d", cfg.MaxCapacity))
	}

	return &Classroom{
		ID:          "CLS-" + uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(cfg.Description),
		CreatedAt:   time.Now(),
		maxCapacity: cfg.MaxCapacity,
		active:      true,
		roster:      make(map[shared.StudentID]*student.Student),
		attendance:  make(map[shared.StudentID]bool),
	}, nil
}

// IsActive reports whether the classroom accepts enrollment and scheduling.
func (c *Classroom) IsActive() bool {
	return c.active
}

// MaxCapacity returns the roster limit.
func (c *Classroom) MaxCapacity() int {
	return c.maxCapacity
}

// EnrolledCount returns the current roster size.
func (c *Classroom) EnrolledCount() int {
	return len(c.roster)
}

// AssignmentCount returns the number of scheduled assignments.
func (c *Classroom) AssignmentCount() int {
	return len(c.assignments)
}

// ─────────────────────────────────────────────────────────────────────────────
// Roster
// ─────────────────────────────────────────────────────────────────────────────

// AddStudent inserts the student into the roster and records the enrollment
// on the student side. Fails on inactive classroom, full roster, or a
// duplicate student id; a failed call leaves both sides unchanged.
func (c *Classroom) AddStudent(s *student.Student) error {
	if s == nil {
		return shared.NewDomainError("classroom", "AddStudent", shared.ErrEmptyValue, "student is nil")
	}
	if !c.active {
		return shared.NewDomainError("classroom", "AddStudent", shared.ErrInactiveClassroom,
			fmt.Sprintf("cannot add student to inactive classroom: %s", c.Name))
	}
	if len(c.roster) >= c.maxCapacity {
		return shared.NewDomainError("classroom", "AddStudent", shared.ErrCapacityExceeded,
			fmt.Sprintf("classroom %s has reached maximum capacity: %d", c.Name, c.maxCapacity))
	}
	if _, ok := c.roster[s.ID]; ok {
		return shared.NewDomainError("classroom", "AddStudent", shared.ErrAlreadyExists,
			fmt.Sprintf("student already enrolled: %s", s.ID))
	}

	// Record on the student side first so a failure cannot leave a roster
	// entry without the matching enrollment.
	if err := s.Enroll(c.Name); err != nil {
		return err
	}
	c.roster[s.ID] = s
	c.rosterOrder = append(c.rosterOrder, s.ID)
	return nil
}

// RemoveStudent drops the student from the roster and records the
// unenrollment on the student side. The student's own submission and
// attendance history is retained; the classroom's attendance snapshot
// drops the student's slot so the rate stays present/enrolled.
// The caller is responsible for resolving pending work before invoking this.
func (c *Classroom) RemoveStudent(studentID shared.StudentID) error {
	s, ok := c.roster[studentID]
	if !ok {
		return shared.NewDomainError("classroom", "RemoveStudent", shared.ErrNotFound,
			fmt.Sprintf("student not found in classroom: %s", studentID))
	}
	if err := s.Unenroll(c.Name); err != nil {
		return err
	}
	delete(c.roster, studentID)
	delete(c.attendance, studentID)
	for i, id := range c.rosterOrder {
		if id == studentID {
			c.rosterOrder = append(c.rosterOrder[:i], c.rosterOrder[i+1:]...)
			break
		}
	}
	return nil
}

// HasStudent reports whether the student id is on the roster.
func (c *Classroom) HasStudent(studentID shared.StudentID) bool {
	_, ok := c.roster[studentID]
	return ok
}

// StudentByID returns the roster entry for the id, or nil.
func (c *Classroom) StudentByID(studentID shared.StudentID) *student.Student {
	return c.roster[studentID]
}

// Students returns one page of the roster, in enrollment order, after an
// optional case-insensitive substring filter over name or id. Out-of-range
// pages return an empty slice, never an error.
func (c *Classroom) Students(p shared.Pagination, filter string) []*student.Student {
	filtered := c.filterRoster(filter)
	start, end := p.Slice(len(filtered))
	return filtered[start:end]
}

// AllStudents returns the full roster in enrollment order.
func (c *Classroom) AllStudents() []*student.Student {
	return c.filterRoster("")
}

// CountStudents returns how many roster entries match the filter.
func (c *Classroom) CountStudents(filter string) int {
	return len(c.filterRoster(filter))
}

func (c *Classroom) filterRoster(filter string) []*student.Student {
	filter = strings.ToLower(strings.TrimSpace(filter))
	out := make([]*student.Student, 0, len(c.rosterOrder))
	for _, id := range c.rosterOrder {
		s := c.roster[id]
		if filter == "" ||
			strings.Contains(strings.ToLower(s.Name.String()), filter) ||
			strings.Contains(strings.ToLower(s.ID.String()), filter) {
			out = append(out, s)
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Assignments
// ─────────────────────────────────────────────────────────────────────────────

// ScheduleAssignment appends the assignment to the classroom. Titles must be
// unique within the classroom, compared case-insensitively.
func (c *Classroom) ScheduleAssignment(a *assignment.Assignment) error {
	if a == nil {
		return shared.NewDomainError("classroom", "ScheduleAssignment", shared.ErrEmptyValue, "assignment is nil")
	}
	if !c.active {
		return shared.NewDomainError("classroom", "ScheduleAssignment", shared.ErrInactiveClassroom,
			fmt.Sprintf("cannot schedule assignment in inactive classroom: %s", c.Name))
	}
	for _, existing := range c.assignments {
		if existing.Title.EqualsFold(a.Title) {
			return shared.NewDomainError("classroom", "ScheduleAssignment", shared.ErrAlreadyExists,
				fmt.Sprintf("assignment with title already exists: %s", a.Title))
		}
	}
	c.assignments = append(c.assignments, a)
	return nil
}

// FindAssignmentByTitle returns the first case-insensitive title match, or nil.
func (c *Classroom) FindAssignmentByTitle(title string) *assignment.Assignment {
	want := shared.AssignmentTitle(strings.TrimSpace(title))
	for _, a := range c.assignments {
		if a.Title.EqualsFold(want) {
			return a
		}
	}
	return nil
}

// Assignments returns the scheduled assignments, optionally filtered by
// category ("" means all), in scheduling order.
func (c *Classroom) Assignments(category assignment.Category) []*assignment.Assignment {
	out := make([]*assignment.Assignment, 0, len(c.assignments))
	for _, a := range c.assignments {
		if category == "" || a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// AllAssignments returns all scheduled assignments in scheduling order.
func (c *Classroom) AllAssignments() []*assignment.Assignment {
	return c.Assignments("")
}

// ─────────────────────────────────────────────────────────────────────────────
// Attendance
// ─────────────────────────────────────────────────────────────────────────────

// MarkAttendance replaces the classroom's attendance snapshot. Every
// currently enrolled student gets an entry; a student omitted from the
// supplied map is recorded absent. Ids in the map that are not on the
// roster are rejected before any mutation.
func (c *Classroom) MarkAttendance(marks map[shared.StudentID]bool) error {
	for id := range marks {
		if _, ok := c.roster[id]; !ok {
			return shared.NewDomainError("classroom", "MarkAttendance", shared.ErrNotFound,
				fmt.Sprintf("student not enrolled in classroom: %s", id))
		}
	}

	snapshot := make(map[shared.StudentID]bool, len(c.roster))
	for id, s := range c.roster {
		present := marks[id] // omission means absent
		snapshot[id] = present
		s.MarkAttendance(c.Name, present)
	}
	c.attendance = snapshot
	return nil
}

// AttendanceSnapshot returns a copy of the current attendance map.
func (c *Classroom) AttendanceSnapshot() map[shared.StudentID]bool {
	out := make(map[shared.StudentID]bool, len(c.attendance))
	for id, present := range c.attendance {
		out[id] = present
	}
	return out
}

// OverallAttendancePercentage returns present-count over enrolled-count, x100,
// over the current snapshot. 0 with an empty snapshot or empty roster.
func (c *Classroom) OverallAttendancePercentage() float64 {
	if len(c.attendance) == 0 || len(c.roster) == 0 {
		return 0
	}
	present := 0
	for _, p := range c.attendance {
		if p {
			present++
		}
	}
	return float64(present) / float64(len(c.roster)) * 100
}

// ─────────────────────────────────────────────────────────────────────────────
// Lifecycle and updates
// ─────────────────────────────────────────────────────────────────────────────

// Deactivate soft-deletes the classroom: enrollment and scheduling are
// blocked, existing data stays intact.
func (c *Classroom) Deactivate() {
	c.active = false
}

// Activate re-enables the classroom.
func (c *Classroom) Activate() {
	c.active = true
}

// InfoUpdate carries optional replacement values for UpdateInfo.
// Nil fields are left unchanged.
type InfoUpdate struct {
	Name        *string
	Description *string
	MaxCapacity *int
}

// UpdateInfo applies the non-nil fields after validation. Shrinking capacity
// below the current enrollment is rejected. On rename the caller (the engine)
// must re-key its registry and migrate student-side references.
func (c *Classroom) UpdateInfo(update InfoUpdate) error {
	var newName shared.ClassroomName
	if update.Name != nil {
		var err error
		newName, err = shared.NewClassroomName(*update.Name)
		if err != nil {
			return err
		}
	}
	if update.MaxCapacity != nil {
		if *update.MaxCapacity <= 0 {
			return shared.NewDomainError("classroom", "UpdateInfo", shared.ErrValueOutOfRange,
				fmt.Sprintf("maxCapacity must be greater than 0, got: %d", *update.MaxCapacity))
		}
		if *update.MaxCapacity < len(c.roster) {
			return shared.NewDomainError("classroom", "UpdateInfo", shared.ErrValueOutOfRange,
				fmt.Sprintf("cannot reduce capacity below current enrollment: %d", len(c.roster)))
		}
	}

	if update.Name != nil {
		c.Name = newName
	}
	if update.Description != nil {
		c.Description = strings.TrimSpace(*update.Description)
	}
	if update.MaxCapacity != nil {
		c.maxCapacity = *update.MaxCapacity
	}
	return nil
}

// String returns a compact representation for logs.
func (c *Classroom) String() string {
	return fmt.Sprintf("Classroom{id=%s, name=%q, students=%d/%d, assignments=%d, active=%t}",
		c.ID, c.Name, len(c.roster), c.maxCapacity, len(c.assignments), c.active)
}
