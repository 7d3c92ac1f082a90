package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/classroom"
	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
	"github.com/vcm-hub/virtual-classroom-manager/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLASSROOM COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// ClassroomSnapshot is the engine's external view of a classroom.
type ClassroomSnapshot struct {
	ID              string
	Name            string
	Description     string
	MaxCapacity     int
	Active          bool
	EnrolledCount   int
	AssignmentCount int
	CreatedAt       time.Time
}

func snapshotClassroom(c *classroom.Classroom) ClassroomSnapshot {
	return ClassroomSnapshot{
		ID:              c.ID,
		Name:            c.Name.String(),
		Description:     c.Description,
		MaxCapacity:     c.MaxCapacity(),
		Active:          c.IsActive(),
		EnrolledCount:   c.EnrolledCount(),
		AssignmentCount: c.AssignmentCount(),
		CreatedAt:       c.CreatedAt,
	}
}

// resolveClassroom translates a classroom name into the registered entity,
// or a uniform not-found failure.
func (e *Engine) resolveClassroom(name string) (*classroom.Classroom, error) {
	c, ok := e.store.Classroom(shared.ClassroomName(strings.TrimSpace(name)))
	if !ok {
		return nil, shared.NewDomainError("engine", "Resolve", shared.ErrNotFound,
			fmt.Sprintf("classroom not found: %s", name))
	}
	return c, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// add_classroom
// ─────────────────────────────────────────────────────────────────────────────

// AddClassroomCommand creates a new classroom.
type AddClassroomCommand struct {
	Name        string `validate:"required,classroom_name"`
	Description string
	MaxCapacity int `validate:"gte=0"` // 0 means "use the engine default"
}

// AddClassroom registers a new classroom under its name.
func (e *Engine) AddClassroom(cmd AddClassroomCommand) (ClassroomSnapshot, error) {
	const command = "add_classroom"

	if err := e.checkCommand(command, cmd); err != nil {
		return ClassroomSnapshot{}, e.fail(command, err)
	}
	if _, ok := e.store.Classroom(shared.ClassroomName(cmd.Name)); ok {
		return ClassroomSnapshot{}, e.fail(command, shared.NewDomainError("engine", "AddClassroom",
			shared.ErrAlreadyExists, fmt.Sprintf("classroom already exists: %s", cmd.Name)))
	}

	capacity := cmd.MaxCapacity
	if capacity == 0 {
		capacity = e.defaultCapacity
	}
	description := cmd.Description
	if description == "" {
		description = "Default classroom"
	}

	c, err := classroom.New(classroom.Config{
		Name:        cmd.Name,
		Description: description,
		MaxCapacity: capacity,
	})
	if err != nil {
		return ClassroomSnapshot{}, e.fail(command, err)
	}

	e.store.PutClassroom(c)
	e.log.Info("classroom created", logger.Command(command), logger.ClassName(cmd.Name),
		logger.Int("capacity", capacity))
	return snapshotClassroom(c), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// list_classrooms
// ─────────────────────────────────────────────────────────────────────────────

// ListClassroomsCommand pages through the classroom registry.
type ListClassroomsCommand struct {
	Page     int `validate:"gte=0"`
	PageSize int `validate:"gte=0"`
	Filter   string
}

// ListClassroomsResult is one page of classrooms.
type ListClassroomsResult struct {
	Classrooms   []ClassroomSnapshot
	TotalMatched int
}

// ListClassrooms returns one page of classrooms, after a case-insensitive
// substring filter over name or description. Out-of-range pages return an
// empty page, never an error.
func (e *Engine) ListClassrooms(cmd ListClassroomsCommand) (ListClassroomsResult, error) {
	const command = "list_classrooms"

	if err := e.checkCommand(command, cmd); err != nil {
		return ListClassroomsResult{}, e.fail(command, err)
	}
	if cmd.PageSize == 0 {
		cmd.PageSize = e.defaultPageSize
	}

	filter := strings.ToLower(strings.TrimSpace(cmd.Filter))
	matched := make([]*classroom.Classroom, 0)
	for _, c := range e.store.Classrooms() {
		if filter == "" ||
			strings.Contains(strings.ToLower(c.Name.String()), filter) ||
			strings.Contains(strings.ToLower(c.Description), filter) {
			matched = append(matched, c)
		}
	}

	e.log.Debug("listing classrooms", logger.Command(command),
		logger.Page(cmd.Page, cmd.PageSize), logger.Int("matched", len(matched)))

	start, end := shared.NewPagination(cmd.Page, cmd.PageSize).Slice(len(matched))
	result := ListClassroomsResult{
		Classrooms:   make([]ClassroomSnapshot, 0, end-start),
		TotalMatched: len(matched),
	}
	for _, c := range matched[start:end] {
		result.Classrooms = append(result.Classrooms, snapshotClassroom(c))
	}
	return result, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// classroom_details
// ─────────────────────────────────────────────────────────────────────────────

// ClassroomDetailsResult combines the snapshot with the computed analytics.
type ClassroomDetailsResult struct {
	Classroom   ClassroomSnapshot
	Stats       classroom.Stats
	Submissions classroom.SubmissionAnalytics
}

// ClassroomDetails returns the full detail view for one classroom.
func (e *Engine) ClassroomDetails(name string) (ClassroomDetailsResult, error) {
	const command = "classroom_details"

	c, err := e.resolveClassroom(name)
	if err != nil {
		return ClassroomDetailsResult{}, e.fail(command, err)
	}
	return ClassroomDetailsResult{
		Classroom:   snapshotClassroom(c),
		Stats:       c.ComputeStats(),
		Submissions: c.ComputeSubmissionAnalytics(),
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// update_classroom
// ─────────────────────────────────────────────────────────────────────────────

// UpdateClassroomCommand applies the non-nil fields to a classroom.
type UpdateClassroomCommand struct {
	Name           string  `validate:"required,classroom_name"`
	NewName        *string `validate:"omitempty,classroom_name"`
	NewDescription *string
	NewMaxCapacity *int `validate:"omitempty,gt=0"`
}

// UpdateClassroom updates classroom info. On rename, the registry entry is
// re-keyed and every enrolled student's enrollment set, submission index,
// and attendance slot migrate to the new name.
func (e *Engine) UpdateClassroom(cmd UpdateClassroomCommand) (ClassroomSnapshot, error) {
	const command = "update_classroom"

	if err := e.checkCommand(command, cmd); err != nil {
		return ClassroomSnapshot{}, e.fail(command, err)
	}
	c, err := e.resolveClassroom(cmd.Name)
	if err != nil {
		return ClassroomSnapshot{}, e.fail(command, err)
	}

	// Registry keys are case-sensitive, so a case-only change is still a
	// rename: the entry must be re-keyed and student-side references migrated.
	oldName := c.Name
	renaming := cmd.NewName != nil && shared.ClassroomName(strings.TrimSpace(*cmd.NewName)) != oldName
	if renaming {
		if _, taken := e.store.Classroom(shared.ClassroomName(strings.TrimSpace(*cmd.NewName))); taken {
			return ClassroomSnapshot{}, e.fail(command, shared.NewDomainError("engine", "UpdateClassroom",
				shared.ErrAlreadyExists, fmt.Sprintf("classroom already exists: %s", *cmd.NewName)))
		}
	}

	if err := c.UpdateInfo(classroom.InfoUpdate{
		Name:        cmd.NewName,
		Description: cmd.NewDescription,
		MaxCapacity: cmd.NewMaxCapacity,
	}); err != nil {
		return ClassroomSnapshot{}, e.fail(command, err)
	}

	if renaming {
		e.store.RekeyClassroom(oldName, c.Name)
		for _, s := range c.AllStudents() {
			s.RenameClassroom(oldName, c.Name)
		}
	}

	e.log.Info("classroom updated", logger.Command(command), logger.ClassName(c.Name.String()))
	return snapshotClassroom(c), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// activate / deactivate
// ─────────────────────────────────────────────────────────────────────────────

// DeactivateClassroom soft-deletes a classroom: no rosters are touched.
func (e *Engine) DeactivateClassroom(name string) error {
	const command = "deactivate_classroom"

	c, err := e.resolveClassroom(name)
	if err != nil {
		return e.fail(command, err)
	}
	c.Deactivate()
	e.log.Info("classroom deactivated", logger.Command(command), logger.ClassName(name))
	return nil
}

// ActivateClassroom re-enables a deactivated classroom.
func (e *Engine) ActivateClassroom(name string) error {
	const command = "activate_classroom"

	c, err := e.resolveClassroom(name)
	if err != nil {
		return e.fail(command, err)
	}
	c.Activate()
	e.log.Info("classroom activated", logger.Command(command), logger.ClassName(name))
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// remove_classroom (two-phase)
// ─────────────────────────────────────────────────────────────────────────────

// ClassroomRemovalPlan describes what a removal would affect. The caller
// decides (typically by asking the operator) and then commits; the plan
// itself mutates nothing.
type ClassroomRemovalPlan struct {
	ClassName            string
	AffectedStudents     []shared.StudentID
	PendingSubmissions   int // unsubmitted (assignment, student) pairs
	RequiresConfirmation bool
}

// PlanClassroomRemoval computes the removal plan for a classroom.
func (e *Engine) PlanClassroomRemoval(name string) (ClassroomRemovalPlan, error) {
	const command = "remove_classroom"

	c, err := e.resolveClassroom(name)
	if err != nil {
		return ClassroomRemovalPlan{}, e.fail(command, err)
	}

	plan := ClassroomRemovalPlan{ClassName: c.Name.String()}
	for _, s := range c.AllStudents() {
		plan.AffectedStudents = append(plan.AffectedStudents, s.ID)
		for _, a := range c.AllAssignments() {
			if !a.HasSubmitted(s.ID) {
				plan.PendingSubmissions++
			}
		}
	}
	plan.RequiresConfirmation = len(plan.AffectedStudents) > 0
	return plan, nil
}

// CommitClassroomRemoval performs the cascade: every enrolled student is
// unenrolled first (history retained), then the classroom leaves the
// registry. Call PlanClassroomRemoval first and confirm when the plan
// requires it.
func (e *Engine) CommitClassroomRemoval(name string) error {
	const command = "remove_classroom"

	c, err := e.resolveClassroom(name)
	if err != nil {
		return e.fail(command, err)
	}

	for _, s := range c.AllStudents() {
		if err := c.RemoveStudent(s.ID); err != nil {
			return e.fail(command, err)
		}
	}
	c.Deactivate()
	e.store.RemoveClassroom(c.Name)

	e.log.Info("classroom removed", logger.Command(command), logger.ClassName(name))
	return nil
}
