// Package engine implements the command engine: one typed operation per
// supported command, composed over the classroom/student/assignment entities
// with cross-entity checks. The engine resolves every referenced entity
// against the store registries before any mutation, so no entity method is
// ever called with an unresolved reference.
//
// The engine is strictly synchronous and single-threaded: every command runs
// to completion before the next is accepted. Neither the engine nor the store
// is goroutine-safe.
package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/vcm-hub/virtual-classroom-manager/internal/domain/shared"
	"github.com/vcm-hub/virtual-classroom-manager/internal/store"
	"github.com/vcm-hub/virtual-classroom-manager/pkg/logger"
)

// Default values applied when a command omits an optional argument.
const (
	DefaultClassroomCapacity = 50
	DefaultSubmissionFile    = "submission.pdf"
)

// Engine holds the injected store and executes commands against it.
type Engine struct {
	store    *store.Store
	log      *logger.Logger
	validate *validator.Validate

	defaultCapacity int
	defaultPageSize int
}

// Options configures engine defaults.
type Options struct {
	// DefaultCapacity is used when add_classroom omits the capacity.
	DefaultCapacity int

	// DefaultPageSize is used when list commands omit the page size.
	DefaultPageSize int
}

// New creates an Engine over the given store.
func New(st *store.Store, log *logger.Logger, opts Options) *Engine {
	if log == nil {
		log = logger.Default()
	}
	if opts.DefaultCapacity <= 0 {
		opts.DefaultCapacity = DefaultClassroomCapacity
	}
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = shared.DefaultPageSize
	}
	return &Engine{
		store:           st,
		log:             log,
		validate:        newValidator(),
		defaultCapacity: opts.DefaultCapacity,
		defaultPageSize: opts.DefaultPageSize,
	}
}

// newValidator builds the command-struct validator with the domain format
// checks registered on top of the built-in rules.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// RegisterValidation only fails for an empty tag, which cannot happen here.
	_ = v.RegisterValidation("student_id", func(fl validator.FieldLevel) bool {
		return shared.StudentID(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("classroom_name", func(fl validator.FieldLevel) bool {
		return shared.ClassroomName(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return shared.PersonName(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("assignment_title", func(fl validator.FieldLevel) bool {
		return shared.AssignmentTitle(fl.Field().String()).IsValid()
	})
	return v
}

// checkCommand validates a command struct before anything is resolved
// or mutated.
func (e *Engine) checkCommand(command string, cmd any) error {
	if err := e.validate.Struct(cmd); err != nil {
		return shared.WrapError("engine", command, shared.ErrValidation, "invalid command arguments", err)
	}
	return nil
}

// fail logs and annotates a command failure with the command name.
// Failures are surfaced unchanged; nothing is swallowed or retried.
func (e *Engine) fail(command string, err error) error {
	e.log.Warn("command failed", logger.Command(command), logger.Err(err))
	return fmt.Errorf("%s: %w", command, err)
}
