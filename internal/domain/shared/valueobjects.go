// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages.
package shared

import (
	"fmt"
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// ID Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// StudentID represents a unique student identifier (e.g., "ST1234", "AB123456").
type StudentID string

// Student ID format: two uppercase letters followed by 4-6 digits.
var studentIDRegex = regexp.MustCompile(`^[A-Z]{2}\d{4,6}$`)

// IsValid checks if the student ID format is valid.
// Total function: returns false for empty input, never panics.
func (s StudentID) IsValid() bool {
	return studentIDRegex.MatchString(string(s))
}

// String returns the string representation.
func (s StudentID) String() string {
	return string(s)
}

// IsEmpty checks if the ID is empty.
func (s StudentID) IsEmpty() bool {
	return s == ""
}

// NewStudentID creates a new StudentID with validation.
func NewStudentID(id string) (StudentID, error) {
	sid := StudentID(strings.TrimSpace(id))
	if !sid.IsValid() {
		return "", ErrInvalidStudentID
	}
	return sid, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Format Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// Email represents a student contact email address.
type Email string

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// IsValid checks if the email format is valid.
func (e Email) IsValid() bool {
	return emailRegex.MatchString(string(e))
}

// String returns the string representation.
func (e Email) String() string {
	return string(e)
}

// Masked returns a partially hidden form safe for logs and notifications.
// "student@example.com" becomes "st***@example.com".
func (e Email) Masked() string {
	s := string(e)
	at := strings.Index(s, "@")
	if at < 0 {
		return "***"
	}
	user, domain := s[:at], s[at+1:]
	if len(user) <= 3 {
		return "***@" + domain
	}
	return user[:2] + "***@" + domain
}

// NewEmail creates a new Email with validation.
func NewEmail(value string) (Email, error) {
	e := Email(strings.TrimSpace(value))
	if !e.IsValid() {
		return "", ErrInvalidEmail
	}
	return e, nil
}

// PersonName represents a student's display name (letters and spaces only).
type PersonName string

var personNameRegex = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)

// IsValid checks if the name format is valid.
func (n PersonName) IsValid() bool {
	return personNameRegex.MatchString(string(n))
}

// String returns the string representation.
func (n PersonName) String() string {
	return string(n)
}

// NewPersonName creates a new PersonName with validation.
func NewPersonName(value string) (PersonName, error) {
	n := PersonName(strings.TrimSpace(value))
	if !n.IsValid() {
		return "", ErrInvalidPersonName
	}
	return n, nil
}

// ClassroomName identifies a classroom; it is the external key in the registry.
type ClassroomName string

var classroomNameRegex = regexp.MustCompile(`^[A-Za-z0-9\s\-_]{2,30}$`)

// IsValid checks if the classroom name format is valid.
func (c ClassroomName) IsValid() bool {
	return classroomNameRegex.MatchString(string(c))
}

// String returns the string representation.
func (c ClassroomName) String() string {
	return string(c)
}

// NewClassroomName creates a new ClassroomName with validation.
func NewClassroomName(value string) (ClassroomName, error) {
	c := ClassroomName(strings.TrimSpace(value))
	if !c.IsValid() {
		return "", ErrInvalidClassroomName
	}
	return c, nil
}

// AssignmentTitle identifies an assignment within its classroom.
// Uniqueness is case-insensitive; see EqualsFold.
type AssignmentTitle string

var assignmentTitleRegex = regexp.MustCompile(`^[A-Za-z0-9\s\-_.,!?]{2,100}$`)

// IsValid checks if the title format is valid.
func (t AssignmentTitle) IsValid() bool {
	return assignmentTitleRegex.MatchString(string(t))
}

// String returns the string representation.
func (t AssignmentTitle) String() string {
	return string(t)
}

// EqualsFold reports whether two titles match case-insensitively.
func (t AssignmentTitle) EqualsFold(other AssignmentTitle) bool {
	return strings.EqualFold(string(t), string(other))
}

// NewAssignmentTitle creates a new AssignmentTitle with validation.
func NewAssignmentTitle(value string) (AssignmentTitle, error) {
	t := AssignmentTitle(strings.TrimSpace(value))
	if !t.IsValid() {
		return "", ErrInvalidTitle
	}
	return t, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Validation Helpers
// ═══════════════════════════════════════════════════════════════════════════

// ValidateNotEmpty returns a validation error when the string is empty
// or consists only of whitespace.
func ValidateNotEmpty(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewDomainError("shared", "ValidateNotEmpty", ErrEmptyValue,
			fmt.Sprintf("field cannot be empty: %s", fieldName))
	}
	return nil
}

// ValidateRange returns a validation error when value is outside [min, max].
func ValidateRange(value, min, max float64, fieldName string) error {
	if value < min || value > max {
		return NewDomainError("shared", "ValidateRange", ErrValueOutOfRange,
			fmt.Sprintf("field %s must be between %.2f and %.2f, got: %.2f", fieldName, min, max, value))
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Pagination Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Pagination represents zero-based pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Offset returns the index of the first item on the page.
func (p Pagination) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return p.Page * p.Limit()
}

// Limit returns the effective page size.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

// Slice applies the pagination window to a length n, returning [start, end).
// Out-of-range pages yield an empty window, never an error.
func (p Pagination) Slice(n int) (start, end int) {
	start = p.Offset()
	if start >= n {
		return 0, 0
	}
	end = start + p.Limit()
	if end > n {
		end = n
	}
	return start, end
}

// NewPagination creates a Pagination with defaults applied.
func NewPagination(page, pageSize int) Pagination {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}
