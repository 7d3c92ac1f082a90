// Package notification contains the domain model for simulated outbound
// messages. Records are observational only: nothing is ever delivered,
// the engine appends them so operators can inspect what would have been sent.
package notification

import (
	"fmt"
	"time"
)

// Type classifies an outbound-message record.
type Type string

const (
	// TypeWelcomeEmail - sent when a student is enrolled in a classroom.
	TypeWelcomeEmail Type = "welcome_email"

	// TypeGradePublished - sent when a student's submission is graded.
	TypeGradePublished Type = "grade_published"

	// TypeAbsenceAlert - sent when a student is recorded absent.
	TypeAbsenceAlert Type = "absence_alert"

	// TypeDueDateReminder - sent for assignments due within the reminder window.
	TypeDueDateReminder Type = "due_date_reminder"
)

// IsValid checks if the type is one of the known values.
func (t Type) IsValid() bool {
	switch t {
	case TypeWelcomeEmail, TypeGradePublished, TypeAbsenceAlert, TypeDueDateReminder:
		return true
	}
	return false
}

// Notification is one simulated outbound message.
type Notification struct {
	Type      Type
	Recipient string // student id or masked email
	Message   string
	CreatedAt time.Time
}

// New creates a notification record stamped with the current time.
func New(t Type, recipient, message string) Notification {
	return Notification{
		Type:      t,
		Recipient: recipient,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// String returns a compact representation for logs.
func (n Notification) String() string {
	return fmt.Sprintf("[%s] to %s: %s", n.Type, n.Recipient, n.Message)
}
