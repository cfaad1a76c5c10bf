package services

import (
	"context"
	"time"
)

// Lifecycle event types published after a composite write commits
const (
	EventEmployeeCreated = "employee.created"
	EventEmployeeUpdated = "employee.updated"
	EventEmployeeDeleted = "employee.deleted"
	EventStudentCreated  = "student.created"
	EventStudentUpdated  = "student.updated"
	EventStudentDeleted  = "student.deleted"
)

// Event describes a committed change to a person aggregate
type Event struct {
	Type       string    `json:"type"`
	PersonID   uint      `json:"person_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher delivers lifecycle events. Implementations must not block the caller on delivery failures.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}

func newEvent(eventType string, personID uint) Event {
	return Event{Type: eventType, PersonID: personID, OccurredAt: time.Now().UTC()}
}
