package events

import (
	"time"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventTicketDeleted EventType = "ticket_deleted"
)

// AllEventTypes lists every event a subscriber can observe.
var AllEventTypes = []EventType{EventTicketCreated, EventTicketUpdated, EventTicketDeleted}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title  string              `json:"title"`
	Status domain.TicketStatus `json:"status"`
}

// TicketUpdatedPayload payload. OldStatus is set only when the status changed.
type TicketUpdatedPayload struct {
	Title     string               `json:"title"`
	OldStatus *domain.TicketStatus `json:"old_status,omitempty"`
	NewStatus domain.TicketStatus  `json:"new_status"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Title string `json:"title"`
}
