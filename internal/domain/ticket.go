package domain

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusCreated         TicketStatus = "Created"
	TicketStatusUnderAssistance TicketStatus = "Under Assistance"
	TicketStatusCompleted       TicketStatus = "Completed"
)

// TicketStatuses lists every status in display order.
var TicketStatuses = []TicketStatus{
	TicketStatusCreated,
	TicketStatusUnderAssistance,
	TicketStatusCompleted,
}

// Valid reports whether s is one of the fixed statuses.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusCreated, TicketStatusUnderAssistance, TicketStatusCompleted:
		return true
	}
	return false
}

// Ticket is a unit of reported work.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	Rating      *int
}

// Clone returns a copy that shares no memory with t.
func (t Ticket) Clone() Ticket {
	if t.Rating != nil {
		rating := *t.Rating
		t.Rating = &rating
	}
	return t
}
