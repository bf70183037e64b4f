package repository

import "github.com/spec-kit/ticket-tracker/internal/domain"

// DefaultSeed returns the tickets installed at startup.
func DefaultSeed() []domain.Ticket {
	rating := 4
	return []domain.Ticket{
		{
			ID:          "1",
			Title:       "App crashes on launch",
			Description: "After tapping icon, app closes immediately.",
			Status:      domain.TicketStatusCreated,
		},
		{
			ID:          "2",
			Title:       "Unable to login",
			Description: "Sign-in fails with 'Network error' message.",
			Status:      domain.TicketStatusUnderAssistance,
		},
		{
			ID:          "3",
			Title:       "Feature request: Dark mode",
			Description: "Please add a dark theme option in settings.",
			Status:      domain.TicketStatusCompleted,
			Rating:      &rating,
		},
	}
}
