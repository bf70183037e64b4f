package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// Theme defines the colors used by the ticket screen. Status colors
// match the ones users already know from the mobile client.
type Theme struct {
	HeaderForeground lipgloss.Color
	HeaderBackground lipgloss.Color

	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBorder lipgloss.Color
	BorderColor    lipgloss.Color
	HelpText       lipgloss.Color

	StatusCreated         lipgloss.Color
	StatusUnderAssistance lipgloss.Color
	StatusCompleted       lipgloss.Color

	ErrorText   lipgloss.Color
	DangerColor lipgloss.Color
	AccentColor lipgloss.Color
}

// DefaultTheme is the built-in color scheme.
var DefaultTheme = Theme{
	HeaderForeground: lipgloss.Color("#ffffff"),
	HeaderBackground: lipgloss.Color("#333333"),

	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("#475569"),

	SelectedBorder: lipgloss.Color("#2563eb"),
	BorderColor:    lipgloss.Color("240"),
	HelpText:       lipgloss.Color("245"),

	StatusCreated:         lipgloss.Color("#2b6cb0"),
	StatusUnderAssistance: lipgloss.Color("#d69e2e"),
	StatusCompleted:       lipgloss.Color("#16ab3b"),

	ErrorText:   lipgloss.Color("#b91c1c"),
	DangerColor: lipgloss.Color("#dc2626"),
	AccentColor: lipgloss.Color("#2563eb"),
}

// StatusColor returns the color for a ticket status. Unknown values
// render in FaintText.
func (theme Theme) StatusColor(status domain.TicketStatus) lipgloss.Color {
	switch status {
	case domain.TicketStatusCreated:
		return theme.StatusCreated
	case domain.TicketStatusUnderAssistance:
		return theme.StatusUnderAssistance
	case domain.TicketStatusCompleted:
		return theme.StatusCompleted
	}
	return theme.FaintText
}
