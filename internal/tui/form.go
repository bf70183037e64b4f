package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// formField identifies which control of a ticket form has focus.
type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldStatus
)

const formWidth = 40

// ticketForm holds the state of the create and edit forms. The create
// form has no status control; the edit form starts pre-populated from
// the ticket being edited.
type ticketForm struct {
	title       textinput.Model
	description textarea.Model
	statusIndex int
	withStatus  bool
	focus       formField
}

func newCreateForm() ticketForm {
	form := ticketForm{
		title:       newTitleInput("Enter title"),
		description: newDescriptionArea("Enter description"),
	}
	form.focusField(fieldTitle)
	return form
}

func newEditForm(ticket domain.Ticket) ticketForm {
	form := ticketForm{
		title:       newTitleInput("Enter new title"),
		description: newDescriptionArea("Enter new description"),
		withStatus:  true,
	}
	form.title.SetValue(ticket.Title)
	form.description.SetValue(ticket.Description)
	for i, status := range domain.TicketStatuses {
		if status == ticket.Status {
			form.statusIndex = i
		}
	}
	form.focusField(fieldTitle)
	return form
}

func newTitleInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	input.Width = formWidth
	return input
}

func newDescriptionArea(placeholder string) textarea.Model {
	area := textarea.New()
	area.Placeholder = placeholder
	area.ShowLineNumbers = false
	area.SetWidth(formWidth)
	area.SetHeight(3)
	return area
}

func (form *ticketForm) fieldCount() int {
	if form.withStatus {
		return 3
	}
	return 2
}

func (form *ticketForm) focusField(field formField) {
	form.focus = field
	form.title.Blur()
	form.description.Blur()
	switch field {
	case fieldTitle:
		form.title.Focus()
	case fieldDescription:
		form.description.Focus()
	}
}

func (form *ticketForm) nextField() {
	form.focusField(formField((int(form.focus) + 1) % form.fieldCount()))
}

func (form *ticketForm) prevField() {
	count := form.fieldCount()
	form.focusField(formField((int(form.focus) + count - 1) % count))
}

func (form *ticketForm) shiftStatus(delta int) {
	count := len(domain.TicketStatuses)
	form.statusIndex = (form.statusIndex + delta + count) % count
}

func (form ticketForm) status() domain.TicketStatus {
	return domain.TicketStatuses[form.statusIndex]
}

// update forwards a message to the focused text control.
func (form *ticketForm) update(message tea.Msg) tea.Cmd {
	var command tea.Cmd
	switch form.focus {
	case fieldTitle:
		form.title, command = form.title.Update(message)
	case fieldDescription:
		form.description, command = form.description.Update(message)
	}
	return command
}

func (form ticketForm) view(heading string, theme Theme) string {
	label := lipgloss.NewStyle().Foreground(theme.FaintText)
	focused := lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
	labelFor := func(text string, field formField) string {
		if form.focus == field {
			return focused.Render(text)
		}
		return label.Render(text)
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(heading), "")
	lines = append(lines, labelFor("Title", fieldTitle), form.title.View(), "")
	lines = append(lines, labelFor("Description", fieldDescription), form.description.View())

	if form.withStatus {
		lines = append(lines, "", labelFor("Status", fieldStatus))
		var options []string
		for i, status := range domain.TicketStatuses {
			style := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.BorderColor).
				Padding(0, 1)
			if i == form.statusIndex {
				style = style.BorderForeground(theme.AccentColor).Bold(true)
			}
			options = append(options, style.Render(string(status)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, options...))
	}

	return strings.Join(lines, "\n")
}
