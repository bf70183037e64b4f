// Package tui implements the interactive ticket screen: a scrollable list
// of tickets with modal forms for creating, editing and deleting them.
//
// The screen owns no ticket state of its own. Every mutation goes through
// the injected TicketService and the list is reloaded from it afterwards,
// so the screen always mirrors the store.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util/errorutil"
)

// TicketService is the subset of the ticket service the screen drives.
type TicketService interface {
	CreateTicket(ctx context.Context, input service.TicketCreateInput) (*domain.Ticket, error)
	UpdateTicket(ctx context.Context, id string, input service.TicketUpdateInput) (*domain.Ticket, bool, error)
	DeleteTicket(ctx context.Context, id string) (bool, error)
	ListTickets(ctx context.Context) ([]domain.Ticket, error)
	GetTicket(ctx context.Context, id string) (*domain.Ticket, error)
}

// Mode identifies which surface currently receives keyboard input.
type Mode int

const (
	// ModeList is the ticket list with no overlay.
	ModeList Mode = iota
	// ModeCreate shows the new-ticket form.
	ModeCreate
	// ModeEdit shows the edit form for the selected ticket.
	ModeEdit
	// ModeDelete shows the delete confirmation prompt.
	ModeDelete
)

// MsgTicketCreated is shown after a ticket was created.
const MsgTicketCreated = "Ticket Created Successfully"

// alert is a blocking message. While an alert is shown every key
// press only dismisses it; the underlying mode is left as it was.
type alert struct {
	title   string
	message string
	isError bool
}

// Model is the bubbletea model for the ticket screen.
type Model struct {
	ctx     context.Context
	service TicketService
	keys    KeyMap
	theme   Theme

	tickets []domain.Ticket
	cursor  int

	mode   Mode
	form   ticketForm
	target *domain.Ticket
	alert  *alert

	width  int
	height int
}

// NewModel creates a Model backed by ticketService and loads the
// current ticket list.
func NewModel(ctx context.Context, ticketService TicketService) Model {
	model := Model{
		ctx:     ctx,
		service: ticketService,
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
	}
	model.reload()
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Mode reports the active surface.
func (model Model) Mode() Mode {
	return model.mode
}

// Tickets returns the tickets currently displayed.
func (model Model) Tickets() []domain.Ticket {
	return model.tickets
}

// Alert returns the text of the visible alert, or "" when none is shown.
func (model Model) Alert() string {
	if model.alert == nil {
		return ""
	}
	return model.alert.message
}

// Update implements tea.Model. Routes keyboard input to the alert, the
// open form or prompt, or the list, in that order of precedence.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case tea.KeyMsg:
		if key.Matches(message, model.keys.ForceQuit) {
			return model, tea.Quit
		}
		if model.alert != nil {
			model.alert = nil
			return model, nil
		}
		switch model.mode {
		case ModeCreate, ModeEdit:
			return model.handleFormKeys(message)
		case ModeDelete:
			return model.handleDeleteKeys(message)
		default:
			return model.handleListKeys(message)
		}
	}

	if model.mode == ModeCreate || model.mode == ModeEdit {
		command := model.form.update(message)
		return model, command
	}
	return model, nil
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.tickets)-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.New):
		model.form = newCreateForm()
		model.target = nil
		model.mode = ModeCreate

	case key.Matches(message, model.keys.Edit):
		selected, ok := model.selected()
		if !ok {
			return model, nil
		}
		ticket, err := model.service.GetTicket(model.ctx, selected.ID)
		if err != nil {
			model.showError(err)
			model.reload()
			return model, nil
		}
		model.target = ticket
		model.form = newEditForm(*ticket)
		model.mode = ModeEdit

	case key.Matches(message, model.keys.Delete):
		selected, ok := model.selected()
		if !ok {
			return model, nil
		}
		model.target = &selected
		model.mode = ModeDelete
	}
	return model, nil
}

func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.closeOverlay()
		return model, nil

	case key.Matches(message, model.keys.Save),
		message.Type == tea.KeyEnter && model.form.focus != fieldDescription:
		if model.mode == ModeCreate {
			return model.submitCreate()
		}
		return model.submitEdit()

	case key.Matches(message, model.keys.NextField):
		model.form.nextField()
		return model, nil

	case key.Matches(message, model.keys.PrevField):
		model.form.prevField()
		return model, nil
	}

	if model.form.focus == fieldStatus {
		switch {
		case key.Matches(message, model.keys.StatusPrev):
			model.form.shiftStatus(-1)
		case key.Matches(message, model.keys.StatusNext):
			model.form.shiftStatus(1)
		}
		return model, nil
	}

	command := model.form.update(message)
	return model, command
}

func (model Model) handleDeleteKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Confirm):
		if _, err := model.service.DeleteTicket(model.ctx, model.target.ID); err != nil {
			model.showError(err)
		}
		model.closeOverlay()
		model.reload()

	case key.Matches(message, model.keys.Deny):
		model.closeOverlay()
	}
	return model, nil
}

func (model Model) submitCreate() (tea.Model, tea.Cmd) {
	_, err := model.service.CreateTicket(model.ctx, service.TicketCreateInput{
		Title:       model.form.title.Value(),
		Description: model.form.description.Value(),
	})
	if err != nil {
		// The form stays open so the user can fix the title.
		model.showError(err)
		return model, nil
	}
	model.closeOverlay()
	model.reload()
	model.cursor = 0
	model.alert = &alert{title: "Success", message: MsgTicketCreated}
	return model, nil
}

func (model Model) submitEdit() (tea.Model, tea.Cmd) {
	_, _, err := model.service.UpdateTicket(model.ctx, model.target.ID, service.TicketUpdateInput{
		Title:       model.form.title.Value(),
		Description: model.form.description.Value(),
		Status:      model.form.status(),
	})
	if err != nil {
		model.showError(err)
		return model, nil
	}
	model.closeOverlay()
	model.reload()
	return model, nil
}

func (model *Model) closeOverlay() {
	model.mode = ModeList
	model.target = nil
}

func (model *Model) showError(err error) {
	message := err.Error()
	if domainErr := apperrors.ToDomainError(err); domainErr.Code != apperrors.CodeInternalError {
		message = domainErr.Message
	}
	title := "Error"
	if apperrors.IsValidation(err) {
		title = "Invalid ticket"
	}
	model.alert = &alert{title: title, message: message, isError: true}
}

// reload refreshes the list from the service and clamps the cursor.
func (model *Model) reload() {
	tickets, err := model.service.ListTickets(model.ctx)
	if err != nil {
		model.showError(err)
		return
	}
	model.tickets = tickets
	if model.cursor >= len(model.tickets) {
		model.cursor = len(model.tickets) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

func (model Model) selected() (domain.Ticket, bool) {
	if model.cursor < 0 || model.cursor >= len(model.tickets) {
		return domain.Ticket{}, false
	}
	return model.tickets[model.cursor], true
}

// View implements tea.Model.
func (model Model) View() string {
	var body string
	switch {
	case model.alert != nil:
		body = model.renderAlert()
	case model.mode == ModeCreate:
		body = model.renderModal(model.form.view("Add New Ticket", model.theme), model.keys.Save, model.keys.NextField, model.keys.Cancel)
	case model.mode == ModeEdit:
		body = model.renderModal(model.form.view("Editing: "+model.target.Title, model.theme),
			model.keys.Save, model.keys.NextField, model.keys.StatusNext, model.keys.Cancel)
	case model.mode == ModeDelete:
		body = model.renderDeletePrompt()
	default:
		body = model.renderList()
	}
	return lipgloss.JoinVertical(lipgloss.Left, model.renderHeader(), body)
}

func (model Model) renderHeader() string {
	width := model.width
	if width <= 0 {
		width = 60
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Background(model.theme.HeaderBackground).
		Bold(true).
		Width(width).
		Align(lipgloss.Center).
		Padding(1, 0).
		Render("Ticket Management System")
}

func (model Model) renderList() string {
	var rows []string
	if len(model.tickets) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(model.theme.FaintText).Padding(1, 2).
			Render("No tickets. Press n to add one."))
	}
	for i, ticket := range model.tickets {
		rows = append(rows, model.renderRow(ticket, i == model.cursor))
	}
	rows = append(rows, model.renderHelp(model.keys.Up, model.keys.Down, model.keys.New,
		model.keys.Edit, model.keys.Delete, model.keys.Quit))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (model Model) renderRow(ticket domain.Ticket, selected bool) string {
	border := model.theme.BorderColor
	if selected {
		border = model.theme.SelectedBorder
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.NormalText).Render(ticket.Title)
	description := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(ticket.Description)
	status := lipgloss.NewStyle().Bold(true).Foreground(model.theme.StatusColor(ticket.Status)).Render(string(ticket.Status))

	lines := []string{title}
	if ticket.Description != "" {
		lines = append(lines, description)
	}
	lines = append(lines, status)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(model.rowWidth()).
		Render(strings.Join(lines, "\n"))
}

func (model Model) renderModal(content string, bindings ...key.Binding) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.AccentColor).
		Padding(1, 2).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, box, model.renderHelp(bindings...))
}

func (model Model) renderDeletePrompt() string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(model.theme.ErrorText).Render("Delete Ticket")
	question := fmt.Sprintf("Are you sure you want to delete %s?",
		lipgloss.NewStyle().Bold(true).Render(model.target.Title))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.DangerColor).
		Padding(1, 2).
		Render(heading + "\n\n" + question)
	return lipgloss.JoinVertical(lipgloss.Left, box, model.renderHelp(model.keys.Confirm, model.keys.Deny))
}

func (model Model) renderAlert() string {
	color := model.theme.AccentColor
	if model.alert.isError {
		color = model.theme.ErrorText
	}
	heading := lipgloss.NewStyle().Bold(true).Foreground(color).Render(model.alert.title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 2).
		Render(heading + "\n\n" + model.alert.message)
	hint := lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("press any key")
	return lipgloss.JoinVertical(lipgloss.Left, box, hint)
}

func (model Model) renderHelp(bindings ...key.Binding) string {
	var parts []string
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(strings.Join(parts, " • "))
}

func (model Model) rowWidth() int {
	if model.width <= 4 {
		return 56
	}
	return model.width - 4
}
