package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util/errorutil"
)

// MsgTitleRequired is shown when a ticket is created without a title.
const MsgTitleRequired = "Please enter a title."

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
}

// TicketUpdateInput carries the user-editable fields.
type TicketUpdateInput struct {
	Title       string
	Description string
	Status      domain.TicketStatus
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateTicket validates input and inserts a new ticket at the head of the list.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError(MsgTitleRequired, map[string]any{"field": "title"})
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusCreated,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.logger.Info("ticket created", zap.String("ticket_id", ticket.ID))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:  ticket.Title,
			Status: ticket.Status,
		},
	})
	return ticket, nil
}

// UpdateTicket replaces title, description and status of an existing ticket.
// The boolean result is false, with a nil ticket and error, when id is unknown.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, input TicketUpdateInput) (*domain.Ticket, bool, error) {
	if !input.Status.Valid() {
		return nil, false, apperrors.NewValidationError("invalid status", map[string]any{
			"status":  string(input.Status),
			"allowed": domain.TicketStatuses,
		})
	}

	ticket := &domain.Ticket{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}
	previous, err := s.tickets.Update(ctx, ticket)
	if err != nil {
		return nil, false, fmt.Errorf("update ticket %s: %w", id, err)
	}
	if previous == nil {
		return nil, false, nil
	}

	payload := events.TicketUpdatedPayload{Title: ticket.Title, NewStatus: ticket.Status}
	if previous.Status != ticket.Status {
		oldStatus := previous.Status
		payload.OldStatus = &oldStatus
	}
	s.logger.Info("ticket updated", zap.String("ticket_id", id), zap.String("status", string(ticket.Status)))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: id,
		Payload:  payload,
	})
	return ticket, true, nil
}

// DeleteTicket removes the ticket with id. Unknown ids are ignored.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) (bool, error) {
	existing, err := s.tickets.GetByID(ctx, id)
	if errors.Is(err, repository.ErrTicketNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load ticket %s: %w", id, err)
	}

	deleted, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete ticket %s: %w", id, err)
	}
	if !deleted {
		return false, nil
	}

	s.logger.Info("ticket deleted", zap.String("ticket_id", id))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
		Payload:  events.TicketDeletedPayload{Title: existing.Title},
	})
	return true, nil
}

// ListTickets returns every ticket, most recently created first.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.List(ctx)
}

// GetTicket fetches a single ticket.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if errors.Is(err, repository.ErrTicketNotFound) {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	if err != nil {
		return nil, fmt.Errorf("load ticket %s: %w", id, err)
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
