package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// ErrTicketNotFound is returned by GetByID when no ticket has the given id.
var ErrTicketNotFound = errors.New("ticket not found")

// IDGenerator produces candidate ticket identifiers.
type IDGenerator func() string

// TicketRepository encapsulates the ordered ticket collection.
type TicketRepository interface {
	// Create assigns a fresh id to ticket and inserts it at the head of the collection.
	Create(ctx context.Context, ticket *domain.Ticket) error
	// Update replaces title, description and status of the ticket with the same id
	// and returns the ticket as it was before. It returns nil, without error, when
	// no such ticket exists.
	Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	// Delete removes the ticket with the given id, reporting false when it was absent.
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
}

type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
	newID   IDGenerator
}

// NewTicketRepository instantiates an in-memory repository holding a copy of seed.
func NewTicketRepository(seed []domain.Ticket) TicketRepository {
	return NewTicketRepositoryWithIDs(seed, uuid.NewString)
}

// NewTicketRepositoryWithIDs is NewTicketRepository with a custom id source.
func NewTicketRepositoryWithIDs(seed []domain.Ticket, newID IDGenerator) TicketRepository {
	tickets := make([]domain.Ticket, 0, len(seed))
	for _, t := range seed {
		tickets = append(tickets, t.Clone())
	}
	return &memoryTicketRepository{tickets: tickets, newID: newID}
}

func (r *memoryTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for r.indexOf(id) >= 0 {
		id = r.newID()
	}
	ticket.ID = id

	tickets := make([]domain.Ticket, 0, len(r.tickets)+1)
	tickets = append(tickets, ticket.Clone())
	r.tickets = append(tickets, r.tickets...)
	return nil
}

func (r *memoryTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(ticket.ID)
	if idx < 0 {
		return nil, nil
	}
	current := &r.tickets[idx]
	previous := current.Clone()
	current.Title = ticket.Title
	current.Description = ticket.Description
	current.Status = ticket.Status
	*ticket = current.Clone()
	return &previous, nil
}

func (r *memoryTicketRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	r.tickets = append(r.tickets[:idx:idx], r.tickets[idx+1:]...)
	return true, nil
}

func (r *memoryTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrTicketNotFound
	}
	ticket := r.tickets[idx].Clone()
	return &ticket, nil
}

func (r *memoryTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		result = append(result, t.Clone())
	}
	return result, nil
}

// indexOf must be called with mu held.
func (r *memoryTicketRepository) indexOf(id string) int {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			return i
		}
	}
	return -1
}
