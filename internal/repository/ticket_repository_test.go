package repository

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

func ids(tickets []domain.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.ID)
	}
	return out
}

func mustList(t *testing.T, repo TicketRepository) []domain.Ticket {
	t.Helper()
	tickets, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return tickets
}

func TestListReturnsSeedInOrder(t *testing.T) {
	repo := NewTicketRepository(DefaultSeed())
	got := ids(mustList(t, repo))
	if !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestCreatePrependsWithFreshID(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(DefaultSeed())

	ticket := &domain.Ticket{Title: "Printer jam", Status: domain.TicketStatusCreated}
	if err := repo.Create(ctx, ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.ID == "" {
		t.Fatal("Create should assign an id")
	}

	tickets := mustList(t, repo)
	if len(tickets) != 4 {
		t.Fatalf("expected 4 tickets, got %d", len(tickets))
	}
	head := tickets[0]
	if head.ID != ticket.ID || head.Title != "Printer jam" || head.Description != "" {
		t.Errorf("unexpected head %+v", head)
	}
	if head.Status != domain.TicketStatusCreated || head.Rating != nil {
		t.Errorf("new ticket should be Created with no rating, got %+v", head)
	}
	if !reflect.DeepEqual(ids(tickets[1:]), []string{"1", "2", "3"}) {
		t.Errorf("existing order disturbed: %v", ids(tickets))
	}
}

func TestCreateRegeneratesCollidingIDs(t *testing.T) {
	ctx := context.Background()
	candidates := []string{"1", "2", "7"}
	next := 0
	gen := func() string {
		id := candidates[next]
		next++
		return id
	}
	repo := NewTicketRepositoryWithIDs(DefaultSeed(), gen)

	ticket := &domain.Ticket{Title: "Collides"}
	if err := repo.Create(ctx, ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.ID != "7" {
		t.Fatalf("expected generator to be retried until unique, got %q", ticket.ID)
	}
}

func TestCreateManyYieldsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(nil)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		ticket := &domain.Ticket{Title: "t" + strconv.Itoa(i)}
		if err := repo.Create(ctx, ticket); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[ticket.ID] {
			t.Fatalf("duplicate id %q", ticket.ID)
		}
		seen[ticket.ID] = true
	}
	tickets := mustList(t, repo)
	if tickets[0].Title != "t199" || tickets[len(tickets)-1].Title != "t0" {
		t.Errorf("expected most-recent-first order, got head %q tail %q", tickets[0].Title, tickets[len(tickets)-1].Title)
	}
}

func TestUpdateChangesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(DefaultSeed())
	before := mustList(t, repo)

	ticket := before[1]
	ticket.Status = domain.TicketStatusCompleted
	previous, err := repo.Update(ctx, &ticket)
	if err != nil || previous == nil {
		t.Fatalf("Update: previous=%v err=%v", previous, err)
	}
	if !reflect.DeepEqual(*previous, before[1]) {
		t.Errorf("previous = %+v, want %+v", *previous, before[1])
	}

	after := mustList(t, repo)
	if len(after) != len(before) {
		t.Fatalf("length changed: %d -> %d", len(before), len(after))
	}
	want := before[1]
	want.Status = domain.TicketStatusCompleted
	if !reflect.DeepEqual(after[1], want) {
		t.Errorf("ticket 2 = %+v, want %+v", after[1], want)
	}
	if !reflect.DeepEqual(after[0], before[0]) || !reflect.DeepEqual(after[2], before[2]) {
		t.Error("other tickets must be unchanged")
	}
}

func TestUpdateKeepsRating(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(DefaultSeed())

	edit := &domain.Ticket{ID: "3", Title: "Dark mode", Description: "", Status: domain.TicketStatusCreated}
	if _, err := repo.Update(ctx, edit); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if edit.Rating == nil || *edit.Rating != 4 {
		t.Fatalf("rating should survive update, got %v", edit.Rating)
	}
	stored, err := repo.GetByID(ctx, "3")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Title != "Dark mode" || stored.Status != domain.TicketStatusCreated {
		t.Errorf("update not applied: %+v", stored)
	}
}

func TestUpdateMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(DefaultSeed())
	before := mustList(t, repo)

	previous, err := repo.Update(ctx, &domain.Ticket{ID: "nope", Title: "x", Status: domain.TicketStatusCompleted})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if previous != nil {
		t.Errorf("missing id must report no update, got %+v", previous)
	}
	if !reflect.DeepEqual(mustList(t, repo), before) {
		t.Error("collection changed on missing-id update")
	}
}

func TestDeleteRemovesAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(DefaultSeed())

	deleted, err := repo.Delete(ctx, "1")
	if err != nil || !deleted {
		t.Fatalf("Delete: deleted=%v err=%v", deleted, err)
	}
	afterFirst := mustList(t, repo)
	if !reflect.DeepEqual(ids(afterFirst), []string{"2", "3"}) {
		t.Fatalf("unexpected remaining %v", ids(afterFirst))
	}

	deleted, err = repo.Delete(ctx, "1")
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if deleted {
		t.Error("second delete should be a no-op")
	}
	if !reflect.DeepEqual(mustList(t, repo), afterFirst) {
		t.Error("second delete changed the collection")
	}
}

func TestDeleteMiddlePreservesOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(DefaultSeed())
	snapshot := mustList(t, repo)

	if _, err := repo.Delete(ctx, "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !reflect.DeepEqual(ids(mustList(t, repo)), []string{"1", "3"}) {
		t.Errorf("unexpected order %v", ids(mustList(t, repo)))
	}
	if !reflect.DeepEqual(ids(snapshot), []string{"1", "2", "3"}) {
		t.Errorf("earlier List result changed by later delete: %v", ids(snapshot))
	}
}

func TestGetByIDMissing(t *testing.T) {
	repo := NewTicketRepository(DefaultSeed())
	if _, err := repo.GetByID(context.Background(), "42"); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestListReturnsCopies(t *testing.T) {
	repo := NewTicketRepository(DefaultSeed())

	tickets := mustList(t, repo)
	tickets[0].Title = "mutated"
	*tickets[2].Rating = 1

	fresh := mustList(t, repo)
	if fresh[0].Title == "mutated" {
		t.Error("List must not expose internal storage")
	}
	if *fresh[2].Rating != 4 {
		t.Error("rating pointer must not be shared")
	}
}
