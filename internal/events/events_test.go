package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

type recordingPublisher struct {
	channel  string
	messages [][]byte
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.channel = channel
	p.messages = append(p.messages, payload)
	return nil
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var calls []string
	dispatcher.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		calls = append(calls, "second")
		return nil
	})
	dispatcher.Subscribe(EventTicketDeleted, func(ctx context.Context, event Event) error {
		calls = append(calls, "deleted")
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("unexpected handler calls %v", calls)
	}
}

func TestRedisRelayPublishesJSON(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())
	publisher := &recordingPublisher{}
	NewRedisRelay(publisher, "tickets.events", zap.NewNop()).Register(dispatcher)

	for _, eventType := range AllEventTypes {
		event := Event{
			ID:       "evt-" + string(eventType),
			Type:     eventType,
			TicketID: "2",
			Payload:  TicketCreatedPayload{Title: "Unable to login", Status: domain.TicketStatusCreated},
		}
		if err := dispatcher.Publish(context.Background(), event); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	if publisher.channel != "tickets.events" {
		t.Errorf("unexpected channel %q", publisher.channel)
	}
	if len(publisher.messages) != len(AllEventTypes) {
		t.Fatalf("expected %d messages, got %d", len(AllEventTypes), len(publisher.messages))
	}
	var decoded struct {
		Type     string `json:"type"`
		TicketID string `json:"ticket_id"`
		Payload  struct {
			Title string `json:"title"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(publisher.messages[0], &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Type != string(EventTicketCreated) || decoded.TicketID != "2" || decoded.Payload.Title != "Unable to login" {
		t.Errorf("unexpected message %+v", decoded)
	}
}

func TestRedisRelayReportsPublishFailure(t *testing.T) {
	relay := NewRedisRelay(&recordingPublisher{err: errors.New("connection refused")}, "c", zap.NewNop())
	if err := relay.forward(context.Background(), Event{ID: "e1", Type: EventTicketDeleted}); err == nil {
		t.Fatal("expected publish error to surface to the dispatcher")
	}
}
