package worker

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/service"
)

type countingPublisher struct {
	count int
}

func (p *countingPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	p.count++
	return nil
}

func TestStartNotificationWorkerWiresRelay(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	publisher := &countingPublisher{}
	notifications := service.NewNotificationService(dispatcher, zap.NewNop(), config.NotificationConfig{})
	relay := events.NewRedisRelay(publisher, "tickets.events", zap.NewNop())

	StartNotificationWorker(dispatcher, notifications, relay)

	if err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketUpdated, TicketID: "1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if publisher.count != 1 {
		t.Fatalf("expected relay to publish once, got %d", publisher.count)
	}
}

func TestStartNotificationWorkerWithoutRelay(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	StartNotificationWorker(dispatcher, nil, nil)
	if err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCreated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}
