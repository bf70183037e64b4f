package events

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Publisher sends an encoded event to a named channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisRelay forwards every ticket event to a pub/sub channel as JSON.
type RedisRelay struct {
	publisher Publisher
	channel   string
	logger    *zap.Logger
}

// NewRedisRelay creates a relay publishing on channel.
func NewRedisRelay(publisher Publisher, channel string, logger *zap.Logger) *RedisRelay {
	return &RedisRelay{publisher: publisher, channel: channel, logger: logger}
}

// Register subscribes the relay to all ticket events.
func (r *RedisRelay) Register(dispatcher Dispatcher) {
	if dispatcher == nil || r.publisher == nil {
		return
	}
	for _, eventType := range AllEventTypes {
		dispatcher.Subscribe(eventType, r.forward)
	}
}

func (r *RedisRelay) forward(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	if err := r.publisher.Publish(ctx, r.channel, payload); err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}
	r.logger.Debug("event relayed",
		zap.String("channel", r.channel),
		zap.String("event_type", string(event.Type)),
		zap.String("ticket_id", event.TicketID))
	return nil
}
