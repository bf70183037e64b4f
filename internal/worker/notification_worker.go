package worker

import (
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/service"
)

// StartNotificationWorker registers notification handlers and, when present,
// the relay that forwards events to Redis.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, relay *events.RedisRelay) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if relay != nil {
		relay.Register(dispatcher)
	}
}
