package http

import (
	"mealsub/internal/domain/shared/events"
	"mealsub/internal/domain/subscription"
	"mealsub/internal/shared/logger"
)

// subscriptionEventLogger records subscription lifecycle events in the
// structured log.
type subscriptionEventLogger struct {
	logger logger.Interface
}

func newSubscriptionEventLogger(log logger.Interface) *subscriptionEventLogger {
	return &subscriptionEventLogger{logger: log}
}

func (h *subscriptionEventLogger) eventTypes() []string {
	return []string{
		subscription.EventSubscriptionCreated,
		subscription.EventDeliveryMarked,
		subscription.EventCompleted,
	}
}

func (h *subscriptionEventLogger) CanHandle(eventType string) bool {
	for _, t := range h.eventTypes() {
		if t == eventType {
			return true
		}
	}
	return false
}

func (h *subscriptionEventLogger) Handle(event events.DomainEvent) error {
	args := []any{
		"event_type", event.GetEventType(),
		"sid", event.GetAggregateID(),
		"occurred_at", event.GetOccurredAt(),
	}

	switch e := event.(type) {
	case *subscription.SubscriptionCreatedEvent:
		args = append(args, "user_id", e.UserID, "start_date", e.StartDate, "status", e.Status)
	case *subscription.DeliveryMarkedEvent:
		args = append(args, "day_index", e.DayIndex, "delivered_days", e.DeliveredDays, "total_days", e.TotalDays)
	case *subscription.SubscriptionCompletedEvent:
		args = append(args, "user_id", e.UserID, "completed_at", e.CompletedAt)
	}

	h.logger.Infow("subscription event", args...)
	return nil
}
