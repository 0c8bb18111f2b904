package subscription

import (
	"time"

	"mealsub/internal/domain/shared/events"
)

const (
	EventSubscriptionCreated = "subscription.created"
	EventDeliveryMarked      = "subscription.delivery_marked"
	EventCompleted           = "subscription.completed"
)

// SubscriptionCreatedEvent is published after a new subscription is stored.
type SubscriptionCreatedEvent struct {
	events.BaseEvent
	UserID    uint
	Status    string
	StartDate time.Time
	EndDate   time.Time
	TotalDays int
}

func NewSubscriptionCreatedEvent(s *Subscription) *SubscriptionCreatedEvent {
	return &SubscriptionCreatedEvent{
		BaseEvent: events.NewBaseEvent(s.SID(), EventSubscriptionCreated),
		UserID:    s.UserID(),
		Status:    s.Status().String(),
		StartDate: s.StartDate(),
		EndDate:   s.EndDate(),
		TotalDays: s.TotalDays(),
	}
}

// DeliveryMarkedEvent is published when a day is newly marked delivered.
type DeliveryMarkedEvent struct {
	events.BaseEvent
	UserID        uint
	DayIndex      int
	DeliveryDate  time.Time
	DeliveredDays int
	TotalDays     int
}

func NewDeliveryMarkedEvent(s *Subscription, dayIndex int) *DeliveryMarkedEvent {
	e := &DeliveryMarkedEvent{
		BaseEvent:     events.NewBaseEvent(s.SID(), EventDeliveryMarked),
		UserID:        s.UserID(),
		DayIndex:      dayIndex,
		DeliveredDays: s.DeliveredDays(),
		TotalDays:     s.TotalDays(),
	}
	if dayIndex >= 0 && dayIndex < len(s.deliveries) {
		e.DeliveryDate = s.deliveries[dayIndex].Date
	}
	return e
}

// SubscriptionCompletedEvent is published once, when the last day is delivered.
type SubscriptionCompletedEvent struct {
	events.BaseEvent
	UserID      uint
	CompletedAt time.Time
}

func NewSubscriptionCompletedEvent(s *Subscription) *SubscriptionCompletedEvent {
	return &SubscriptionCompletedEvent{
		BaseEvent:   events.NewBaseEvent(s.SID(), EventCompleted),
		UserID:      s.UserID(),
		CompletedAt: s.UpdatedAt(),
	}
}
