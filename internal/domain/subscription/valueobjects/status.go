package valueobjects

import "fmt"

// SubscriptionStatus is the lifecycle state of a meal subscription.
type SubscriptionStatus string

const (
	StatusPending   SubscriptionStatus = "pending"
	StatusActive    SubscriptionStatus = "active"
	StatusScheduled SubscriptionStatus = "scheduled"
	// StatusPaused and StatusCancelled are entered only by external
	// administrative action; this service never writes them.
	StatusPaused    SubscriptionStatus = "paused"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusCompleted SubscriptionStatus = "completed"
)

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusPending:   true,
	StatusActive:    true,
	StatusScheduled: true,
	StatusPaused:    true,
	StatusCancelled: true,
	StatusCompleted: true,
}

// OpenStatuses are the states that block a new enrollment for the same user.
var OpenStatuses = []SubscriptionStatus{StatusPending, StatusActive, StatusScheduled}

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	return ValidStatuses[s]
}

// IsOpen reports whether the subscription still counts as the user's
// current enrollment.
func (s SubscriptionStatus) IsOpen() bool {
	switch s {
	case StatusPending, StatusActive, StatusScheduled:
		return true
	case StatusPaused, StatusCancelled, StatusCompleted:
		return false
	}
	return false
}

// IsHeld reports whether progress recalculation must leave the status alone
// while deliveries remain.
func (s SubscriptionStatus) IsHeld() bool {
	return s == StatusPaused || s == StatusCancelled
}

func (s SubscriptionStatus) IsCompleted() bool {
	return s == StatusCompleted
}

// ParseSubscriptionStatus validates a raw status string.
func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	status := SubscriptionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid subscription status: %s", s)
	}
	return status, nil
}
