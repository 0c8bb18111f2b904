package subscription

import (
	"context"

	vo "mealsub/internal/domain/subscription/valueobjects"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *Subscription) error
	// GetBySID returns nil when no row matches. The owner is attached when
	// the user row exists.
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	// GetLatestByUserID returns the most recently created subscription of
	// the user, or nil when there is none.
	GetLatestByUserID(ctx context.Context, userID uint) (*Subscription, error)
	GetByUserIDAndStatuses(ctx context.Context, userID uint, statuses []vo.SubscriptionStatus) ([]*Subscription, error)
	// Update persists the aggregate only if its stored version still matches;
	// otherwise it returns ErrVersionConflict.
	Update(ctx context.Context, subscription *Subscription) error
	// List returns subscriptions newest first with owners attached.
	List(ctx context.Context, filter SubscriptionFilter) ([]*Subscription, int64, error)
}

type SubscriptionFilter struct {
	UserID   *uint
	Status   *vo.SubscriptionStatus
	Page     int
	PageSize int
}
