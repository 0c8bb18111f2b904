package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"mealsub/internal/application/subscription/dto"
	"mealsub/internal/domain/shared/events"
	"mealsub/internal/domain/subscription"
	"mealsub/internal/shared/errors"
	"mealsub/internal/shared/logger"
)

const (
	ErrMsgInvalidDeliveryIndex  = "Invalid delivery index"
	ErrMsgSubscriptionNotFound  = "Subscription not found"
	ErrMsgDeliveryNotFound      = "Delivery not found for the given index"
	ErrMsgDeliveryInProgress    = "Delivery update already in progress, please retry"
	ErrMsgConcurrentUpdate      = "Subscription was modified concurrently, please retry"
	MsgDeliveryAlreadyDelivered = "Delivery already marked as delivered"
)

type MarkDeliveredCommand struct {
	SubscriptionSID string
	DayIndex        int
	// Notes replaces the day's notes when non-empty after sanitizing.
	Notes string
}

type MarkDeliveredResult struct {
	Subscription *dto.SubscriptionDTO
	Message      string
}

type MarkDeliveredUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	locker           MutationLocker
	sanitizer        NoteSanitizer
	publisher        events.EventPublisher
	now              Clock
	logger           logger.Interface
}

func NewMarkDeliveredUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	locker MutationLocker,
	sanitizer NoteSanitizer,
	publisher events.EventPublisher,
	logger logger.Interface,
) *MarkDeliveredUseCase {
	return &MarkDeliveredUseCase{
		subscriptionRepo: subscriptionRepo,
		locker:           locker,
		sanitizer:        sanitizer,
		publisher:        publisher,
		now:              defaultClock,
		logger:           logger,
	}
}

// Execute marks one day delivered. Repeating the call for a delivered day
// succeeds with MsgDeliveryAlreadyDelivered.
func (uc *MarkDeliveredUseCase) Execute(ctx context.Context, cmd MarkDeliveredCommand) (*MarkDeliveredResult, error) {
	if cmd.DayIndex < 0 {
		return nil, errors.NewValidationError(ErrMsgInvalidDeliveryIndex)
	}

	release, acquired, err := uc.locker.TryLock(ctx, deliveryLockKey(cmd.SubscriptionSID))
	if err != nil {
		uc.logger.Errorw("failed to acquire delivery lock", "sid", cmd.SubscriptionSID, "error", err)
		return nil, fmt.Errorf("failed to acquire delivery lock: %w", err)
	}
	if !acquired {
		uc.logger.Warnw("delivery update already in progress", "sid", cmd.SubscriptionSID, "day_index", cmd.DayIndex)
		return nil, errors.NewConflictError(ErrMsgDeliveryInProgress)
	}
	defer func() {
		if err := release(context.Background()); err != nil {
			uc.logger.Warnw("failed to release delivery lock", "sid", cmd.SubscriptionSID, "error", err)
		}
	}()

	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "sid", cmd.SubscriptionSID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError(ErrMsgSubscriptionNotFound)
	}

	notes := strings.TrimSpace(uc.sanitizer.Sanitize(cmd.Notes))

	result, err := sub.MarkDelivered(cmd.DayIndex, notes, uc.now())
	if err != nil {
		switch {
		case stderrors.Is(err, subscription.ErrDeliveryIndexOutOfRange):
			return nil, errors.NewValidationError(ErrMsgDeliveryNotFound)
		case stderrors.Is(err, subscription.ErrInvalidDeliveryIndex):
			return nil, errors.NewValidationError(ErrMsgInvalidDeliveryIndex)
		}
		uc.logger.Errorw("failed to mark delivery", "sid", cmd.SubscriptionSID, "day_index", cmd.DayIndex, "error", err)
		return nil, fmt.Errorf("failed to mark delivery: %w", err)
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		if stderrors.Is(err, subscription.ErrVersionConflict) {
			uc.logger.Warnw("concurrent subscription update detected", "sid", cmd.SubscriptionSID, "version", sub.Version())
			return nil, errors.NewConflictError(ErrMsgConcurrentUpdate)
		}
		uc.logger.Errorw("failed to update subscription", "sid", cmd.SubscriptionSID, "error", err)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	message := MsgDeliveryAlreadyDelivered
	if !result.AlreadyDelivered {
		message = fmt.Sprintf("Delivery %d marked as delivered", cmd.DayIndex+1)
		uc.publish(subscription.NewDeliveryMarkedEvent(sub, cmd.DayIndex))
	}
	if result.Completed {
		uc.publish(subscription.NewSubscriptionCompletedEvent(sub))
	}

	uc.logger.Infow("delivery marked",
		"sid", sub.SID(),
		"day_index", cmd.DayIndex,
		"already_delivered", result.AlreadyDelivered,
		"delivered_days", sub.DeliveredDays(),
		"status", sub.Status(),
	)

	return &MarkDeliveredResult{
		Subscription: dto.ToSubscriptionDTO(sub),
		Message:      message,
	}, nil
}

func (uc *MarkDeliveredUseCase) publish(e events.DomainEvent) {
	if err := uc.publisher.Publish(e); err != nil {
		uc.logger.Warnw("failed to publish event", "event_type", e.GetEventType(), "aggregate_id", e.GetAggregateID(), "error", err)
	}
}
