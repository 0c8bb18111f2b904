package usecases

import (
	"context"
	"fmt"
	"strings"

	"mealsub/internal/application/subscription/dto"
	"mealsub/internal/domain/shared/events"
	"mealsub/internal/domain/subscription"
	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/shared/biztime"
	"mealsub/internal/shared/db"
	"mealsub/internal/shared/errors"
	"mealsub/internal/shared/logger"
)

const (
	ErrMsgInvalidStartDate = "Invalid start date"
	ErrMsgStartDateInPast  = "Start date must be today or later"
	ErrMsgCreateInProgress = "Subscription request already in progress, please retry"
)

type CreateSubscriptionCommand struct {
	UserID        uint
	PhoneVerified bool
	// Plan and PaymentMethod default to weekly and cod when empty.
	Plan          string
	PaymentMethod string
	// StartDate is optional; empty means today.
	StartDate   string
	Preferences vo.RawPreferences
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	txRunner         db.TxRunner
	locker           MutationLocker
	publisher        events.EventPublisher
	defaultTotalDays int
	now              Clock
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	txRunner db.TxRunner,
	locker MutationLocker,
	publisher events.EventPublisher,
	defaultTotalDays int,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		txRunner:         txRunner,
		locker:           locker,
		publisher:        publisher,
		defaultTotalDays: defaultTotalDays,
		now:              defaultClock,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	if cmd.Plan == "" {
		cmd.Plan = string(vo.PlanWeekly)
	}
	if cmd.PaymentMethod == "" {
		cmd.PaymentMethod = string(vo.PaymentCOD)
	}

	eligibility := subscription.EligibilityRequest{
		Plan:          cmd.Plan,
		PaymentMethod: cmd.PaymentMethod,
		PhoneVerified: cmd.PhoneVerified,
	}

	// input checks run before touching the store
	if err := subscription.CheckEligibility(eligibility, nil); err != nil {
		uc.logger.Warnw("subscription request rejected", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	release, acquired, err := uc.locker.TryLock(ctx, createLockKey(cmd.UserID))
	if err != nil {
		uc.logger.Errorw("failed to acquire create lock", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to acquire create lock: %w", err)
	}
	if !acquired {
		uc.logger.Warnw("concurrent subscription request", "user_id", cmd.UserID)
		return nil, errors.NewConflictError(ErrMsgCreateInProgress)
	}
	defer uc.releaseLock(release, cmd.UserID)

	var created *subscription.Subscription
	err = uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.subscriptionRepo.GetByUserIDAndStatuses(txCtx, cmd.UserID, vo.OpenStatuses)
		if err != nil {
			uc.logger.Errorw("failed to load open subscriptions", "user_id", cmd.UserID, "error", err)
			return fmt.Errorf("failed to load open subscriptions: %w", err)
		}
		if err := subscription.CheckEligibility(eligibility, existing); err != nil {
			uc.logger.Warnw("subscription request rejected", "user_id", cmd.UserID, "error", err)
			return err
		}

		sub, err := uc.buildSubscription(cmd)
		if err != nil {
			return err
		}

		if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
			uc.logger.Errorw("failed to create subscription in database", "user_id", cmd.UserID, "error", err)
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		created = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.publisher.Publish(subscription.NewSubscriptionCreatedEvent(created)); err != nil {
		uc.logger.Warnw("failed to publish subscription created event", "sid", created.SID(), "error", err)
	}

	uc.logger.Infow("subscription created successfully",
		"sid", created.SID(),
		"user_id", created.UserID(),
		"status", created.Status(),
		"start_date", biztime.FormatDate(created.StartDate()),
		"total_days", created.TotalDays(),
	)

	return dto.ToSubscriptionDTO(created), nil
}

// buildSubscription applies the date and preference checks, in that order,
// and constructs the aggregate.
func (uc *CreateSubscriptionUseCase) buildSubscription(cmd CreateSubscriptionCommand) (*subscription.Subscription, error) {
	now := uc.now()
	today := biztime.StartOfDayUTC(now)

	start := today
	if strings.TrimSpace(cmd.StartDate) != "" {
		parsed, err := biztime.ParseDate(cmd.StartDate)
		if err != nil {
			uc.logger.Warnw("invalid start date", "user_id", cmd.UserID, "start_date", cmd.StartDate, "error", err)
			return nil, errors.NewValidationError(ErrMsgInvalidStartDate)
		}
		start = parsed
	}

	if start.Before(today) {
		return nil, errors.NewValidationError(ErrMsgStartDateInPast)
	}

	prefs := vo.ValidatePreferences(cmd.Preferences)
	if !prefs.Valid {
		return nil, errors.NewValidationError(strings.Join(prefs.Errors, ", "))
	}

	sub, err := subscription.NewSubscription(subscription.NewSubscriptionParams{
		UserID:        cmd.UserID,
		Plan:          vo.Plan(cmd.Plan),
		PaymentMethod: vo.PaymentMethod(cmd.PaymentMethod),
		StartDate:     start,
		TotalDays:     uc.defaultTotalDays,
		Preferences:   prefs.Values,
		Now:           now,
	})
	if err != nil {
		uc.logger.Errorw("failed to create subscription aggregate", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return sub, nil
}

func (uc *CreateSubscriptionUseCase) releaseLock(release func(context.Context) error, userID uint) {
	if err := release(context.Background()); err != nil {
		uc.logger.Warnw("failed to release create lock", "user_id", userID, "error", err)
	}
}
