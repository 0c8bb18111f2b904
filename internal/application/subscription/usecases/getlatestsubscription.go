package usecases

import (
	"context"
	"fmt"

	"mealsub/internal/application/subscription/dto"
	"mealsub/internal/domain/subscription"
	"mealsub/internal/shared/errors"
	"mealsub/internal/shared/logger"
)

const ErrMsgNoSubscription = "No subscription found for this account"

type GetLatestSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewGetLatestSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *GetLatestSubscriptionUseCase {
	return &GetLatestSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute returns the caller's most recently created subscription in any status.
func (uc *GetLatestSubscriptionUseCase) Execute(ctx context.Context, userID uint) (*dto.SubscriptionDTO, error) {
	sub, err := uc.subscriptionRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get latest subscription", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError(ErrMsgNoSubscription)
	}

	return dto.ToSubscriptionDTO(sub), nil
}
