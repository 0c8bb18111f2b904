package usecases

import (
	"context"
	"fmt"

	"mealsub/internal/application/subscription/dto"
	"mealsub/internal/domain/subscription"
	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/shared/errors"
	"mealsub/internal/shared/logger"
	"mealsub/internal/shared/utils"
)

type ListSubscriptionsQuery struct {
	// Status filters by lifecycle state when non-empty.
	Status   string
	UserID   *uint
	Page     int
	PageSize int
}

type ListSubscriptionsResult struct {
	Subscriptions []*dto.SubscriptionDTO
	Total         int64
	Page          int
	PageSize      int
}

type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute lists subscriptions newest first with owner display fields.
func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, query ListSubscriptionsQuery) (*ListSubscriptionsResult, error) {
	page := utils.ValidatePagination(query.Page, query.PageSize)

	filter := subscription.SubscriptionFilter{
		UserID:   query.UserID,
		Page:     page.Page,
		PageSize: page.PageSize,
	}

	if query.Status != "" {
		status, err := vo.ParseSubscriptionStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("Invalid status filter", err.Error())
		}
		filter.Status = &status
	}

	subs, total, err := uc.subscriptionRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "status", query.Status, "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return &ListSubscriptionsResult{
		Subscriptions: dto.ToSubscriptionDTOList(subs),
		Total:         total,
		Page:          page.Page,
		PageSize:      page.PageSize,
	}, nil
}
