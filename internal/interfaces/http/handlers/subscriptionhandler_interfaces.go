package handlers

import (
	"context"

	subdto "mealsub/internal/application/subscription/dto"
	"mealsub/internal/application/subscription/usecases"
)

// Use case interfaces for SubscriptionHandler

type createSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type getLatestSubscriptionUseCase interface {
	Execute(ctx context.Context, userID uint) (*subdto.SubscriptionDTO, error)
}
