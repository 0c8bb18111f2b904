package http

import (
	"mealsub/internal/application/subscription/usecases"
	"mealsub/internal/domain/shared/events"
	"mealsub/internal/shared/logger"
)

// allUseCases holds every application use case exposed over HTTP.
type allUseCases struct {
	createSubscription    *usecases.CreateSubscriptionUseCase
	getLatestSubscription *usecases.GetLatestSubscriptionUseCase
	listSubscriptions     *usecases.ListSubscriptionsUseCase
	markDelivered         *usecases.MarkDeliveredUseCase
}

func newUseCases(
	repos *repositories,
	locker usecases.MutationLocker,
	sanitizer usecases.NoteSanitizer,
	publisher events.EventPublisher,
	defaultTotalDays int,
	log logger.Interface,
) *allUseCases {
	return &allUseCases{
		createSubscription: usecases.NewCreateSubscriptionUseCase(
			repos.subscriptionRepo, repos.txManager, locker, publisher, defaultTotalDays, log,
		),
		getLatestSubscription: usecases.NewGetLatestSubscriptionUseCase(repos.subscriptionRepo, log),
		listSubscriptions:     usecases.NewListSubscriptionsUseCase(repos.subscriptionRepo, log),
		markDelivered: usecases.NewMarkDeliveredUseCase(
			repos.subscriptionRepo, locker, sanitizer, publisher, log,
		),
	}
}
