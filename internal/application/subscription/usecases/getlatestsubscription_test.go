package usecases

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/shared/errors"
	"mealsub/internal/shared/logger"
)

func TestGetLatestSubscriptionUseCase_Execute(t *testing.T) {
	t.Run("returns latest in any status", func(t *testing.T) {
		repo := new(mockSubscriptionRepository)
		repo.On("GetLatestByUserID", mock.Anything, uint(42)).Return(testSubscription(3, vo.StatusCompleted, "2024-01-01"), nil)

		uc := NewGetLatestSubscriptionUseCase(repo, logger.NewNop())

		got, err := uc.Execute(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, testSID, got.ID)
		assert.Equal(t, "completed", got.Status)
		assert.Len(t, got.Deliveries, 7)
	})

	t.Run("no subscription", func(t *testing.T) {
		repo := new(mockSubscriptionRepository)
		repo.On("GetLatestByUserID", mock.Anything, uint(42)).Return(nil, nil)

		uc := NewGetLatestSubscriptionUseCase(repo, logger.NewNop())

		got, err := uc.Execute(context.Background(), 42)

		assert.Nil(t, got)
		assertAppError(t, err, errors.ErrorTypeNotFound, ErrMsgNoSubscription)
	})

	t.Run("store error", func(t *testing.T) {
		repo := new(mockSubscriptionRepository)
		repo.On("GetLatestByUserID", mock.Anything, uint(42)).Return(nil, stderrors.New("boom"))

		uc := NewGetLatestSubscriptionUseCase(repo, logger.NewNop())

		_, err := uc.Execute(context.Background(), 42)

		require.Error(t, err)
		assert.False(t, errors.IsAppError(err))
	})
}
