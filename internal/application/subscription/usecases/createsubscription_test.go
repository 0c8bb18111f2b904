package usecases

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mealsub/internal/domain/subscription"
	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/shared/db"
	"mealsub/internal/shared/errors"
	"mealsub/internal/shared/logger"
)

var validPrefs = vo.RawPreferences{DietType: "veg", SpiceLevel: "medium", DeliveryTime: "lunch"}

func newCreateUseCase(repo *mockSubscriptionRepository, locker *fakeLocker, pub *recordingPublisher) *CreateSubscriptionUseCase {
	uc := NewCreateSubscriptionUseCase(repo, db.NoopTxRunner{}, locker, pub, 7, logger.NewNop())
	uc.now = fixedClock("2024-01-01")
	return uc
}

func assertAppError(t *testing.T, err error, wantType errors.ErrorType, wantMsg string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected *errors.AppError, got %T", err)
	assert.Equal(t, wantType, appErr.Type)
	assert.Equal(t, wantMsg, appErr.Message)
}

// =====================================================================
// TestCreateSubscriptionUseCase_Execute
// =====================================================================

func TestCreateSubscriptionUseCase_Execute_StartsToday(t *testing.T) {
	repo := new(mockSubscriptionRepository)
	pub := &recordingPublisher{}
	repo.On("GetByUserIDAndStatuses", mock.Anything, uint(42), vo.OpenStatuses).Return([]*subscription.Subscription{}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*subscription.Subscription")).Return(nil)

	uc := newCreateUseCase(repo, newFakeLocker(), pub)

	got, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		UserID:        42,
		PhoneVerified: true,
		Preferences:   vo.RawPreferences{DietType: "VEG", SpiceLevel: "Medium", DeliveryTime: "lunch"},
	})

	require.NoError(t, err)
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, "weekly", got.Plan)
	assert.Equal(t, "cod", got.PaymentMethod)
	assert.Equal(t, 7, got.TotalDays)
	assert.Equal(t, 0, got.DeliveredDays)
	assert.Equal(t, "veg", got.Preferences.DietType)
	assert.Equal(t, "medium", got.Preferences.SpiceLevel)
	require.Len(t, got.Deliveries, 7)
	assert.Equal(t, "2024-01-01", got.Deliveries[0].Day)
	assert.Equal(t, "scheduled", got.Deliveries[0].Status)
	assert.Equal(t, "2024-01-07", got.Deliveries[6].Day)
	assert.Equal(t, []string{subscription.EventSubscriptionCreated}, pub.types())
	repo.AssertExpectations(t)
}

func TestCreateSubscriptionUseCase_Execute_FutureStartIsScheduled(t *testing.T) {
	repo := new(mockSubscriptionRepository)
	repo.On("GetByUserIDAndStatuses", mock.Anything, uint(42), vo.OpenStatuses).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := newCreateUseCase(repo, newFakeLocker(), &recordingPublisher{})

	got, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		UserID:        42,
		PhoneVerified: true,
		StartDate:     "2024-01-03",
		Preferences:   validPrefs,
	})

	require.NoError(t, err)
	assert.Equal(t, "scheduled", got.Status)
	assert.Equal(t, "2024-01-03", got.Deliveries[0].Day)
	assert.Equal(t, "2024-01-09", got.Deliveries[6].Day)
}

func TestCreateSubscriptionUseCase_Execute_CompletedHistoryAllowed(t *testing.T) {
	repo := new(mockSubscriptionRepository)
	// the store filters by open statuses, so a completed subscription never comes back
	repo.On("GetByUserIDAndStatuses", mock.Anything, uint(42), vo.OpenStatuses).Return([]*subscription.Subscription{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := newCreateUseCase(repo, newFakeLocker(), &recordingPublisher{})

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PhoneVerified: true, Preferences: validPrefs})

	assert.NoError(t, err)
}

func TestCreateSubscriptionUseCase_Execute_Rejections(t *testing.T) {
	open := []*subscription.Subscription{testSubscription(1, vo.StatusActive, "2023-12-30")}

	tests := []struct {
		name     string
		cmd      CreateSubscriptionCommand
		existing []*subscription.Subscription
		wantType errors.ErrorType
		wantMsg  string
	}{
		{
			name:     "unsupported plan",
			cmd:      CreateSubscriptionCommand{UserID: 42, Plan: "monthly", PhoneVerified: true, Preferences: validPrefs},
			wantType: errors.ErrorTypeValidation,
			wantMsg:  subscription.ErrMsgUnsupportedPlan,
		},
		{
			name:     "unsupported payment",
			cmd:      CreateSubscriptionCommand{UserID: 42, PaymentMethod: "card", PhoneVerified: true, Preferences: validPrefs},
			wantType: errors.ErrorTypeValidation,
			wantMsg:  subscription.ErrMsgUnsupportedPayment,
		},
		{
			name:     "phone not verified",
			cmd:      CreateSubscriptionCommand{UserID: 42, Preferences: validPrefs},
			wantType: errors.ErrorTypeValidation,
			wantMsg:  subscription.ErrMsgPhoneNotVerified,
		},
		{
			name:     "open subscription exists",
			cmd:      CreateSubscriptionCommand{UserID: 42, PhoneVerified: true, StartDate: "garbage", Preferences: vo.RawPreferences{}},
			existing: open,
			wantType: errors.ErrorTypeConflict,
			wantMsg:  subscription.ErrMsgAlreadySubscribed,
		},
		{
			name:     "invalid start date",
			cmd:      CreateSubscriptionCommand{UserID: 42, PhoneVerified: true, StartDate: "not-a-date", Preferences: vo.RawPreferences{}},
			wantType: errors.ErrorTypeValidation,
			wantMsg:  ErrMsgInvalidStartDate,
		},
		{
			name:     "start date in the past",
			cmd:      CreateSubscriptionCommand{UserID: 42, PhoneVerified: true, StartDate: "2023-12-31", Preferences: validPrefs},
			wantType: errors.ErrorTypeValidation,
			wantMsg:  ErrMsgStartDateInPast,
		},
		{
			name:     "single invalid preference",
			cmd:      CreateSubscriptionCommand{UserID: 42, PhoneVerified: true, Preferences: vo.RawPreferences{DietType: "vegan", SpiceLevel: "medium", DeliveryTime: "lunch"}},
			wantType: errors.ErrorTypeValidation,
			wantMsg:  vo.ErrMsgDietType,
		},
		{
			name:     "every preference invalid",
			cmd:      CreateSubscriptionCommand{UserID: 42, PhoneVerified: true},
			wantType: errors.ErrorTypeValidation,
			wantMsg:  vo.ErrMsgDietType + ", " + vo.ErrMsgSpiceLevel + ", " + vo.ErrMsgDeliveryTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockSubscriptionRepository)
			repo.On("GetByUserIDAndStatuses", mock.Anything, uint(42), vo.OpenStatuses).Return(tt.existing, nil).Maybe()
			pub := &recordingPublisher{}

			uc := newCreateUseCase(repo, newFakeLocker(), pub)

			got, err := uc.Execute(context.Background(), tt.cmd)

			assert.Nil(t, got)
			assertAppError(t, err, tt.wantType, tt.wantMsg)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			assert.Empty(t, pub.types())
		})
	}
}

func TestCreateSubscriptionUseCase_Execute_InputChecksSkipStore(t *testing.T) {
	repo := new(mockSubscriptionRepository)
	uc := newCreateUseCase(repo, newFakeLocker(), &recordingPublisher{})

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, Plan: "monthly"})

	require.Error(t, err)
	repo.AssertNotCalled(t, "GetByUserIDAndStatuses", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateSubscriptionUseCase_Execute_LockBusy(t *testing.T) {
	repo := new(mockSubscriptionRepository)
	locker := newFakeLocker()
	locker.held[createLockKey(42)] = true

	uc := newCreateUseCase(repo, locker, &recordingPublisher{})

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PhoneVerified: true, Preferences: validPrefs})

	assertAppError(t, err, errors.ErrorTypeConflict, ErrMsgCreateInProgress)
}

func TestCreateSubscriptionUseCase_Execute_StoreFailure(t *testing.T) {
	repo := new(mockSubscriptionRepository)
	repo.On("GetByUserIDAndStatuses", mock.Anything, uint(42), vo.OpenStatuses).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(stderrors.New("connection refused"))
	locker := newFakeLocker()

	uc := newCreateUseCase(repo, locker, &recordingPublisher{})

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PhoneVerified: true, Preferences: validPrefs})

	require.Error(t, err)
	assert.False(t, errors.IsAppError(err), "store failures are internal")
	assert.Empty(t, locker.held, "lock released on failure")
}
