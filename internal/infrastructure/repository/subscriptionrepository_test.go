package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mealsub/internal/domain/subscription"
	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/infrastructure/persistence/models"
	"mealsub/internal/shared/biztime"
	"mealsub/internal/shared/db"
	"mealsub/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(&models.SubscriptionModel{}, &models.UserModel{})
	require.NoError(t, err)

	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, id uint, name string) {
	require.NoError(t, gdb.Create(&models.UserModel{
		ID:    id,
		Name:  name,
		Email: name + "@example.com",
		Phone: "98765" + name,
	}).Error)
}

func newTestSubscription(t *testing.T, userID uint, start string, now time.Time) *subscription.Subscription {
	startDay, err := biztime.ParseDate(start)
	require.NoError(t, err)

	sub, err := subscription.NewSubscription(subscription.NewSubscriptionParams{
		UserID:        userID,
		Plan:          vo.PlanWeekly,
		PaymentMethod: vo.PaymentCOD,
		StartDate:     startDay,
		Preferences:   vo.Preferences{DietType: vo.DietVeg, SpiceLevel: vo.SpiceMild, DeliveryTime: vo.DeliveryDinner},
		Now:           now,
	})
	require.NoError(t, err)
	return sub
}

func day(t *testing.T, s string) time.Time {
	d, err := biztime.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestSubscriptionRepository_CreateAndGetBySID(t *testing.T) {
	gdb := setupTestDB(t)
	seedUser(t, gdb, 42, "asha")
	repo := NewSubscriptionRepository(gdb, logger.NewNop())
	ctx := context.Background()

	sub := newTestSubscription(t, 42, "2024-01-01", day(t, "2024-01-01"))
	require.NoError(t, repo.Create(ctx, sub))
	assert.NotZero(t, sub.ID())

	found, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, sub.ID(), found.ID())
	assert.Equal(t, vo.StatusActive, found.Status())
	assert.Equal(t, 7, found.TotalDays())
	assert.True(t, found.ScheduleGenerated())
	assert.Equal(t, sub.Preferences(), found.Preferences())
	assert.True(t, sub.StartDate().Equal(found.StartDate()))
	assert.True(t, sub.EndDate().Equal(found.EndDate()))

	deliveries := found.Deliveries()
	require.Len(t, deliveries, 7)
	assert.Equal(t, "Day 1", deliveries[0].Label)
	assert.Equal(t, vo.DeliveryScheduled, deliveries[0].Status)
	assert.Equal(t, vo.DeliveryUpcoming, deliveries[6].Status)
	assert.True(t, day(t, "2024-01-07").Equal(deliveries[6].Date))

	require.NotNil(t, found.Owner())
	assert.Equal(t, "asha", found.Owner().Name)
	assert.Equal(t, "asha@example.com", found.Owner().Email)
}

func TestSubscriptionRepository_GetBySID_NotFound(t *testing.T) {
	repo := NewSubscriptionRepository(setupTestDB(t), logger.NewNop())

	found, err := repo.GetBySID(context.Background(), "msub_missing00000")

	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestSubscriptionRepository_GetBySID_MissingOwner(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNop())
	ctx := context.Background()

	sub := newTestSubscription(t, 7, "2024-01-01", day(t, "2024-01-01"))
	require.NoError(t, repo.Create(ctx, sub))

	found, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)
	assert.Nil(t, found.Owner())
}

func TestSubscriptionRepository_GetLatestByUserID(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNop())
	ctx := context.Background()

	older := newTestSubscription(t, 42, "2024-01-01", day(t, "2024-01-01"))
	require.NoError(t, repo.Create(ctx, older))
	newer := newTestSubscription(t, 42, "2024-02-01", day(t, "2024-01-20"))
	require.NoError(t, repo.Create(ctx, newer))
	other := newTestSubscription(t, 43, "2024-03-01", day(t, "2024-02-20"))
	require.NoError(t, repo.Create(ctx, other))

	found, err := repo.GetLatestByUserID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, newer.SID(), found.SID())

	none, err := repo.GetLatestByUserID(ctx, 99)
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestSubscriptionRepository_GetByUserIDAndStatuses(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNop())
	ctx := context.Background()

	sub := newTestSubscription(t, 42, "2024-01-05", day(t, "2024-01-01"))
	require.NoError(t, repo.Create(ctx, sub))

	open, err := repo.GetByUserIDAndStatuses(ctx, 42, vo.OpenStatuses)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, vo.StatusScheduled, open[0].Status())

	completed, err := repo.GetByUserIDAndStatuses(ctx, 42, []vo.SubscriptionStatus{vo.StatusCompleted})
	require.NoError(t, err)
	assert.Empty(t, completed)
	assert.NotNil(t, completed)

	empty, err := repo.GetByUserIDAndStatuses(ctx, 42, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSubscriptionRepository_Update(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNop())
	ctx := context.Background()

	sub := newTestSubscription(t, 42, "2024-01-01", day(t, "2024-01-01"))
	require.NoError(t, repo.Create(ctx, sub))

	now := day(t, "2024-01-01").Add(12 * time.Hour)
	_, err := sub.MarkDelivered(0, "left with guard", now)
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, sub))
	assert.Equal(t, 2, sub.Version())

	found, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)
	assert.Equal(t, 2, found.Version())
	assert.Equal(t, 1, found.DeliveredDays())

	deliveries := found.Deliveries()
	assert.Equal(t, vo.DeliveryDelivered, deliveries[0].Status)
	assert.Equal(t, "left with guard", deliveries[0].Notes)
	require.NotNil(t, deliveries[0].DeliveredAt)
	assert.True(t, now.Equal(*deliveries[0].DeliveredAt))
	assert.Equal(t, vo.DeliveryScheduled, deliveries[1].Status)
	require.NotNil(t, found.LastDeliveredDay())
	assert.True(t, day(t, "2024-01-01").Equal(*found.LastDeliveredDay()))
}

func TestSubscriptionRepository_Update_VersionConflict(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNop())
	ctx := context.Background()

	sub := newTestSubscription(t, 42, "2024-01-01", day(t, "2024-01-01"))
	require.NoError(t, repo.Create(ctx, sub))

	first, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)
	second, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)

	now := day(t, "2024-01-02")
	_, err = first.MarkDelivered(0, "", now)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, first))

	_, err = second.MarkDelivered(1, "", now)
	require.NoError(t, err)
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, subscription.ErrVersionConflict)
	assert.Equal(t, 1, second.Version())

	found, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)
	assert.Equal(t, 1, found.DeliveredDays())
	assert.NotEqual(t, vo.DeliveryDelivered, found.Deliveries()[1].Status)
}

func TestSubscriptionRepository_List(t *testing.T) {
	gdb := setupTestDB(t)
	seedUser(t, gdb, 42, "asha")
	seedUser(t, gdb, 43, "ravi")
	repo := NewSubscriptionRepository(gdb, logger.NewNop())
	ctx := context.Background()

	a := newTestSubscription(t, 42, "2024-01-01", day(t, "2024-01-01"))
	require.NoError(t, repo.Create(ctx, a))
	b := newTestSubscription(t, 43, "2024-01-03", day(t, "2024-01-02"))
	require.NoError(t, repo.Create(ctx, b))
	c := newTestSubscription(t, 42, "2024-01-04", day(t, "2024-01-04"))
	require.NoError(t, repo.Create(ctx, c))

	t.Run("newest first with owners", func(t *testing.T) {
		subs, total, err := repo.List(ctx, subscription.SubscriptionFilter{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, subs, 3)
		assert.Equal(t, c.SID(), subs[0].SID())
		assert.Equal(t, b.SID(), subs[1].SID())
		assert.Equal(t, a.SID(), subs[2].SID())
		assert.Equal(t, "ravi", subs[1].Owner().Name)
		assert.Equal(t, "asha", subs[2].Owner().Name)
	})

	t.Run("status filter", func(t *testing.T) {
		status := vo.StatusScheduled
		subs, total, err := repo.List(ctx, subscription.SubscriptionFilter{Status: &status, Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, subs, 1)
		assert.Equal(t, b.SID(), subs[0].SID())
	})

	t.Run("pagination keeps full total", func(t *testing.T) {
		subs, total, err := repo.List(ctx, subscription.SubscriptionFilter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, subs, 1)
		assert.Equal(t, a.SID(), subs[0].SID())
	})

	t.Run("user filter", func(t *testing.T) {
		userID := uint(43)
		subs, total, err := repo.List(ctx, subscription.SubscriptionFilter{UserID: &userID, Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, subs, 1)
	})
}

func TestSubscriptionRepository_LegacyRowGetsSchedule(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNop())

	start := day(t, "2024-01-01")
	legacy := &models.SubscriptionModel{
		SID:           "msub_legacy000001",
		UserID:        42,
		Plan:          "weekly",
		Status:        "active",
		PaymentMethod: "cod",
		StartDate:     start,
		EndDate:       start,
		TotalDays:     7,
		DietType:      "veg",
		SpiceLevel:    "mild",
		DeliveryTime:  "lunch",
		Deliveries:    datatypes.JSONSlice[models.DeliveryRecord]{},
		CreatedAt:     start,
		UpdatedAt:     start,
	}
	require.NoError(t, gdb.Create(legacy).Error)

	found, err := repo.GetBySID(context.Background(), legacy.SID)
	require.NoError(t, err)
	assert.True(t, found.ScheduleGenerated())
	assert.Len(t, found.Deliveries(), 7)
	assert.True(t, day(t, "2024-01-07").Equal(found.EndDate()))
}

func TestSubscriptionRepository_CreateInsideTransaction(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNop())
	tm := db.NewTransactionManager(gdb)
	ctx := context.Background()

	sub := newTestSubscription(t, 42, "2024-01-01", day(t, "2024-01-01"))
	err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.Create(txCtx, sub); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	found, err := repo.GetLatestByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, found, "rolled back insert must not be visible")
}
