package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mealsub/internal/domain/subscription"
	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/infrastructure/persistence/mappers"
	"mealsub/internal/infrastructure/persistence/models"
	"mealsub/internal/shared/db"
	"mealsub/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, subscriptionEntity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(subscriptionEntity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "sid", model.SID, "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := subscriptionEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set subscription ID", "error", err)
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Debugw("subscription row inserted", "id", model.ID, "sid", model.SID, "user_id", model.UserID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	if err := r.attachOwners(ctx, []*subscription.Subscription{entity}); err != nil {
		return nil, err
	}

	return entity, nil
}

func (r *SubscriptionRepositoryImpl) GetLatestByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ?", userID).Scopes(db.NewestFirst()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get latest subscription", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

func (r *SubscriptionRepositoryImpl) GetByUserIDAndStatuses(ctx context.Context, userID uint, statuses []vo.SubscriptionStatus) ([]*subscription.Subscription, error) {
	if len(statuses) == 0 {
		return []*subscription.Subscription{}, nil
	}

	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, s.String())
	}

	var subscriptionModels []*models.SubscriptionModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ? AND status IN ?", userID, values).
		Scopes(db.NewestFirst()).
		Find(&subscriptionModels).Error; err != nil {
		r.logger.Errorw("failed to get subscriptions by status", "user_id", userID, "statuses", values, "error", err)
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(subscriptionModels)
	if err != nil {
		r.logger.Errorw("failed to map subscription models to entities", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map subscriptions: %w", err)
	}
	if entities == nil {
		entities = []*subscription.Subscription{}
	}

	return entities, nil
}

// Update writes the mutable columns guarded by the loaded version and bumps
// the aggregate version on success.
func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, subscriptionEntity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(subscriptionEntity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "id", subscriptionEntity.ID(), "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"status":              model.Status,
			"end_date":            model.EndDate,
			"total_days":          model.TotalDays,
			"delivered_days":      model.DeliveredDays,
			"deliveries":          model.Deliveries,
			"schedule_generated":  model.ScheduleGenerated,
			"cancellation_reason": model.CancellationReason,
			"last_delivery_date":  model.LastDeliveryDate,
			"last_delivered_day":  model.LastDeliveredDay,
			"version":             model.Version + 1,
			"updated_at":          model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		r.logger.Warnw("subscription version mismatch", "id", model.ID, "sid", model.SID, "version", model.Version)
		return subscription.ErrVersionConflict
	}

	subscriptionEntity.IncrementVersion()

	r.logger.Debugw("subscription updated", "id", model.ID, "version", subscriptionEntity.Version())
	return nil
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, filter subscription.SubscriptionFilter) ([]*subscription.Subscription, int64, error) {
	var subscriptionModels []*models.SubscriptionModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	if err := query.Scopes(db.NewestFirst(), db.Paginate(filter.Page, filter.PageSize)).
		Find(&subscriptionModels).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(subscriptionModels)
	if err != nil {
		r.logger.Errorw("failed to map subscription models to entities", "error", err)
		return nil, 0, fmt.Errorf("failed to map subscriptions: %w", err)
	}
	if entities == nil {
		entities = []*subscription.Subscription{}
	}

	if err := r.attachOwners(ctx, entities); err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

// attachOwners loads display fields for every distinct user in one query.
// Subscriptions whose user row is missing keep a nil owner.
func (r *SubscriptionRepositoryImpl) attachOwners(ctx context.Context, subs []*subscription.Subscription) error {
	if len(subs) == 0 {
		return nil
	}

	seen := make(map[uint]struct{}, len(subs))
	userIDs := make([]uint, 0, len(subs))
	for _, s := range subs {
		if _, ok := seen[s.UserID()]; ok {
			continue
		}
		seen[s.UserID()] = struct{}{}
		userIDs = append(userIDs, s.UserID())
	}

	var users []*models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Select("id", "name", "email", "phone").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		r.logger.Errorw("failed to load subscription owners", "user_ids", userIDs, "error", err)
		return fmt.Errorf("failed to load subscription owners: %w", err)
	}

	owners := make(map[uint]*subscription.Owner, len(users))
	for _, u := range users {
		owners[u.ID] = mappers.ToOwner(u)
	}

	for _, s := range subs {
		if o, ok := owners[s.UserID()]; ok {
			s.AttachOwner(o)
		}
	}

	return nil
}
