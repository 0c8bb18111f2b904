package mappers

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"mealsub/internal/domain/subscription"
	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/infrastructure/persistence/models"
	"mealsub/internal/shared/mapper"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.ParseSubscriptionStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	deliveries := make([]subscription.Delivery, 0, len(model.Deliveries))
	for i, rec := range model.Deliveries {
		ds, err := vo.ParseDeliveryStatus(rec.Status)
		if err != nil {
			return nil, fmt.Errorf("invalid delivery status at index %d: %s", i, rec.Status)
		}
		deliveries = append(deliveries, subscription.Delivery{
			Label:       rec.Label,
			Date:        rec.Date.UTC(),
			Status:      ds,
			Notes:       rec.Notes,
			DeliveredAt: utcPtr(rec.DeliveredAt),
		})
	}

	entity, err := subscription.ReconstructSubscription(subscription.ReconstructParams{
		ID:            model.ID,
		SID:           model.SID,
		UserID:        model.UserID,
		Plan:          vo.Plan(model.Plan),
		Status:        status,
		PaymentMethod: vo.PaymentMethod(model.PaymentMethod),
		StartDate:     model.StartDate.UTC(),
		EndDate:       model.EndDate.UTC(),
		TotalDays:     model.TotalDays,
		DeliveredDays: model.DeliveredDays,
		Preferences: vo.Preferences{
			DietType:     vo.DietType(model.DietType),
			SpiceLevel:   vo.SpiceLevel(model.SpiceLevel),
			DeliveryTime: vo.DeliveryTime(model.DeliveryTime),
		},
		Deliveries:         deliveries,
		ScheduleGenerated:  model.ScheduleGenerated,
		CancellationReason: model.CancellationReason,
		LastDeliveryDate:   utcPtr(model.LastDeliveryDate),
		LastDeliveredDay:   utcPtr(model.LastDeliveredDay),
		Version:            model.Version,
		CreatedAt:          model.CreatedAt.UTC(),
		UpdatedAt:          model.UpdatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	deliveries := entity.Deliveries()
	records := make(datatypes.JSONSlice[models.DeliveryRecord], 0, len(deliveries))
	for _, d := range deliveries {
		records = append(records, models.DeliveryRecord{
			Label:       d.Label,
			Date:        d.Date,
			Status:      d.Status.String(),
			Notes:       d.Notes,
			DeliveredAt: d.DeliveredAt,
		})
	}

	prefs := entity.Preferences()

	return &models.SubscriptionModel{
		ID:                 entity.ID(),
		SID:                entity.SID(),
		UserID:             entity.UserID(),
		Plan:               entity.Plan().String(),
		Status:             entity.Status().String(),
		PaymentMethod:      entity.PaymentMethod().String(),
		StartDate:          entity.StartDate(),
		EndDate:            entity.EndDate(),
		TotalDays:          entity.TotalDays(),
		DeliveredDays:      entity.DeliveredDays(),
		DietType:           string(prefs.DietType),
		SpiceLevel:         string(prefs.SpiceLevel),
		DeliveryTime:       string(prefs.DeliveryTime),
		Deliveries:         records,
		ScheduleGenerated:  entity.ScheduleGenerated(),
		CancellationReason: entity.CancellationReason(),
		LastDeliveryDate:   entity.LastDeliveryDate(),
		LastDeliveredDay:   entity.LastDeliveredDay(),
		Version:            entity.Version(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(modelList []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.SubscriptionModel) uint { return model.ID })
}

// ToOwner maps a users row to the owner display fields.
func ToOwner(model *models.UserModel) *subscription.Owner {
	if model == nil {
		return nil
	}
	return &subscription.Owner{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
		Phone: model.Phone,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
