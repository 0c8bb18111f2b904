package dto

import (
	"mealsub/internal/domain/subscription"
	"mealsub/internal/shared/biztime"
	"mealsub/internal/shared/mapper"
)

// ToSubscriptionDTO converts the aggregate for transport. The owner is
// included only when the repository attached it.
func ToSubscriptionDTO(sub *subscription.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}

	prefs := sub.Preferences()
	deliveries := sub.Deliveries()

	out := &SubscriptionDTO{
		ID:            sub.SID(),
		UserID:        sub.UserID(),
		User:          ToOwnerDTO(sub.Owner()),
		Plan:          sub.Plan().String(),
		Status:        sub.Status().String(),
		PaymentMethod: sub.PaymentMethod().String(),
		StartDate:     sub.StartDate(),
		EndDate:       sub.EndDate(),
		TotalDays:     sub.TotalDays(),
		DeliveredDays: sub.DeliveredDays(),
		Preferences: PreferencesDTO{
			DietType:     string(prefs.DietType),
			SpiceLevel:   string(prefs.SpiceLevel),
			DeliveryTime: string(prefs.DeliveryTime),
		},
		Deliveries:         make([]*DeliveryDTO, 0, len(deliveries)),
		CancellationReason: sub.CancellationReason(),
		LastDeliveryDate:   sub.LastDeliveryDate(),
		LastDeliveredDay:   sub.LastDeliveredDay(),
		CreatedAt:          sub.CreatedAt(),
		UpdatedAt:          sub.UpdatedAt(),
	}

	for i, d := range deliveries {
		out.Deliveries = append(out.Deliveries, &DeliveryDTO{
			Index:       i,
			Label:       d.Label,
			Date:        d.Date,
			Day:         biztime.FormatDate(d.Date),
			Status:      d.Status.String(),
			Notes:       d.Notes,
			DeliveredAt: d.DeliveredAt,
		})
	}

	return out
}

func ToSubscriptionDTOList(subs []*subscription.Subscription) []*SubscriptionDTO {
	if subs == nil {
		return []*SubscriptionDTO{}
	}
	return mapper.MapSlice(subs, ToSubscriptionDTO)
}

func ToOwnerDTO(o *subscription.Owner) *OwnerDTO {
	if o == nil {
		return nil
	}
	return &OwnerDTO{ID: o.ID, Name: o.Name, Email: o.Email, Phone: o.Phone}
}
