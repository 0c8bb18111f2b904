package subscription

import (
	"fmt"
	"time"

	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/shared/biztime"
)

// Delivery is one scheduled day within a subscription.
type Delivery struct {
	Label       string
	Date        time.Time
	Status      vo.DeliveryStatus
	Notes       string
	DeliveredAt *time.Time
}

// IsDelivered reports whether the day has been fulfilled.
func (d Delivery) IsDelivered() bool {
	return d.Status.IsDelivered()
}

// DayLabel returns the display label for the zero-based index i.
func DayLabel(i int) string {
	return fmt.Sprintf("Day %d", i+1)
}

// GenerateSchedule builds totalDays consecutive deliveries from start, which
// must already be a day boundary. The first day is scheduled and the rest are
// upcoming. A non-positive totalDays yields a single day. The returned end
// date is the date of the last delivery.
func GenerateSchedule(start time.Time, totalDays int) ([]Delivery, time.Time) {
	if totalDays <= 0 {
		totalDays = 1
	}

	deliveries := make([]Delivery, totalDays)
	for i := range deliveries {
		status := vo.DeliveryUpcoming
		if i == 0 {
			status = vo.DeliveryScheduled
		}
		deliveries[i] = Delivery{
			Label:  DayLabel(i),
			Date:   biztime.AddDaysUTC(start, i),
			Status: status,
		}
	}

	return deliveries, deliveries[totalDays-1].Date
}

func cloneDeliveries(in []Delivery) []Delivery {
	if in == nil {
		return nil
	}
	out := make([]Delivery, len(in))
	for i, d := range in {
		if d.DeliveredAt != nil {
			at := *d.DeliveredAt
			d.DeliveredAt = &at
		}
		out[i] = d
	}
	return out
}
