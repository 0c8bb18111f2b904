package dto

import (
	"time"
)

type PreferencesDTO struct {
	DietType     string `json:"diet_type"`
	SpiceLevel   string `json:"spice_level"`
	DeliveryTime string `json:"delivery_time"`
}

type DeliveryDTO struct {
	Index int       `json:"index"`
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
	// Day is Date rendered as YYYY-MM-DD in the business timezone.
	Day         string     `json:"day"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

type OwnerDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type SubscriptionDTO struct {
	ID                 string         `json:"id"`
	UserID             uint           `json:"user_id"`
	User               *OwnerDTO      `json:"user,omitempty"`
	Plan               string         `json:"plan"`
	Status             string         `json:"status"`
	PaymentMethod      string         `json:"payment_method"`
	StartDate          time.Time      `json:"start_date"`
	EndDate            time.Time      `json:"end_date"`
	TotalDays          int            `json:"total_days"`
	DeliveredDays      int            `json:"delivered_days"`
	Preferences        PreferencesDTO `json:"preferences"`
	Deliveries         []*DeliveryDTO `json:"deliveries"`
	CancellationReason *string        `json:"cancellation_reason,omitempty"`
	LastDeliveryDate   *time.Time     `json:"last_delivery_date,omitempty"`
	LastDeliveredDay   *time.Time     `json:"last_delivered_day,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
