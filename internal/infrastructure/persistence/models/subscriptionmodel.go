package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mealsub/internal/shared/constants"
)

// DeliveryRecord is the stored form of one scheduled day.
type DeliveryRecord struct {
	Label       string     `json:"label"`
	Date        time.Time  `json:"date"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// SubscriptionModel represents the database persistence model for meal subscriptions
// This is the anti-corruption layer between domain and database
type SubscriptionModel struct {
	ID                 uint                                `gorm:"primarykey"`
	SID                string                              `gorm:"uniqueIndex;not null;size:50;comment:prefixed ID: msub_xxx"`
	UserID             uint                                `gorm:"not null;index:idx_user_status,priority:1"`
	Plan               string                              `gorm:"not null;size:20"`
	Status             string                              `gorm:"not null;size:20;index:idx_user_status,priority:2;index:idx_status"`
	PaymentMethod      string                              `gorm:"not null;size:20"`
	StartDate          time.Time                           `gorm:"not null"`
	EndDate            time.Time                           `gorm:"not null"`
	TotalDays          int                                 `gorm:"not null"`
	DeliveredDays      int                                 `gorm:"not null;default:0"`
	DietType           string                              `gorm:"not null;size:20"`
	SpiceLevel         string                              `gorm:"not null;size:20"`
	DeliveryTime       string                              `gorm:"not null;size:20"`
	Deliveries         datatypes.JSONSlice[DeliveryRecord] `gorm:"not null"`
	ScheduleGenerated  bool                                `gorm:"not null;default:false"`
	CancellationReason *string                             `gorm:"size:500"`
	LastDeliveryDate   *time.Time
	LastDeliveredDay   *time.Time
	Version            int       `gorm:"not null;default:1"`
	CreatedAt          time.Time `gorm:"index:idx_created_at"`
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableMealSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.Deliveries == nil {
		s.Deliveries = datatypes.JSONSlice[DeliveryRecord]{}
	}
	return nil
}
