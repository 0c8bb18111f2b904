package models

import (
	"time"

	"mealsub/internal/shared/constants"
)

// UserModel maps the columns of the shared users table that subscriptions
// display. The table is owned by the account service and only read here.
type UserModel struct {
	ID        uint   `gorm:"primarykey"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	Name      string `gorm:"not null;size:100"`
	Phone     string `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
