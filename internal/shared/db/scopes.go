package db

import (
	"gorm.io/gorm"
)

// Paginate is a GORM scope applying 1-based page/pageSize limits.
// A non-positive pageSize disables pagination.
//
// Example usage:
//
//	db.Model(&Model{}).Scopes(db.Paginate(2, 20)).Find(&results)
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// NewestFirst orders by creation time descending, breaking ties by id so
// rows created within the same clock tick still come back in a stable order.
func NewestFirst() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC")
	}
}
