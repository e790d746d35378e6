package database

import (
	"gorm.io/gorm"
)

// OwnedBy restricts a query on table to rows owned by userID.
func OwnedBy(table string, userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".user_id = ?", userID)
	}
}
