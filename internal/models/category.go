package models

import "time"

// Category groups a user's tasks. The (UserID, Name) pair is unique and
// names compare case-sensitively on every driver, so "Work" and "work" are
// distinct.
type Category struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_categories_user_name,priority:1" json:"userId"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_user_name,priority:2" json:"name"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
