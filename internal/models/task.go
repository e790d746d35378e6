package models

import (
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task belongs to exactly one user and one of that user's categories.
// The same-owner rule is enforced by the service layer, not by the schema.
type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text;not null;default:''" json:"description"`
	DueDate     *time.Time `gorm:"index" json:"dueDate"`
	Priority    Priority   `gorm:"type:varchar(10);not null;default:'Medium'" json:"priority"`
	CategoryID  uint64     `gorm:"not null;index" json:"categoryId"`
	UserID      uint64     `gorm:"not null;index" json:"userId"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
