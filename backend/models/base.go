package models

import "time"

// Base replaces gorm.Model: rows are hard-deleted and serialised with lower-case keys.
type Base struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
