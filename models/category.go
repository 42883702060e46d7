package models

import "time"

// Category groups questions by name. Questions reference categories by name
// only (see Question.CategoryName), so rows here exist for listing/seeding
// rather than integrity.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	ExtID     int       `json:"ext_id" gorm:"column:ext_id"`
	CreatedAt time.Time `json:"created_at"`
}
