package models

import "time"

type Expense struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Category       string  `gorm:"size:50;not null" json:"category"`
	CustomCategory string  `gorm:"size:50" json:"custom_category"`
	Amount         float64 `json:"amount"`
	Description    string  `gorm:"size:255" json:"description"`
	Date           string  `gorm:"size:10" json:"date"` // "YYYY-MM-DD"
	Notes          string  `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
