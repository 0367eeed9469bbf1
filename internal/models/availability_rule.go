package models

import "time"

// AvailabilityRule is the weekly recurring window for one barber on one
// day of week ("MONDAY".."SUNDAY"). Exactly one row per (barber, day).
type AvailabilityRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID  uint   `gorm:"uniqueIndex:idx_rule_barber_day" json:"barber_id"`
	DayOfWeek string `gorm:"size:10;uniqueIndex:idx_rule_barber_day" json:"day_of_week"`

	StartTime   string `gorm:"size:5" json:"start_time"` // "HH:MM"
	EndTime     string `gorm:"size:5" json:"end_time"`   // "HH:MM"
	IsAvailable bool   `json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
