package models

import "time"

// DayOff fully closes a barber's availability for one calendar date,
// regardless of the weekly rule. At most one row per (barber, date).
type DayOff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex:idx_dayoff_barber_date" json:"barber_id"`
	Date     string `gorm:"size:10;uniqueIndex:idx_dayoff_barber_date" json:"date"` // "YYYY-MM-DD"
	Reason   string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
