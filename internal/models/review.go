package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"index" json:"barber_id"`
	ClientID uint `json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	AppointmentID uint `gorm:"uniqueIndex" json:"appointment_id"`

	Rating  int    `json:"rating"` // 1..5
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
