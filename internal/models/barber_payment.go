package models

import "time"

const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentOverdue = "OVERDUE"
)

// BarberPayment is a weekly payout owed to a barber.
type BarberPayment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	Amount    float64 `json:"amount"`
	WeekStart string  `gorm:"size:10" json:"week_start"` // "YYYY-MM-DD"
	WeekEnd   string  `gorm:"size:10" json:"week_end"`

	Status string     `gorm:"size:20;default:'PENDING'" json:"status"`
	PaidAt *time.Time `json:"paid_at"`
	Notes  string     `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
