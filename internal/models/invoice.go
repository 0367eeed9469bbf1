package models

import "time"

const (
	InvoiceTypeService       = "SERVICE"
	InvoiceTypeBarberPayment = "BARBER_PAYMENT"
)

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	InvoiceNumber string `gorm:"size:40;uniqueIndex;not null" json:"invoice_number"`
	Type          string `gorm:"size:20;default:'SERVICE'" json:"type"`

	RecipientID uint `json:"recipient_id"`
	Recipient   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"recipient"`

	Amount      float64 `json:"amount"`
	Description string  `gorm:"size:255" json:"description"`

	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date"`
	IsPaid    bool       `gorm:"default:false" json:"is_paid"`
	PaidAt    *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
