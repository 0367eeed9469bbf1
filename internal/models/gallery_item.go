package models

import "time"

const (
	MediaTypePhoto = "PHOTO"
	MediaTypeVideo = "VIDEO"
)

type GalleryItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MediaURL  string `gorm:"size:255;not null" json:"media_url"`
	MediaType string `gorm:"size:10;default:'PHOTO'" json:"media_type"`

	Title       string `gorm:"size:100" json:"title"`
	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
