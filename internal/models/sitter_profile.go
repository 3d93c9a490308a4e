package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SitterProfile extends a Sitter account. AverageRating is a cache derived
// from the sitter's reviews and is only written by the review flow.
type SitterProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`

	Bio             string              `gorm:"type:text" json:"bio"`
	YearsExperience int                 `gorm:"not null;default:0;check:years_experience >= 0" json:"years_experience"`
	HourlyRate      decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"hourly_rate"`
	AverageRating   decimal.NullDecimal `gorm:"type:numeric(3,1)" json:"average_rating"`
	PhotoURL        string              `gorm:"size:512" json:"photo_url"`

	Availability []AvailabilitySlot `gorm:"foreignKey:SitterProfileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"availability"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
