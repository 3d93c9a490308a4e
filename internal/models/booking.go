package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FamilyUserID uint `gorm:"index;not null" json:"family_user_id"`
	Family       User `gorm:"foreignKey:FamilyUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"family"`

	SitterProfileID uint          `gorm:"index;not null" json:"sitter_profile_id"`
	SitterProfile   SitterProfile `gorm:"foreignKey:SitterProfileID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"sitter_profile"`

	StartTime time.Time       `gorm:"not null" json:"start_time"`
	EndTime   time.Time       `gorm:"not null" json:"end_time"`
	TotalCost decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_cost"`

	Status string  `gorm:"size:20;not null;default:'Requested'" json:"status"`
	Note   *string `gorm:"size:500" json:"note"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	Review *Review `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"review,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
