package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint `gorm:"uniqueIndex;not null" json:"booking_id"`

	AuthorUserID uint `gorm:"index;not null" json:"author_user_id"`
	Author       User `gorm:"foreignKey:AuthorUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"author"`

	SitterProfileID uint          `gorm:"index;not null" json:"sitter_profile_id"`
	SitterProfile   SitterProfile `gorm:"foreignKey:SitterProfileID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"sitter_profile"`

	Rating  int     `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment *string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
