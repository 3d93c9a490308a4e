package models

import "time"

type Role string

const (
	RoleFamily Role = "Family"
	RoleSitter Role = "Sitter"
)

func (r Role) Valid() bool {
	return r == RoleFamily || r == RoleSitter
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName    string `gorm:"size:50;not null" json:"first_name"`
	LastName     string `gorm:"size:50;not null" json:"last_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Address      string `gorm:"size:255" json:"address"`
	City         string `gorm:"size:100;index" json:"city"`
	Role         Role   `gorm:"size:10;not null" json:"role"`

	SitterProfile *SitterProfile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sitter_profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
