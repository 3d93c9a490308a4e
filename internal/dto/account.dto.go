package dto

import (
	"time"

	"github.com/nannyhub/babysitter-api/internal/models"
)

type AccountView struct {
	ID              uint        `json:"id"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Address         string      `json:"address"`
	City            string      `json:"city"`
	Role            models.Role `json:"role"`
	SitterProfileID *uint       `json:"sitter_profile_id"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      AccountView `json:"user"`
}

func NewAccountView(u *models.User, profileID *uint) AccountView {
	return AccountView{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Phone:           u.Phone,
		Address:         u.Address,
		City:            u.City,
		Role:            u.Role,
		SitterProfileID: profileID,
	}
}

func NewAuthResponse(token string, expiresAt time.Time, u *models.User, profileID *uint) AuthResponse {
	return AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
		User:      NewAccountView(u, profileID),
	}
}
