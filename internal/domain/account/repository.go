package account

import (
	"context"
	"errors"

	"github.com/nannyhub/babysitter-api/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrSitterNotFound = errors.New("sitter profile not found")
)

// SitterFilter narrows the public sitter directory. Zero values match all.
type SitterFilter struct {
	City    string
	Weekday int
}

type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Accounts --------
	CreateUser(
		ctx context.Context,
		u *models.User,
	) error

	// FindUserByEmail and GetUser preload the sitter profile when there
	// is one.
	FindUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Sitter profiles --------
	CreateSitterProfile(
		ctx context.Context,
		p *models.SitterProfile,
	) error

	// GetSitterProfile preloads the account and availability.
	GetSitterProfile(
		ctx context.Context,
		id uint,
	) (*models.SitterProfile, error)

	ListSitters(
		ctx context.Context,
		f SitterFilter,
	) ([]models.SitterProfile, error)

	// SaveSitterProfile writes the editable account and profile columns.
	// The cached average rating is never touched here.
	SaveSitterProfile(
		ctx context.Context,
		p *models.SitterProfile,
	) error

	ReplaceAvailability(
		ctx context.Context,
		sitterProfileID uint,
		slots []models.AvailabilitySlot,
	) error

	SetPhotoURL(
		ctx context.Context,
		sitterProfileID uint,
		url string,
	) error
}
