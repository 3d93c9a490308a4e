package booking

import (
	"context"
	"errors"
	"time"

	"github.com/nannyhub/babysitter-api/internal/models"
)

var (
	ErrNotFound       = errors.New("booking not found")
	ErrSitterNotFound = errors.New("sitter profile not found")
)

type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction; any error rolls everything back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Sitter --------
	GetSitterProfile(
		ctx context.Context,
		id uint,
	) (*models.SitterProfile, error)

	LockSitterProfile(
		ctx context.Context,
		id uint,
	) (*models.SitterProfile, error)

	// -------- Booking (create / conflict) --------
	HasOverlappingBooking(
		ctx context.Context,
		sitterProfileID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// GetBooking loads the booking with family, sitter account and review.
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// -------- Booking (state change) --------
	LockBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listing --------
	ListBookingsForFamily(
		ctx context.Context,
		familyUserID uint,
	) ([]models.Booking, error)

	ListBookingsForSitterUser(
		ctx context.Context,
		sitterUserID uint,
	) ([]models.Booking, error)
}
