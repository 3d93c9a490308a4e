package review

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/nannyhub/babysitter-api/internal/models"
)

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// GetBookingForFamily returns ErrBookingNotFound unless the booking
	// exists and was requested by familyUserID.
	GetBookingForFamily(
		ctx context.Context,
		bookingID uint,
		familyUserID uint,
	) (*models.Booking, error)

	ReviewExistsForBooking(
		ctx context.Context,
		bookingID uint,
	) (bool, error)

	// LockSitterProfile serialises rating writers for one sitter.
	LockSitterProfile(
		ctx context.Context,
		sitterProfileID uint,
	) error

	CreateReview(
		ctx context.Context,
		r *models.Review,
	) error

	RatingTotals(
		ctx context.Context,
		sitterProfileID uint,
	) (sum int64, count int64, err error)

	UpdateAverageRating(
		ctx context.Context,
		sitterProfileID uint,
		avg decimal.NullDecimal,
	) error

	// Listing, newest first.
	ListReviewsForSitter(
		ctx context.Context,
		sitterProfileID uint,
	) ([]models.Review, error)

	ListReviewsByAuthor(
		ctx context.Context,
		authorUserID uint,
	) ([]models.Review, error)
}
