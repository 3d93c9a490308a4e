package review

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/nannyhub/babysitter-api/internal/audit"
	"github.com/nannyhub/babysitter-api/internal/auth"
	"github.com/nannyhub/babysitter-api/internal/clock"
	bookingdomain "github.com/nannyhub/babysitter-api/internal/domain/booking"
	domain "github.com/nannyhub/babysitter-api/internal/domain/review"
	"github.com/nannyhub/babysitter-api/internal/dto"
	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateReviewInput struct {
	Caller    auth.Identity
	BookingID uint
	Rating    int
	Comment   *string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   clock.Func
}

func NewCreateReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now clock.Func,
) *CreateReview {
	if now == nil {
		now = clock.Now
	}
	return &CreateReview{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

var errAlreadyReviewed = httperr.Conflict("review_exists", "review already exists")

// ======================================================
// EXECUTE
// ======================================================

// Execute stores the review and refreshes the sitter's average in one
// transaction. The sitter row lock makes concurrent reviewers of the same
// sitter recompute one after another.
func (uc *CreateReview) Execute(
	ctx context.Context,
	in CreateReviewInput,
) (*dto.ReviewReceipt, error) {

	var (
		created *models.Review
		average decimal.NullDecimal
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// Booking must be the caller's and Completed
		// --------------------------------------------------
		b, err := tx.GetBookingForFamily(ctx, in.BookingID, in.Caller.UserID)
		if err != nil && !errors.Is(err, domain.ErrBookingNotFound) {
			return err
		}
		if b == nil || bookingdomain.Status(b.Status) != bookingdomain.StatusCompleted {
			return httperr.Validation("booking_not_completed", "booking not found or not completed")
		}

		if err := tx.LockSitterProfile(ctx, b.SitterProfileID); err != nil {
			return err
		}

		// --------------------------------------------------
		// One review per booking
		// --------------------------------------------------
		exists, err := tx.ReviewExistsForBooking(ctx, b.ID)
		if err != nil {
			return err
		}
		if exists {
			return errAlreadyReviewed
		}

		if err := domain.ValidateRating(in.Rating); err != nil {
			return err
		}

		// --------------------------------------------------
		// Insert
		// --------------------------------------------------
		r := &models.Review{
			BookingID:       b.ID,
			AuthorUserID:    in.Caller.UserID,
			SitterProfileID: b.SitterProfileID,
			Rating:          in.Rating,
			Comment:         domain.NormalizeComment(in.Comment),
			CreatedAt:       uc.now(),
		}

		if err := tx.CreateReview(ctx, r); err != nil {
			if httperr.IsUniqueViolation(err) {
				return errAlreadyReviewed
			}
			return err
		}

		// --------------------------------------------------
		// Recompute the cached average over all reviews
		// --------------------------------------------------
		sum, count, err := tx.RatingTotals(ctx, b.SitterProfileID)
		if err != nil {
			return err
		}

		average = domain.Average(sum, count)
		if err := tx.UpdateAverageRating(ctx, b.SitterProfileID, average); err != nil {
			return err
		}

		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:    &in.Caller.UserID,
		Action:    "review_created",
		Entity:    "review",
		EntityID:  &created.ID,
		RequestID: audit.RequestID(ctx),
		Metadata: map[string]any{
			"booking_id": created.BookingID,
			"rating":     created.Rating,
		},
	})

	return &dto.ReviewReceipt{
		ReviewView:          dto.NewReviewView(created),
		SitterAverageRating: average,
	}, nil
}
