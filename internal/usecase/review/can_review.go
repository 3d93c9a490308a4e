package review

import (
	"context"
	"errors"

	"github.com/nannyhub/babysitter-api/internal/auth"
	bookingdomain "github.com/nannyhub/babysitter-api/internal/domain/booking"
	domain "github.com/nannyhub/babysitter-api/internal/domain/review"
)

type CanReview struct {
	repo domain.Repository
}

func NewCanReview(repo domain.Repository) *CanReview {
	return &CanReview{repo: repo}
}

// Execute never fails for a missing or foreign booking; it just answers
// false.
func (uc *CanReview) Execute(
	ctx context.Context,
	caller auth.Identity,
	bookingID uint,
) (bool, error) {

	b, err := uc.repo.GetBookingForFamily(ctx, bookingID, caller.UserID)
	if errors.Is(err, domain.ErrBookingNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if bookingdomain.Status(b.Status) != bookingdomain.StatusCompleted {
		return false, nil
	}

	exists, err := uc.repo.ReviewExistsForBooking(ctx, b.ID)
	if err != nil {
		return false, err
	}

	return !exists, nil
}
