package booking

import (
	"context"

	"github.com/nannyhub/babysitter-api/internal/auth"
	domain "github.com/nannyhub/babysitter-api/internal/domain/booking"
	"github.com/nannyhub/babysitter-api/internal/dto"
	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/models"
)

type ListBookingsForUser struct {
	repo domain.Repository
}

func NewListBookingsForUser(repo domain.Repository) *ListBookingsForUser {
	return &ListBookingsForUser{repo: repo}
}

// Execute lists the caller's own bookings, newest first, shaped for the
// caller's role.
func (uc *ListBookingsForUser) Execute(
	ctx context.Context,
	caller auth.Identity,
	targetUserID uint,
) ([]dto.BookingView, error) {

	if !caller.Owns(targetUserID) {
		return nil, httperr.Forbidden("forbidden", "you can only list your own bookings")
	}

	var (
		list []models.Booking
		err  error
	)

	switch caller.Role {
	case models.RoleFamily:
		list, err = uc.repo.ListBookingsForFamily(ctx, caller.UserID)
	case models.RoleSitter:
		list, err = uc.repo.ListBookingsForSitterUser(ctx, caller.UserID)
	default:
		return nil, httperr.Validation("invalid_role", "unknown role")
	}
	if err != nil {
		return nil, err
	}

	return dto.NewBookingViews(list, caller.Role), nil
}
