package booking

import (
	"context"
	"errors"
	"time"

	"github.com/nannyhub/babysitter-api/internal/audit"
	"github.com/nannyhub/babysitter-api/internal/auth"
	"github.com/nannyhub/babysitter-api/internal/clock"
	domain "github.com/nannyhub/babysitter-api/internal/domain/booking"
	"github.com/nannyhub/babysitter-api/internal/dto"
	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/models"
)

// transition is the shared lock/authorize/apply/save flow behind the
// confirm, complete and cancel use cases.
type transition struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   clock.Func

	action     string
	sitterOnly bool
	apply      func(b *models.Booking, now time.Time) error
}

func (t transition) run(
	ctx context.Context,
	caller auth.Identity,
	bookingID uint,
) (*dto.BookingView, error) {

	var updated *models.Booking

	err := t.repo.Transaction(ctx, func(tx domain.Repository) error {
		b, err := tx.LockBooking(ctx, bookingID)
		if errors.Is(err, domain.ErrNotFound) {
			return bookingNotFound()
		}
		if err != nil {
			return err
		}

		// strangers learn nothing about the booking
		if !domain.IsParty(b, caller.UserID) {
			return bookingNotFound()
		}
		if t.sitterOnly && !domain.IsSitter(b, caller.UserID) {
			return httperr.Forbidden("forbidden", "only the sitter can do this")
		}

		if err := t.apply(b, t.now()); err != nil {
			return err
		}

		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}

		updated, err = tx.GetBooking(ctx, b.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.audit.Dispatch(audit.Event{
		UserID:    &caller.UserID,
		Action:    t.action,
		Entity:    "booking",
		EntityID:  &updated.ID,
		RequestID: audit.RequestID(ctx),
	})

	viewer := models.RoleFamily
	if domain.IsSitter(updated, caller.UserID) {
		viewer = models.RoleSitter
	}

	view := dto.NewBookingView(updated, viewer)
	return &view, nil
}

func bookingNotFound() error {
	return httperr.NotFoundErr("booking_not_found", "booking not found")
}

func orNow(now clock.Func) clock.Func {
	if now == nil {
		return clock.Now
	}
	return now
}

// ======================================================
// Confirm
// ======================================================

type ConfirmBooking struct {
	t transition
}

func NewConfirmBooking(repo domain.Repository, audit *audit.Dispatcher, now clock.Func) *ConfirmBooking {
	return &ConfirmBooking{t: transition{
		repo:       repo,
		audit:      audit,
		now:        orNow(now),
		action:     "booking_confirmed",
		sitterOnly: true,
		apply:      domain.Confirm,
	}}
}

func (uc *ConfirmBooking) Execute(ctx context.Context, caller auth.Identity, bookingID uint) (*dto.BookingView, error) {
	return uc.t.run(ctx, caller, bookingID)
}

// ======================================================
// Complete
// ======================================================

type CompleteBooking struct {
	t transition
}

func NewCompleteBooking(repo domain.Repository, audit *audit.Dispatcher, now clock.Func) *CompleteBooking {
	return &CompleteBooking{t: transition{
		repo:       repo,
		audit:      audit,
		now:        orNow(now),
		action:     "booking_completed",
		sitterOnly: true,
		apply:      domain.Complete,
	}}
}

func (uc *CompleteBooking) Execute(ctx context.Context, caller auth.Identity, bookingID uint) (*dto.BookingView, error) {
	return uc.t.run(ctx, caller, bookingID)
}

// ======================================================
// Cancel
// ======================================================

// CancelBooking may be invoked by either party.
type CancelBooking struct {
	t transition
}

func NewCancelBooking(repo domain.Repository, audit *audit.Dispatcher, now clock.Func) *CancelBooking {
	return &CancelBooking{t: transition{
		repo:   repo,
		audit:  audit,
		now:    orNow(now),
		action: "booking_cancelled",
		apply:  domain.Cancel,
	}}
}

func (uc *CancelBooking) Execute(ctx context.Context, caller auth.Identity, bookingID uint) (*dto.BookingView, error) {
	return uc.t.run(ctx, caller, bookingID)
}
