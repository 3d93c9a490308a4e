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

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Caller          auth.Identity
	SitterProfileID uint
	Start           time.Time
	End             time.Time
	Note            *string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo          domain.Repository
	audit         *audit.Dispatcher
	now           clock.Func
	rejectOverlap bool
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now clock.Func,
	rejectOverlap bool,
) *CreateBooking {
	if now == nil {
		now = clock.Now
	}
	return &CreateBooking{
		repo:          repo,
		audit:         audit,
		now:           now,
		rejectOverlap: rejectOverlap,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*dto.BookingView, error) {

	// --------------------------------------------------
	// Caller
	// --------------------------------------------------
	if !in.Caller.IsFamily() {
		return nil, httperr.Forbidden("forbidden_role", "only families can request bookings")
	}

	// --------------------------------------------------
	// Window + note
	// --------------------------------------------------
	start := clock.UTC(in.Start)
	end := clock.UTC(in.End)
	now := uc.now()

	if err := domain.ValidateWindow(start, end, now); err != nil {
		return nil, err
	}

	note, err := domain.NormalizeNote(in.Note)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Persist (rate snapshot taken under the sitter lock)
	// --------------------------------------------------
	var created *models.Booking

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		sitter, err := tx.LockSitterProfile(ctx, in.SitterProfileID)
		if errors.Is(err, domain.ErrSitterNotFound) {
			return httperr.NotFoundErr("sitter_not_found", "sitter not found")
		}
		if err != nil {
			return err
		}

		if uc.rejectOverlap {
			busy, err := tx.HasOverlappingBooking(ctx, sitter.ID, start, end)
			if err != nil {
				return err
			}
			if busy {
				return httperr.Conflict("time_conflict", "sitter already has a booking in this window")
			}
		}

		b := &models.Booking{
			FamilyUserID:    in.Caller.UserID,
			SitterProfileID: sitter.ID,
			StartTime:       start,
			EndTime:         end,
			TotalCost:       domain.Cost(start, end, sitter.HourlyRate),
			Status:          string(domain.InitialStatus()),
			Note:            note,
			CreatedAt:       now,
		}

		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		created, err = tx.GetBooking(ctx, b.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:    &in.Caller.UserID,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &created.ID,
		RequestID: audit.RequestID(ctx),
		Metadata: map[string]any{
			"sitter_profile_id": created.SitterProfileID,
			"total_cost":        created.TotalCost.StringFixed(2),
		},
	})

	view := dto.NewBookingView(created, models.RoleFamily)
	return &view, nil
}
