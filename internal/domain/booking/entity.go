package booking

import (
	"time"

	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

// Complete requires the service window to be over.
func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}
	if now.Before(b.EndTime) {
		return httperr.Validation("service_not_finished", "booking cannot be completed before its end time")
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

// IsParty reports whether userID is the requesting family or the sitter
// behind the booking. SitterProfile must be loaded.
func IsParty(b *models.Booking, userID uint) bool {
	return b.FamilyUserID == userID || IsSitter(b, userID)
}

func IsSitter(b *models.Booking, userID uint) bool {
	return b.SitterProfile.UserID == userID
}
