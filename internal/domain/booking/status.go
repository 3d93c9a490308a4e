package booking

import "github.com/nannyhub/babysitter-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusRequested Status = "Requested"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func InitialStatus() Status {
	return StatusRequested
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Active bookings still hold the sitter's time.
func (s Status) Active() bool {
	return s == StatusRequested || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusRequested {
		return httperr.Validation("invalid_state", "only requested bookings can be confirmed")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.Validation("invalid_state", "only confirmed bookings can be completed")
	}
	return nil
}

func CanCancel(current Status) error {
	if current.Terminal() {
		return httperr.Validation("invalid_state", "booking is already "+string(current))
	}
	return nil
}
