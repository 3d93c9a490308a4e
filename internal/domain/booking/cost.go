package booking

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nannyhub/babysitter-api/internal/httperr"
)

const MaxNoteLength = 500

var nanosPerHour = decimal.NewFromInt(int64(time.Hour))

// Cost prices the window at the hourly rate using fractional hours,
// rounded to cents (half away from zero).
func Cost(start, end time.Time, hourlyRate decimal.Decimal) decimal.Decimal {
	elapsed := decimal.NewFromInt(int64(end.Sub(start)))
	return elapsed.Mul(hourlyRate).Div(nanosPerHour).Round(2)
}

// ValidateWindow expects UTC instants.
func ValidateWindow(start, end, now time.Time) error {
	if !start.Before(end) {
		return httperr.Validation("invalid_time_range", "start must be before end")
	}
	if !start.After(now) {
		return httperr.Validation("start_in_past", "start must be in the future")
	}
	return nil
}

func NormalizeNote(note *string) (*string, error) {
	if note == nil {
		return nil, nil
	}

	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil, nil
	}
	if len([]rune(trimmed)) > MaxNoteLength {
		return nil, httperr.Validation("note_too_long", "note must be at most 500 characters")
	}

	return &trimmed, nil
}
