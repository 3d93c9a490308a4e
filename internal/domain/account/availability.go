package account

import (
	"fmt"
	"time"

	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/models"
)

const wallClock = "15:04"

type Slot struct {
	Weekday   int
	StartTime string
	EndTime   string
}

// ValidateSlots checks weekday range, HH:MM format and start < end. Slots
// may overlap each other.
func ValidateSlots(slots []Slot) ([]models.AvailabilitySlot, error) {
	out := make([]models.AvailabilitySlot, 0, len(slots))

	for i, s := range slots {
		if s.Weekday < 1 || s.Weekday > 7 {
			return nil, httperr.Validation("invalid_weekday", fmt.Sprintf("slot %d: weekday must be 1-7", i))
		}

		start, err := time.Parse(wallClock, s.StartTime)
		if err != nil {
			return nil, httperr.Validation("invalid_time", fmt.Sprintf("slot %d: start_time must be HH:MM", i))
		}
		end, err := time.Parse(wallClock, s.EndTime)
		if err != nil {
			return nil, httperr.Validation("invalid_time", fmt.Sprintf("slot %d: end_time must be HH:MM", i))
		}
		if !start.Before(end) {
			return nil, httperr.Validation("invalid_time_range", fmt.Sprintf("slot %d: start_time must be before end_time", i))
		}

		out = append(out, models.AvailabilitySlot{
			Weekday:   s.Weekday,
			StartTime: start.Format(wallClock),
			EndTime:   end.Format(wallClock),
		})
	}

	return out, nil
}
