package review

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nannyhub/babysitter-api/internal/httperr"
)

const (
	MinRating = 1
	MaxRating = 5
)

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return httperr.Validation("invalid_rating", "rating must be between 1 and 5")
	}
	return nil
}

// NormalizeComment trims surrounding whitespace; a blank comment is absent.
func NormalizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Average is the mean of count ratings summing to sum, rounded to one
// decimal place half away from zero. No ratings means no average.
func Average(sum, count int64) decimal.NullDecimal {
	if count <= 0 {
		return decimal.NullDecimal{}
	}
	mean := decimal.NewFromInt(sum).Div(decimal.NewFromInt(count)).Round(1)
	return decimal.NewNullDecimal(mean)
}
