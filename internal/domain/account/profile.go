package account

import (
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nannyhub/babysitter-api/internal/httperr"
)

const MinPasswordLength = 6

func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", httperr.Validation("invalid_email", "email is not valid")
	}
	return email, nil
}

func ValidateHourlyRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return httperr.Validation("invalid_hourly_rate", "hourly rate must be greater than zero")
	}
	if !rate.Equal(rate.Round(2)) {
		return httperr.Validation("invalid_hourly_rate", "hourly rate has at most two decimal places")
	}
	return nil
}

func ValidateYearsExperience(years int) error {
	if years < 0 {
		return httperr.Validation("invalid_years_experience", "years of experience cannot be negative")
	}
	return nil
}
