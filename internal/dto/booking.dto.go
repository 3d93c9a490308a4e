package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nannyhub/babysitter-api/internal/models"
)

// BookingView is the single wire shape for a booking. Which counterpart
// fields are filled depends on who is looking: a family sees the sitter,
// a sitter sees the family. The other side is always null.
type BookingView struct {
	ID              uint            `json:"id"`
	FamilyUserID    uint            `json:"family_user_id"`
	SitterProfileID uint            `json:"sitter_profile_id"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Status          string          `json:"status"`
	Note            *string         `json:"note"`
	CreatedAt       time.Time       `json:"created_at"`
	ConfirmedAt     *time.Time      `json:"confirmed_at"`
	CompletedAt     *time.Time      `json:"completed_at"`
	CancelledAt     *time.Time      `json:"cancelled_at"`

	// family-facing
	SitterName       *string          `json:"sitter_name"`
	SitterPhone      *string          `json:"sitter_phone"`
	SitterHourlyRate *decimal.Decimal `json:"sitter_hourly_rate"`

	// sitter-facing
	FamilyName    *string `json:"family_name"`
	FamilyPhone   *string `json:"family_phone"`
	FamilyAddress *string `json:"family_address"`

	Review *ReviewSummary `json:"review"`
}

type ReviewSummary struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBookingView expects Family, SitterProfile.User and Review preloaded
// for whichever side the viewer needs.
func NewBookingView(b *models.Booking, viewer models.Role) BookingView {
	v := BookingView{
		ID:              b.ID,
		FamilyUserID:    b.FamilyUserID,
		SitterProfileID: b.SitterProfileID,
		StartTime:       b.StartTime.UTC(),
		EndTime:         b.EndTime.UTC(),
		TotalCost:       b.TotalCost,
		Status:          b.Status,
		Note:            b.Note,
		CreatedAt:       b.CreatedAt.UTC(),
		ConfirmedAt:     utcPtr(b.ConfirmedAt),
		CompletedAt:     utcPtr(b.CompletedAt),
		CancelledAt:     utcPtr(b.CancelledAt),
	}

	switch viewer {
	case models.RoleFamily:
		sitter := b.SitterProfile.User
		rate := b.SitterProfile.HourlyRate
		v.SitterName = strPtr(sitter.DisplayName())
		v.SitterPhone = strPtr(sitter.Phone)
		v.SitterHourlyRate = &rate
	case models.RoleSitter:
		v.FamilyName = strPtr(b.Family.DisplayName())
		v.FamilyPhone = strPtr(b.Family.Phone)
		v.FamilyAddress = strPtr(b.Family.Address)
	}

	if b.Review != nil {
		v.Review = &ReviewSummary{
			ID:        b.Review.ID,
			Rating:    b.Review.Rating,
			Comment:   b.Review.Comment,
			CreatedAt: b.Review.CreatedAt.UTC(),
		}
	}

	return v
}

func NewBookingViews(list []models.Booking, viewer models.Role) []BookingView {
	out := make([]BookingView, 0, len(list))
	for i := range list {
		out = append(out, NewBookingView(&list[i], viewer))
	}
	return out
}

func strPtr(s string) *string {
	return &s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
