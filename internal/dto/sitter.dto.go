package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nannyhub/babysitter-api/internal/models"
)

type SlotView struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SitterView struct {
	ID              uint                `json:"id"`
	UserID          uint                `json:"user_id"`
	FirstName       string              `json:"first_name"`
	LastName        string              `json:"last_name"`
	City            string              `json:"city"`
	Bio             string              `json:"bio"`
	YearsExperience int                 `json:"years_experience"`
	HourlyRate      decimal.Decimal     `json:"hourly_rate"`
	AverageRating   decimal.NullDecimal `json:"average_rating"`
	PhotoURL        string              `json:"photo_url"`
	Availability    []SlotView          `json:"availability"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func NewSitterView(p *models.SitterProfile) SitterView {
	slots := make([]SlotView, 0, len(p.Availability))
	for _, s := range p.Availability {
		slots = append(slots, SlotView{Weekday: s.Weekday, StartTime: s.StartTime, EndTime: s.EndTime})
	}

	return SitterView{
		ID:              p.ID,
		UserID:          p.UserID,
		FirstName:       p.User.FirstName,
		LastName:        p.User.LastName,
		City:            p.User.City,
		Bio:             p.Bio,
		YearsExperience: p.YearsExperience,
		HourlyRate:      p.HourlyRate,
		AverageRating:   p.AverageRating,
		PhotoURL:        p.PhotoURL,
		Availability:    slots,
		UpdatedAt:       p.UpdatedAt.UTC(),
	}
}

func NewSitterViews(list []models.SitterProfile) []SitterView {
	out := make([]SitterView, 0, len(list))
	for i := range list {
		out = append(out, NewSitterView(&list[i]))
	}
	return out
}
