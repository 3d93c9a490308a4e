package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nannyhub/babysitter-api/internal/models"
)

type ReviewView struct {
	ID              uint      `json:"id"`
	BookingID       uint      `json:"booking_id"`
	SitterProfileID uint      `json:"sitter_profile_id"`
	Rating          int       `json:"rating"`
	Comment         *string   `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`

	AuthorName *string `json:"author_name,omitempty"`
	SitterName *string `json:"sitter_name,omitempty"`
}

func NewReviewView(r *models.Review) ReviewView {
	return ReviewView{
		ID:              r.ID,
		BookingID:       r.BookingID,
		SitterProfileID: r.SitterProfileID,
		Rating:          r.Rating,
		Comment:         r.Comment,
		CreatedAt:       r.CreatedAt.UTC(),
	}
}

// NewSitterReviewViews shapes a sitter's public review list; Author must
// be preloaded.
func NewSitterReviewViews(list []models.Review) []ReviewView {
	out := make([]ReviewView, 0, len(list))
	for i := range list {
		v := NewReviewView(&list[i])
		v.AuthorName = strPtr(list[i].Author.DisplayName())
		out = append(out, v)
	}
	return out
}

// NewAuthoredReviewViews shapes a family's own reviews; SitterProfile.User
// must be preloaded.
func NewAuthoredReviewViews(list []models.Review) []ReviewView {
	out := make([]ReviewView, 0, len(list))
	for i := range list {
		v := NewReviewView(&list[i])
		v.SitterName = strPtr(list[i].SitterProfile.User.DisplayName())
		out = append(out, v)
	}
	return out
}

// ReviewReceipt is returned on creation together with the sitter's
// refreshed average.
type ReviewReceipt struct {
	ReviewView
	SitterAverageRating decimal.NullDecimal `json:"sitter_average_rating"`
}
