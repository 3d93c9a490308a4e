package review

import (
	"context"

	"github.com/nannyhub/babysitter-api/internal/auth"
	domain "github.com/nannyhub/babysitter-api/internal/domain/review"
	"github.com/nannyhub/babysitter-api/internal/dto"
	"github.com/nannyhub/babysitter-api/internal/httperr"
)

// ListReviewsForSitter is public: anyone may read a sitter's reviews.
type ListReviewsForSitter struct {
	repo domain.Repository
}

func NewListReviewsForSitter(repo domain.Repository) *ListReviewsForSitter {
	return &ListReviewsForSitter{repo: repo}
}

func (uc *ListReviewsForSitter) Execute(ctx context.Context, sitterProfileID uint) ([]dto.ReviewView, error) {
	list, err := uc.repo.ListReviewsForSitter(ctx, sitterProfileID)
	if err != nil {
		return nil, err
	}
	return dto.NewSitterReviewViews(list), nil
}

type ListReviewsForUser struct {
	repo domain.Repository
}

func NewListReviewsForUser(repo domain.Repository) *ListReviewsForUser {
	return &ListReviewsForUser{repo: repo}
}

func (uc *ListReviewsForUser) Execute(
	ctx context.Context,
	caller auth.Identity,
	targetUserID uint,
) ([]dto.ReviewView, error) {

	if !caller.Owns(targetUserID) {
		return nil, httperr.Forbidden("forbidden", "you can only list your own reviews")
	}

	list, err := uc.repo.ListReviewsByAuthor(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return dto.NewAuthoredReviewViews(list), nil
}
