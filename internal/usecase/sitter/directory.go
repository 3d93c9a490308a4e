package sitter

import (
	"context"
	"errors"
	"strings"

	domain "github.com/nannyhub/babysitter-api/internal/domain/account"
	"github.com/nannyhub/babysitter-api/internal/dto"
	"github.com/nannyhub/babysitter-api/internal/httperr"
)

type ListSitters struct {
	repo domain.Repository
}

func NewListSitters(repo domain.Repository) *ListSitters {
	return &ListSitters{repo: repo}
}

// Execute searches by case-insensitive city substring and, when weekday
// is 1-7, by having at least one slot on that day.
func (uc *ListSitters) Execute(ctx context.Context, city string, weekday int) ([]dto.SitterView, error) {
	if weekday < 0 || weekday > 7 {
		return nil, httperr.Validation("invalid_weekday", "weekday must be 1-7")
	}

	list, err := uc.repo.ListSitters(ctx, domain.SitterFilter{
		City:    strings.TrimSpace(city),
		Weekday: weekday,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewSitterViews(list), nil
}

type GetSitter struct {
	repo domain.Repository
}

func NewGetSitter(repo domain.Repository) *GetSitter {
	return &GetSitter{repo: repo}
}

func (uc *GetSitter) Execute(ctx context.Context, id uint) (*dto.SitterView, error) {
	p, err := uc.repo.GetSitterProfile(ctx, id)
	if err != nil {
		return nil, sitterErr(err)
	}
	view := dto.NewSitterView(p)
	return &view, nil
}

func sitterErr(err error) error {
	if errors.Is(err, domain.ErrSitterNotFound) {
		return httperr.NotFoundErr("sitter_not_found", "sitter not found")
	}
	return err
}
