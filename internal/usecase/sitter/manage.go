package sitter

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nannyhub/babysitter-api/internal/audit"
	"github.com/nannyhub/babysitter-api/internal/auth"
	domain "github.com/nannyhub/babysitter-api/internal/domain/account"
	"github.com/nannyhub/babysitter-api/internal/dto"
	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/models"
)

// loadOwned returns the profile only if caller owns it.
func loadOwned(ctx context.Context, repo domain.Repository, caller auth.Identity, id uint) (*models.SitterProfile, error) {
	p, err := repo.GetSitterProfile(ctx, id)
	if err != nil {
		return nil, sitterErr(err)
	}
	if p.UserID != caller.UserID {
		return nil, httperr.Forbidden("forbidden", "you can only edit your own profile")
	}
	return p, nil
}

// ======================================================
// Availability
// ======================================================

type SetAvailability struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetAvailability(repo domain.Repository, audit *audit.Dispatcher) *SetAvailability {
	return &SetAvailability{repo: repo, audit: audit}
}

// Execute replaces every slot of the profile.
func (uc *SetAvailability) Execute(
	ctx context.Context,
	caller auth.Identity,
	profileID uint,
	slots []domain.Slot,
) (*dto.SitterView, error) {

	p, err := loadOwned(ctx, uc.repo, caller, profileID)
	if err != nil {
		return nil, err
	}

	rows, err := domain.ValidateSlots(slots)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		return tx.ReplaceAvailability(ctx, p.ID, rows)
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:    &caller.UserID,
		Action:    "availability_updated",
		Entity:    "sitter_profile",
		EntityID:  &p.ID,
		RequestID: audit.RequestID(ctx),
		Metadata:  map[string]any{"slots": len(rows)},
	})

	return NewGetSitter(uc.repo).Execute(ctx, p.ID)
}

// ======================================================
// Profile
// ======================================================

// UpdateProfileInput is a partial update; nil fields stay as they are.
type UpdateProfileInput struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	City            *string
	Bio             *string
	YearsExperience *int
	HourlyRate      *decimal.Decimal
}

type UpdateProfile struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateProfile(repo domain.Repository, audit *audit.Dispatcher) *UpdateProfile {
	return &UpdateProfile{repo: repo, audit: audit}
}

// Execute never touches existing bookings: their cost was fixed when
// they were created.
func (uc *UpdateProfile) Execute(
	ctx context.Context,
	caller auth.Identity,
	profileID uint,
	in UpdateProfileInput,
) (*dto.SitterView, error) {

	p, err := loadOwned(ctx, uc.repo, caller, profileID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		if p.User.FirstName = strings.TrimSpace(*in.FirstName); p.User.FirstName == "" {
			return nil, httperr.Validation("invalid_name", "first name cannot be empty")
		}
	}
	if in.LastName != nil {
		if p.User.LastName = strings.TrimSpace(*in.LastName); p.User.LastName == "" {
			return nil, httperr.Validation("invalid_name", "last name cannot be empty")
		}
	}
	if in.Phone != nil {
		p.User.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.City != nil {
		p.User.City = strings.TrimSpace(*in.City)
	}
	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.YearsExperience != nil {
		if err := domain.ValidateYearsExperience(*in.YearsExperience); err != nil {
			return nil, err
		}
		p.YearsExperience = *in.YearsExperience
	}
	if in.HourlyRate != nil {
		if err := domain.ValidateHourlyRate(*in.HourlyRate); err != nil {
			return nil, err
		}
		p.HourlyRate = *in.HourlyRate
	}

	if err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		return tx.SaveSitterProfile(ctx, p)
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:    &caller.UserID,
		Action:    "profile_updated",
		Entity:    "sitter_profile",
		EntityID:  &p.ID,
		RequestID: audit.RequestID(ctx),
	})

	return NewGetSitter(uc.repo).Execute(ctx, p.ID)
}
