package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/nannyhub/babysitter-api/internal/audit"
	"github.com/nannyhub/babysitter-api/internal/auth"
	"github.com/nannyhub/babysitter-api/internal/clock"
	domain "github.com/nannyhub/babysitter-api/internal/domain/account"
	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SitterDetails struct {
	HourlyRate      decimal.Decimal
	Bio             string
	YearsExperience int
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
	Address   string
	City      string
	Role      models.Role

	// required when Role is Sitter
	Sitter *SitterDetails
}

type AuthResult struct {
	Token     auth.IssuedToken
	User      *models.User
	ProfileID *uint
}

var errEmailTaken = httperr.Conflict("email_taken", "email already registered")

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	repo        domain.Repository
	issuer      *auth.Issuer
	audit       *audit.Dispatcher
	now         clock.Func
	checkDomain func(email string) bool
	hashCost    int
}

// NewRegister takes an optional email domain check; nil skips it.
func NewRegister(
	repo domain.Repository,
	issuer *auth.Issuer,
	audit *audit.Dispatcher,
	now clock.Func,
	checkDomain func(email string) bool,
) *Register {
	if now == nil {
		now = clock.Now
	}
	return &Register{
		repo:        repo,
		issuer:      issuer,
		audit:       audit,
		now:         now,
		checkDomain: checkDomain,
		hashCost:    bcrypt.DefaultCost,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*AuthResult, error) {

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	if !in.Role.Valid() {
		return nil, httperr.Validation("invalid_role", "role must be Family or Sitter")
	}

	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, httperr.Validation("invalid_name", "first and last name are required")
	}

	email, err := domain.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if uc.checkDomain != nil && !uc.checkDomain(email) {
		return nil, httperr.Validation("invalid_email_domain", "email domain does not accept mail")
	}

	if len(in.Password) < domain.MinPasswordLength {
		return nil, httperr.Validation("weak_password", "password must have at least 6 characters")
	}

	if in.Role == models.RoleSitter {
		if in.Sitter == nil {
			return nil, httperr.Validation("sitter_details_required", "sitters must provide an hourly rate")
		}
		if err := domain.ValidateHourlyRate(in.Sitter.HourlyRate); err != nil {
			return nil, err
		}
		if err := domain.ValidateYearsExperience(in.Sitter.YearsExperience); err != nil {
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// --------------------------------------------------
	// Account (+ profile) in one transaction
	// --------------------------------------------------
	now := uc.now()
	user := &models.User{
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		City:         strings.TrimSpace(in.City),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var profileID *uint

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		_, err := tx.FindUserByEmail(ctx, email)
		if err == nil {
			return errEmailTaken
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		if err := tx.CreateUser(ctx, user); err != nil {
			if httperr.IsUniqueViolation(err) {
				return errEmailTaken
			}
			return err
		}

		if in.Role != models.RoleSitter {
			return nil
		}

		p := &models.SitterProfile{
			UserID:          user.ID,
			Bio:             strings.TrimSpace(in.Sitter.Bio),
			YearsExperience: in.Sitter.YearsExperience,
			HourlyRate:      in.Sitter.HourlyRate,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.CreateSitterProfile(ctx, p); err != nil {
			return err
		}
		profileID = &p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	tok, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:    &user.ID,
		Action:    "user_registered",
		Entity:    "user",
		EntityID:  &user.ID,
		RequestID: audit.RequestID(ctx),
		Metadata:  map[string]any{"role": user.Role},
	})

	return &AuthResult{Token: tok, User: user, ProfileID: profileID}, nil
}
