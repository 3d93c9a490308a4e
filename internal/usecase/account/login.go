package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nannyhub/babysitter-api/internal/audit"
	"github.com/nannyhub/babysitter-api/internal/auth"
	domain "github.com/nannyhub/babysitter-api/internal/domain/account"
	"github.com/nannyhub/babysitter-api/internal/httperr"
)

var errInvalidCredentials = httperr.UnauthorizedErr("invalid_credentials", "invalid email or password")

type Login struct {
	repo   domain.Repository
	issuer *auth.Issuer
}

func NewLogin(repo domain.Repository, issuer *auth.Issuer) *Login {
	return &Login{repo: repo, issuer: issuer}
}

// Execute answers the same error for an unknown email and a wrong
// password.
func (uc *Login) Execute(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errInvalidCredentials
	}

	tok, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	var profileID *uint
	if user.SitterProfile != nil {
		profileID = &user.SitterProfile.ID
	}

	return &AuthResult{Token: tok, User: user, ProfileID: profileID}, nil
}

type Logout struct {
	store auth.RevocationStore
	audit *audit.Dispatcher
}

func NewLogout(store auth.RevocationStore, audit *audit.Dispatcher) *Logout {
	return &Logout{store: store, audit: audit}
}

func (uc *Logout) Execute(ctx context.Context, caller auth.Identity) error {
	if err := uc.store.Revoke(ctx, caller.TokenID, caller.ExpiresAt); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:    &caller.UserID,
		Action:    "logout",
		Entity:    "user",
		EntityID:  &caller.UserID,
		RequestID: audit.RequestID(ctx),
	})
	return nil
}

type GetMe struct {
	repo domain.Repository
}

func NewGetMe(repo domain.Repository) *GetMe {
	return &GetMe{repo: repo}
}

func (uc *GetMe) Execute(ctx context.Context, caller auth.Identity) (*AuthResult, error) {
	user, err := uc.repo.GetUser(ctx, caller.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, httperr.NotFoundErr("user_not_found", "user not found")
	}
	if err != nil {
		return nil, err
	}

	var profileID *uint
	if user.SitterProfile != nil {
		profileID = &user.SitterProfile.ID
	}
	return &AuthResult{User: user, ProfileID: profileID}, nil
}
