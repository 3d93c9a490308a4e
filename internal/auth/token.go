package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nannyhub/babysitter-api/internal/clock"
	"github.com/nannyhub/babysitter-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role  models.Role `json:"role"`
	Email string      `json:"email,omitempty"`
	Name  string      `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    clock.Func
}

func NewIssuer(secret string, ttl time.Duration, now clock.Func) *Issuer {
	if now == nil {
		now = clock.Now
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: now}
}

type IssuedToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

func (i *Issuer) Issue(u *models.User) (IssuedToken, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	jti := uuid.NewString()

	claims := Claims{
		Role:  u.Role,
		Email: u.Email,
		Name:  u.DisplayName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	return IssuedToken{Token: signed, ID: jti, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// Parse verifies signature and expiry and returns the caller identity.
func (i *Issuer) Parse(raw string) (Identity, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return Identity{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	if !claims.Role.Valid() {
		return Identity{}, fmt.Errorf("%w: bad role", ErrInvalidToken)
	}

	return Identity{
		UserID:    uint(userID),
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
