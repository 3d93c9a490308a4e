package auth

import (
	"time"

	"github.com/nannyhub/babysitter-api/internal/models"
)

// Identity is the verified caller behind a request. It is built once by
// the auth middleware and handed explicitly to use cases.
type Identity struct {
	UserID    uint
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

func (i Identity) IsFamily() bool { return i.Role == models.RoleFamily }

func (i Identity) IsSitter() bool { return i.Role == models.RoleSitter }

// Owns reports whether the caller is acting on their own account.
func (i Identity) Owns(userID uint) bool { return i.UserID == userID }
