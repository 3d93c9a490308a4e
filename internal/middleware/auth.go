package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nannyhub/babysitter-api/internal/auth"
	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/models"
)

const (
	ContextCaller    = "caller"
	ContextRequestID = "requestID"
)

type TokenParser interface {
	Parse(raw string) (auth.Identity, error)
}

// AuthMiddleware verifies the bearer token, rejects revoked tokens and
// stores the caller Identity in the gin context.
func AuthMiddleware(parser TokenParser, revoked auth.RevocationStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "expected a bearer token")
			c.Abort()
			return
		}

		id, err := parser.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "token is invalid or expired")
			c.Abort()
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), id.TokenID)
		if err != nil {
			// redis outage must not lock everyone out
			log.Warn("revocation check failed", zap.Error(err), zap.String("request_id", RequestID(c)))
		}
		if isRevoked {
			httperr.Unauthorized(c, "token_revoked", "token has been revoked")
			c.Abort()
			return
		}

		c.Set(ContextCaller, id)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the caller has role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := Caller(c)
		if !ok || id.Role != role {
			httperr.Respond(c, httperr.Forbidden("forbidden_role", "this action requires role "+string(role)))
			c.Abort()
			return
		}
		c.Next()
	}
}

func Caller(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(ContextCaller)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
