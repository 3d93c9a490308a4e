package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nannyhub/babysitter-api/internal/auth"
	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/middleware"
)

// respondError writes err and logs it when it is not a business error.
func respondError(c *gin.Context, log *zap.Logger, op string, err error) {
	if httperr.Respond(c, err) {
		return
	}
	log.Error(op+" failed",
		zap.Error(err),
		zap.String("request_id", middleware.RequestID(c)),
	)
}

// caller must only be used behind AuthMiddleware.
func caller(c *gin.Context) (auth.Identity, bool) {
	id, ok := middleware.Caller(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "authentication required")
		return auth.Identity{}, false
	}
	return id, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

func badBody(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "invalid request body")
}
