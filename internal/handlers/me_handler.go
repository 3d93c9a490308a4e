package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nannyhub/babysitter-api/internal/audit"
	"github.com/nannyhub/babysitter-api/internal/dto"
	"github.com/nannyhub/babysitter-api/internal/httpresp"
	"github.com/nannyhub/babysitter-api/internal/models"
	"github.com/nannyhub/babysitter-api/internal/usecase/account"
)

type AuditLogLister interface {
	List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

type MeHandler struct {
	getMe *account.GetMe
	logs  AuditLogLister
	log   *zap.Logger
}

func NewMeHandler(getMe *account.GetMe, logs AuditLogLister, log *zap.Logger) *MeHandler {
	return &MeHandler{getMe: getMe, logs: logs, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	res, err := h.getMe.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get me", err)
		return
	}

	httpresp.OK(c, dto.NewAccountView(res.User, res.ProfileID))
}

// AuditLogs lists the caller's own audit trail.
func (h *MeHandler) AuditLogs(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	page, limit := audit.ParsePage(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "50"))
	q := audit.Query{
		UserID: id.UserID,
		Action: c.Query("action"),
		Page:   page,
		Limit:  limit,
	}

	logs, total, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.log, "list audit logs", err)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
