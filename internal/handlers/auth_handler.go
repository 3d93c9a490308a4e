package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nannyhub/babysitter-api/internal/dto"
	"github.com/nannyhub/babysitter-api/internal/httpresp"
	"github.com/nannyhub/babysitter-api/internal/models"
	"github.com/nannyhub/babysitter-api/internal/usecase/account"
)

type AuthHandler struct {
	register *account.Register
	login    *account.Login
	logout   *account.Logout
	log      *zap.Logger
}

func NewAuthHandler(
	register *account.Register,
	login *account.Login,
	logout *account.Logout,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		logout:   logout,
		log:      log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,max=100"`
	Password  string `json:"password" binding:"required"`
	Phone     string `json:"phone" binding:"max=20"`
	Address   string `json:"address" binding:"max=255"`
	City      string `json:"city" binding:"max=100"`
	Role      string `json:"role" binding:"required"`

	// sitters only
	HourlyRate      *decimal.Decimal `json:"hourly_rate"`
	Bio             string           `json:"bio"`
	YearsExperience int              `json:"years_experience"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	in := account.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		Role:      models.Role(req.Role),
	}
	if req.HourlyRate != nil {
		in.Sitter = &account.SitterDetails{
			HourlyRate:      *req.HourlyRate,
			Bio:             req.Bio,
			YearsExperience: req.YearsExperience,
		}
	}

	res, err := h.register.Execute(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, "register", err)
		return
	}

	httpresp.Created(c, dto.NewAuthResponse(res.Token.Token, res.Token.ExpiresAt, res.User, res.ProfileID))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, "login", err)
		return
	}

	httpresp.OK(c, dto.NewAuthResponse(res.Token.Token, res.Token.ExpiresAt, res.User, res.ProfileID))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	if err := h.logout.Execute(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "logout", err)
		return
	}

	c.Status(http.StatusNoContent)
}
