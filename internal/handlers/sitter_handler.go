package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domain "github.com/nannyhub/babysitter-api/internal/domain/account"
	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/httpresp"
	"github.com/nannyhub/babysitter-api/internal/usecase/sitter"
)

// ======================================================
// HANDLER
// ======================================================

type SitterHandler struct {
	list          *sitter.ListSitters
	get           *sitter.GetSitter
	setAvailable  *sitter.SetAvailability
	updateProfile *sitter.UpdateProfile
	uploadPhoto   *sitter.UploadPhoto
	photoMaxBytes int64
	log           *zap.Logger
}

func NewSitterHandler(
	list *sitter.ListSitters,
	get *sitter.GetSitter,
	setAvailable *sitter.SetAvailability,
	updateProfile *sitter.UpdateProfile,
	uploadPhoto *sitter.UploadPhoto,
	photoMaxBytes int64,
	log *zap.Logger,
) *SitterHandler {
	return &SitterHandler{
		list:          list,
		get:           get,
		setAvailable:  setAvailable,
		updateProfile: updateProfile,
		uploadPhoto:   uploadPhoto,
		photoMaxBytes: photoMaxBytes,
		log:           log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SlotRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SetAvailabilityRequest struct {
	Slots []SlotRequest `json:"slots"`
}

type UpdateProfileRequest struct {
	FirstName       *string          `json:"first_name" binding:"omitempty,max=50"`
	LastName        *string          `json:"last_name" binding:"omitempty,max=50"`
	Phone           *string          `json:"phone" binding:"omitempty,max=20"`
	City            *string          `json:"city" binding:"omitempty,max=100"`
	Bio             *string          `json:"bio"`
	YearsExperience *int             `json:"years_experience"`
	HourlyRate      *decimal.Decimal `json:"hourly_rate"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *SitterHandler) List(c *gin.Context) {
	weekday := 0
	if raw := c.Query("weekday"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_weekday", "weekday must be 1-7")
			return
		}
		weekday = v
	}

	list, err := h.list.Execute(c.Request.Context(), c.Query("city"), weekday)
	if err != nil {
		respondError(c, h.log, "list sitters", err)
		return
	}

	httpresp.List(c, list)
}

func (h *SitterHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	s, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get sitter", err)
		return
	}

	httpresp.OK(c, s)
}

// ======================================================
// OWNER
// ======================================================

func (h *SitterHandler) SetAvailability(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	slots := make([]domain.Slot, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, domain.Slot{Weekday: s.Weekday, StartTime: s.StartTime, EndTime: s.EndTime})
	}

	view, err := h.setAvailable.Execute(c.Request.Context(), who, id, slots)
	if err != nil {
		respondError(c, h.log, "set availability", err)
		return
	}

	httpresp.OK(c, view)
}

func (h *SitterHandler) UpdateProfile(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	view, err := h.updateProfile.Execute(c.Request.Context(), who, id, sitter.UpdateProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		City:            req.City,
		Bio:             req.Bio,
		YearsExperience: req.YearsExperience,
		HourlyRate:      req.HourlyRate,
	})
	if err != nil {
		respondError(c, h.log, "update profile", err)
		return
	}

	httpresp.OK(c, view)
}

// UploadPhoto expects a multipart form with a "photo" file part.
func (h *SitterHandler) UploadPhoto(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.photoMaxBytes)

	fh, err := c.FormFile("photo")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			httperr.Write(c, http.StatusRequestEntityTooLarge, "photo_too_large", "photo exceeds the upload limit")
			return
		}
		httperr.BadRequest(c, "missing_photo", "multipart field photo is required")
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, h.log, "open photo", err)
		return
	}
	defer f.Close()

	view, err := h.uploadPhoto.Execute(c.Request.Context(), who, id, f)
	if err != nil {
		respondError(c, h.log, "upload photo", err)
		return
	}

	httpresp.OK(c, view)
}
