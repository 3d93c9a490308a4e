package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nannyhub/babysitter-api/internal/auth"
	"github.com/nannyhub/babysitter-api/internal/dto"
	"github.com/nannyhub/babysitter-api/internal/httpresp"
	"github.com/nannyhub/babysitter-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create   *booking.CreateBooking
	list     *booking.ListBookingsForUser
	confirm  *booking.ConfirmBooking
	complete *booking.CompleteBooking
	cancel   *booking.CancelBooking
	log      *zap.Logger
}

func NewBookingHandler(
	create *booking.CreateBooking,
	list *booking.ListBookingsForUser,
	confirm *booking.ConfirmBooking,
	complete *booking.CompleteBooking,
	cancel *booking.CancelBooking,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		create:   create,
		list:     list,
		confirm:  confirm,
		complete: complete,
		cancel:   cancel,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Start and End must carry an explicit offset (RFC 3339).
type CreateBookingRequest struct {
	SitterID uint      `json:"sitter_id" binding:"required"`
	Start    time.Time `json:"start" binding:"required"`
	End      time.Time `json:"end" binding:"required"`
	Note     *string   `json:"note"`
}

// ======================================================
// CREATE / LIST
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	view, err := h.create.Execute(c.Request.Context(), booking.CreateBookingInput{
		Caller:          who,
		SitterProfileID: req.SitterID,
		Start:           req.Start,
		End:             req.End,
		Note:            req.Note,
	})
	if err != nil {
		respondError(c, h.log, "create booking", err)
		return
	}

	httpresp.Created(c, view)
}

func (h *BookingHandler) ListForUser(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	userID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	list, err := h.list.Execute(c.Request.Context(), who, userID)
	if err != nil {
		respondError(c, h.log, "list bookings", err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// TRANSITIONS
// ======================================================

type transitionFunc func(c *gin.Context, who auth.Identity, id uint) (*dto.BookingView, error)

func (h *BookingHandler) transition(op string, fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, ok := caller(c)
		if !ok {
			return
		}
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}

		view, err := fn(c, who, id)
		if err != nil {
			respondError(c, h.log, op, err)
			return
		}

		httpresp.OK(c, view)
	}
}

func (h *BookingHandler) Confirm() gin.HandlerFunc {
	return h.transition("confirm booking", func(c *gin.Context, who auth.Identity, id uint) (*dto.BookingView, error) {
		return h.confirm.Execute(c.Request.Context(), who, id)
	})
}

func (h *BookingHandler) Complete() gin.HandlerFunc {
	return h.transition("complete booking", func(c *gin.Context, who auth.Identity, id uint) (*dto.BookingView, error) {
		return h.complete.Execute(c.Request.Context(), who, id)
	})
}

func (h *BookingHandler) Cancel() gin.HandlerFunc {
	return h.transition("cancel booking", func(c *gin.Context, who auth.Identity, id uint) (*dto.BookingView, error) {
		return h.cancel.Execute(c.Request.Context(), who, id)
	})
}
