package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nannyhub/babysitter-api/internal/httpresp"
	"github.com/nannyhub/babysitter-api/internal/usecase/review"
)

type ReviewHandler struct {
	create    *review.CreateReview
	canReview *review.CanReview
	forSitter *review.ListReviewsForSitter
	byAuthor  *review.ListReviewsForUser
	log       *zap.Logger
}

func NewReviewHandler(
	create *review.CreateReview,
	canReview *review.CanReview,
	forSitter *review.ListReviewsForSitter,
	byAuthor *review.ListReviewsForUser,
	log *zap.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		create:    create,
		canReview: canReview,
		forSitter: forSitter,
		byAuthor:  byAuthor,
		log:       log,
	}
}

// Rating is a pointer so a missing field is told apart from an out of
// range value.
type CreateReviewRequest struct {
	BookingID uint    `json:"booking_id" binding:"required"`
	Rating    *int    `json:"rating" binding:"required"`
	Comment   *string `json:"comment" binding:"omitempty,max=2000"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	receipt, err := h.create.Execute(c.Request.Context(), review.CreateReviewInput{
		Caller:    who,
		BookingID: req.BookingID,
		Rating:    *req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, h.log, "create review", err)
		return
	}

	httpresp.Created(c, receipt)
}

func (h *ReviewHandler) CanReview(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	bookingID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	allowed, err := h.canReview.Execute(c.Request.Context(), who, bookingID)
	if err != nil {
		respondError(c, h.log, "can review", err)
		return
	}

	httpresp.OK(c, allowed)
}

// ListForSitter is public.
func (h *ReviewHandler) ListForSitter(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	list, err := h.forSitter.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "list sitter reviews", err)
		return
	}

	httpresp.List(c, list)
}

func (h *ReviewHandler) ListForUser(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	userID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	list, err := h.byAuthor.Execute(c.Request.Context(), who, userID)
	if err != nil {
		respondError(c, h.log, "list authored reviews", err)
		return
	}

	httpresp.List(c, list)
}
