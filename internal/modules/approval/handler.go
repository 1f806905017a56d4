package approval

import (
	"errors"
	"net/http"
	"strconv"

	"bookhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/:id/approvals", h.Chain)
}

func (h *Handler) RegisterManagerRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/approvals", h.Decide)
}

func (h *Handler) Chain(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	levels, err := h.service.Chain(c.Request.Context(), c.GetInt64("tenant_id"), bookingID)
	if err != nil {
		writeApprovalError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"approvals": levels})
}

func (h *Handler) Decide(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Decide(
		c.Request.Context(),
		c.GetInt64("tenant_id"),
		c.GetInt64("user_id"),
		bookingID,
		req.Level,
		*req.Approve,
		req.Comment,
	)
	if err != nil {
		writeApprovalError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func writeApprovalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid approval request")
	case errors.Is(err, ErrBookingState):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking is not awaiting approval")
	case errors.Is(err, ErrAlreadyDecided):
		response.Error(c, http.StatusConflict, "ALREADY_DECIDED", "Approval level already decided")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or approval level not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
