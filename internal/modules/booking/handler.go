package booking

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
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings", h.ListMine)
	rg.GET("/bookings/:id", h.GetByID)
	rg.POST("/bookings/:id/cancel", h.Cancel)
}

// RegisterManagerRoutes mounts endpoints for tenant managers.
func (h *Handler) RegisterManagerRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/pending", h.ListPending)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(
		c.Request.Context(),
		c.GetInt64("tenant_id"),
		c.GetInt64("user_id"),
		c.GetString("role"),
		req,
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), c.GetInt64("tenant_id"), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	if b.UserID != c.GetInt64("user_id") && c.GetString("role") == "member" {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your booking")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListMine(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListMine(c.Request.Context(), c.GetInt64("tenant_id"), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) ListPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListPending(c.Request.Context(), c.GetInt64("tenant_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list pending bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Cancel(
		c.Request.Context(),
		c.GetInt64("tenant_id"),
		id,
		c.GetInt64("user_id"),
		c.GetString("role"),
		req.Reason,
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// writeBookingError maps service errors onto the response envelope:
// validation, conflict (with reason), policy refusals and not-found each get
// their own category.
func writeBookingError(c *gin.Context, err error) {
	var conflictErr *ConflictError
	var ruleErr *RuleRejectionError

	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.As(err, &conflictErr):
		response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT",
			"Slot is not available", gin.H{"reason": conflictErr.Reason})
	case errors.As(err, &ruleErr):
		response.ErrorWithDetails(c, http.StatusConflict, "RULE_REJECTED",
			"Booking rejected by a business rule", gin.H{"rule": ruleErr.Rule})
	case errors.Is(err, ErrQuotaExceeded):
		response.Error(c, http.StatusForbidden, "NOT_PERMITTED", "Monthly booking quota reached")
	case errors.Is(err, ErrCancellationWindow):
		response.Error(c, http.StatusForbidden, "NOT_PERMITTED", "Cancellation window has passed")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking status does not allow this operation")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
