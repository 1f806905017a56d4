package waitinglist

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	rg.POST("/waiting-list", h.Join)
	rg.GET("/waiting-list", h.ListMine)
	rg.POST("/waiting-list/:id/cancel", h.Cancel)
}

func (h *Handler) RegisterManagerRoutes(rg *gin.RouterGroup) {
	rg.GET("/resources/:id/waiting-list", h.ListByResource)
}

func (h *Handler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date must be in YYYY-MM-DD format")
		return
	}

	e, err := h.service.Join(
		c.Request.Context(),
		c.GetInt64("tenant_id"),
		c.GetInt64("user_id"),
		req.ResourceID,
		date,
		req.StartTime,
		req.EndTime,
		req.Priority,
	)
	if err != nil {
		writeWaitingError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"entry": e})
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), c.GetInt64("tenant_id"), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list waiting list entries")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entries": list})
}

func (h *Handler) ListByResource(c *gin.Context) {
	resourceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	list, err := h.service.ListByResource(c.Request.Context(), c.GetInt64("tenant_id"), resourceID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list waiting list entries")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entries": list})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid entry ID")
		return
	}

	if err := h.service.CancelEntry(c.Request.Context(), c.GetInt64("tenant_id"), c.GetInt64("user_id"), id); err != nil {
		writeWaitingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func writeWaitingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid waiting list request")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Waiting list entry not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
