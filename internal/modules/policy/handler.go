package policy

import (
	"net/http"
	"strconv"

	"bookhub/internal/domain"
	"bookhub/internal/pkg/response"
	"bookhub/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts manager-only policy administration.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/policies", h.List)
	rg.POST("/policies", h.Create)
	rg.DELETE("/policies/:id", h.Delete)
}

type createPolicyRequest struct {
	ResourceID       *int64  `json:"resource_id"`
	HoursBefore      int     `json:"hours_before" binding:"gte=0"`
	PenaltyType      string  `json:"penalty_type" binding:"required"`
	PenaltyAmount    float64 `json:"penalty_amount"`
	RefundPercentage float64 `json:"refund_percentage"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p := &domain.CancellationPolicy{
		TenantID:         c.GetInt64("tenant_id"),
		ResourceID:       req.ResourceID,
		HoursBefore:      req.HoursBefore,
		PenaltyType:      domain.PenaltyType(req.PenaltyType),
		PenaltyAmount:    req.PenaltyAmount,
		RefundPercentage: req.RefundPercentage,
	}
	if fields := validator.Validate(p); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cancellation policy", fields)
		return
	}

	if err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), p); err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cancellation policy")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create policy")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"policy": p})
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.GetInt64("tenant_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list policies")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"policies": list})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid policy ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("tenant_id"), c.GetInt64("user_id"), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete policy")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
