package rules

import (
	"context"
	"net/http"
	"strconv"

	"bookhub/internal/domain"
	"bookhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type RuleStore interface {
	Create(ctx context.Context, rule *domain.BusinessRule) error
	Update(ctx context.Context, rule *domain.BusinessRule) error
	Delete(ctx context.Context, tenantID, id int64) error
	List(ctx context.Context, tenantID int64) ([]domain.BusinessRule, error)
}

type Handler struct {
	store RuleStore
}

func NewHandler(store RuleStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterManagerRoutes(rg *gin.RouterGroup) {
	rg.GET("/rules", h.List)
	rg.POST("/rules", h.Create)
	rg.PATCH("/rules/:id", h.Update)
	rg.DELETE("/rules/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context(), c.GetInt64("tenant_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list rules")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rules": list})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rule := &domain.BusinessRule{
		TenantID:    c.GetInt64("tenant_id"),
		Name:        req.Name,
		Field:       req.Field,
		Operator:    domain.RuleOperator(req.Operator),
		Value:       req.Value,
		Action:      domain.RuleAction(req.Action),
		ActionValue: req.ActionValue,
		Priority:    req.Priority,
		IsActive:    true,
	}
	if err := h.store.Create(c.Request.Context(), rule); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create rule")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"rule": rule})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid rule ID")
		return
	}

	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	tenantID := c.GetInt64("tenant_id")
	list, err := h.store.List(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load rule")
		return
	}
	var rule *domain.BusinessRule
	for i := range list {
		if list[i].ID == id {
			rule = &list[i]
			break
		}
	}
	if rule == nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Rule not found")
		return
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Value != nil {
		rule.Value = *req.Value
	}
	if req.ActionValue != nil {
		rule.ActionValue = *req.ActionValue
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := h.store.Update(c.Request.Context(), rule); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update rule")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rule": rule})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid rule ID")
		return
	}

	if err := h.store.Delete(c.Request.Context(), c.GetInt64("tenant_id"), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete rule")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
