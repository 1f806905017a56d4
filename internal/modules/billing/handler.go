package billing

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
	rg.GET("/billing/plans", h.ListPlans)
}

// RegisterAdminRoutes mounts tenant-admin billing management.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/billing/plans", h.CreatePlan)
	rg.POST("/billing/subscribe", h.Subscribe)
	rg.GET("/billing/subscription", h.ActiveSubscription)
	rg.POST("/billing/subscriptions/:id/cancel", h.CancelSubscription)
	rg.GET("/billing/invoices", h.ListInvoices)
	rg.POST("/billing/invoices/:id/pay", h.MarkInvoicePaid)
}

func (h *Handler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.CreatePlan(c.Request.Context(), req)
	if err != nil {
		writeBillingError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"plan": p})
}

func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListPlans(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list plans")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"plans": plans})
}

func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sub, inv, err := h.service.Subscribe(c.Request.Context(), c.GetInt64("tenant_id"), c.GetInt64("user_id"), req)
	if err != nil {
		writeBillingError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"subscription": sub, "invoice": inv})
}

func (h *Handler) ActiveSubscription(c *gin.Context) {
	sub, err := h.service.ActiveSubscription(c.Request.Context(), c.GetInt64("tenant_id"))
	if err != nil {
		writeBillingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"subscription": sub})
}

func (h *Handler) CancelSubscription(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid subscription ID")
		return
	}

	if err := h.service.CancelSubscription(c.Request.Context(), c.GetInt64("tenant_id"), c.GetInt64("user_id"), id); err != nil {
		writeBillingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) ListInvoices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListInvoices(c.Request.Context(), c.GetInt64("tenant_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list invoices")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoices": list})
}

func (h *Handler) MarkInvoicePaid(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return
	}

	if err := h.service.MarkInvoicePaid(c.Request.Context(), c.GetInt64("tenant_id"), c.GetInt64("user_id"), id); err != nil {
		writeBillingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paid": true})
}

func writeBillingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid billing request")
	case errors.Is(err, ErrPlanNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Plan not found")
	case errors.Is(err, ErrNoSubscription):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "No active subscription")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
