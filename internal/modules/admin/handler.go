package admin

import (
	"errors"
	"net/http"
	"strconv"

	"bookhub/internal/domain"
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
	rg.POST("/tenants", h.CreateTenant)
	rg.GET("/tenants", h.ListTenants)
	rg.GET("/tenants/:id", h.GetTenant)
	rg.PATCH("/tenants/:id", h.UpdateTenant)
	rg.POST("/tenants/:id/suspend", h.SuspendTenant)
	rg.POST("/tenants/:id/activate", h.ActivateTenant)
	rg.GET("/users", h.ListUsers)
	rg.PUT("/users/:id/quota", h.SetUserQuota)
	rg.PUT("/users/:id/role", h.SetUserRole)
	rg.GET("/audit", h.AuditTrail)
}

func (h *Handler) CreateTenant(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.CreateTenant(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		writeAdminError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"tenant": t})
}

func (h *Handler) GetTenant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tenant ID")
		return
	}

	t, err := h.service.GetTenant(c.Request.Context(), id)
	if err != nil {
		writeAdminError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tenant": t})
}

func (h *Handler) ListTenants(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListTenants(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tenants")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tenants": list})
}

func (h *Handler) UpdateTenant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tenant ID")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateTenant(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		writeAdminError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tenant": t})
}

func (h *Handler) SuspendTenant(c *gin.Context) {
	h.setTenantStatus(c, domain.TenantSuspended)
}

func (h *Handler) ActivateTenant(c *gin.Context) {
	h.setTenantStatus(c, domain.TenantActive)
}

func (h *Handler) setTenantStatus(c *gin.Context, status domain.TenantStatus) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tenant ID")
		return
	}

	t, err := h.service.SetTenantStatus(c.Request.Context(), c.GetInt64("user_id"), id, status)
	if err != nil {
		writeAdminError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tenant": t})
}

func (h *Handler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListUsers(c.Request.Context(), c.GetInt64("tenant_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": list})
}

func (h *Handler) SetUserQuota(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req SetQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err = h.service.SetUserQuota(c.Request.Context(), c.GetInt64("tenant_id"), c.GetInt64("user_id"), id, req.MonthlyQuota)
	if err != nil {
		writeAdminError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) SetUserRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err = h.service.SetUserRole(c.Request.Context(), c.GetInt64("tenant_id"), c.GetInt64("user_id"), id, domain.UserRole(req.Role))
	if err != nil {
		writeAdminError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) AuditTrail(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.AuditTrail(c.Request.Context(), c.GetInt64("tenant_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list audit entries")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entries": list})
}

func writeAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, ErrSlugTaken):
		response.Error(c, http.StatusConflict, "SLUG_TAKEN", "Slug already in use")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
