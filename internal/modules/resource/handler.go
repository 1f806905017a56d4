package resource

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
	rg.GET("/resources", h.List)
	rg.GET("/resources/:id", h.GetByID)
	rg.GET("/resources/:id/maintenance", h.ListMaintenance)
}

func (h *Handler) RegisterManagerRoutes(rg *gin.RouterGroup) {
	rg.POST("/resources", h.Create)
	rg.PATCH("/resources/:id", h.Update)
	rg.DELETE("/resources/:id", h.Delete)
	rg.POST("/resources/:id/maintenance", h.ScheduleMaintenance)
	rg.DELETE("/resources/:id/maintenance/:mid", h.DeleteMaintenance)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Create(c.Request.Context(), c.GetInt64("tenant_id"), req)
	if err != nil {
		writeResourceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"resource": res})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), c.GetInt64("tenant_id"), id)
	if err != nil {
		writeResourceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"resource": res})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.List(c.Request.Context(), c.GetInt64("tenant_id"), c.Query("category"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list resources")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"resources": list})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Update(c.Request.Context(), c.GetInt64("tenant_id"), id, req)
	if err != nil {
		writeResourceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"resource": res})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("tenant_id"), id); err != nil {
		writeResourceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ScheduleMaintenance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date must be in YYYY-MM-DD format")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end_date must be in YYYY-MM-DD format")
		return
	}

	m, err := h.service.ScheduleMaintenance(c.Request.Context(), c.GetInt64("tenant_id"), id, start, end, req.Reason)
	if err != nil {
		writeResourceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"maintenance": m})
}

func (h *Handler) ListMaintenance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	list, err := h.service.ListMaintenance(c.Request.Context(), c.GetInt64("tenant_id"), id)
	if err != nil {
		writeResourceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"maintenance": list})
}

func (h *Handler) DeleteMaintenance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}
	mid, err := strconv.ParseInt(c.Param("mid"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid maintenance ID")
		return
	}

	if err := h.service.DeleteMaintenance(c.Request.Context(), c.GetInt64("tenant_id"), id, mid); err != nil {
		writeResourceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func writeResourceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid resource data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
