package availability

import (
	"net/http"
	"strconv"
	"time"

	"bookhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service   *Service
	resources ResourceProvider
}

func NewHandler(service *Service, resources ResourceProvider) *Handler {
	return &Handler{service: service, resources: resources}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resources/:id/availability", h.CheckAvailability)
}

// CheckAvailability answers whether a slot is bookable and, if not, why.
// GET /resources/:id/availability?date=2025-11-05&start=09:00&end=10:00
func (h *Handler) CheckAvailability(c *gin.Context) {
	resourceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	start := c.Query("start")
	end := c.Query("end")
	tenantID := c.GetInt64("tenant_id")

	res, err := h.resources.GetByID(c.Request.Context(), tenantID, resourceID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}

	conflict, err := h.service.Check(c.Request.Context(), res, date, start, end, 0)
	if err != nil {
		if err == ErrInvalidInterval {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Availability check failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"resource_id": resourceID,
		"date":        c.Query("date"),
		"start":       start,
		"end":         end,
		"available":   conflict == ConflictNone,
		"conflict":    conflict,
	})
}
