package handlers

import (
	"net/http"
	"time"

	"campsite/models"
	"campsite/services/availability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves the search step of the booking flow.
type AvailabilityHandler struct {
	Svc    availability.Service
	Logger *zap.Logger
}

func NewAvailabilityHandler(svc availability.Service, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc, Logger: logger}
}

// parseAPIDate leaves the bound nil when the parameter is absent or garbled;
// the service decides whether the range is usable.
func parseAPIDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(models.APIDateFormat, value)
	if err != nil {
		return nil
	}
	return &t
}

// Search handles GET /api/reservations/availability.
func (h *AvailabilityHandler) Search(c *gin.Context) {
	dateRange := models.DateRange{
		From: parseAPIDate(c.Query("start_date")),
		To:   parseAPIDate(c.Query("end_date")),
	}

	categories, err := h.Svc.Search(c.Request.Context(), dateRange, c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CheckPrice handles POST /api/reservations/price.
func (h *AvailabilityHandler) CheckPrice(c *gin.Context) {
	var input struct {
		TentIDs   []string `json:"tent_id"`
		StartDate string   `json:"start_date"`
		EndDate   string   `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	dateRange := models.DateRange{
		From: parseAPIDate(input.StartDate),
		To:   parseAPIDate(input.EndDate),
	}
	quote, err := h.Svc.CheckPrice(c.Request.Context(), input.TentIDs, dateRange)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
