package handlers

import (
	"net/http"

	"campsite/models"
	"campsite/services/aftersales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RefundHandler serves the self-service refund flow.
type RefundHandler struct {
	Flow   *aftersales.RefundFlow
	Logger *zap.Logger
}

func NewRefundHandler(flow *aftersales.RefundFlow, logger *zap.Logger) *RefundHandler {
	return &RefundHandler{Flow: flow, Logger: logger}
}

type aftersalesRequestInput struct {
	BookingCode string `json:"booking_code" binding:"required"`
}

// Request handles POST /api/refunds/request.
func (h *RefundHandler) Request(c *gin.Context) {
	var input aftersalesRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	status, err := h.Flow.Request(c.Request.Context(), input.BookingCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Validate handles GET /api/refunds/validate?token=...
func (h *RefundHandler) Validate(c *gin.Context) {
	validation, err := h.Flow.Validate(c.Request.Context(), c.Query("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, validation)
}

// Create handles POST /api/refunds.
func (h *RefundHandler) Create(c *gin.Context) {
	var sub models.RefundSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	record, err := h.Flow.Create(c.Request.Context(), sub)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// RescheduleHandler serves the self-service reschedule flow.
type RescheduleHandler struct {
	Flow   *aftersales.RescheduleFlow
	Logger *zap.Logger
}

func NewRescheduleHandler(flow *aftersales.RescheduleFlow, logger *zap.Logger) *RescheduleHandler {
	return &RescheduleHandler{Flow: flow, Logger: logger}
}

// Request handles POST /api/reschedules/request.
func (h *RescheduleHandler) Request(c *gin.Context) {
	var input aftersalesRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	status, err := h.Flow.Request(c.Request.Context(), input.BookingCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Validate handles GET /api/reschedules/validate?token=...
func (h *RescheduleHandler) Validate(c *gin.Context) {
	validation, err := h.Flow.Validate(c.Request.Context(), c.Query("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, validation)
}

// Create handles POST /api/reschedules.
func (h *RescheduleHandler) Create(c *gin.Context) {
	var sub models.RescheduleSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	record, err := h.Flow.Create(c.Request.Context(), sub)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}
