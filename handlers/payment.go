package handlers

import (
	"net/http"
	"time"

	"campsite/middleware"
	"campsite/models"
	"campsite/services/payment"
	"campsite/services/reservation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves the payment step: opening an attempt, reporting its
// progress, and stopping the poll when the payment screen goes away.
type PaymentHandler struct {
	Orch   *payment.Orchestrator
	Store  reservation.SessionStore
	Logger *zap.Logger

	// Poll pacing; zero values fall back to the orchestrator defaults.
	PollInterval    time.Duration
	PollMaxAttempts int
}

func NewPaymentHandler(orch *payment.Orchestrator, store reservation.SessionStore, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Orch: orch, Store: store, Logger: logger}
}

// Create handles POST /api/payments/:bookingID. A still-valid record for the
// booking is reused instead of opening a second attempt; either way the
// status poll is (re)started.
func (h *PaymentHandler) Create(c *gin.Context) {
	bookingID := c.Param("bookingID")
	var input struct {
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sessionID := middleware.SessionID(c)
	record, err := h.Orch.CreatePayment(c.Request.Context(), sessionID, bookingID, input.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}

	if !record.TransactionStatus.Terminal() {
		h.Orch.StartPolling(bookingID, payment.PollOptions{
			Interval:    h.PollInterval,
			MaxAttempts: h.PollMaxAttempts,
			SessionID:   sessionID,
			OnSuccess: func(rec *models.PaymentRecord) {
				h.Logger.Info("Payment settled", zap.String("booking", rec.OrderID))
			},
			OnExpired: func(rec *models.PaymentRecord) {
				h.Logger.Info("Payment window closed", zap.String("booking", rec.OrderID))
			},
			OnError: func(err error) {
				h.Logger.Warn("Payment poll reported an error", zap.Error(err))
			},
		})
	}

	c.JSON(http.StatusCreated, record)
}

// Status handles GET /api/payments/:bookingID. The answer carries the latest
// persisted record, whether a poll is live, and, once the payment settles,
// where the invoice lives.
func (h *PaymentHandler) Status(c *gin.Context) {
	bookingID := c.Param("bookingID")
	session, err := h.Store.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	pollingFor, polling := h.Orch.Polling()
	resp := gin.H{
		"payment": session.Payment,
		"polling": polling && pollingFor == bookingID,
	}
	if session.Payment != nil && session.Payment.OrderID == bookingID &&
		session.Payment.TransactionStatus == models.PaymentSuccess {
		resp["redirect"] = "/reservation/invoice/" + bookingID
	}
	c.JSON(http.StatusOK, resp)
}

// StopPolling handles DELETE /api/payments/polling. Leaving the payment
// screen must not leak a timer behind it.
func (h *PaymentHandler) StopPolling(c *gin.Context) {
	h.Orch.StopPolling()
	c.Status(http.StatusNoContent)
}
