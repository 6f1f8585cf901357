package handlers

import (
	"net/http"

	"campsite/middleware"
	"campsite/models"
	"campsite/services/payment"
	"campsite/services/reservation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler serves the multi-step reservation flow: selection,
// personal info, and booking creation, all keyed by the browsing session.
type ReservationHandler struct {
	Svc    reservation.Service
	Store  reservation.SessionStore
	Orch   *payment.Orchestrator
	Logger *zap.Logger
}

func NewReservationHandler(svc reservation.Service, store reservation.SessionStore, orch *payment.Orchestrator, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Svc: svc, Store: store, Orch: orch, Logger: logger}
}

// GetSession handles GET /api/reservations/session.
func (h *ReservationHandler) GetSession(c *gin.Context) {
	session, err := h.Store.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Select handles PUT /api/reservations/session/selection. Every change to the
// tent set or the stay re-quotes the price; the answer carries the refreshed
// snapshot.
func (h *ReservationHandler) Select(c *gin.Context) {
	var input struct {
		Tents     []models.Tent `json:"tents"`
		StartDate string        `json:"start_date"`
		EndDate   string        `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	dateRange := models.DateRange{
		From: parseAPIDate(input.StartDate),
		To:   parseAPIDate(input.EndDate),
	}
	session, err := h.Svc.Select(c.Request.Context(), middleware.SessionID(c), input.Tents, dateRange)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SubmitPersonalInfo handles PUT /api/reservations/session/personal-info.
func (h *ReservationHandler) SubmitPersonalInfo(c *gin.Context) {
	var info models.PersonalInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.SubmitPersonalInfo(c.Request.Context(), middleware.SessionID(c), info); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_submitted_personal_info": true})
}

// Create handles POST /api/reservations: the snapshot becomes a booking.
func (h *ReservationHandler) Create(c *gin.Context) {
	resp, err := h.Svc.CreateReservation(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ClearSession handles DELETE /api/reservations/session: the fresh-attempt
// reset. Polling stops and every slice of the snapshot is cleared.
func (h *ReservationHandler) ClearSession(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if err := h.Orch.ResetPayment(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.Svc.StartOver(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}
	h.Logger.Info("Reservation session cleared", zap.String("session", sessionID))
	c.Status(http.StatusNoContent)
}
