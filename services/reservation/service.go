package reservation

import (
	"context"

	"campsite/bookingapi"
	"campsite/models"
	"campsite/services"

	"go.uber.org/zap"
)

// PriceChecker recomputes the total for the current selection. Satisfied by
// availability.DefaultAvailabilityService.
type PriceChecker interface {
	CheckPrice(ctx context.Context, tentIDs []string, dateRange models.DateRange) (*models.PriceQuote, error)
}

// ReservationAPI is the slice of the booking API client this service needs.
type ReservationAPI interface {
	CreateReservation(ctx context.Context, req bookingapi.ReservationRequest) (*models.BookingResponse, error)
}

// Service drives the reservation flow: selection with automatic price
// rechecks, personal info submission, and booking creation.
type Service interface {
	Select(ctx context.Context, sessionID string, tents []models.Tent, dateRange models.DateRange) (*models.ReservationSession, error)
	SubmitPersonalInfo(ctx context.Context, sessionID string, info models.PersonalInfo) error
	CreateReservation(ctx context.Context, sessionID string) (*models.BookingResponse, error)
	StartOver(ctx context.Context, sessionID string) error
}

// DefaultReservationService implements Service.
type DefaultReservationService struct {
	Store   SessionStore
	Pricing PriceChecker
	API     ReservationAPI
	Logger  *zap.Logger
}

func NewReservationService(store SessionStore, pricing PriceChecker, api ReservationAPI, logger *zap.Logger) *DefaultReservationService {
	return &DefaultReservationService{Store: store, Pricing: pricing, API: api, Logger: logger}
}

// Select replaces the tent selection and stay dates, then rechecks prices.
// The snapshot is written first with the total reset to unknown, so no page
// ever renders a total that belongs to a previous selection. Each selection
// bumps a sequence token; a price result is applied only while its token is
// still the newest, so a slow response for an older selection is dropped.
func (s *DefaultReservationService) Select(ctx context.Context, sessionID string, tents []models.Tent, dateRange models.DateRange) (*models.ReservationSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var seq uint64 = 1
	if session.ReservationData != nil {
		seq = session.ReservationData.PriceSeq + 1
	}

	// Changing the selection invalidates any booking created for the old one.
	if session.BookingResponse != nil {
		if err := s.Store.ClearBookingResponse(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	for i := range tents {
		tents[i].APIPrice = nil
	}
	data := models.ReservationData{
		Tents:     tents,
		DateRange: dateRange,
		PriceSeq:  seq,
	}
	if err := s.Store.SetReservationData(ctx, sessionID, data); err != nil {
		return nil, err
	}

	quote, err := s.Pricing.CheckPrice(ctx, data.TentIDs(), dateRange)
	if err != nil {
		if services.IsValidation(err) {
			// Partial selection: nothing to quote yet, totals stay unknown.
			return s.Store.Get(ctx, sessionID)
		}
		// Price stays unknown rather than silently wrong.
		s.Logger.Warn("Price recheck failed, totals left unknown",
			zap.String("session", sessionID), zap.Error(err))
		return nil, err
	}

	return s.applyQuote(ctx, sessionID, seq, quote)
}

// applyQuote writes the quote into the snapshot unless a newer selection has
// been made since the check was issued.
func (s *DefaultReservationService) applyQuote(ctx context.Context, sessionID string, seq uint64, quote *models.PriceQuote) (*models.ReservationSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ReservationData == nil || session.ReservationData.PriceSeq != seq {
		s.Logger.Debug("Dropping stale price quote",
			zap.String("session", sessionID), zap.Uint64("seq", seq))
		return session, nil
	}

	byID := make(map[string]int, len(quote.Tents))
	for _, line := range quote.Tents {
		byID[line.ID] = line.Price
	}
	data := *session.ReservationData
	for i := range data.Tents {
		if price, ok := byID[data.Tents[i].ID]; ok {
			p := price
			data.Tents[i].APIPrice = &p
		}
	}
	total := quote.TotalPrice
	data.TotalPrice = &total

	if err := s.Store.SetReservationData(ctx, sessionID, data); err != nil {
		return nil, err
	}
	session.ReservationData = &data
	return session, nil
}

// SubmitPersonalInfo stores the guest's contact details and unlocks the
// confirmation step. Both consents are mandatory.
func (s *DefaultReservationService) SubmitPersonalInfo(ctx context.Context, sessionID string, info models.PersonalInfo) error {
	if !info.AgreedToTerms || !info.AgreedToPolicy {
		return services.NewValidationError("you must accept the terms and the privacy policy")
	}
	return s.Store.SetPersonalInfo(ctx, sessionID, info)
}

// CreateReservation turns the session snapshot into a booking. A booking is
// created at most once per attempt; a second call returns the existing one.
func (s *DefaultReservationService) CreateReservation(ctx context.Context, sessionID string) (*models.BookingResponse, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.BookingResponse != nil {
		return session.BookingResponse, nil
	}
	if session.ReservationData == nil || len(session.ReservationData.Tents) == 0 {
		return nil, services.NewValidationError("select at least one tent before booking")
	}
	if !session.ReservationData.DateRange.Complete() {
		return nil, services.NewValidationError("select a date range before booking")
	}
	if !session.HasSubmittedPersonalInfo || session.PersonalInfo == nil {
		return nil, services.NewValidationError("fill in your personal information before booking")
	}

	data := session.ReservationData
	info := session.PersonalInfo
	resp, err := s.API.CreateReservation(ctx, bookingapi.ReservationRequest{
		Name:      info.Name,
		Email:     info.Email,
		Phone:     info.Phone,
		Address:   info.Address,
		TentIDs:   data.TentIDs(),
		StartDate: data.DateRange.From.Format(models.APIDateFormat),
		EndDate:   data.DateRange.To.Format(models.APIDateFormat),
	})
	if err != nil {
		return nil, err
	}

	if err := s.Store.SetBookingResponse(ctx, sessionID, *resp); err != nil {
		return nil, err
	}
	s.Logger.Info("Reservation created",
		zap.String("session", sessionID), zap.String("booking", resp.Booking.ID))
	return resp, nil
}

// StartOver clears every slice of the attempt: tents and prices, guest info,
// booking response, and payment data.
func (s *DefaultReservationService) StartOver(ctx context.Context, sessionID string) error {
	if err := s.Store.ClearReservationData(ctx, sessionID); err != nil {
		return err
	}
	if err := s.Store.ClearPersonalInfo(ctx, sessionID); err != nil {
		return err
	}
	if err := s.Store.ClearPaymentData(ctx, sessionID); err != nil {
		return err
	}
	return s.Store.ClearBookingResponse(ctx, sessionID)
}
