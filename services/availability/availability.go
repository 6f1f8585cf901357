// Package availability wraps the booking API's search and price-check calls
// behind input validation: an incomplete date range or empty tent set is
// rejected before any network round-trip.
package availability

import (
	"context"
	"time"

	"campsite/models"
	"campsite/services"

	"go.uber.org/zap"
)

// BookingAPI is the slice of the booking API client this service needs.
type BookingAPI interface {
	Availability(ctx context.Context, start, end time.Time, name string) ([]models.Category, error)
	CheckPrice(ctx context.Context, tentIDs []string, start, end time.Time) (*models.PriceQuote, error)
}

// Service exposes availability search and price checks for the booking flow.
type Service interface {
	Search(ctx context.Context, dateRange models.DateRange, category string) ([]models.Category, error)
	CheckPrice(ctx context.Context, tentIDs []string, dateRange models.DateRange) (*models.PriceQuote, error)
}

// DefaultAvailabilityService implements Service.
type DefaultAvailabilityService struct {
	API    BookingAPI
	Logger *zap.Logger
}

func NewAvailabilityService(api BookingAPI, logger *zap.Logger) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{API: api, Logger: logger}
}

// Search lists tent categories with per-tent status for the requested stay.
// Both bounds of the range must be present; otherwise the call fails without
// touching the network.
func (s *DefaultAvailabilityService) Search(ctx context.Context, dateRange models.DateRange, category string) ([]models.Category, error) {
	if !dateRange.Complete() {
		return nil, services.NewValidationError("select a date range")
	}

	categories, err := s.API.Availability(ctx, *dateRange.From, *dateRange.To, category)
	if err != nil {
		s.Logger.Warn("Availability search failed", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

// CheckPrice quotes the total for the current tent selection. Callers must
// treat any previous total as stale until the new quote arrives, and must
// reset the price to unknown (not zero) when this call fails.
func (s *DefaultAvailabilityService) CheckPrice(ctx context.Context, tentIDs []string, dateRange models.DateRange) (*models.PriceQuote, error) {
	if len(tentIDs) == 0 {
		return nil, services.NewValidationError("select at least one tent")
	}
	if !dateRange.Complete() {
		return nil, services.NewValidationError("select a date range")
	}

	quote, err := s.API.CheckPrice(ctx, tentIDs, *dateRange.From, *dateRange.To)
	if err != nil {
		s.Logger.Warn("Price check failed", zap.Error(err), zap.Strings("tents", tentIDs))
		return nil, err
	}
	return quote, nil
}
