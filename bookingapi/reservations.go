package bookingapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"campsite/models"
)

// Availability lists tent categories with per-tent status for a stay.
// name optionally filters by category name.
func (c *Client) Availability(ctx context.Context, start, end time.Time, name string) ([]models.Category, error) {
	query := url.Values{}
	query.Set("start_date", start.Format(models.APIDateFormat))
	query.Set("end_date", end.Format(models.APIDateFormat))
	if name != "" {
		query.Set("name", name)
	}

	var out struct {
		Categories []models.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/reservations/availability", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// CheckPrice quotes the total for a tent set over a date range.
func (c *Client) CheckPrice(ctx context.Context, tentIDs []string, start, end time.Time) (*models.PriceQuote, error) {
	body := struct {
		TentIDs   []string `json:"tent_id"`
		StartDate string   `json:"start_date"`
		EndDate   string   `json:"end_date"`
	}{
		TentIDs:   tentIDs,
		StartDate: start.Format(models.APIDateFormat),
		EndDate:   end.Format(models.APIDateFormat),
	}

	var quote models.PriceQuote
	if err := c.do(ctx, http.MethodPost, "/reservations/price", nil, body, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// ReservationRequest is the payload for creating a booking.
type ReservationRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	TentIDs   []string `json:"tent_id"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
}

// CreateReservation books the selected tents for the guest.
func (c *Client) CreateReservation(ctx context.Context, req ReservationRequest) (*models.BookingResponse, error) {
	var resp models.BookingResponse
	if err := c.do(ctx, http.MethodPost, "/reservations", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
