package bookingapi

import (
	"context"
	"net/http"

	"campsite/models"
)

// CreatePayment opens a payment attempt for a booking with the chosen method
// (e.g. "qris", "va_bca").
func (c *Client) CreatePayment(ctx context.Context, bookingID, method string) (*models.PaymentRecord, error) {
	body := struct {
		PaymentMethod string `json:"payment_method"`
	}{PaymentMethod: method}

	var record models.PaymentRecord
	if err := c.do(ctx, http.MethodPost, "/payments/"+bookingID, nil, body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// PaymentStatus fetches the current state of the booking's payment attempt.
func (c *Client) PaymentStatus(ctx context.Context, bookingID string) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	if err := c.do(ctx, http.MethodGet, "/payments/"+bookingID, nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
