package bookingapi

import (
	"context"
	"net/http"
	"net/url"

	"campsite/models"
)

// The refund and reschedule endpoints are structurally identical:
// POST /<kind>s/request, GET /<kind>s/validate?token, POST /<kind>s.

// RequestRefund looks up a booking by its human-entered code and asks the
// server to dispatch an OTP to the guest.
func (c *Client) RequestRefund(ctx context.Context, bookingCode string) (*models.OTPDispatch, error) {
	return c.requestAftersales(ctx, "/refunds/request", bookingCode)
}

// ValidateRefund exchanges the OTP for a refund verification record.
func (c *Client) ValidateRefund(ctx context.Context, token string) (*models.AftersalesValidation, error) {
	return c.validateAftersales(ctx, "/refunds/validate", token)
}

// CreateRefund submits the refund using the verification token.
func (c *Client) CreateRefund(ctx context.Context, sub models.RefundSubmission) (*models.RefundRecord, error) {
	var record models.RefundRecord
	if err := c.do(ctx, http.MethodPost, "/refunds", nil, sub, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// RequestReschedule mirrors RequestRefund for reschedules.
func (c *Client) RequestReschedule(ctx context.Context, bookingCode string) (*models.OTPDispatch, error) {
	return c.requestAftersales(ctx, "/reschedules/request", bookingCode)
}

// ValidateReschedule exchanges the OTP for a reschedule verification record.
func (c *Client) ValidateReschedule(ctx context.Context, token string) (*models.AftersalesValidation, error) {
	return c.validateAftersales(ctx, "/reschedules/validate", token)
}

// CreateReschedule submits the reschedule using the verification token.
func (c *Client) CreateReschedule(ctx context.Context, sub models.RescheduleSubmission) (*models.RescheduleRecord, error) {
	var record models.RescheduleRecord
	if err := c.do(ctx, http.MethodPost, "/reschedules", nil, sub, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) requestAftersales(ctx context.Context, path, bookingCode string) (*models.OTPDispatch, error) {
	body := struct {
		BookingID string `json:"booking_id"`
	}{BookingID: bookingCode}

	var dispatch models.OTPDispatch
	if err := c.do(ctx, http.MethodPost, path, nil, body, &dispatch); err != nil {
		return nil, err
	}
	return &dispatch, nil
}

func (c *Client) validateAftersales(ctx context.Context, path, token string) (*models.AftersalesValidation, error) {
	query := url.Values{}
	query.Set("token", token)

	var validation models.AftersalesValidation
	if err := c.do(ctx, http.MethodGet, path, query, nil, &validation); err != nil {
		return nil, err
	}
	return &validation, nil
}
