// Package aftersales implements the refund and reschedule flows. Both are the
// same two-phase machine: request by booking code (the server dispatches an
// OTP out-of-band), exchange the OTP for a single-use verification token,
// then submit the action with that token.
package aftersales

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"campsite/bookingapi"
	"campsite/database"
	"campsite/models"
	"campsite/services"

	"go.uber.org/zap"
)

// Flow states surfaced to the UI.
const (
	StateOTPSent    = "otp_sent"
	StateProcessing = "processing"
	StateVerified   = "verified"
	StateSubmitted  = "submitted"
)

// codeBookingNotConfirmed marks a booking that exists but is not yet eligible
// (status other than confirmed). It renders as a status card, not an error.
const codeBookingNotConfirmed = "booking_not_confirmed"

// errorDescriptions maps the API's error codes to user-readable messages.
// Unmapped codes fall back to the server's own description.
var errorDescriptions = map[string]string{
	"booking_not_found":     "We couldn't find a booking with that code. Check the code on your invoice and try again.",
	"booking_window_closed": "This booking can no longer be changed. Contact us if you think this is a mistake.",
	"otp_invalid":           "That verification code is incorrect. Check the latest message we sent you.",
	"otp_expired":           "That verification code has expired. Request a new one to continue.",
	"token_used":            "This request was already submitted. Each verification can only be used once.",
	"request_exists":        "A request for this booking is already being processed.",
}

// RequestStatus is the outcome of the request phase.
type RequestStatus struct {
	State     string    `json:"state"`
	BookingID string    `json:"booking_id"`
	SentTo    string    `json:"sent_to,omitempty"`
	ExpiredAt time.Time `json:"expired_at,omitempty"`
}

// Flow carries the state shared by both kinds: which snapshot store holds
// the verification records and how long they live.
type Flow struct {
	Kind   string
	KV     database.SnapshotKV
	Prefix string
	TTL    time.Duration
	Logger *zap.Logger
}

// describe rewrites an API error through the code table so the UI always has
// something human to show.
func (f *Flow) describe(err error) error {
	var apiErr *bookingapi.APIError
	if errors.As(err, &apiErr) {
		if msg, ok := errorDescriptions[apiErr.Code]; ok {
			return &bookingapi.APIError{
				StatusCode:  apiErr.StatusCode,
				Code:        apiErr.Code,
				Description: msg,
			}
		}
	}
	return err
}

// requestStatus folds the not-yet-eligible answer into a renderable state.
func (f *Flow) requestStatus(dispatch *models.OTPDispatch, err error) (*RequestStatus, error) {
	if err != nil {
		var apiErr *bookingapi.APIError
		if errors.As(err, &apiErr) && apiErr.Code == codeBookingNotConfirmed {
			return &RequestStatus{State: StateProcessing}, nil
		}
		return nil, f.describe(err)
	}
	return &RequestStatus{
		State:     StateOTPSent,
		BookingID: dispatch.BookingID,
		SentTo:    dispatch.SentTo,
		ExpiredAt: dispatch.ExpiredAt,
	}, nil
}

// saveValidation persists the verification record keyed by booking id. The
// refund token is never shared with the reservation session store.
func (f *Flow) saveValidation(ctx context.Context, v *models.AftersalesValidation) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return f.KV.Set(ctx, f.Prefix+v.BookingID, raw, f.TTL)
}

// findByToken locates a stored, still-usable verification for the token.
// Nothing found means the token was consumed or never validated here.
func (f *Flow) findByToken(ctx context.Context, token string) (*models.AftersalesValidation, error) {
	keys, err := f.KV.Keys(ctx, f.Prefix+"*")
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		raw, err := f.KV.Get(ctx, key)
		if err != nil {
			continue
		}
		var v models.AftersalesValidation
		if err := json.Unmarshal(raw, &v); err != nil {
			f.Logger.Warn("Corrupted verification snapshot, skipping",
				zap.String("key", key), zap.Error(err))
			continue
		}
		if v.Token != token {
			continue
		}
		if v.Used || !v.ExpiredAt.After(time.Now()) {
			_ = f.KV.Del(ctx, key)
			return nil, services.NewValidationError("this verification has expired or was already used")
		}
		return &v, nil
	}
	return nil, services.NewValidationError("verify your booking before submitting this request")
}

// clearValidation consumes the token client-side after a submission. The
// server remains the authority on single use; this just makes a second
// submission impossible from here.
func (f *Flow) clearValidation(ctx context.Context, bookingID string) {
	if err := f.KV.Del(ctx, f.Prefix+bookingID); err != nil {
		f.Logger.Warn("Failed to clear verification snapshot",
			zap.String("booking", bookingID), zap.Error(err))
	}
}
