package aftersales

import (
	"context"
	"time"

	"campsite/database"
	"campsite/models"
	"campsite/services"
	"campsite/utils"

	"go.uber.org/zap"
)

// RefundAPI is the slice of the booking API client the refund flow needs.
type RefundAPI interface {
	RequestRefund(ctx context.Context, bookingCode string) (*models.OTPDispatch, error)
	ValidateRefund(ctx context.Context, token string) (*models.AftersalesValidation, error)
	CreateRefund(ctx context.Context, sub models.RefundSubmission) (*models.RefundRecord, error)
}

// RefundFlow runs the refund machine: unverified -> otp_sent -> verified ->
// submitted.
type RefundFlow struct {
	Flow
	API RefundAPI
}

func NewRefundFlow(api RefundAPI, kv database.SnapshotKV, ttl time.Duration, logger *zap.Logger) *RefundFlow {
	return &RefundFlow{
		Flow: Flow{
			Kind:   "refund",
			KV:     kv,
			Prefix: utils.RefundStorePrefix,
			TTL:    ttl,
			Logger: logger,
		},
		API: api,
	}
}

// Request looks up the booking by its code. An empty code never reaches the
// network.
func (f *RefundFlow) Request(ctx context.Context, bookingCode string) (*RequestStatus, error) {
	if bookingCode == "" {
		return nil, services.NewValidationError("enter your booking code")
	}
	dispatch, err := f.API.RequestRefund(ctx, bookingCode)
	return f.requestStatus(dispatch, err)
}

// Validate exchanges the OTP for a verification record and persists it keyed
// by booking id.
func (f *RefundFlow) Validate(ctx context.Context, token string) (*models.AftersalesValidation, error) {
	if token == "" {
		return nil, services.NewValidationError("enter the verification code we sent you")
	}
	validation, err := f.API.ValidateRefund(ctx, token)
	if err != nil {
		return nil, f.describe(err)
	}
	if err := f.saveValidation(ctx, validation); err != nil {
		return nil, err
	}
	return validation, nil
}

// Create submits the refund. The stored verification is consumed on success,
// so the same token cannot be submitted twice from here.
func (f *RefundFlow) Create(ctx context.Context, sub models.RefundSubmission) (*models.RefundRecord, error) {
	validation, err := f.findByToken(ctx, sub.Token)
	if err != nil {
		return nil, err
	}

	record, err := f.API.CreateRefund(ctx, sub)
	if err != nil {
		return nil, f.describe(err)
	}

	f.clearValidation(ctx, validation.BookingID)
	f.Logger.Info("Refund submitted",
		zap.String("booking", validation.BookingID), zap.String("refund", record.ID))
	return record, nil
}
