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

// RescheduleAPI is the slice of the booking API client the reschedule flow
// needs.
type RescheduleAPI interface {
	RequestReschedule(ctx context.Context, bookingCode string) (*models.OTPDispatch, error)
	ValidateReschedule(ctx context.Context, token string) (*models.AftersalesValidation, error)
	CreateReschedule(ctx context.Context, sub models.RescheduleSubmission) (*models.RescheduleRecord, error)
}

// RescheduleFlow mirrors RefundFlow for date changes.
type RescheduleFlow struct {
	Flow
	API RescheduleAPI
}

func NewRescheduleFlow(api RescheduleAPI, kv database.SnapshotKV, ttl time.Duration, logger *zap.Logger) *RescheduleFlow {
	return &RescheduleFlow{
		Flow: Flow{
			Kind:   "reschedule",
			KV:     kv,
			Prefix: utils.RescheduleStorePrefix,
			TTL:    ttl,
			Logger: logger,
		},
		API: api,
	}
}

func (f *RescheduleFlow) Request(ctx context.Context, bookingCode string) (*RequestStatus, error) {
	if bookingCode == "" {
		return nil, services.NewValidationError("enter your booking code")
	}
	dispatch, err := f.API.RequestReschedule(ctx, bookingCode)
	return f.requestStatus(dispatch, err)
}

func (f *RescheduleFlow) Validate(ctx context.Context, token string) (*models.AftersalesValidation, error) {
	if token == "" {
		return nil, services.NewValidationError("enter the verification code we sent you")
	}
	validation, err := f.API.ValidateReschedule(ctx, token)
	if err != nil {
		return nil, f.describe(err)
	}
	if err := f.saveValidation(ctx, validation); err != nil {
		return nil, err
	}
	return validation, nil
}

// Create submits the reschedule. The new stay must be a valid range.
func (f *RescheduleFlow) Create(ctx context.Context, sub models.RescheduleSubmission) (*models.RescheduleRecord, error) {
	if sub.StartDate.After(sub.EndDate) {
		return nil, services.NewValidationError("the new stay must end after it starts")
	}

	validation, err := f.findByToken(ctx, sub.Token)
	if err != nil {
		return nil, err
	}

	record, err := f.API.CreateReschedule(ctx, sub)
	if err != nil {
		return nil, f.describe(err)
	}

	f.clearValidation(ctx, validation.BookingID)
	f.Logger.Info("Reschedule submitted",
		zap.String("booking", validation.BookingID), zap.String("reschedule", record.ID))
	return record, nil
}
