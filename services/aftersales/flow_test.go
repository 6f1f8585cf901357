package aftersales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campsite/bookingapi"
	"campsite/database"
	"campsite/models"
	"campsite/services"
	"campsite/services/aftersales"
)

// mockRefundAPI is a test double for aftersales.RefundAPI.
type mockRefundAPI struct {
	requestCalls int
	createCalls  int

	request  func(ctx context.Context, bookingCode string) (*models.OTPDispatch, error)
	validate func(ctx context.Context, token string) (*models.AftersalesValidation, error)
	create   func(ctx context.Context, sub models.RefundSubmission) (*models.RefundRecord, error)
}

func (m *mockRefundAPI) RequestRefund(ctx context.Context, bookingCode string) (*models.OTPDispatch, error) {
	m.requestCalls++
	return m.request(ctx, bookingCode)
}

func (m *mockRefundAPI) ValidateRefund(ctx context.Context, token string) (*models.AftersalesValidation, error) {
	return m.validate(ctx, token)
}

func (m *mockRefundAPI) CreateRefund(ctx context.Context, sub models.RefundSubmission) (*models.RefundRecord, error) {
	m.createCalls++
	return m.create(ctx, sub)
}

func newRefundFlow(api *mockRefundAPI) *aftersales.RefundFlow {
	return aftersales.NewRefundFlow(api, database.NewMemoryKV(), time.Hour, zap.NewNop())
}

func validationFor(bookingID, token string) *models.AftersalesValidation {
	return &models.AftersalesValidation{
		BookingID: bookingID,
		Token:     token,
		ExpiredAt: time.Now().Add(10 * time.Minute),
		Booking:   models.Booking{ID: bookingID, Status: "confirmed"},
	}
}

func refundSubmission(token string) models.RefundSubmission {
	return models.RefundSubmission{
		Token:         token,
		Reason:        "change of plans",
		RefundMethod:  "bank_transfer",
		AccountName:   "Dina Rahma",
		AccountNumber: "1234567890",
	}
}

func TestRefundRequest_EmptyCodeNeverHitsNetwork(t *testing.T) {
	api := &mockRefundAPI{}
	flow := newRefundFlow(api)

	_, err := flow.Request(context.Background(), "")
	assert.True(t, services.IsValidation(err))
	assert.Equal(t, 0, api.requestCalls)
}

func TestRefundRequest_ReturnsOTPSentState(t *testing.T) {
	expires := time.Now().Add(5 * time.Minute)
	api := &mockRefundAPI{
		request: func(_ context.Context, bookingCode string) (*models.OTPDispatch, error) {
			assert.Equal(t, "BK-123", bookingCode)
			return &models.OTPDispatch{BookingID: "bk_123", SentTo: "di***@example.com", ExpiredAt: expires}, nil
		},
	}
	flow := newRefundFlow(api)

	status, err := flow.Request(context.Background(), "BK-123")
	require.NoError(t, err)
	assert.Equal(t, aftersales.StateOTPSent, status.State)
	assert.Equal(t, "bk_123", status.BookingID)
	assert.Equal(t, "di***@example.com", status.SentTo)
}

func TestRefundRequest_UnconfirmedBookingRendersProcessing(t *testing.T) {
	api := &mockRefundAPI{
		request: func(context.Context, string) (*models.OTPDispatch, error) {
			return nil, &bookingapi.APIError{
				StatusCode:  422,
				Code:        "booking_not_confirmed",
				Description: "booking is not confirmed",
			}
		},
	}
	flow := newRefundFlow(api)

	status, err := flow.Request(context.Background(), "BK-123")
	require.NoError(t, err)
	assert.Equal(t, aftersales.StateProcessing, status.State)
}

func TestRefundRequest_KnownCodeGetsFriendlyMessage(t *testing.T) {
	api := &mockRefundAPI{
		request: func(context.Context, string) (*models.OTPDispatch, error) {
			return nil, &bookingapi.APIError{
				StatusCode:  404,
				Code:        "booking_not_found",
				Description: "no such booking",
			}
		},
	}
	flow := newRefundFlow(api)

	_, err := flow.Request(context.Background(), "BK-404")
	require.Error(t, err)
	apiErr, ok := err.(*bookingapi.APIError)
	require.True(t, ok)
	assert.Contains(t, apiErr.Description, "couldn't find a booking")
}

func TestRefundRequest_UnknownCodeKeepsServerDescription(t *testing.T) {
	api := &mockRefundAPI{
		request: func(context.Context, string) (*models.OTPDispatch, error) {
			return nil, &bookingapi.APIError{
				StatusCode:  500,
				Code:        "internal_error",
				Description: "something broke",
			}
		},
	}
	flow := newRefundFlow(api)

	_, err := flow.Request(context.Background(), "BK-500")
	require.Error(t, err)
	apiErr, ok := err.(*bookingapi.APIError)
	require.True(t, ok)
	assert.Equal(t, "something broke", apiErr.Description)
}

func TestRefundCreate_TokenIsSingleUse(t *testing.T) {
	api := &mockRefundAPI{
		validate: func(_ context.Context, token string) (*models.AftersalesValidation, error) {
			return validationFor("bk_123", token), nil
		},
		create: func(_ context.Context, sub models.RefundSubmission) (*models.RefundRecord, error) {
			return &models.RefundRecord{ID: "rf_1", BookingID: "bk_123", Status: "pending"}, nil
		},
	}
	flow := newRefundFlow(api)
	ctx := context.Background()

	_, err := flow.Validate(ctx, "tok-abc")
	require.NoError(t, err)

	record, err := flow.Create(ctx, refundSubmission("tok-abc"))
	require.NoError(t, err)
	assert.Equal(t, "rf_1", record.ID)
	assert.Equal(t, 1, api.createCalls)

	// Second submission with the same token fails before the network.
	_, err = flow.Create(ctx, refundSubmission("tok-abc"))
	assert.True(t, services.IsValidation(err))
	assert.Equal(t, 1, api.createCalls)
}

func TestRefundCreate_WithoutValidationFailsClientSide(t *testing.T) {
	api := &mockRefundAPI{
		create: func(context.Context, models.RefundSubmission) (*models.RefundRecord, error) {
			t.Fatal("submission must not reach the network without a verification")
			return nil, nil
		},
	}
	flow := newRefundFlow(api)

	_, err := flow.Create(context.Background(), refundSubmission("tok-unknown"))
	assert.True(t, services.IsValidation(err))
}

func TestRefundCreate_ExpiredValidationIsRejectedAndDeleted(t *testing.T) {
	api := &mockRefundAPI{
		validate: func(_ context.Context, token string) (*models.AftersalesValidation, error) {
			v := validationFor("bk_123", token)
			v.ExpiredAt = time.Now().Add(-time.Minute)
			return v, nil
		},
	}
	flow := newRefundFlow(api)
	ctx := context.Background()

	_, err := flow.Validate(ctx, "tok-old")
	require.NoError(t, err)

	_, err = flow.Create(ctx, refundSubmission("tok-old"))
	assert.True(t, services.IsValidation(err))

	// The expired record was removed, so the token now reads as never verified.
	_, err = flow.Create(ctx, refundSubmission("tok-old"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify your booking")
}

// mockRescheduleAPI is a test double for aftersales.RescheduleAPI.
type mockRescheduleAPI struct {
	createCalls int

	request  func(ctx context.Context, bookingCode string) (*models.OTPDispatch, error)
	validate func(ctx context.Context, token string) (*models.AftersalesValidation, error)
	create   func(ctx context.Context, sub models.RescheduleSubmission) (*models.RescheduleRecord, error)
}

func (m *mockRescheduleAPI) RequestReschedule(ctx context.Context, bookingCode string) (*models.OTPDispatch, error) {
	return m.request(ctx, bookingCode)
}

func (m *mockRescheduleAPI) ValidateReschedule(ctx context.Context, token string) (*models.AftersalesValidation, error) {
	return m.validate(ctx, token)
}

func (m *mockRescheduleAPI) CreateReschedule(ctx context.Context, sub models.RescheduleSubmission) (*models.RescheduleRecord, error) {
	m.createCalls++
	return m.create(ctx, sub)
}

func newRescheduleFlow(api *mockRescheduleAPI) *aftersales.RescheduleFlow {
	return aftersales.NewRescheduleFlow(api, database.NewMemoryKV(), time.Hour, zap.NewNop())
}

func TestRescheduleCreate_RejectsInvertedRange(t *testing.T) {
	api := &mockRescheduleAPI{
		validate: func(_ context.Context, token string) (*models.AftersalesValidation, error) {
			return validationFor("bk_123", token), nil
		},
	}
	flow := newRescheduleFlow(api)
	ctx := context.Background()

	_, err := flow.Validate(ctx, "tok-rs")
	require.NoError(t, err)

	_, err = flow.Create(ctx, models.RescheduleSubmission{
		Token:     "tok-rs",
		StartDate: time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
	})
	assert.True(t, services.IsValidation(err))
	assert.Equal(t, 0, api.createCalls)
}

func TestRescheduleCreate_SubmitsAndConsumesToken(t *testing.T) {
	api := &mockRescheduleAPI{
		validate: func(_ context.Context, token string) (*models.AftersalesValidation, error) {
			return validationFor("bk_123", token), nil
		},
		create: func(_ context.Context, sub models.RescheduleSubmission) (*models.RescheduleRecord, error) {
			return &models.RescheduleRecord{
				ID:        "rs_1",
				BookingID: "bk_123",
				Status:    "confirmed",
				StartDate: sub.StartDate,
				EndDate:   sub.EndDate,
			}, nil
		},
	}
	flow := newRescheduleFlow(api)
	ctx := context.Background()

	_, err := flow.Validate(ctx, "tok-rs")
	require.NoError(t, err)

	sub := models.RescheduleSubmission{
		Token:     "tok-rs",
		StartDate: time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
	}
	record, err := flow.Create(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, "rs_1", record.ID)

	_, err = flow.Create(ctx, sub)
	assert.True(t, services.IsValidation(err))
	assert.Equal(t, 1, api.createCalls)
}
