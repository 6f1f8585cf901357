package bookingapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campsite/bookingapi"
	"campsite/models"
)

func newClient(t *testing.T, handler http.HandlerFunc) *bookingapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return bookingapi.NewClient(server.URL, "test-key", 2*time.Second, zap.NewNop())
}

func stayDates() (time.Time, time.Time) {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
}

func TestAvailability_BuildsQueryAndDecodesCategories(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/reservations/availability", r.URL.Path)
		assert.Equal(t, "2025-06-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-06-03", r.URL.Query().Get("end_date"))
		assert.Equal(t, "VIP", r.URL.Query().Get("name"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		json.NewEncoder(w).Encode(map[string]any{
			"categories": []models.Category{{
				ID:   "cat-vip",
				Name: "VIP",
				Tents: []models.Tent{
					{ID: "t1", Name: "Family Tent", Capacity: 4, Status: models.TentAvailable},
				},
			}},
		})
	})

	start, end := stayDates()
	categories, err := client.Availability(context.Background(), start, end, "VIP")
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "VIP", categories[0].Name)
	require.Len(t, categories[0].Tents, 1)
	assert.Equal(t, models.TentAvailable, categories[0].Tents[0].Status)
}

func TestAvailability_OmitsEmptyNameFilter(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["name"]
		assert.False(t, present)
		json.NewEncoder(w).Encode(map[string]any{"categories": []models.Category{}})
	})

	start, end := stayDates()
	_, err := client.Availability(context.Background(), start, end, "")
	require.NoError(t, err)
}

func TestCheckPrice_SendsSelectionBody(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/reservations/price", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			TentIDs   []string `json:"tent_id"`
			StartDate string   `json:"start_date"`
			EndDate   string   `json:"end_date"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"t1", "t2"}, body.TentIDs)
		assert.Equal(t, "2025-06-01", body.StartDate)
		assert.Equal(t, "2025-06-03", body.EndDate)

		json.NewEncoder(w).Encode(models.PriceQuote{
			TotalPrice: 1200000,
			Tents: []models.TentPrice{
				{ID: "t1", Price: 700000},
				{ID: "t2", Price: 500000},
			},
		})
	})

	start, end := stayDates()
	quote, err := client.CheckPrice(context.Background(), []string{"t1", "t2"}, start, end)
	require.NoError(t, err)
	assert.Equal(t, 1200000, quote.TotalPrice)
	require.Len(t, quote.Tents, 2)
}

func TestCreateReservation_DecodesBookingAndGuest(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reservations", r.URL.Path)

		var req bookingapi.ReservationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Dina Rahma", req.Name)
		assert.Equal(t, []string{"t1"}, req.TentIDs)

		json.NewEncoder(w).Encode(models.BookingResponse{
			Booking: models.Booking{ID: "bk_123", Status: "waiting_payment"},
			Guest:   models.Guest{Name: req.Name, Email: req.Email},
		})
	})

	resp, err := client.CreateReservation(context.Background(), bookingapi.ReservationRequest{
		Name:      "Dina Rahma",
		Email:     "dina@example.com",
		TentIDs:   []string{"t1"},
		StartDate: "2025-06-01",
		EndDate:   "2025-06-03",
	})
	require.NoError(t, err)
	assert.Equal(t, "bk_123", resp.Booking.ID)
	assert.Equal(t, "Dina Rahma", resp.Guest.Name)
}

func TestCreatePayment_PostsMethod(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments/bk_123", r.URL.Path)

		var body struct {
			PaymentMethod string `json:"payment_method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "qris", body.PaymentMethod)

		json.NewEncoder(w).Encode(models.PaymentRecord{
			OrderID:           "bk_123",
			PaymentMethod:     "qris",
			TotalAmount:       1200000,
			ExpiredAt:         expires,
			TransactionStatus: models.PaymentPending,
			PaymentDetail: []models.PaymentDetail{
				{Type: models.PaymentDetailQR, QRImageURL: "https://pay.example/qr.png"},
			},
		})
	})

	record, err := client.CreatePayment(context.Background(), "bk_123", "qris")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, record.TransactionStatus)
	require.Len(t, record.PaymentDetail, 1)
	assert.Equal(t, models.PaymentDetailQR, record.PaymentDetail[0].Type)
	assert.True(t, record.ExpiredAt.Equal(expires))
}

func TestErrorEnvelope_IsDecodedIntoAPIError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"code":        "booking_not_found",
				"description": "no booking with that code",
			},
		})
	})

	_, err := client.PaymentStatus(context.Background(), "bk_missing")
	require.Error(t, err)

	var apiErr *bookingapi.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "booking_not_found", apiErr.Code)
	assert.Equal(t, "no booking with that code", apiErr.Description)
}

func TestMalformedErrorBody_FallsBackToGenericMessage(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream exploded</html>"))
	})

	_, err := client.PaymentStatus(context.Background(), "bk_123")
	require.Error(t, err)

	var apiErr *bookingapi.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Description)
}

func TestBreaker_OpensAfterConsecutiveServerErrors(t *testing.T) {
	var hits int
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.Error(t, client.Ping(ctx))
	}
	assert.Equal(t, 3, hits)

	// The breaker is now open, so this call fails without reaching the server.
	err := client.Ping(ctx)
	require.Error(t, err)
	assert.Equal(t, 3, hits)
}

func TestBreaker_IgnoresClientErrors(t *testing.T) {
	var hits int
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "booking_not_found", "description": "nope"},
		})
	})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := client.PaymentStatus(ctx, "bk_missing")
		require.Error(t, err)
	}
	// 4xx answers never trip the breaker, every call reached the server.
	assert.Equal(t, 5, hits)
}

func TestRequestRefund_ProcessingCodePassesThrough(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/refunds/request", r.URL.Path)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"code":        "booking_not_confirmed",
				"description": "booking is not confirmed yet",
			},
		})
	})

	_, err := client.RequestRefund(context.Background(), "BK-123")
	require.Error(t, err)

	var apiErr *bookingapi.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "booking_not_confirmed", apiErr.Code)
}
