package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "cinebook/internal/errors"
	"cinebook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token(ctx context.Context) string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL}, staticToken("tok-123"))
}

func TestRequestsCarryAuthToken(t *testing.T) {
	var gotToken, gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("x-auth-token")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`[]`))
	})

	_, err := c.FetchSeats(context.Background(), "show1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", gotToken)
	assert.Equal(t, "application/json", gotContentType)
}

func TestFetchSeatsDecodesBareArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ShowSeat/ShowSeat/show1", r.URL.Path)
		w.Write([]byte(`[
			{"_id": "s1", "seatNumber": "A1", "status": "AVAILABLE"},
			{"_id": "s2", "seatNumber": "A2", "status": "BOOKED"}
		]`))
	})

	seats, err := c.FetchSeats(context.Background(), "show1")
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.Equal(t, "s1", seats[0].ID)
	assert.Equal(t, models.SeatBooked, seats[1].Status)
}

func TestBlockSeatsConflictMeansUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/ShowSeat/ShowSeat/Block", r.URL.Path)

		var req models.BlockSeatsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"s1", "s2"}, req.ShowSeatIDs)
		assert.Equal(t, "show1", req.ShowID)

		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "seats no longer available"}`))
	})

	err := c.BlockSeats(context.Background(), "show1", []string{"s1", "s2"})
	assert.ErrorIs(t, err, apperrors.ErrSeatsUnavailable)
}

func TestBlockSeatsOtherErrorsPassThrough(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "boom"}`))
	})

	err := c.BlockSeats(context.Background(), "show1", []string{"s1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrSeatsUnavailable)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestTokenExpiredBodyMapsToSessionExpired(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Token expired, please log in again"}`))
	})

	err := c.BlockSeats(context.Background(), "show1", []string{"s1"})
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)

	_, err = c.GetBooking(context.Background(), "B1")
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
}

func TestCreatePendingBookingDecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Booking/Booking/CreatePending", r.URL.Path)
		w.Write([]byte(`{"data": {
			"_id": "B1",
			"user": "u1",
			"show": "show1",
			"showSeats": ["s1", "s2"],
			"status": "PENDING"
		}}`))
	})

	booking, err := c.CreatePendingBooking(context.Background(), "u1", "show1", []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Equal(t, "B1", booking.ID)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, []string{"s1", "s2"}, booking.SeatIDs)
}

func TestCreateOrderDecodesProviderFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "B1", req.BookingID)

		w.Write([]byte(`{
			"order": {"id": "O1", "amount": 30000, "currency": "INR"},
			"paymentId": "P-db",
			"key": "rzp_test_key"
		}`))
	})

	resp, err := c.CreateOrder(context.Background(), "B1")
	require.NoError(t, err)
	assert.Equal(t, "O1", resp.Order.ID)
	assert.Equal(t, int64(30000), resp.Order.Amount)
	assert.Equal(t, "P-db", resp.PaymentID)
	assert.Equal(t, "rzp_test_key", resp.Key)
}

func TestConfirmBookingPathAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/Booking/Booking/Confirm/B1", r.URL.Path)

		var req models.ConfirmBookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "P-db", req.PaymentID)

		w.Write([]byte(`{"data": {"_id": "B1", "status": "CONFIRMED", "totalAmount": 300}}`))
	})

	booking, err := c.ConfirmBooking(context.Background(), "B1", "P-db")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, int64(300), booking.TotalAmount)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Auth/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "asha@example.com", req.Email)

		w.Write([]byte(`{"token": "tok-abc", "user": {"_id": "u1", "name": "Asha"}}`))
	})

	resp, err := c.Login(context.Background(), "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestListUserBookings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Booking/bookings/user/u1", r.URL.Path)
		w.Write([]byte(`{"data": [
			{"_id": "B1", "status": "CONFIRMED"},
			{"_id": "B2", "status": "CANCELLED"}
		]}`))
	})

	bookings, err := c.ListUserBookings(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "B1", bookings[0].ID)
}

func TestCancelPayment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Payment/cancel", r.URL.Path)

		var req models.CancelPaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "B1", req.BookingID)
		assert.Equal(t, "P-db", req.PaymentDbID)

		w.WriteHeader(http.StatusOK)
	})

	err := c.CancelPayment(context.Background(), "B1", "P-db")
	assert.NoError(t, err)
}
