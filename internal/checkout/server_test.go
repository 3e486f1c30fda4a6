package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	return w
}

func TestCheckoutPageUnavailableWithoutAttempt(t *testing.T) {
	s := NewServer(Config{Addr: "127.0.0.1:0", RazorpayKey: "key"}, nil)

	w := serve(s, "GET", "/checkout", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(s, "POST", "/checkout/result", `{"success": false}`)
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestOpenRendersPageAndDeliversResult(t *testing.T) {
	opened := make(chan string, 1)
	s := NewServer(Config{Addr: "127.0.0.1:4545", RazorpayKey: "key"}, func(url string) {
		opened <- url
	})

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := s.Open(context.Background(), Params{
			OrderID:   "O1",
			Amount:    30000,
			BookingID: "B1",
			PaymentID: "P-db",
			Name:      "Asha",
			Email:     "asha@example.com",
			Phone:     "9999999999",
		})
		done <- outcome{res, err}
	}()

	select {
	case url := <-opened:
		assert.Equal(t, "http://127.0.0.1:4545/checkout", url)
	case <-time.After(time.Second):
		t.Fatal("checkout was never opened")
	}

	w := serve(s, "GET", "/checkout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "O1")
	assert.Contains(t, w.Body.String(), "checkout.razorpay.com")

	w = serve(s, "POST", "/checkout/result", `{
		"success": true,
		"paymentId": "P-db",
		"bookingId": "B1",
		"razorpay_order_id": "O1",
		"razorpay_payment_id": "P1",
		"razorpay_signature": "S1"
	}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	select {
	case o := <-done:
		require.NoError(t, o.err)
		assert.True(t, o.res.Success)
		assert.Equal(t, "P1", o.res.RazorpayPaymentID)
	case <-time.After(time.Second):
		t.Fatal("Open never returned")
	}

	// The attempt is disarmed after its single result.
	w = serve(s, "GET", "/checkout", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	s := NewServer(Config{Addr: "127.0.0.1:0", RazorpayKey: "key"}, nil)

	w := serve(s, "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(s, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
