package gateway

import (
	"context"

	"cinebook/internal/models"
)

// CreateOrder creates a provider payment order for a pending booking.
func (c *Client) CreateOrder(ctx context.Context, bookingID string) (*models.CreateOrderResponse, error) {
	req := models.CreateOrderRequest{BookingID: bookingID}

	var result models.CreateOrderResponse
	if err := c.do(ctx, "create_order", "POST", "/Payment/Payment/CreateOrder", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyPayment submits the provider's payment proof for backend verification.
func (c *Client) VerifyPayment(ctx context.Context, req models.VerifyPaymentRequest) error {
	return c.do(ctx, "verify_payment", "POST", "/Payment/Payment/Verify", req, nil)
}

// CancelPayment asks the backend to cancel a payment and release its blocked
// seats. Best-effort: callers treat failures as non-fatal.
func (c *Client) CancelPayment(ctx context.Context, bookingID, paymentDbID string) error {
	req := models.CancelPaymentRequest{
		BookingID:   bookingID,
		PaymentDbID: paymentDbID,
	}
	return c.do(ctx, "cancel_payment", "POST", "/Payment/cancel", req, nil)
}
