package gateway

import (
	"context"

	"cinebook/internal/models"
)

// CreatePendingBooking creates a PENDING booking for the blocked seats.
func (c *Client) CreatePendingBooking(ctx context.Context, userID, showID string, seatIDs []string) (*models.Booking, error) {
	req := models.CreatePendingBookingRequest{
		UserID:      userID,
		ShowID:      showID,
		ShowSeatIDs: seatIDs,
	}

	var result struct {
		Data models.Booking `json:"data"`
	}
	if err := c.do(ctx, "create_pending_booking", "POST", "/Booking/Booking/CreatePending", req, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// ConfirmBooking marks a booking CONFIRMED after its payment was verified.
func (c *Client) ConfirmBooking(ctx context.Context, bookingID, paymentID string) (*models.Booking, error) {
	req := models.ConfirmBookingRequest{PaymentID: paymentID}

	var result struct {
		Data models.Booking `json:"data"`
	}
	if err := c.do(ctx, "confirm_booking", "PUT", "/Booking/Booking/Confirm/"+bookingID, req, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// GetBooking returns one booking with show, theatre and seats populated.
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*models.BookingDetail, error) {
	var result struct {
		Data models.BookingDetail `json:"data"`
	}
	if err := c.do(ctx, "get_booking", "GET", "/Booking/booking/"+bookingID, nil, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// ListUserBookings returns the order history for a user.
func (c *Client) ListUserBookings(ctx context.Context, userID string) ([]models.BookingDetail, error) {
	var result struct {
		Data []models.BookingDetail `json:"data"`
	}
	if err := c.do(ctx, "list_user_bookings", "GET", "/Booking/bookings/user/"+userID, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
