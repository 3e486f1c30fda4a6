package models

// SeatStatus is the server-authoritative availability state of one seat.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatBlocked   SeatStatus = "BLOCKED"
	SeatBooked    SeatStatus = "BOOKED"
	SeatSold      SeatStatus = "SOLD"
)

// Selectable reports whether a seat in this status may enter a new selection.
func (s SeatStatus) Selectable() bool {
	switch s {
	case SeatBlocked, SeatBooked, SeatSold:
		return false
	}
	return true
}

// BookingStatus is the lifecycle state of a booking on the backend.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Seat is one bookable seat of a show. The client only ever holds a cached
// read-only projection of it.
type Seat struct {
	ID         string     `json:"_id"`
	SeatNumber string     `json:"seatNumber"`
	Status     SeatStatus `json:"status"`
}

// User is the logged-in user's profile as returned by the auth endpoint.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Movie holds the subset of movie fields the ticket view renders.
type Movie struct {
	ID        string `json:"_id"`
	MovieName string `json:"movieName"`
}

// Theatre holds the subset of theatre fields the ticket view renders.
type Theatre struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Show is a scheduled screening, the scope for seat availability.
type Show struct {
	ID        string  `json:"_id"`
	Movie     Movie   `json:"movie"`
	Theatre   Theatre `json:"theatre"`
	StartTime string  `json:"startTime"`
}

// Booking as returned from the create-pending endpoint: references only.
type Booking struct {
	ID          string        `json:"_id"`
	UserID      string        `json:"user"`
	ShowID      string        `json:"show"`
	SeatIDs     []string      `json:"showSeats"`
	Status      BookingStatus `json:"status"`
	TotalAmount int64         `json:"totalAmount"`
}

// BookingDetail is the populated form from the fetch-booking endpoint, with
// show, theatre and seats expanded for the ticket view.
type BookingDetail struct {
	ID          string        `json:"_id"`
	User        User          `json:"user"`
	Show        Show          `json:"show"`
	Seats       []Seat        `json:"showSeats"`
	Status      BookingStatus `json:"status"`
	TotalAmount int64         `json:"totalAmount"`
}

// PaymentOrder is one provider-side payment order tied to a booking attempt.
// PaymentID is the backend's own payment record, OrderID the provider's.
type PaymentOrder struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	BookingID string `json:"bookingId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Key       string `json:"key"`
}

// LoginRequest - credentials for the auth endpoint
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse - session token plus the user profile
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// BlockSeatsRequest - payload of the seat-blocking call
type BlockSeatsRequest struct {
	ShowSeatIDs []string `json:"showSeatIds"`
	ShowID      string   `json:"showId"`
}

// CreatePendingBookingRequest - payload of the pending-booking call
type CreatePendingBookingRequest struct {
	UserID      string   `json:"userId"`
	ShowID      string   `json:"showId"`
	ShowSeatIDs []string `json:"showSeatIds"`
}

// ConfirmBookingRequest - payload of the booking-confirm call
type ConfirmBookingRequest struct {
	PaymentID string `json:"paymentId"`
}

// CreateOrderRequest - payload of the payment-order call
type CreateOrderRequest struct {
	BookingID string `json:"bookingId"`
}

// CreateOrderResponse - provider order plus the backend payment record id
type CreateOrderResponse struct {
	Order     ProviderOrder `json:"order"`
	PaymentID string        `json:"paymentId"`
	Key       string        `json:"key"`
}

// ProviderOrder - the provider's view of a created order
type ProviderOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// VerifyPaymentRequest - correlation identifiers proving a provider payment
type VerifyPaymentRequest struct {
	BookingID         string `json:"bookingId"`
	PaymentDbID       string `json:"paymentDbId"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

// CancelPaymentRequest - payload of the best-effort payment cancel
type CancelPaymentRequest struct {
	BookingID   string `json:"bookingId"`
	PaymentDbID string `json:"paymentDbId"`
}
