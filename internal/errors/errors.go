package errors

import "errors"

// Booking-flow error taxonomy. Every failure the orchestrator surfaces to the
// user wraps exactly one of these sentinels.
var ErrNotAuthenticated = errors.New("user is not logged in")
var ErrNoSeatsSelected = errors.New("no seats selected")
var ErrSeatsUnavailable = errors.New("some seats are no longer available")
var ErrMalformedResponse = errors.New("required field missing from response")
var ErrSessionExpired = errors.New("session expired")
var ErrPaymentDismissed = errors.New("payment dismissed by user")
var ErrVerificationFailed = errors.New("payment verification failed")
var ErrBookingInFlight = errors.New("another booking attempt is in progress")
