package booking

// State is the position of one booking attempt in the checkout transaction.
type State string

const (
	StateIdle            State = "IDLE"
	StateBlocking        State = "BLOCKING"
	StateBookingPending  State = "BOOKING_PENDING"
	StateOrderCreated    State = "ORDER_CREATED"
	StateAwaitingPayment State = "AWAITING_PAYMENT"
	StateVerifying       State = "VERIFYING"
	StateConfirmed       State = "CONFIRMED"
	StateCancelled       State = "CANCELLED"
	StateFailed          State = "FAILED"

	// StateSessionExpired is the out-of-band state entered from anywhere when
	// the backend reports an expired token. It preempts whatever step the
	// attempt was in.
	StateSessionExpired State = "SESSION_EXPIRED"
)

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	switch s {
	case StateConfirmed, StateCancelled, StateFailed, StateSessionExpired:
		return true
	}
	return false
}

func (s State) String() string {
	return string(s)
}
