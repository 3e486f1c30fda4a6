package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"cinebook/internal/checkout"
	apperrors "cinebook/internal/errors"
	"cinebook/internal/logger"
	"cinebook/internal/metrics"
	"cinebook/internal/models"
	"cinebook/internal/seatmap"
)

// Gateway is the slice of the backend API the orchestrator drives.
type Gateway interface {
	BlockSeats(ctx context.Context, showID string, seatIDs []string) error
	CreatePendingBooking(ctx context.Context, userID, showID string, seatIDs []string) (*models.Booking, error)
	CreateOrder(ctx context.Context, bookingID string) (*models.CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, req models.VerifyPaymentRequest) error
	ConfirmBooking(ctx context.Context, bookingID, paymentID string) (*models.Booking, error)
	CancelPayment(ctx context.Context, bookingID, paymentDbID string) error
}

// Bridge opens the payment surface for one attempt and blocks until the user
// completes or abandons it.
type Bridge interface {
	Open(ctx context.Context, params checkout.Params) (checkout.Result, error)
}

// Session supplies the identity attached to every step and is torn down when
// the backend reports an expired token.
type Session interface {
	Current(ctx context.Context) (string, *models.User, error)
	Clear(ctx context.Context) error
}

// Outcome is the terminal result of one checkout transaction.
type Outcome struct {
	State   State
	Booking *models.Booking
}

// Orchestrator drives the multi-step booking transaction:
// block seats -> create pending booking -> create payment order ->
// payment handoff -> verify -> confirm. Steps run strictly in order; every
// failure is terminal for the attempt and there is no automatic retry, since
// seats may have been reassigned by the time of a retry.
type Orchestrator struct {
	gw        Gateway
	session   Session
	selection *seatmap.Selection
	cache     *seatmap.Cache
	bridge    Bridge

	mu    sync.Mutex
	busy  bool
	state State
}

// New creates an orchestrator over the given collaborators.
func New(gw Gateway, session Session, selection *seatmap.Selection, cache *seatmap.Cache, bridge Bridge) *Orchestrator {
	return &Orchestrator{
		gw:        gw,
		session:   session,
		selection: selection,
		cache:     cache,
		bridge:    bridge,
		state:     StateIdle,
	}
}

// State returns the current transaction state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Checkout runs one booking transaction for the current selection. Only one
// attempt may be in flight at a time; the selection is frozen for the whole
// transaction and cleared on every terminal outcome.
func (o *Orchestrator) Checkout(ctx context.Context, showID string) (Outcome, error) {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return Outcome{State: o.state}, apperrors.ErrBookingInFlight
	}
	o.busy = true
	o.state = StateIdle
	o.mu.Unlock()

	outcome, err := o.run(ctx, showID)

	o.mu.Lock()
	o.busy = false
	o.mu.Unlock()

	metrics.BookingAttempts.WithLabelValues(strings.ToLower(outcome.State.String())).Inc()
	return outcome, err
}

func (o *Orchestrator) run(ctx context.Context, showID string) (Outcome, error) {
	log := logger.WithAttemptID(logger.NewAttemptID()).With("show_id", showID)

	// Preconditions: these fail before the transaction starts, so the
	// selection survives for a retry after the user fixes the problem.
	token, user, err := o.session.Current(ctx)
	if err != nil {
		return Outcome{State: StateIdle}, fmt.Errorf("failed to read session: %w", err)
	}
	if token == "" || user == nil {
		return Outcome{State: StateIdle}, apperrors.ErrNotAuthenticated
	}

	seatIDs := o.selection.IDs()
	if len(seatIDs) == 0 {
		return Outcome{State: StateIdle}, apperrors.ErrNoSeatsSelected
	}

	o.selection.Lock()
	log.Info("starting booking attempt", "user_id", user.ID, "seats", seatIDs)

	// Step 1: place a backend hold on the selected seats.
	o.setState(StateBlocking)
	if err := o.gw.BlockSeats(ctx, showID, seatIDs); err != nil {
		if errors.Is(err, apperrors.ErrSessionExpired) {
			return o.expireSession(ctx, showID, log, err)
		}
		// The cache is stale either way once a block was attempted; on a
		// conflict the user must see the real seat state before retrying.
		o.cache.Invalidate(showID)
		return o.fail(log, err)
	}
	o.cache.Invalidate(showID)

	// Step 2: create the PENDING booking that correlates all later steps.
	o.setState(StateBookingPending)
	booking, err := o.gw.CreatePendingBooking(ctx, user.ID, showID, seatIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionExpired) {
			return o.expireSession(ctx, showID, log, err)
		}
		return o.fail(log, err)
	}
	if booking.ID == "" {
		return o.fail(log, fmt.Errorf("create booking: %w", apperrors.ErrMalformedResponse))
	}
	log = log.With("booking_id", booking.ID)

	// Step 3: create the provider payment order.
	o.setState(StateOrderCreated)
	order, err := o.gw.CreateOrder(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionExpired) {
			return o.expireSession(ctx, showID, log, err)
		}
		return o.fail(log, err)
	}
	if order.Order.ID == "" || order.PaymentID == "" {
		return o.fail(log, fmt.Errorf("create order: %w", apperrors.ErrMalformedResponse))
	}

	// Step 4: hand off to the payment surface. This is a user-interaction
	// wait, not a network wait; no timeout applies.
	o.setState(StateAwaitingPayment)
	log.Info("awaiting payment", "order_id", order.Order.ID, "amount", order.Order.Amount)
	result, err := o.bridge.Open(ctx, checkout.Params{
		OrderID:   order.Order.ID,
		Amount:    order.Order.Amount,
		Currency:  order.Order.Currency,
		BookingID: booking.ID,
		PaymentID: order.PaymentID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
	})
	if err != nil {
		// A malformed message means the correlation identifiers cannot be
		// trusted, so no gateway endpoint is called on this path.
		return o.fail(log, err)
	}

	// Step 8 (dismiss): user closed the surface without paying; release the
	// blocked seats server-side, best-effort.
	if !result.Success {
		if err := o.gw.CancelPayment(ctx, booking.ID, order.PaymentID); err != nil {
			if errors.Is(err, apperrors.ErrSessionExpired) {
				return o.expireSession(ctx, showID, log, err)
			}
			log.Error("failed to cancel payment after dismiss", "error", err)
		}
		o.cache.Invalidate(showID)
		o.selection.Clear()
		o.setState(StateCancelled)
		log.Info("payment dismissed, seats released")
		return Outcome{State: StateCancelled}, apperrors.ErrPaymentDismissed
	}

	// Step 5: verify the provider's payment proof.
	o.setState(StateVerifying)
	err = o.gw.VerifyPayment(ctx, models.VerifyPaymentRequest{
		BookingID:         booking.ID,
		PaymentDbID:       order.PaymentID,
		RazorpayOrderID:   result.RazorpayOrderID,
		RazorpayPaymentID: result.RazorpayPaymentID,
		RazorpaySignature: result.RazorpaySignature,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionExpired) {
			return o.expireSession(ctx, showID, log, err)
		}
		return o.fail(log, fmt.Errorf("%w: %v", apperrors.ErrVerificationFailed, err))
	}

	// Step 6: confirm the booking against the verified payment.
	confirmed, err := o.gw.ConfirmBooking(ctx, booking.ID, order.PaymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionExpired) {
			return o.expireSession(ctx, showID, log, err)
		}
		return o.fail(log, err)
	}

	o.cache.Invalidate(showID)
	o.selection.Clear()
	o.setState(StateConfirmed)
	log.Info("booking confirmed", "total_amount", confirmed.TotalAmount)
	return Outcome{State: StateConfirmed, Booking: confirmed}, nil
}

// fail lands the attempt in the terminal FAILED state and clears the local
// transaction state so nothing leaks into the next attempt.
func (o *Orchestrator) fail(log *slog.Logger, err error) (Outcome, error) {
	o.selection.Clear()
	o.setState(StateFailed)
	log.Error("booking attempt failed", "error", err)
	return Outcome{State: StateFailed}, err
}

// expireSession handles the out-of-band token-expired signal: full session
// teardown, local state cleared, caller forced back to login.
func (o *Orchestrator) expireSession(ctx context.Context, showID string, log *slog.Logger, cause error) (Outcome, error) {
	if err := o.session.Clear(ctx); err != nil {
		log.Error("failed to clear session", "error", err)
	}
	o.selection.Clear()
	o.cache.Invalidate(showID)
	o.setState(StateSessionExpired)
	log.Error("session expired during booking attempt", "error", cause)
	return Outcome{State: StateSessionExpired}, fmt.Errorf("session teardown: %w", apperrors.ErrSessionExpired)
}
