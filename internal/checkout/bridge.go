package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrMalformedMessage means the checkout surface sent a message whose
// correlation identifiers cannot be trusted. No gateway call may be made from
// such a message.
var ErrMalformedMessage = errors.New("malformed message from checkout surface")

// Result is the single message a checkout surface reports back. On success
// it carries the provider's correlation identifiers for verification.
type Result struct {
	Success           bool   `json:"success"`
	PaymentID         string `json:"paymentId"`
	BookingID         string `json:"bookingId"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type outcome struct {
	result Result
	err    error
}

// Bridge resolves exactly once per checkout attempt. The first delivered
// message wins; anything after it is dropped, since the state machine has
// already moved past the payment wait by then.
type Bridge struct {
	once sync.Once
	ch   chan outcome
}

// NewBridge creates an unresolved bridge for one checkout attempt.
func NewBridge() *Bridge {
	return &Bridge{ch: make(chan outcome, 1)}
}

// Deliver forwards one raw result message from the checkout surface.
// Unparseable messages, and success messages missing any correlation field,
// resolve the bridge with ErrMalformedMessage.
func (b *Bridge) Deliver(raw []byte) {
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		b.resolve(outcome{err: fmt.Errorf("%w: %v", ErrMalformedMessage, err)})
		return
	}

	if res.Success && (res.PaymentID == "" || res.BookingID == "" ||
		res.RazorpayOrderID == "" || res.RazorpayPaymentID == "" || res.RazorpaySignature == "") {
		b.resolve(outcome{err: fmt.Errorf("%w: missing correlation identifiers", ErrMalformedMessage)})
		return
	}

	b.resolve(outcome{result: res})
}

// Dismiss resolves the bridge as abandoned, as if the surface was closed
// without completing payment.
func (b *Bridge) Dismiss() {
	b.resolve(outcome{result: Result{Success: false}})
}

func (b *Bridge) resolve(o outcome) {
	b.once.Do(func() {
		b.ch <- o
	})
}

// Wait blocks until the surface reports its result. There is no client-side
// timeout: the user may take arbitrarily long, so only ctx cancels the wait.
func (b *Bridge) Wait(ctx context.Context) (Result, error) {
	select {
	case o := <-b.ch:
		return o.result, o.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
