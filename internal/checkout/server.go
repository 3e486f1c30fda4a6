package checkout

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync"

	"cinebook/internal/logger"
	"cinebook/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Config holds checkout bridge server settings
type Config struct {
	Addr        string
	RazorpayKey string
	Currency    string
}

// Params configures one embedded checkout attempt: the provider order, the
// amount in the smallest currency unit, the correlation ids echoed back in
// the result message, and the prefill identity.
type Params struct {
	OrderID   string
	Amount    int64
	Currency  string
	BookingID string
	PaymentID string
	Name      string
	Email     string
	Phone     string
}

// Server hosts the embedded Razorpay checkout page on a local address and
// receives its single result message on a callback route. It is the stand-in
// for the mobile app's payment webview.
type Server struct {
	cfg    Config
	srv    *http.Server
	onOpen func(url string)

	mu     sync.Mutex
	bridge *Bridge
	params *Params
}

var checkoutPage = template.Must(template.New("checkout").Parse(`<!DOCTYPE html>
<html>
<body>
  <script src="https://checkout.razorpay.com/v1/checkout.js"></script>
  <script>
    function post(body) {
      fetch("/checkout/result", {
        method: "POST",
        headers: {"Content-Type": "application/json"},
        body: JSON.stringify(body)
      });
    }
    var rzp = new Razorpay({
      key: {{.Key}},
      amount: {{.Params.Amount}},
      currency: {{.Params.Currency}},
      name: "cinebook",
      order_id: {{.Params.OrderID}},
      prefill: {
        name: {{.Params.Name}},
        email: {{.Params.Email}},
        contact: {{.Params.Phone}}
      },
      handler: function (response) {
        post({
          success: true,
          paymentId: {{.Params.PaymentID}},
          bookingId: {{.Params.BookingID}},
          razorpay_order_id: response.razorpay_order_id,
          razorpay_payment_id: response.razorpay_payment_id,
          razorpay_signature: response.razorpay_signature
        });
      },
      modal: {
        ondismiss: function () {
          post({success: false});
        }
      }
    });
    rzp.open();
  </script>
</body>
</html>`))

// NewServer creates the checkout server. onOpen is invoked with the page URL
// whenever an attempt is armed, so the caller can point the user at it; it
// may be nil.
func NewServer(cfg Config, onOpen func(url string)) *Server {
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}

	s := &Server{cfg: cfg, onOpen: onOpen}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/checkout", s.renderCheckout)
	router.POST("/checkout/result", s.handleResult)
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	s.srv = &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	return s
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Get().Error("checkout server failed", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// URL returns the checkout page address for the current attempt.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s/checkout", s.cfg.Addr)
}

// Open arms the server with one checkout attempt and blocks until its result
// message arrives. Implements the orchestrator's payment handoff.
func (s *Server) Open(ctx context.Context, params Params) (Result, error) {
	if params.Currency == "" {
		params.Currency = s.cfg.Currency
	}

	bridge := NewBridge()

	s.mu.Lock()
	s.bridge = bridge
	s.params = &params
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.bridge = nil
		s.params = nil
		s.mu.Unlock()
	}()

	if s.onOpen != nil {
		s.onOpen(s.URL())
	}

	return bridge.Wait(ctx)
}

func (s *Server) renderCheckout(c *gin.Context) {
	s.mu.Lock()
	params := s.params
	s.mu.Unlock()

	if params == nil {
		c.String(http.StatusNotFound, "no checkout in progress")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := checkoutPage.Execute(c.Writer, gin.H{
		"Key":    s.cfg.RazorpayKey,
		"Params": params,
	}); err != nil {
		logger.Get().Error("failed to render checkout page", "error", err)
	}
}

func (s *Server) handleResult(c *gin.Context) {
	s.mu.Lock()
	bridge := s.bridge
	s.mu.Unlock()

	if bridge == nil {
		c.String(http.StatusGone, "no checkout in progress")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable body")
		return
	}

	bridge.Deliver(raw)
	logger.Get().Debug("checkout result delivered", "bytes", len(raw))

	c.Status(http.StatusNoContent)
}
