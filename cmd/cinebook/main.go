package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinebook/internal/booking"
	"cinebook/internal/checkout"
	"cinebook/internal/config"
	apperrors "cinebook/internal/errors"
	"cinebook/internal/gateway"
	"cinebook/internal/logger"
	"cinebook/internal/models"
	"cinebook/internal/seatmap"
	"cinebook/internal/session"
	"cinebook/internal/ticket"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: cinebook <command> [args]

commands:
  login <email> <password>        log in and store the session
  logout                          clear the stored session
  seats <showId>                  show the seat map for a show
  book <showId> <seat> [seat...]  book seats (seat = seat number, e.g. A1)
  bookings                        list your past bookings`)
	os.Exit(2)
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if len(os.Args) < 2 {
		usage()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	creds, err := session.OpenCredentialStore(cfg.Session)
	if err != nil {
		logger.Fatal("failed to open credential store", "error", err)
	}
	defer creds.Close()

	sess := session.NewStore(creds)
	gw := gateway.NewClient(cfg.Gateway, sess)

	switch os.Args[1] {
	case "login":
		if len(os.Args) != 4 {
			usage()
		}
		login(ctx, gw, sess, os.Args[2], os.Args[3])
	case "logout":
		if err := sess.Clear(ctx); err != nil {
			logger.Fatal("failed to clear session", "error", err)
		}
		fmt.Println("Logged out.")
	case "seats":
		if len(os.Args) != 3 {
			usage()
		}
		printSeats(ctx, gw, os.Args[2])
	case "book":
		if len(os.Args) < 4 {
			usage()
		}
		book(ctx, cfg, gw, sess, os.Args[2], os.Args[3:])
	case "bookings":
		listBookings(ctx, gw, sess)
	default:
		usage()
	}
}

func login(ctx context.Context, gw *gateway.Client, sess *session.Store, email, password string) {
	resp, err := gw.Login(ctx, email, password)
	if err != nil {
		logger.Fatal("login failed", "error", err)
	}
	if err := sess.SetCredentials(ctx, resp.Token, resp.User); err != nil {
		logger.Fatal("failed to store session", "error", err)
	}
	fmt.Printf("Logged in as %s <%s>\n", resp.User.Name, resp.User.Email)
}

func printSeats(ctx context.Context, gw *gateway.Client, showID string) {
	seats, err := gw.FetchSeats(ctx, showID)
	if err != nil {
		logger.Fatal("failed to fetch seats", "error", err)
	}
	for _, seat := range seats {
		marker := " "
		if !seat.Status.Selectable() {
			marker = "x"
		}
		fmt.Printf("[%s] %-4s %s\n", marker, seat.SeatNumber, seat.Status)
	}
}

func book(ctx context.Context, cfg *config.Config, gw *gateway.Client, sess *session.Store, showID string, seatNumbers []string) {
	cache := seatmap.NewCache()
	selection := seatmap.NewSelection(cfg.SeatPrice)
	selection.Enter(showID)

	seats, err := cache.GetOrFetch(ctx, showID, gw.FetchSeats)
	if err != nil {
		logger.Fatal("failed to fetch seats", "error", err)
	}
	selection.SetSeats(seats)

	byNumber := make(map[string]models.Seat, len(seats))
	for _, seat := range seats {
		byNumber[seat.SeatNumber] = seat
	}

	for _, number := range seatNumbers {
		seat, ok := byNumber[number]
		if !ok {
			logger.Fatal("unknown seat", "seat", number)
		}
		if !selection.Toggle(seat.ID) {
			logger.Fatal("seat is not available", "seat", number, "status", seat.Status)
		}
	}

	fmt.Printf("Booking %d seat(s) for Rs %d\n", selection.Count(), selection.Total())

	srv := checkout.NewServer(cfg.Checkout, func(url string) {
		fmt.Printf("\nComplete your payment at %s\n\n", url)
	})
	srv.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	orch := booking.New(gw, sess, selection, cache, srv)
	outcome, err := orch.Checkout(ctx, showID)

	switch {
	case err == nil && outcome.State == booking.StateConfirmed:
		showTicket(ctx, gw, outcome.Booking.ID)
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		fmt.Println("Please log in first: cinebook login <email> <password>")
		os.Exit(1)
	case errors.Is(err, apperrors.ErrSessionExpired):
		fmt.Println("Your session has expired. Please log in again.")
		os.Exit(1)
	case errors.Is(err, apperrors.ErrPaymentDismissed):
		fmt.Println("Payment cancelled. Seats have been released.")
		os.Exit(1)
	case errors.Is(err, apperrors.ErrSeatsUnavailable):
		fmt.Println("Some seats are no longer available. Pick again from the fresh seat map.")
		os.Exit(1)
	case errors.Is(err, apperrors.ErrVerificationFailed):
		fmt.Println("Payment verification failed. Any amount deducted will be refunded.")
		os.Exit(1)
	default:
		logger.Fatal("booking failed", "state", outcome.State, "error", err)
	}
}

func showTicket(ctx context.Context, gw *gateway.Client, bookingID string) {
	detail, err := gw.GetBooking(ctx, bookingID)
	if err != nil {
		logger.Fatal("booking confirmed but fetching the ticket failed", "booking_id", bookingID, "error", err)
	}

	fmt.Println("\nYour tickets are booked!")
	fmt.Print(ticket.Render(detail))

	qrPath := fmt.Sprintf("ticket-%s.png", detail.ID)
	if err := ticket.WriteQR(detail, qrPath); err != nil {
		logger.Get().Warn("failed to write ticket QR", "error", err)
		return
	}
	fmt.Printf("QR:      %s\n", qrPath)
}

func listBookings(ctx context.Context, gw *gateway.Client, sess *session.Store) {
	_, user, err := sess.Current(ctx)
	if err != nil {
		logger.Fatal("failed to read session", "error", err)
	}
	if user == nil {
		fmt.Println("Please log in first: cinebook login <email> <password>")
		os.Exit(1)
	}

	bookings, err := gw.ListUserBookings(ctx, user.ID)
	if err != nil {
		logger.Fatal("failed to list bookings", "error", err)
	}
	if len(bookings) == 0 {
		fmt.Println("No bookings yet.")
		return
	}
	for _, b := range bookings {
		fmt.Printf("%s  %-10s %-30s Rs %d\n", b.ID, b.Status, b.Show.Movie.MovieName, b.TotalAmount)
	}
}
