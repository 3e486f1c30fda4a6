package ticket

import (
	"encoding/json"
	"fmt"
	"strings"

	"cinebook/internal/models"

	"github.com/skip2/go-qrcode"
)

// qrPayload is what gate scanners read off the ticket QR.
type qrPayload struct {
	BookingID string   `json:"bookingId"`
	UserID    string   `json:"userId"`
	ShowID    string   `json:"showId"`
	Seats     []string `json:"seats"`
}

// Render returns a printable summary of a confirmed booking.
func Render(b *models.BookingDetail) string {
	seats := make([]string, len(b.Seats))
	for i, seat := range b.Seats {
		seats[i] = seat.SeatNumber
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking %s (%s)\n", b.ID, b.Status)
	fmt.Fprintf(&sb, "Movie:   %s\n", b.Show.Movie.MovieName)
	fmt.Fprintf(&sb, "Theatre: %s, %s\n", b.Show.Theatre.Name, b.Show.Theatre.City)
	fmt.Fprintf(&sb, "Time:    %s\n", b.Show.StartTime)
	fmt.Fprintf(&sb, "Seats:   %s\n", strings.Join(seats, ", "))
	fmt.Fprintf(&sb, "Total:   Rs %d\n", b.TotalAmount)
	return sb.String()
}

// WriteQR writes a QR code PNG encoding the booking reference.
func WriteQR(b *models.BookingDetail, path string) error {
	seats := make([]string, len(b.Seats))
	for i, seat := range b.Seats {
		seats[i] = seat.ID
	}

	payload, err := json.Marshal(qrPayload{
		BookingID: b.ID,
		UserID:    b.User.ID,
		ShowID:    b.Show.ID,
		Seats:     seats,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal ticket payload: %w", err)
	}

	if err := qrcode.WriteFile(string(payload), qrcode.Medium, 256, path); err != nil {
		return fmt.Errorf("failed to write ticket QR: %w", err)
	}
	return nil
}
