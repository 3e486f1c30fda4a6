package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "cinebook/internal/errors"
	"cinebook/internal/models"
)

// FetchSeats returns the current seat list for a show.
func (c *Client) FetchSeats(ctx context.Context, showID string) ([]models.Seat, error) {
	var seats []models.Seat
	if err := c.do(ctx, "fetch_seats", "GET", "/ShowSeat/ShowSeat/"+showID, nil, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// BlockSeats places a temporary backend hold on the given seats. A conflict
// means another user got there first.
func (c *Client) BlockSeats(ctx context.Context, showID string, seatIDs []string) error {
	req := models.BlockSeatsRequest{
		ShowSeatIDs: seatIDs,
		ShowID:      showID,
	}

	err := c.do(ctx, "block_seats", "PUT", "/ShowSeat/ShowSeat/Block", req, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
			return fmt.Errorf("block seats: %w", apperrors.ErrSeatsUnavailable)
		}
		return err
	}
	return nil
}
