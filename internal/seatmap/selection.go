package seatmap

import (
	"sync"

	"cinebook/internal/models"
)

// Selection is the client-local set of seats picked for the current booking
// attempt, scoped to one show. It starts empty when a seat screen is entered
// and is cleared on exit and on every terminal booking outcome.
type Selection struct {
	mu        sync.Mutex
	showID    string
	unitPrice int64
	statuses  map[string]models.SeatStatus
	seats     []models.Seat
	selected  map[string]struct{}
	order     []string
	locked    bool
}

// NewSelection creates an empty selection. unitPrice is the per-seat price
// used for total computation.
func NewSelection(unitPrice int64) *Selection {
	return &Selection{
		unitPrice: unitPrice,
		statuses:  make(map[string]models.SeatStatus),
		selected:  make(map[string]struct{}),
	}
}

// Enter resets the selection for a show. Any selection left over from a
// previous show is dropped.
func (s *Selection) Enter(showID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.showID = showID
	s.statuses = make(map[string]models.SeatStatus)
	s.seats = nil
	s.reset()
}

// ShowID returns the show this selection is scoped to.
func (s *Selection) ShowID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showID
}

// SetSeats replaces the cached seat list after a fresh fetch. Selected seats
// that the server now reports as taken are dropped from the selection.
func (s *Selection) SetSeats(seats []models.Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seats = append([]models.Seat(nil), seats...)
	s.statuses = make(map[string]models.SeatStatus, len(seats))
	for _, seat := range seats {
		s.statuses[seat.ID] = seat.Status
	}

	kept := s.order[:0]
	for _, id := range s.order {
		if s.statuses[id].Selectable() {
			kept = append(kept, id)
		} else {
			delete(s.selected, id)
		}
	}
	s.order = kept
}

// Seats returns a copy of the cached seat list for rendering.
func (s *Selection) Seats() []models.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Seat(nil), s.seats...)
}

// Toggle adds or removes a seat from the selection. Seats the cache reports
// as blocked, booked or sold are never added. Toggling is a no-op while the
// selection is locked by an in-flight transaction. Returns true when the
// selection changed.
func (s *Selection) Toggle(seatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return false
	}

	if _, ok := s.selected[seatID]; ok {
		delete(s.selected, seatID)
		for i, id := range s.order {
			if id == seatID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return true
	}

	if status, ok := s.statuses[seatID]; ok && !status.Selectable() {
		return false
	}

	s.selected[seatID] = struct{}{}
	s.order = append(s.order, seatID)
	return true
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Selection) reset() {
	s.selected = make(map[string]struct{})
	s.order = nil
	s.locked = false
}

// IDs returns the selected seat ids in the order they were picked.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Count returns the number of selected seats.
func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Total returns the price for the current selection.
func (s *Selection) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.order)) * s.unitPrice
}

// Lock freezes the selection for the duration of a booking transaction.
func (s *Selection) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = true
}

// Unlock re-enables toggling after a transaction reaches a terminal state.
func (s *Selection) Unlock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = false
}
