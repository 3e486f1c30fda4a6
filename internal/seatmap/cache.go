package seatmap

import (
	"context"
	"sync"
	"time"

	"cinebook/internal/models"
)

// FetchFunc loads the seat list for a show from the backend.
type FetchFunc func(ctx context.Context, showID string) ([]models.Seat, error)

type cacheEntry struct {
	seats     []models.Seat
	fetchedAt time.Time
}

// Cache holds the per-show seat-status projection. The backend is the only
// authority on availability; entries here are hints that mutating calls
// (block, confirm, cancel) must invalidate.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCache creates an empty seat cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get returns the cached seat list for a show, if present.
func (c *Cache) Get(showID string) ([]models.Seat, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[showID]
	if !ok {
		return nil, false
	}
	return append([]models.Seat(nil), entry.seats...), true
}

// Set stores a freshly fetched seat list for a show.
func (c *Cache) Set(showID string, seats []models.Seat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[showID] = cacheEntry{
		seats:     append([]models.Seat(nil), seats...),
		fetchedAt: time.Now(),
	}
}

// Invalidate drops the cached entry for a show so the next read re-fetches.
func (c *Cache) Invalidate(showID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, showID)
}

// GetOrFetch returns the cached seat list for a show, fetching and storing
// it when absent.
func (c *Cache) GetOrFetch(ctx context.Context, showID string, fetch FetchFunc) ([]models.Seat, error) {
	if seats, ok := c.Get(showID); ok {
		return seats, nil
	}

	seats, err := fetch(ctx, showID)
	if err != nil {
		return nil, err
	}

	c.Set(showID, seats)
	return seats, nil
}
