package memory

import (
	"context"
	"strings"
	"sync"

	"token-copilot/internal/domain"
	"token-copilot/internal/storage"
)

// WatchlistStore is an in-memory implementation of storage.WatchlistStore.
type WatchlistStore struct {
	mu       sync.RWMutex
	entries  []*domain.WatchlistEntry // insertion order
	bySymbol map[string]*domain.WatchlistEntry
}

// NewWatchlistStore creates a new in-memory watchlist store.
func NewWatchlistStore() *WatchlistStore {
	return &WatchlistStore{
		bySymbol: make(map[string]*domain.WatchlistEntry),
	}
}

// Add inserts an entry. Adding an already-tracked symbol is a no-op.
func (s *WatchlistStore) Add(_ context.Context, e *domain.WatchlistEntry) error {
	if e == nil || e.ID == "" || e.Symbol == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToUpper(e.Symbol)
	if _, exists := s.bySymbol[key]; exists {
		return nil
	}

	entryCopy := *e
	entryCopy.Symbol = key
	s.entries = append(s.entries, &entryCopy)
	s.bySymbol[key] = &entryCopy
	return nil
}

// Remove deletes an entry by id. Missing ids are a silent no-op.
func (s *WatchlistStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			delete(s.bySymbol, e.Symbol)
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// List retrieves all entries in insertion order.
func (s *WatchlistStore) List(_ context.Context) ([]*domain.WatchlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.WatchlistEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entryCopy := *e
		result = append(result, &entryCopy)
	}
	return result, nil
}

// GetBySymbol retrieves an entry by normalized symbol. Returns ErrNotFound if not exists.
func (s *WatchlistStore) GetBySymbol(_ context.Context, symbol string) (*domain.WatchlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.bySymbol[strings.ToUpper(symbol)]
	if !exists {
		return nil, storage.ErrNotFound
	}

	entryCopy := *e
	return &entryCopy, nil
}

// BestPerformer retrieves the entry with the highest priceChange24h.
// Earliest insertion wins ties. Returns ErrNotFound on an empty store.
func (s *WatchlistStore) BestPerformer(_ context.Context) (*domain.WatchlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return nil, storage.ErrNotFound
	}

	best := s.entries[0]
	for _, e := range s.entries[1:] {
		if e.PriceChange24h > best.PriceChange24h {
			best = e
		}
	}

	entryCopy := *best
	return &entryCopy, nil
}

// SetAlertCount updates hasAlerts/alertCount for a symbol in place.
// A missing symbol is a silent no-op.
func (s *WatchlistStore) SetAlertCount(_ context.Context, symbol string, count int) error {
	if count < 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.bySymbol[strings.ToUpper(symbol)]
	if !exists {
		return nil
	}

	e.AlertCount = count
	e.HasAlerts = count > 0
	return nil
}

var _ storage.WatchlistStore = (*WatchlistStore)(nil)
