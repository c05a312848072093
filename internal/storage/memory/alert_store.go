package memory

import (
	"context"
	"strings"
	"sync"

	"token-copilot/internal/domain"
	"token-copilot/internal/storage"
)

// AlertStore is an in-memory implementation of storage.AlertStore.
type AlertStore struct {
	mu       sync.RWMutex
	order    []string // normalized symbols in first-write order
	bySymbol map[string]*domain.AlertConfig
}

// NewAlertStore creates a new in-memory alert store.
func NewAlertStore() *AlertStore {
	return &AlertStore{
		bySymbol: make(map[string]*domain.AlertConfig),
	}
}

// Upsert inserts or fully replaces the config keyed by tokenSymbol.
func (s *AlertStore) Upsert(_ context.Context, cfg *domain.AlertConfig) error {
	if cfg == nil || cfg.TokenSymbol == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToUpper(cfg.TokenSymbol)
	cfgCopy := *cfg
	cfgCopy.TokenSymbol = key

	if _, exists := s.bySymbol[key]; !exists {
		s.order = append(s.order, key)
	}
	s.bySymbol[key] = &cfgCopy
	return nil
}

// Remove deletes the config for a symbol. Missing symbols are a silent no-op.
func (s *AlertStore) Remove(_ context.Context, tokenSymbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToUpper(tokenSymbol)
	if _, exists := s.bySymbol[key]; !exists {
		return nil
	}

	delete(s.bySymbol, key)
	for i, sym := range s.order {
		if sym == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List retrieves all configs ordered by first-write insertion order.
func (s *AlertStore) List(_ context.Context) ([]*domain.AlertConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.AlertConfig, 0, len(s.order))
	for _, sym := range s.order {
		cfgCopy := *s.bySymbol[sym]
		result = append(result, &cfgCopy)
	}
	return result, nil
}

// GetBySymbol retrieves the config for a symbol. Returns ErrNotFound if not exists.
func (s *AlertStore) GetBySymbol(_ context.Context, tokenSymbol string) (*domain.AlertConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, exists := s.bySymbol[strings.ToUpper(tokenSymbol)]
	if !exists {
		return nil, storage.ErrNotFound
	}

	cfgCopy := *cfg
	return &cfgCopy, nil
}

var _ storage.AlertStore = (*AlertStore)(nil)
