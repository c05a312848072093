package memory

import (
	"context"
	"sort"
	"sync"

	"token-copilot/internal/domain"
	"token-copilot/internal/storage"
)

// WhaleEventStore is an in-memory implementation of storage.WhaleEventStore.
type WhaleEventStore struct {
	mu   sync.RWMutex
	txs  []*domain.WhaleTransaction // insertion order
	byID map[string]struct{}
}

// NewWhaleEventStore creates a new in-memory whale event store.
func NewWhaleEventStore() *WhaleEventStore {
	return &WhaleEventStore{
		byID: make(map[string]struct{}),
	}
}

// Insert adds a transaction. Returns ErrDuplicateKey if the id exists.
func (s *WhaleEventStore) Insert(_ context.Context, tx *domain.WhaleTransaction) error {
	if tx == nil || tx.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertLocked(tx)
}

// InsertBulk adds multiple transactions. Fails entire batch on any duplicate.
func (s *WhaleEventStore) InsertBulk(_ context.Context, txs []*domain.WhaleTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range txs {
		if tx == nil || tx.ID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.byID[tx.ID]; exists {
			return storage.ErrDuplicateKey
		}
	}

	for _, tx := range txs {
		if err := s.insertLocked(tx); err != nil {
			return err
		}
	}
	return nil
}

func (s *WhaleEventStore) insertLocked(tx *domain.WhaleTransaction) error {
	if _, exists := s.byID[tx.ID]; exists {
		return storage.ErrDuplicateKey
	}

	txCopy := *tx
	s.txs = append(s.txs, &txCopy)
	s.byID[tx.ID] = struct{}{}
	return nil
}

// Recent retrieves up to limit transactions, newest first by timestamp.
func (s *WhaleEventStore) Recent(_ context.Context, limit int) ([]*domain.WhaleTransaction, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]*domain.WhaleTransaction, len(s.txs))
	copy(sorted, s.txs)
	// Stable sort preserves insertion order for equal timestamps.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})

	if limit > len(sorted) {
		limit = len(sorted)
	}

	result := make([]*domain.WhaleTransaction, 0, limit)
	for _, tx := range sorted[:limit] {
		txCopy := *tx
		result = append(result, &txCopy)
	}
	return result, nil
}

// Summary aggregates buy/sell volume, net flow and unique wallets for
// transactions at or after since (ms).
func (s *WhaleEventStore) Summary(_ context.Context, since int64) (*domain.WhaleSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := &domain.WhaleSummary{}
	wallets := make(map[string]struct{})

	for _, tx := range s.txs {
		if tx.Timestamp < since {
			continue
		}
		switch tx.Action {
		case domain.WhaleBuy:
			summary.BuyVolumeUSD += tx.AmountUSD
		case domain.WhaleSell:
			summary.SellVolumeUSD += tx.AmountUSD
		}
		wallets[tx.WalletAddress] = struct{}{}
	}

	summary.NetFlowUSD = summary.BuyVolumeUSD - summary.SellVolumeUSD
	summary.UniqueWhales = len(wallets)
	return summary, nil
}

var _ storage.WhaleEventStore = (*WhaleEventStore)(nil)
