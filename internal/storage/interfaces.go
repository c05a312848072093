package storage

import (
	"context"

	"token-copilot/internal/domain"
)

// WatchlistStore provides access to tracked-token storage.
// At most one entry exists per normalized symbol.
type WatchlistStore interface {
	// Add inserts an entry. Adding a symbol that is already tracked is a
	// no-op: the first insertion's id and data are retained.
	Add(ctx context.Context, e *domain.WatchlistEntry) error

	// Remove deletes an entry by id. Removing a missing id is a silent no-op.
	Remove(ctx context.Context, id string) error

	// List retrieves all entries in insertion order.
	List(ctx context.Context) ([]*domain.WatchlistEntry, error)

	// GetBySymbol retrieves an entry by normalized symbol. Returns ErrNotFound if not exists.
	GetBySymbol(ctx context.Context, symbol string) (*domain.WatchlistEntry, error)

	// BestPerformer retrieves the entry with the highest priceChange24h,
	// earliest insertion winning ties. Returns ErrNotFound on an empty store.
	BestPerformer(ctx context.Context) (*domain.WatchlistEntry, error)

	// SetAlertCount updates hasAlerts/alertCount for a symbol in place.
	// A missing symbol is a silent no-op.
	SetAlertCount(ctx context.Context, symbol string, count int) error
}

// AlertStore provides access to alert configuration storage.
// One active config per normalized symbol.
type AlertStore interface {
	// Upsert inserts or fully replaces the config keyed by tokenSymbol.
	// No merge semantics: the latest write wins.
	Upsert(ctx context.Context, cfg *domain.AlertConfig) error

	// Remove deletes the config for a symbol. A missing symbol is a silent no-op.
	Remove(ctx context.Context, tokenSymbol string) error

	// List retrieves all configs ordered by first-write insertion order.
	List(ctx context.Context) ([]*domain.AlertConfig, error)

	// GetBySymbol retrieves the config for a symbol. Returns ErrNotFound if not exists.
	GetBySymbol(ctx context.Context, tokenSymbol string) (*domain.AlertConfig, error)
}

// WhaleEventStore provides access to observed whale transaction storage.
type WhaleEventStore interface {
	// Insert adds a transaction. Returns ErrDuplicateKey if the id exists.
	Insert(ctx context.Context, tx *domain.WhaleTransaction) error

	// InsertBulk adds multiple transactions. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, txs []*domain.WhaleTransaction) error

	// Recent retrieves up to limit transactions, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.WhaleTransaction, error)

	// Summary aggregates buy/sell volume, net flow and unique wallets for
	// transactions at or after since (ms).
	Summary(ctx context.Context, since int64) (*domain.WhaleSummary, error)
}
