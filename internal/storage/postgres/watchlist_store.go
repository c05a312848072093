package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"token-copilot/internal/domain"
	"token-copilot/internal/storage"
)

// WatchlistStore implements storage.WatchlistStore using PostgreSQL.
type WatchlistStore struct {
	pool *Pool
}

// NewWatchlistStore creates a new WatchlistStore.
func NewWatchlistStore(pool *Pool) *WatchlistStore {
	return &WatchlistStore{pool: pool}
}

// Compile-time interface check.
var _ storage.WatchlistStore = (*WatchlistStore)(nil)

const watchlistColumns = `
	id, symbol, name, chain, contract_address,
	price, price_change_24h, has_alerts, alert_count, added_at_ms
`

// Add inserts an entry. Adding an already-tracked symbol is a no-op: the
// first insertion's row is retained.
func (s *WatchlistStore) Add(ctx context.Context, e *domain.WatchlistEntry) error {
	if e == nil || e.ID == "" || e.Symbol == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO watchlist_entries (
			id, symbol, name, chain, contract_address,
			price, price_change_24h, has_alerts, alert_count, added_at_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (symbol) DO NOTHING
	`

	_, err := s.pool.Exec(ctx, query,
		e.ID,
		strings.ToUpper(e.Symbol),
		e.Name,
		e.Chain,
		e.ContractAddress,
		e.Price,
		e.PriceChange24h,
		e.HasAlerts,
		e.AlertCount,
		e.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("insert watchlist entry: %w", err)
	}
	return nil
}

// Remove deletes an entry by id. Missing ids are a silent no-op.
func (s *WatchlistStore) Remove(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM watchlist_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete watchlist entry: %w", err)
	}
	return nil
}

// List retrieves all entries in insertion order.
func (s *WatchlistStore) List(ctx context.Context) ([]*domain.WatchlistEntry, error) {
	query := `
		SELECT ` + watchlistColumns + `
		FROM watchlist_entries
		ORDER BY position ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list watchlist entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.WatchlistEntry
	for rows.Next() {
		e, err := scanWatchlistEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan watchlist row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist rows: %w", err)
	}
	return entries, nil
}

// GetBySymbol retrieves an entry by normalized symbol. Returns ErrNotFound if not exists.
func (s *WatchlistStore) GetBySymbol(ctx context.Context, symbol string) (*domain.WatchlistEntry, error) {
	query := `
		SELECT ` + watchlistColumns + `
		FROM watchlist_entries
		WHERE symbol = $1
	`

	row := s.pool.QueryRow(ctx, query, strings.ToUpper(symbol))
	e, err := scanWatchlistEntry(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get watchlist entry by symbol: %w", err)
	}
	return e, nil
}

// BestPerformer retrieves the entry with the highest priceChange24h.
// Earliest insertion wins ties. Returns ErrNotFound on an empty store.
func (s *WatchlistStore) BestPerformer(ctx context.Context) (*domain.WatchlistEntry, error) {
	query := `
		SELECT ` + watchlistColumns + `
		FROM watchlist_entries
		ORDER BY price_change_24h DESC, position ASC
		LIMIT 1
	`

	row := s.pool.QueryRow(ctx, query)
	e, err := scanWatchlistEntry(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get best performer: %w", err)
	}
	return e, nil
}

// SetAlertCount updates hasAlerts/alertCount for a symbol in place.
// A missing symbol is a silent no-op.
func (s *WatchlistStore) SetAlertCount(ctx context.Context, symbol string, count int) error {
	if count < 0 {
		return storage.ErrInvalidInput
	}

	query := `
		UPDATE watchlist_entries
		SET alert_count = $2, has_alerts = $3
		WHERE symbol = $1
	`

	_, err := s.pool.Exec(ctx, query, strings.ToUpper(symbol), count, count > 0)
	if err != nil {
		return fmt.Errorf("update alert count: %w", err)
	}
	return nil
}

// scanWatchlistEntry scans a single row into WatchlistEntry.
func scanWatchlistEntry(row pgx.Row) (*domain.WatchlistEntry, error) {
	var e domain.WatchlistEntry

	err := row.Scan(
		&e.ID,
		&e.Symbol,
		&e.Name,
		&e.Chain,
		&e.ContractAddress,
		&e.Price,
		&e.PriceChange24h,
		&e.HasAlerts,
		&e.AlertCount,
		&e.AddedAt,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}
