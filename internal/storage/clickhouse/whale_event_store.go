package clickhouse

import (
	"context"
	"fmt"

	"token-copilot/internal/domain"
	"token-copilot/internal/storage"
)

// WhaleEventStore implements storage.WhaleEventStore using ClickHouse.
type WhaleEventStore struct {
	conn *Conn
}

// NewWhaleEventStore creates a new WhaleEventStore.
func NewWhaleEventStore(conn *Conn) *WhaleEventStore {
	return &WhaleEventStore{conn: conn}
}

// Compile-time interface check.
var _ storage.WhaleEventStore = (*WhaleEventStore)(nil)

// Insert adds a transaction. Returns ErrDuplicateKey if the id exists.
// MergeTree does not enforce uniqueness, so the id is checked explicitly.
func (s *WhaleEventStore) Insert(ctx context.Context, tx *domain.WhaleTransaction) error {
	if tx == nil || tx.ID == "" {
		return storage.ErrInvalidInput
	}

	exists, err := s.exists(ctx, tx.ID)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	query := `
		INSERT INTO whale_events (
			id, wallet_address, wallet_label, action, token_symbol,
			amount_usd, token_amount, tx_hash, timestamp_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err = s.conn.Exec(ctx, query,
		tx.ID, tx.WalletAddress, tx.WalletLabel, string(tx.Action), tx.TokenSymbol,
		tx.AmountUSD, tx.TokenAmount, tx.TxHash, uint64(tx.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("insert whale event: %w", err)
	}
	return nil
}

// InsertBulk adds multiple transactions. Fails entire batch on any duplicate.
func (s *WhaleEventStore) InsertBulk(ctx context.Context, txs []*domain.WhaleTransaction) error {
	if len(txs) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[string]struct{})
	for _, tx := range txs {
		if tx == nil || tx.ID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[tx.ID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[tx.ID] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, tx := range txs {
		exists, err := s.exists(ctx, tx.ID)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO whale_events (
			id, wallet_address, wallet_label, action, token_symbol,
			amount_usd, token_amount, tx_hash, timestamp_ms
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, tx := range txs {
		err = batch.Append(
			tx.ID, tx.WalletAddress, tx.WalletLabel, string(tx.Action), tx.TokenSymbol,
			tx.AmountUSD, tx.TokenAmount, tx.TxHash, uint64(tx.Timestamp),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// Recent retrieves up to limit transactions, newest first by timestamp.
func (s *WhaleEventStore) Recent(ctx context.Context, limit int) ([]*domain.WhaleTransaction, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT id, wallet_address, wallet_label, action, token_symbol,
		       amount_usd, token_amount, tx_hash, timestamp_ms
		FROM whale_events
		ORDER BY timestamp_ms DESC
		LIMIT ?
	`

	rows, err := s.conn.Query(ctx, query, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("query recent whale events: %w", err)
	}
	defer rows.Close()

	var txs []*domain.WhaleTransaction
	for rows.Next() {
		var tx domain.WhaleTransaction
		var action string
		var timestampMs uint64

		err := rows.Scan(
			&tx.ID, &tx.WalletAddress, &tx.WalletLabel, &action, &tx.TokenSymbol,
			&tx.AmountUSD, &tx.TokenAmount, &tx.TxHash, &timestampMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan whale event row: %w", err)
		}

		tx.Action = domain.WhaleAction(action)
		tx.Timestamp = int64(timestampMs)
		txs = append(txs, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate whale event rows: %w", err)
	}

	return txs, nil
}

// Summary aggregates buy/sell volume, net flow and unique wallets for
// transactions at or after since (ms).
func (s *WhaleEventStore) Summary(ctx context.Context, since int64) (*domain.WhaleSummary, error) {
	query := `
		SELECT
			sumIf(amount_usd, action = 'buy'),
			sumIf(amount_usd, action = 'sell'),
			uniqExact(wallet_address)
		FROM whale_events
		WHERE timestamp_ms >= ?
	`

	var buyVolume, sellVolume float64
	var uniqueWhales uint64
	err := s.conn.QueryRow(ctx, query, uint64(since)).Scan(&buyVolume, &sellVolume, &uniqueWhales)
	if err != nil {
		return nil, fmt.Errorf("query whale summary: %w", err)
	}

	return &domain.WhaleSummary{
		BuyVolumeUSD:  buyVolume,
		SellVolumeUSD: sellVolume,
		NetFlowUSD:    buyVolume - sellVolume,
		UniqueWhales:  int(uniqueWhales),
	}, nil
}

// exists checks if a transaction with the given id exists.
func (s *WhaleEventStore) exists(ctx context.Context, id string) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count(*) FROM whale_events WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
