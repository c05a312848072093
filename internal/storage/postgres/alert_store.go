package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"token-copilot/internal/domain"
	"token-copilot/internal/storage"
)

// AlertStore implements storage.AlertStore using PostgreSQL.
type AlertStore struct {
	pool *Pool
}

// NewAlertStore creates a new AlertStore.
func NewAlertStore(pool *Pool) *AlertStore {
	return &AlertStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AlertStore = (*AlertStore)(nil)

const alertColumns = `
	token_symbol, condition, direction, percent,
	current_price, trigger_price,
	notify_browser, notify_in_app, notify_email, created_at_ms
`

// Upsert inserts or fully replaces the config keyed by tokenSymbol.
// The row's position is kept, so listing stays in first-write order.
func (s *AlertStore) Upsert(ctx context.Context, cfg *domain.AlertConfig) error {
	if cfg == nil || cfg.TokenSymbol == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO alert_configs (
			token_symbol, condition, direction, percent,
			current_price, trigger_price,
			notify_browser, notify_in_app, notify_email, created_at_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (token_symbol) DO UPDATE SET
			condition      = EXCLUDED.condition,
			direction      = EXCLUDED.direction,
			percent        = EXCLUDED.percent,
			current_price  = EXCLUDED.current_price,
			trigger_price  = EXCLUDED.trigger_price,
			notify_browser = EXCLUDED.notify_browser,
			notify_in_app  = EXCLUDED.notify_in_app,
			notify_email   = EXCLUDED.notify_email,
			created_at_ms  = EXCLUDED.created_at_ms,
			updated_at     = now()
	`

	_, err := s.pool.Exec(ctx, query,
		strings.ToUpper(cfg.TokenSymbol),
		cfg.Condition,
		string(cfg.Direction),
		cfg.Percent,
		cfg.CurrentPrice,
		cfg.TriggerPrice,
		cfg.Channels.Browser,
		cfg.Channels.InApp,
		cfg.Channels.Email,
		cfg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert alert config: %w", err)
	}
	return nil
}

// Remove deletes the config for a symbol. Missing symbols are a silent no-op.
func (s *AlertStore) Remove(ctx context.Context, tokenSymbol string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM alert_configs WHERE token_symbol = $1`,
		strings.ToUpper(tokenSymbol),
	)
	if err != nil {
		return fmt.Errorf("delete alert config: %w", err)
	}
	return nil
}

// List retrieves all configs ordered by first-write insertion order.
func (s *AlertStore) List(ctx context.Context) ([]*domain.AlertConfig, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alert_configs
		ORDER BY position ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list alert configs: %w", err)
	}
	defer rows.Close()

	var configs []*domain.AlertConfig
	for rows.Next() {
		cfg, err := scanAlertConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert config row: %w", err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alert config rows: %w", err)
	}
	return configs, nil
}

// GetBySymbol retrieves the config for a symbol. Returns ErrNotFound if not exists.
func (s *AlertStore) GetBySymbol(ctx context.Context, tokenSymbol string) (*domain.AlertConfig, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alert_configs
		WHERE token_symbol = $1
	`

	row := s.pool.QueryRow(ctx, query, strings.ToUpper(tokenSymbol))
	cfg, err := scanAlertConfig(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get alert config by symbol: %w", err)
	}
	return cfg, nil
}

// scanAlertConfig scans a single row into AlertConfig.
func scanAlertConfig(row pgx.Row) (*domain.AlertConfig, error) {
	var cfg domain.AlertConfig
	var direction string

	err := row.Scan(
		&cfg.TokenSymbol,
		&cfg.Condition,
		&direction,
		&cfg.Percent,
		&cfg.CurrentPrice,
		&cfg.TriggerPrice,
		&cfg.Channels.Browser,
		&cfg.Channels.InApp,
		&cfg.Channels.Email,
		&cfg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	cfg.Direction = domain.AlertDirection(direction)
	return &cfg, nil
}
