// Package notify delivers configured alerts to external consumers.
package notify

import (
	"context"

	"token-copilot/internal/domain"
)

// AlertPublisher pushes an upserted alert config to a delivery channel.
// Implementations must be safe for concurrent use.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, cfg *domain.AlertConfig) error
	Close() error
}
