// Package market defines the injected market-data dependency.
// The engine never fetches prices or runs analysis itself; it awaits a
// provider once per turn and composes from whatever comes back.
package market

import (
	"context"

	"token-copilot/internal/domain"
)

// AnalysisProvider supplies token analysis, trading suggestions and
// portfolio data. Implementations may call external services; the stub
// implementation returns deterministic fixtures.
type AnalysisProvider interface {
	// TokenAnalysis returns the analysis snapshot for a symbol.
	TokenAnalysis(ctx context.Context, symbol string) (*domain.TokenAnalysisData, error)

	// TradingSuggestion returns a trade setup for a symbol.
	TradingSuggestion(ctx context.Context, symbol string) (*domain.TradingSuggestionData, error)

	// Portfolio returns the user's current holdings.
	Portfolio(ctx context.Context) (*domain.PortfolioData, error)
}
