// Package stub provides a deterministic market.AnalysisProvider for local
// runs and tests.
package stub

import (
	"context"
	"crypto/sha256"
	"strings"

	"token-copilot/internal/domain"
	"token-copilot/internal/market"
)

// Provider returns fixture data for a set of known tokens and synthesizes
// stable values for everything else. Same symbol in, same data out.
type Provider struct {
	known map[string]domain.TokenAnalysisData
}

// NewProvider creates a stub provider seeded with the built-in fixtures.
func NewProvider() *Provider {
	return &Provider{known: fixtures()}
}

var _ market.AnalysisProvider = (*Provider)(nil)

func fixtures() map[string]domain.TokenAnalysisData {
	return map[string]domain.TokenAnalysisData{
		"BULLA": {
			Symbol: "BULLA", Name: "Bulla Token", Chain: "solana",
			Price: 0.00001234, PriceChange24h: 156.7,
			MarketCap: 2_100_000, Volume24h: 1_200_000, Liquidity: 450_000,
			SafetyScore: 72, HolderCount: 1847, Top10HolderPercent: 35,
		},
		"BONK": {
			Symbol: "BONK", Name: "Bonk", Chain: "solana",
			Price: 0.00002156, PriceChange24h: 12.3,
			MarketCap: 1_450_000_000, Volume24h: 89_000_000, Liquidity: 45_000_000,
			SafetyScore: 89, HolderCount: 652000, Top10HolderPercent: 18,
		},
		"WIF": {
			Symbol: "WIF", Name: "dogwifhat", Chain: "solana",
			Price: 2.45, PriceChange24h: -5.2,
			MarketCap: 2_450_000_000, Volume24h: 245_000_000, Liquidity: 125_000_000,
			SafetyScore: 94, HolderCount: 178000, Top10HolderPercent: 14,
		},
		"PEPE": {
			Symbol: "PEPE", Name: "Pepe", Chain: "ethereum",
			Price: 0.00001089, PriceChange24h: 8.7,
			MarketCap: 4_580_000_000, Volume24h: 567_000_000, Liquidity: 234_000_000,
			SafetyScore: 85, HolderCount: 412000, Top10HolderPercent: 22,
		},
		"DEGEN": {
			Symbol: "DEGEN", Name: "Degen", Chain: "base",
			Price: 0.0156, PriceChange24h: -15.3,
			MarketCap: 156_000_000, Volume24h: 12_000_000, Liquidity: 8_500_000,
			SafetyScore: 78, HolderCount: 98000, Top10HolderPercent: 28,
		},
		"SOL": {
			Symbol: "SOL", Name: "Solana", Chain: "solana",
			Price: 198.45, PriceChange24h: 5.67,
			MarketCap: 92_000_000_000, Volume24h: 4_500_000_000, Liquidity: 1_800_000_000,
			SafetyScore: 98, HolderCount: 2900000, Top10HolderPercent: 9,
		},
	}
}

// TokenAnalysis returns fixture data for known symbols and synthesizes a
// stable analysis for unknown ones.
func (p *Provider) TokenAnalysis(_ context.Context, symbol string) (*domain.TokenAnalysisData, error) {
	key := strings.ToUpper(symbol)
	if data, ok := p.known[key]; ok {
		return &data, nil
	}

	data := synthesize(key)
	return &data, nil
}

// TradingSuggestion derives a trade setup from the token analysis.
func (p *Provider) TradingSuggestion(ctx context.Context, symbol string) (*domain.TradingSuggestionData, error) {
	analysis, err := p.TokenAnalysis(ctx, symbol)
	if err != nil {
		return nil, err
	}

	bias := "long"
	if analysis.PriceChange24h < 0 {
		bias = "short"
	}

	entry := analysis.Price
	stop := entry * 0.92
	targets := []float64{entry * 1.15, entry * 1.35, entry * 1.60}
	if bias == "short" {
		stop = entry * 1.08
		targets = []float64{entry * 0.88, entry * 0.75, entry * 0.60}
	}

	return &domain.TradingSuggestionData{
		Symbol:     analysis.Symbol,
		Bias:       bias,
		Entry:      entry,
		Targets:    targets,
		StopLoss:   stop,
		RiskReward: 2.4,
		TechnicalLevels: domain.TechnicalLevels{
			Support:    []float64{entry * 0.90, entry * 0.82},
			Resistance: []float64{entry * 1.12, entry * 1.30},
		},
		Reasoning: []string{
			"24h momentum is " + momentumWord(analysis.PriceChange24h),
			"Liquidity depth supports the position size",
			"Safety score " + scoreBand(analysis.SafetyScore),
		},
	}, nil
}

// Portfolio returns the fixture holdings.
func (p *Provider) Portfolio(_ context.Context) (*domain.PortfolioData, error) {
	return &domain.PortfolioData{
		TotalValueUSD:    15234.56,
		Change24hPercent: 3.08,
		Holdings: []domain.PortfolioHolding{
			{Symbol: "SOL", Name: "Solana", Amount: 25.5, ValueUSD: 5060.48, Change24hPercent: 5.67, AllocationPercent: 33.2},
			{Symbol: "ETH", Name: "Ethereum", Amount: 1.2, ValueUSD: 4148.14, Change24hPercent: -1.23, AllocationPercent: 27.2},
			{Symbol: "BONK", Name: "Bonk", Amount: 150_000_000, ValueUSD: 3234.00, Change24hPercent: 12.3, AllocationPercent: 21.2},
			{Symbol: "WIF", Name: "dogwifhat", Amount: 500, ValueUSD: 1225.00, Change24hPercent: -5.2, AllocationPercent: 8.0},
			{Symbol: "PEPE", Name: "Pepe", Amount: 100_000_000, ValueUSD: 1089.00, Change24hPercent: 8.7, AllocationPercent: 7.2},
			{Symbol: "DEGEN", Name: "Degen", Amount: 30_000, ValueUSD: 468.00, Change24hPercent: -15.3, AllocationPercent: 3.1},
		},
	}, nil
}

// synthesize derives stable pseudo-market data from the symbol hash so that
// unknown tokens still analyze deterministically.
func synthesize(symbol string) domain.TokenAnalysisData {
	hash := sha256.Sum256([]byte(symbol))

	price := 0.000001 * float64(1+int(hash[0]))
	change := float64(int(hash[1])%161) - 80 // [-80, 80]
	score := 30 + int(hash[2])%65            // [30, 94]

	return domain.TokenAnalysisData{
		Symbol:             symbol,
		Name:               symbol,
		Chain:              "solana",
		Price:              price,
		PriceChange24h:     change,
		MarketCap:          float64(50_000 + int(hash[3])*20_000),
		Volume24h:          float64(10_000 + int(hash[4])*5_000),
		Liquidity:          float64(5_000 + int(hash[5])*2_000),
		SafetyScore:        score,
		HolderCount:        500 + int(hash[6])*40,
		Top10HolderPercent: float64(10 + int(hash[7])%70),
	}
}

func momentumWord(change float64) string {
	if change >= 0 {
		return "positive"
	}
	return "negative"
}

func scoreBand(score int) string {
	switch {
	case score >= 80:
		return "is strong"
	case score >= 60:
		return "is acceptable"
	default:
		return "flags elevated risk"
	}
}

// WhaleTransactions returns fixture whale trades with timestamps spread over
// the hour before now (ms). Used to seed whale stores for local runs.
func WhaleTransactions(now int64) []*domain.WhaleTransaction {
	minute := int64(60 * 1000)

	return []*domain.WhaleTransaction{
		{
			ID:            "d41f1ff1e7c4b2a09e2a5c8fd3b46c1a7e9d0b835fa2c6e14d7b8a90c3f5e621",
			WalletAddress: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
			WalletLabel:   "Whale #1",
			Action:        domain.WhaleBuy,
			TokenSymbol:   "BULLA",
			AmountUSD:     125000,
			TokenAmount:   10_130_000_000,
			TxHash:        "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4t",
			Timestamp:     now - 5*minute,
		},
		{
			ID:            "a7c9e1f3b5d7092b4d6f8a0c2e4f6a8b0c2d4e6f8a9b1c3d5e7f9a0b2c4d6e8f",
			WalletAddress: "HN7cABqLq46Es1jh92dQQisAq662SmxELLLsHHe4YWrH",
			WalletLabel:   "Whale #2",
			Action:        domain.WhaleSell,
			TokenSymbol:   "BULLA",
			AmountUSD:     48000,
			TokenAmount:   3_890_000_000,
			TxHash:        "3NQcVPsRiBkKHt4pVs8eiNAdHcBW86dcEV3Koro7BCsNL8GY3hSsVf5rjzRcYT2f",
			Timestamp:     now - 18*minute,
		},
		{
			ID:            "c2d4e6f8a0b1c3d5e7f90a2b4c6d8e0f1a3b5c7d9e2f4a6b8c0d1e3f5a7b9c2d",
			WalletAddress: "5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1",
			WalletLabel:   "Whale #3",
			Action:        domain.WhaleBuy,
			TokenSymbol:   "BONK",
			AmountUSD:     89000,
			TokenAmount:   4_128_000_000,
			TxHash:        "2xNwwNcGqyDK3XjMsYnGd3JmPR9QjcTGsF8x1t5rW7vBpUzKyLhDgE4aCbS6nM9e",
			Timestamp:     now - 32*minute,
		},
		{
			ID:            "e8f0a2b4c6d8e1f3a5b7c9d0e2f4a6b8c1d3e5f7a9b0c2d4e6f8a1b3c5d7e9f0",
			WalletAddress: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
			WalletLabel:   "Whale #1",
			Action:        domain.WhaleBuy,
			TokenSymbol:   "WIF",
			AmountUSD:     210000,
			TokenAmount:   85700,
			TxHash:        "4mPqRsTuVwXyZaBcDeFgHiJkLmNoPqRsTuVwXyZaBcDeFgHiJkLmNoPqRsTuVwXy",
			Timestamp:     now - 47*minute,
		},
	}
}
