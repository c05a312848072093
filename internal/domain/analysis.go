package domain

// TokenAnalysisData backs the token_analysis widget.
type TokenAnalysisData struct {
	Symbol             string  `json:"symbol"`
	Name               string  `json:"name"`
	Chain              string  `json:"chain"`
	Price              float64 `json:"price"`
	PriceChange24h     float64 `json:"priceChange24h"`
	MarketCap          float64 `json:"marketCap"`
	Volume24h          float64 `json:"volume24h"`
	Liquidity          float64 `json:"liquidity"`
	SafetyScore        int     `json:"safetyScore"` // 0-100, higher is safer
	HolderCount        int     `json:"holderCount"`
	Top10HolderPercent float64 `json:"top10HolderPercent"`
}

// TechnicalLevels are support/resistance price levels for a suggestion.
type TechnicalLevels struct {
	Support    []float64 `json:"support"`
	Resistance []float64 `json:"resistance"`
}

// TradingSuggestionData backs the trading_suggestion widget.
type TradingSuggestionData struct {
	Symbol          string          `json:"symbol"`
	Bias            string          `json:"bias"` // "long" or "short"
	Entry           float64         `json:"entry"`
	Targets         []float64       `json:"targets"`
	StopLoss        float64         `json:"stopLoss"`
	RiskReward      float64         `json:"riskReward"`
	TechnicalLevels TechnicalLevels `json:"technicalLevels"`
	Reasoning       []string        `json:"reasoning"`
}

// PortfolioHolding is one position in the portfolio view.
type PortfolioHolding struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Amount            float64 `json:"amount"`
	ValueUSD          float64 `json:"valueUsd"`
	Change24hPercent  float64 `json:"change24hPercent"`
	AllocationPercent float64 `json:"allocationPercent"`
}

// PortfolioData backs the portfolio widget.
type PortfolioData struct {
	TotalValueUSD    float64            `json:"totalValueUsd"`
	Change24hPercent float64            `json:"change24hPercent"`
	Holdings         []PortfolioHolding `json:"holdings"`
}
