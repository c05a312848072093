package domain

// WatchlistEntry represents one tracked token.
// At most one entry exists per normalized symbol.
type WatchlistEntry struct {
	ID              string  `json:"id"`     // deterministic, see idhash
	Symbol          string  `json:"symbol"` // normalized (uppercase) unique key
	Name            string  `json:"name"`
	Chain           string  `json:"chain"`
	ContractAddress string  `json:"contractAddress"`
	Price           float64 `json:"price"`
	PriceChange24h  float64 `json:"priceChange24h"`
	HasAlerts       bool    `json:"hasAlerts"`
	AlertCount      int     `json:"alertCount"`
	AddedAt         int64   `json:"addedAt"` // ms since epoch
}
