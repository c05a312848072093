package domain

// PageType identifies the kind of page the browser client is looking at.
type PageType string

const (
	PageDexscreener PageType = "dexscreener"
	PageCoingecko   PageType = "coingecko"
	PageTwitter     PageType = "twitter"
	PageGeneric     PageType = "generic"
)

// String returns the string representation of PageType.
func (p PageType) String() string {
	return string(p)
}

// IsValid checks if the page type is a valid value.
func (p PageType) IsValid() bool {
	switch p {
	case PageDexscreener, PageCoingecko, PageTwitter, PageGeneric:
		return true
	}
	return false
}

// TokenSnapshot is an immutable view of the token shown on the current page,
// as reported by the external content detector. Optional fields are nil when
// the detector could not extract them.
type TokenSnapshot struct {
	Chain          string   `json:"chain"`
	PairAddress    string   `json:"pairAddress"`
	TokenSymbol    *string  `json:"tokenSymbol,omitempty"`
	TokenName      *string  `json:"tokenName,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	PriceChange24h *float64 `json:"priceChange24h,omitempty"`
	Volume24h      *float64 `json:"volume24h,omitempty"`
	Liquidity      *float64 `json:"liquidity,omitempty"`
}

// PageContext carries the ambient page state for one conversation turn.
// It is supplied externally per turn and read-only to the engine.
type PageContext struct {
	PageType  PageType       `json:"pageType"`
	TokenData *TokenSnapshot `json:"tokenData,omitempty"`
}

// ContextSymbol returns the page token symbol, or "" when no token is detected.
func (c *PageContext) ContextSymbol() string {
	if c == nil || c.TokenData == nil || c.TokenData.TokenSymbol == nil {
		return ""
	}
	return *c.TokenData.TokenSymbol
}
