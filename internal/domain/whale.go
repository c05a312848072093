package domain

// WhaleAction distinguishes accumulation from distribution.
type WhaleAction string

const (
	WhaleBuy  WhaleAction = "buy"
	WhaleSell WhaleAction = "sell"
)

// String returns the string representation of WhaleAction.
func (a WhaleAction) String() string {
	return string(a)
}

// WhaleTransaction is one large on-chain trade observed for a token.
type WhaleTransaction struct {
	ID            string      `json:"id"` // deterministic, see idhash
	WalletAddress string      `json:"walletAddress"`
	WalletLabel   string      `json:"walletLabel,omitempty"` // e.g. "Whale #4", "Pool Vault"
	Action        WhaleAction `json:"action"`
	TokenSymbol   string      `json:"tokenSymbol"`
	AmountUSD     float64     `json:"amountUsd"`
	TokenAmount   float64     `json:"tokenAmount"`
	TxHash        string      `json:"txHash"`
	Timestamp     int64       `json:"timestamp"` // ms since epoch
}

// WhaleSummary aggregates recent whale flow.
type WhaleSummary struct {
	BuyVolumeUSD  float64 `json:"buyVolumeUsd"`
	SellVolumeUSD float64 `json:"sellVolumeUsd"`
	NetFlowUSD    float64 `json:"netFlowUsd"`
	UniqueWhales  int     `json:"uniqueWhales"`
}
