package domain

// AlertDirection describes what kind of price movement triggers an alert.
type AlertDirection string

const (
	AlertDrop   AlertDirection = "drop"
	AlertPump   AlertDirection = "pump"
	AlertReach  AlertDirection = "reach"
	AlertChange AlertDirection = "change"
)

// String returns the string representation of AlertDirection.
func (d AlertDirection) String() string {
	return string(d)
}

// IsValid checks if the direction is a valid value.
func (d AlertDirection) IsValid() bool {
	switch d {
	case AlertDrop, AlertPump, AlertReach, AlertChange:
		return true
	}
	return false
}

// AlertChannels selects where a triggered alert is delivered.
type AlertChannels struct {
	Browser bool `json:"browser"`
	InApp   bool `json:"inApp"`
	Email   bool `json:"email"`
}

// AlertConfig is the single active alert configuration for a token.
// One config per normalized symbol; a new set-alert fully replaces the old one.
type AlertConfig struct {
	TokenSymbol  string         `json:"tokenSymbol"` // normalized (uppercase) key
	Condition    string         `json:"condition"`   // human-readable, e.g. "Price drops 20%"
	Direction    AlertDirection `json:"direction"`
	Percent      float64        `json:"percent"`
	CurrentPrice float64        `json:"currentPrice"` // snapshot at configuration time
	TriggerPrice float64        `json:"triggerPrice"`
	Channels     AlertChannels  `json:"channels"`
	CreatedAt    int64          `json:"createdAt"` // ms since epoch
}
