package compose

import (
	"fmt"
	"strconv"
	"strings"

	"token-copilot/internal/domain"
	"token-copilot/internal/format"
)

// Documented defaults for malformed or missing alert captures.
const (
	DefaultAlertPercent   = 20.0
	DefaultAlertDirection = domain.AlertDrop
)

// AlertRequest is the normalized form of a set-alert turn.
type AlertRequest struct {
	Symbol    string
	Direction domain.AlertDirection
	Percent   float64
}

// ParseAlertRequest normalizes the captures of a set-alert classification.
// Missing or unparsable captures take the documented defaults instead of
// failing the turn: 20 for the percentage, drop for the direction.
func ParseAlertRequest(groups []string, pageCtx *domain.PageContext) AlertRequest {
	req := AlertRequest{
		Symbol:    Symbol(groups, pageCtx),
		Direction: DefaultAlertDirection,
		Percent:   DefaultAlertPercent,
	}

	if len(groups) > 1 {
		if d, ok := normalizeDirection(groups[1]); ok {
			req.Direction = d
		}
	}
	if len(groups) > 2 {
		if v, err := strconv.ParseFloat(groups[2], 64); err == nil && v > 0 {
			req.Percent = v
		}
	}

	return req
}

func normalizeDirection(word string) (domain.AlertDirection, bool) {
	w := strings.ToLower(word)
	switch {
	case strings.HasPrefix(w, "drop"), strings.HasPrefix(w, "fall"):
		return domain.AlertDrop, true
	case strings.HasPrefix(w, "pump"), strings.HasPrefix(w, "rise"):
		return domain.AlertPump, true
	case strings.HasPrefix(w, "reach"), strings.HasPrefix(w, "hit"):
		return domain.AlertReach, true
	case strings.HasPrefix(w, "change"), strings.HasPrefix(w, "move"):
		return domain.AlertChange, true
	}
	return "", false
}

// BuildAlertConfig materializes a config from a normalized request and the
// token's current price. For reach alerts the captured number is the target
// price itself; for the percentage directions it is relative to currentPrice.
func BuildAlertConfig(req AlertRequest, currentPrice float64, now int64) *domain.AlertConfig {
	pct := strconv.FormatFloat(req.Percent, 'f', -1, 64)

	var condition string
	var trigger float64
	switch req.Direction {
	case domain.AlertPump:
		condition = fmt.Sprintf("Price pumps %s%%", pct)
		trigger = currentPrice * (1 + req.Percent/100)
	case domain.AlertReach:
		condition = fmt.Sprintf("Price reaches %s", format.Price(req.Percent))
		trigger = req.Percent
	case domain.AlertChange:
		condition = fmt.Sprintf("Price changes %s%%", pct)
		trigger = currentPrice * (1 + req.Percent/100)
	default:
		condition = fmt.Sprintf("Price drops %s%%", pct)
		trigger = currentPrice * (1 - req.Percent/100)
	}

	return &domain.AlertConfig{
		TokenSymbol:  req.Symbol,
		Condition:    condition,
		Direction:    req.Direction,
		Percent:      req.Percent,
		CurrentPrice: currentPrice,
		TriggerPrice: trigger,
		Channels:     domain.AlertChannels{Browser: true, InApp: true},
		CreatedAt:    now,
	}
}
