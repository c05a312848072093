// Package intent classifies free-text utterances against a fixed rule table.
package intent

// Intent is the classified purpose of a user utterance.
type Intent string

const (
	IntentAddWatchlist      Intent = "ADD_WATCHLIST"
	IntentRemoveWatchlist   Intent = "REMOVE_WATCHLIST"
	IntentShowWatchlist     Intent = "SHOW_WATCHLIST"
	IntentSetAlert          Intent = "SET_ALERT"
	IntentAnalyzeToken      Intent = "ANALYZE_TOKEN"
	IntentSafetyCheck       Intent = "SAFETY_CHECK"
	IntentShowWhaleActivity Intent = "SHOW_WHALE_ACTIVITY"
	IntentTradingSuggestion Intent = "TRADING_SUGGESTION"
	IntentShowPortfolio     Intent = "SHOW_PORTFOLIO"
	IntentCaptureChart      Intent = "CAPTURE_CHART"
	IntentGenerateThread    Intent = "GENERATE_THREAD"
	IntentUnmatched         Intent = "UNMATCHED"
)

// String returns the string representation of Intent.
func (i Intent) String() string {
	return string(i)
}

// Classification is the result of matching one utterance.
// Groups holds the raw regex captures in pattern order; substring fallback
// matches carry no groups.
type Classification struct {
	Intent Intent
	Groups []string
}
