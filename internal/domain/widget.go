package domain

// WidgetKind tags the widget payload union.
type WidgetKind string

const (
	WidgetActionConfirmation WidgetKind = "action_confirmation"
	WidgetWatchlist          WidgetKind = "watchlist"
	WidgetAlertConfig        WidgetKind = "alert_config"
	WidgetTokenAnalysis      WidgetKind = "token_analysis"
	WidgetWhaleActivity      WidgetKind = "whale_activity"
	WidgetTradingSuggestion  WidgetKind = "trading_suggestion"
	WidgetPortfolio          WidgetKind = "portfolio"
	WidgetChartCapture       WidgetKind = "chart_capture"
	WidgetThreadGenerator    WidgetKind = "thread_generator"
)

// String returns the string representation of WidgetKind.
func (k WidgetKind) String() string {
	return string(k)
}

// ConfirmedAction identifies which state change an action_confirmation reports.
type ConfirmedAction string

const (
	ActionWatchlistAdd    ConfirmedAction = "watchlist_add"
	ActionWatchlistRemove ConfirmedAction = "watchlist_remove"
	ActionAlertSet        ConfirmedAction = "alert_set"
	ActionAlertDelete     ConfirmedAction = "alert_delete"
)

// ActionConfirmationData backs the action_confirmation widget.
type ActionConfirmationData struct {
	ActionType  ConfirmedAction `json:"actionType"`
	TokenSymbol string          `json:"tokenSymbol"`
	Message     string          `json:"message"`
	Details     []string        `json:"details,omitempty"`
}

// WatchlistData backs the watchlist widget.
type WatchlistData struct {
	Tokens []*WatchlistEntry `json:"tokens"`
}

// WhaleActivityData backs the whale_activity widget.
type WhaleActivityData struct {
	Transactions []*WhaleTransaction `json:"transactions"`
	Summary      WhaleSummary        `json:"summary"`
}

// ChartCaptureData backs the chart_capture widget.
type ChartCaptureData struct {
	TokenSymbol string   `json:"tokenSymbol"`
	PageType    PageType `json:"pageType"`
	Note        string   `json:"note"`
}

// ThreadData backs the thread_generator widget.
type ThreadData struct {
	TokenSymbol string   `json:"tokenSymbol"`
	Tweets      []string `json:"tweets"`
}

// Widget is the tagged union of all widget payloads. Exactly the field
// matching Kind is non-nil.
type Widget struct {
	Kind               WidgetKind              `json:"kind"`
	ActionConfirmation *ActionConfirmationData `json:"actionConfirmation,omitempty"`
	Watchlist          *WatchlistData          `json:"watchlist,omitempty"`
	AlertConfig        *AlertConfig            `json:"alertConfig,omitempty"`
	TokenAnalysis      *TokenAnalysisData      `json:"tokenAnalysis,omitempty"`
	WhaleActivity      *WhaleActivityData      `json:"whaleActivity,omitempty"`
	TradingSuggestion  *TradingSuggestionData  `json:"tradingSuggestion,omitempty"`
	Portfolio          *PortfolioData          `json:"portfolio,omitempty"`
	ChartCapture       *ChartCaptureData       `json:"chartCapture,omitempty"`
	Thread             *ThreadData             `json:"thread,omitempty"`
}
