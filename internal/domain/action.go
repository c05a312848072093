package domain

// ActionTag identifies a follow-up action emitted by a rendered widget.
// The set is closed; unknown tags are logged and ignored.
type ActionTag string

const (
	ActionViewWatchlist       ActionTag = "view_watchlist"
	ActionEditAlerts          ActionTag = "edit_alerts"
	ActionAnalyzeToken        ActionTag = "analyze_token"
	ActionRemoveFromWatchlist ActionTag = "remove_from_watchlist"
	ActionAddToWatchlist      ActionTag = "add_to_watchlist"
	ActionSetAlert            ActionTag = "set_alert"
	ActionAnalyzeFurther      ActionTag = "analyze_further"
	ActionTellMore            ActionTag = "tell_more"
)

// String returns the string representation of ActionTag.
func (a ActionTag) String() string {
	return string(a)
}

// IsValid checks if the tag belongs to the closed action set.
func (a ActionTag) IsValid() bool {
	switch a {
	case ActionViewWatchlist, ActionEditAlerts, ActionAnalyzeToken,
		ActionRemoveFromWatchlist, ActionAddToWatchlist, ActionSetAlert,
		ActionAnalyzeFurther, ActionTellMore:
		return true
	}
	return false
}

// ActionPayload carries the target of a widget action. Fields are optional;
// which ones matter depends on the tag.
type ActionPayload struct {
	EntryID     string `json:"entryId,omitempty"`
	TokenSymbol string `json:"tokenSymbol,omitempty"`
}
