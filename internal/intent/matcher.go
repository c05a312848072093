package intent

import (
	"regexp"
	"strings"
)

// regexRule pairs a compiled pattern with the intent it recognizes.
// Rule order is the dispatch order: the first matching rule wins.
type regexRule struct {
	pattern *regexp.Regexp
	intent  Intent
}

// fallbackRule matches when the lowercased utterance contains every keyword.
// Fallbacks are tried only after every regex rule has failed, so they never
// shadow a more specific pattern.
type fallbackRule struct {
	keywords []string
	intent   Intent
}

var regexRules = []regexRule{
	// Watchlist mutations
	{regexp.MustCompile(`(?i)\badd\s+\$?([a-z0-9]+)\s+to\s+(?:my\s+|the\s+)?watchlist\b`), IntentAddWatchlist},
	{regexp.MustCompile(`(?i)\b(?:track|start\s+tracking)\s+\$?([a-z0-9]+)\b`), IntentAddWatchlist},
	{regexp.MustCompile(`(?i)\b(?:remove|delete|drop)\s+\$?([a-z0-9]+)\s+from\s+(?:my\s+|the\s+)?watchlist\b`), IntentRemoveWatchlist},
	{regexp.MustCompile(`(?i)\b(?:show|view|open|display)\s+(?:me\s+)?(?:my\s+|the\s+)?watchlist\b`), IntentShowWatchlist},

	// Alerts: full form (symbol, direction, percent) before the loose form.
	{regexp.MustCompile(`(?i)\b(?:set\s+(?:an?\s+)?alert|alert\s+me|notify\s+me)\s+(?:if|when|for)?\s*\$?([a-z0-9]+)\s+(drops?|falls?|pumps?|rises?|reach(?:es)?|hits?|changes?|moves?)(?:\s+(?:by|to|below|above))?\s+\$?(\d+(?:\.\d+)?)\s*%?`), IntentSetAlert},
	{regexp.MustCompile(`(?i)\b(?:set\s+(?:an?\s+)?alert|alert\s+me|notify\s+me)\s+(?:if|when|for|on)?\s*\$?([a-z0-9]+)\b`), IntentSetAlert},

	// Analysis
	{regexp.MustCompile(`(?i)\banaly[sz]e\s+\$?([a-z0-9]+)\b`), IntentAnalyzeToken},
	{regexp.MustCompile(`(?i)\b(?:analysis|deep\s+dive)\s+(?:of|on|for)\s+\$?([a-z0-9]+)\b`), IntentAnalyzeToken},
	{regexp.MustCompile(`(?i)\btell\s+me\s+(?:more\s+)?about\s+\$?([a-z0-9]+)\b`), IntentAnalyzeToken},

	// Safety
	{regexp.MustCompile(`(?i)\bis\s+\$?([a-z0-9]+)\s+(?:safe|legit|risky|a\s+rug|a\s+scam)\b`), IntentSafetyCheck},
	{regexp.MustCompile(`(?i)\b(?:safety|rug)\s+check\s+(?:on\s+|for\s+)?\$?([a-z0-9]+)\b`), IntentSafetyCheck},
	{regexp.MustCompile(`(?i)\bhow\s+safe\s+is\s+\$?([a-z0-9]+)\b`), IntentSafetyCheck},

	// Trading suggestions
	{regexp.MustCompile(`(?i)\bshould\s+i\s+(?:buy|sell|long|short|ape\s+into)\s+\$?([a-z0-9]+)\b`), IntentTradingSuggestion},
	{regexp.MustCompile(`(?i)\btrad(?:e|ing)\s+(?:suggestion|idea|setup|plan)s?\s+(?:for\s+|on\s+)?\$?([a-z0-9]+)\b`), IntentTradingSuggestion},
	{regexp.MustCompile(`(?i)\b(?:entry|long|short)\s+(?:for|on)\s+\$?([a-z0-9]+)\b`), IntentTradingSuggestion},

	// No-capture views
	{regexp.MustCompile(`(?i)\bwhales?\b`), IntentShowWhaleActivity},
	{regexp.MustCompile(`(?i)\b(?:show|view|open|display)\s+(?:me\s+)?(?:my\s+)?portfolio\b`), IntentShowPortfolio},
	{regexp.MustCompile(`(?i)\bhow\s+(?:is|are)\s+my\s+(?:portfolio|bags|holdings)\b`), IntentShowPortfolio},
	{regexp.MustCompile(`(?i)\b(?:capture|screenshot|snap|grab)\b.*\bchart\b`), IntentCaptureChart},
	{regexp.MustCompile(`(?i)\bchart\s+capture\b`), IntentCaptureChart},
	{regexp.MustCompile(`(?i)\b(?:generate|create|write|make)\s+(?:a\s+)?(?:twitter\s+)?thread\b`), IntentGenerateThread},
}

var fallbackRules = []fallbackRule{
	{[]string{"add", "watchlist"}, IntentAddWatchlist},
	{[]string{"remove", "watchlist"}, IntentRemoveWatchlist},
	{[]string{"watchlist"}, IntentShowWatchlist},
	{[]string{"alert"}, IntentSetAlert},
	{[]string{"analy"}, IntentAnalyzeToken},
	{[]string{"safe"}, IntentSafetyCheck},
	{[]string{"rug"}, IntentSafetyCheck},
	{[]string{"whale"}, IntentShowWhaleActivity},
	{[]string{"trade"}, IntentTradingSuggestion},
	{[]string{"portfolio"}, IntentShowPortfolio},
	{[]string{"chart"}, IntentCaptureChart},
	{[]string{"thread"}, IntentGenerateThread},
}

// Matcher classifies utterances against an ordered rule table.
// It is stateless and safe for concurrent use.
type Matcher struct {
	rules     []regexRule
	fallbacks []fallbackRule
}

// NewMatcher creates a matcher with the default rule table.
func NewMatcher() *Matcher {
	return &Matcher{rules: regexRules, fallbacks: fallbackRules}
}

// Classify matches the utterance against every regex rule in order, then
// against the substring fallbacks. The first hit wins. Utterances matching
// nothing classify as IntentUnmatched; Classify never fails.
func (m *Matcher) Classify(utterance string) Classification {
	for _, r := range m.rules {
		match := r.pattern.FindStringSubmatch(utterance)
		if match == nil {
			continue
		}
		return Classification{Intent: r.intent, Groups: match[1:]}
	}

	lower := strings.ToLower(utterance)
	for _, f := range m.fallbacks {
		if containsAll(lower, f.keywords) {
			return Classification{Intent: f.intent}
		}
	}

	return Classification{Intent: IntentUnmatched}
}

func containsAll(s string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(s, kw) {
			return false
		}
	}
	return true
}
