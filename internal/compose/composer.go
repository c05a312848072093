// Package compose turns a classified intent plus state snapshots into the
// response envelope shown in chat. Composition is pure: identical inputs
// produce byte-identical envelopes.
package compose

import (
	"fmt"
	"strings"

	"token-copilot/internal/domain"
	"token-copilot/internal/format"
	"token-copilot/internal/intent"
)

// HelpText is the fixed reply for unmatched utterances.
const HelpText = `I can help you with:
• Watchlist: "add BULLA to my watchlist", "show my watchlist"
• Price alerts: "set alert if BULLA drops 20%"
• Token analysis: "analyze BULLA"
• Safety checks: "is PEPE safe"
• Whale activity: "show whale activity"
• Trading ideas: "should I buy WIF"
• Portfolio: "show my portfolio"
• Chart capture: "capture this chart"
• Thread generator: "write a thread"`

// apologyText replaces the reply when a snapshot the intent needs is missing.
const apologyText = "Sorry, I couldn't complete that right now. Please try again."

// defaultMonitoring lists what gets set up alongside a watchlist add.
var defaultMonitoring = []string{
	"Price alerts (±10%)",
	"Whale activity monitoring",
	"Safety score changes",
}

// Inputs carries the post-mutation state snapshots the composer renders from.
// Only the fields relevant to the intent need to be populated.
type Inputs struct {
	Watchlist  []*domain.WatchlistEntry
	Alerts     []*domain.AlertConfig
	Analysis   *domain.TokenAnalysisData
	Suggestion *domain.TradingSuggestionData
	Portfolio  *domain.PortfolioData
	Whale      *domain.WhaleActivityData
}

// Composer builds response envelopes from classified turns.
type Composer struct{}

// NewComposer creates a composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose renders the envelope for one turn. Malformed or missing captures
// never fail the turn: symbols fall back to the page context token and alert
// parameters fall back to documented defaults.
func (c *Composer) Compose(cls intent.Classification, pageCtx *domain.PageContext, in Inputs) *domain.ResponseEnvelope {
	switch cls.Intent {
	case intent.IntentAddWatchlist:
		return c.composeAdd(cls, pageCtx, in)
	case intent.IntentRemoveWatchlist:
		return c.composeRemove(cls, pageCtx, in)
	case intent.IntentShowWatchlist:
		return c.composeWatchlist(in)
	case intent.IntentSetAlert:
		return c.composeSetAlert(cls, pageCtx, in)
	case intent.IntentAnalyzeToken:
		return c.composeAnalysis(in, false)
	case intent.IntentSafetyCheck:
		return c.composeAnalysis(in, true)
	case intent.IntentShowWhaleActivity:
		return c.composeWhale(in)
	case intent.IntentTradingSuggestion:
		return c.composeSuggestion(in)
	case intent.IntentShowPortfolio:
		return c.composePortfolio(in)
	case intent.IntentCaptureChart:
		return c.composeChartCapture(cls, pageCtx)
	case intent.IntentGenerateThread:
		return c.composeThread(cls, pageCtx, in)
	default:
		return &domain.ResponseEnvelope{Text: HelpText}
	}
}

// Symbol resolves the token symbol for a turn: the first captured group when
// present, otherwise the page-context token. Always uppercased, "" when
// neither source has one.
func Symbol(groups []string, pageCtx *domain.PageContext) string {
	if len(groups) > 0 && groups[0] != "" {
		return strings.ToUpper(groups[0])
	}
	return strings.ToUpper(pageCtx.ContextSymbol())
}

func (c *Composer) composeAdd(cls intent.Classification, pageCtx *domain.PageContext, in Inputs) *domain.ResponseEnvelope {
	symbol := Symbol(cls.Groups, pageCtx)
	if symbol == "" {
		return &domain.ResponseEnvelope{
			Text: `Which token should I add? Open a token page or try "add BULLA to my watchlist".`,
		}
	}

	text := fmt.Sprintf("%s added to your watchlist. %s", symbol, trackingSummary(in.Watchlist))
	return &domain.ResponseEnvelope{
		Text: text,
		Widget: &domain.Widget{
			Kind: domain.WidgetActionConfirmation,
			ActionConfirmation: &domain.ActionConfirmationData{
				ActionType:  domain.ActionWatchlistAdd,
				TokenSymbol: symbol,
				Message:     fmt.Sprintf("%s added to your watchlist", symbol),
				Details:     defaultMonitoring,
			},
		},
	}
}

func (c *Composer) composeRemove(cls intent.Classification, pageCtx *domain.PageContext, in Inputs) *domain.ResponseEnvelope {
	symbol := Symbol(cls.Groups, pageCtx)
	if symbol == "" {
		return &domain.ResponseEnvelope{
			Text: `Which token should I remove? Try "remove BULLA from my watchlist".`,
		}
	}

	for _, e := range in.Watchlist {
		if e.Symbol == symbol {
			// Still present after the mutation ran, so nothing was removed.
			return &domain.ResponseEnvelope{
				Text: fmt.Sprintf("%s is still on your watchlist.", symbol),
			}
		}
	}

	return &domain.ResponseEnvelope{
		Text: fmt.Sprintf("%s removed from watchlist.", symbol),
		Widget: &domain.Widget{
			Kind: domain.WidgetActionConfirmation,
			ActionConfirmation: &domain.ActionConfirmationData{
				ActionType:  domain.ActionWatchlistRemove,
				TokenSymbol: symbol,
				Message:     fmt.Sprintf("%s removed from watchlist", symbol),
			},
		},
	}
}

func (c *Composer) composeWatchlist(in Inputs) *domain.ResponseEnvelope {
	text := "Your watchlist is empty. Add tokens to track them!"
	if len(in.Watchlist) > 0 {
		text = trackingSummary(in.Watchlist)
	}

	return &domain.ResponseEnvelope{
		Text: text,
		Widget: &domain.Widget{
			Kind:      domain.WidgetWatchlist,
			Watchlist: &domain.WatchlistData{Tokens: in.Watchlist},
		},
	}
}

func (c *Composer) composeSetAlert(cls intent.Classification, pageCtx *domain.PageContext, in Inputs) *domain.ResponseEnvelope {
	symbol := Symbol(cls.Groups, pageCtx)
	if symbol == "" {
		return &domain.ResponseEnvelope{
			Text: `Which token should I watch? Try "set alert if BULLA drops 20%".`,
		}
	}

	var cfg *domain.AlertConfig
	for _, a := range in.Alerts {
		if a.TokenSymbol == symbol {
			cfg = a
			break
		}
	}
	if cfg == nil {
		return &domain.ResponseEnvelope{Text: apologyText}
	}

	return &domain.ResponseEnvelope{
		Text: fmt.Sprintf("Alert configured for %s: %s. I'll notify you when it triggers.", symbol, cfg.Condition),
		Widget: &domain.Widget{
			Kind: domain.WidgetActionConfirmation,
			ActionConfirmation: &domain.ActionConfirmationData{
				ActionType:  domain.ActionAlertSet,
				TokenSymbol: symbol,
				Message:     fmt.Sprintf("Alert configured for %s", symbol),
				Details:     []string{cfg.Condition},
			},
		},
	}
}

func (c *Composer) composeAnalysis(in Inputs, safetyFocus bool) *domain.ResponseEnvelope {
	a := in.Analysis
	if a == nil {
		return &domain.ResponseEnvelope{Text: apologyText}
	}

	var text string
	if safetyFocus {
		text = fmt.Sprintf("%s safety score: %d/100 (%s). Top 10 holders own %.2f%% of supply.",
			a.Symbol, a.SafetyScore, SafetyLabel(a.SafetyScore), a.Top10HolderPercent)
		if a.Top10HolderPercent > 50 {
			text += " Holder concentration is high, proceed with caution."
		}
	} else {
		text = fmt.Sprintf("Here's my analysis of %s: trading at %s (%s 24h). Market cap %s, 24h volume %s, liquidity %s. Safety score %d/100 (%s).",
			a.Symbol,
			format.Price(a.Price),
			format.Percent(a.PriceChange24h),
			format.Currency(a.MarketCap),
			format.Currency(a.Volume24h),
			format.Currency(a.Liquidity),
			a.SafetyScore,
			SafetyLabel(a.SafetyScore),
		)
	}

	return &domain.ResponseEnvelope{
		Text: text,
		Widget: &domain.Widget{
			Kind:          domain.WidgetTokenAnalysis,
			TokenAnalysis: a,
		},
	}
}

func (c *Composer) composeWhale(in Inputs) *domain.ResponseEnvelope {
	w := in.Whale
	if w == nil {
		return &domain.ResponseEnvelope{Text: apologyText}
	}

	text := "No whale transactions observed recently."
	if len(w.Transactions) > 0 {
		flow := fmt.Sprintf("net inflow %s", format.Currency(w.Summary.NetFlowUSD))
		if w.Summary.NetFlowUSD < 0 {
			flow = fmt.Sprintf("net outflow %s", format.Currency(-w.Summary.NetFlowUSD))
		}
		text = fmt.Sprintf("Whale activity: %s in buys vs %s in sells (%s) from %d unique whales.",
			format.Currency(w.Summary.BuyVolumeUSD),
			format.Currency(w.Summary.SellVolumeUSD),
			flow,
			w.Summary.UniqueWhales,
		)
	}

	return &domain.ResponseEnvelope{
		Text: text,
		Widget: &domain.Widget{
			Kind:          domain.WidgetWhaleActivity,
			WhaleActivity: w,
		},
	}
}

func (c *Composer) composeSuggestion(in Inputs) *domain.ResponseEnvelope {
	s := in.Suggestion
	if s == nil {
		return &domain.ResponseEnvelope{Text: apologyText}
	}

	targets := make([]string, 0, len(s.Targets))
	for _, t := range s.Targets {
		targets = append(targets, format.Price(t))
	}

	text := fmt.Sprintf("Trade setup for %s: %s from %s, targets %s, stop %s (R/R %.1f). Not financial advice.",
		s.Symbol,
		s.Bias,
		format.Price(s.Entry),
		strings.Join(targets, " / "),
		format.Price(s.StopLoss),
		s.RiskReward,
	)

	return &domain.ResponseEnvelope{
		Text: text,
		Widget: &domain.Widget{
			Kind:              domain.WidgetTradingSuggestion,
			TradingSuggestion: s,
		},
	}
}

func (c *Composer) composePortfolio(in Inputs) *domain.ResponseEnvelope {
	p := in.Portfolio
	if p == nil {
		return &domain.ResponseEnvelope{Text: apologyText}
	}

	positions := "positions"
	if len(p.Holdings) == 1 {
		positions = "position"
	}
	text := fmt.Sprintf("Your portfolio is worth %s (%s in 24h) across %d %s.",
		format.Currency(p.TotalValueUSD),
		format.Percent(p.Change24hPercent),
		len(p.Holdings),
		positions,
	)

	return &domain.ResponseEnvelope{
		Text: text,
		Widget: &domain.Widget{
			Kind:      domain.WidgetPortfolio,
			Portfolio: p,
		},
	}
}

func (c *Composer) composeChartCapture(cls intent.Classification, pageCtx *domain.PageContext) *domain.ResponseEnvelope {
	symbol := Symbol(cls.Groups, pageCtx)

	text := "Chart capture ready. Use the capture tool to grab the current view."
	if symbol != "" {
		text = fmt.Sprintf("Chart capture ready for %s. Use the capture tool to grab the current view.", symbol)
	}

	pageType := domain.PageGeneric
	if pageCtx != nil && pageCtx.PageType.IsValid() {
		pageType = pageCtx.PageType
	}

	return &domain.ResponseEnvelope{
		Text: text,
		Widget: &domain.Widget{
			Kind: domain.WidgetChartCapture,
			ChartCapture: &domain.ChartCaptureData{
				TokenSymbol: symbol,
				PageType:    pageType,
				Note:        "Annotations can be added after capture.",
			},
		},
	}
}

func (c *Composer) composeThread(cls intent.Classification, pageCtx *domain.PageContext, in Inputs) *domain.ResponseEnvelope {
	symbol := Symbol(cls.Groups, pageCtx)
	a := in.Analysis
	if symbol == "" && a != nil {
		symbol = a.Symbol
	}
	if a == nil || symbol == "" {
		return &domain.ResponseEnvelope{
			Text: `Open a token page or name a token and I'll draft a thread about it.`,
		}
	}

	tweets := []string{
		fmt.Sprintf("1/ $%s is trading at %s, %s in the last 24h. Market cap sits at %s.",
			symbol, format.Price(a.Price), format.Percent(a.PriceChange24h), format.Currency(a.MarketCap)),
		fmt.Sprintf("2/ Liquidity: %s. Holders: %d, with the top 10 holding %.2f%% of supply.",
			format.Currency(a.Liquidity), a.HolderCount, a.Top10HolderPercent),
		fmt.Sprintf("3/ Safety score %d/100 (%s). Always do your own research. Not financial advice.",
			a.SafetyScore, SafetyLabel(a.SafetyScore)),
	}

	return &domain.ResponseEnvelope{
		Text: fmt.Sprintf("Here's a thread draft for $%s. Review before posting.", symbol),
		Widget: &domain.Widget{
			Kind: domain.WidgetThreadGenerator,
			Thread: &domain.ThreadData{
				TokenSymbol: symbol,
				Tweets:      tweets,
			},
		},
	}
}

// trackingSummary renders the "tracking N tokens" line with best and worst
// performer callouts.
func trackingSummary(entries []*domain.WatchlistEntry) string {
	if len(entries) == 0 {
		return "Your watchlist is empty. Add tokens to track them!"
	}

	best := entries[0]
	worst := entries[0]
	for _, e := range entries[1:] {
		if e.PriceChange24h > best.PriceChange24h {
			best = e
		}
		if e.PriceChange24h < worst.PriceChange24h {
			worst = e
		}
	}

	tokens := "tokens"
	if len(entries) == 1 {
		tokens = "token"
	}
	text := fmt.Sprintf("You're tracking %d %s. %s is your best performer (%s)",
		len(entries), tokens, best.Symbol, format.PercentShort(best.PriceChange24h))
	if worst != best && worst.PriceChange24h < 0 {
		text += fmt.Sprintf(" • %s needs attention (%s)", worst.Symbol, format.PercentShort(worst.PriceChange24h))
	}
	return text + "."
}

// SafetyLabel maps a safety score to its display band.
func SafetyLabel(score int) string {
	switch {
	case score >= 80:
		return "Low Risk"
	case score >= 60:
		return "Medium Risk"
	default:
		return "High Risk"
	}
}
