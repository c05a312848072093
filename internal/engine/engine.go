// Package engine orchestrates one conversation turn: classify the utterance,
// apply store mutations, then compose the response from post-mutation state.
package engine

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"token-copilot/internal/chainaddr"
	"token-copilot/internal/compose"
	"token-copilot/internal/domain"
	"token-copilot/internal/idhash"
	"token-copilot/internal/intent"
	"token-copilot/internal/market"
	"token-copilot/internal/notify"
	"token-copilot/internal/observability"
	"token-copilot/internal/storage"
)

// whaleWindow bounds the summary aggregation for the whale view.
const whaleWindow = time.Hour

// whaleFeedLimit bounds how many transactions the whale widget carries.
const whaleFeedLimit = 10

// Options configures an Engine.
type Options struct {
	Watchlist storage.WatchlistStore
	Alerts    storage.AlertStore
	Whales    storage.WhaleEventStore
	Provider  market.AnalysisProvider

	// Publisher receives upserted alert configs for external delivery.
	// Optional; nil disables publishing.
	Publisher notify.AlertPublisher

	Logger *log.Logger

	// Now overrides the clock in tests. Returns ms since epoch.
	Now func() int64
}

// Engine processes turns against the watchlist and alert state.
// Turns are processed strictly in submission order by the caller; the stores
// themselves are safe for concurrent use.
type Engine struct {
	matcher   *intent.Matcher
	composer  *compose.Composer
	watchlist storage.WatchlistStore
	alerts    storage.AlertStore
	whales    storage.WhaleEventStore
	provider  market.AnalysisProvider
	publisher notify.AlertPublisher
	logger    *log.Logger
	now       func() int64
}

// NewEngine creates an engine from options. Watchlist, Alerts and Provider
// are required; Whales, Publisher, Logger and Now are optional.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[engine] ", log.LstdFlags)
	}
	now := opts.Now
	if now == nil {
		now = func() int64 { return time.Now().UnixMilli() }
	}

	return &Engine{
		matcher:   intent.NewMatcher(),
		composer:  compose.NewComposer(),
		watchlist: opts.Watchlist,
		alerts:    opts.Alerts,
		whales:    opts.Whales,
		provider:  opts.Provider,
		publisher: opts.Publisher,
		logger:    logger,
		now:       now,
	}
}

// ProcessTurn classifies the utterance, applies any store mutation the intent
// requires, and composes the response from the post-mutation snapshots.
// It never fails a turn: classification misses degrade to the help text and
// store or provider errors degrade to an apologetic reply.
func (e *Engine) ProcessTurn(ctx context.Context, utterance string, pageCtx *domain.PageContext) *domain.ResponseEnvelope {
	start := time.Now()
	cls := e.matcher.Classify(utterance)

	in := e.prepare(ctx, cls, pageCtx)
	env := e.composer.Compose(cls, pageCtx, in)

	observability.RecordTurn(cls.Intent.String(), time.Since(start).Seconds())
	return env
}

// prepare runs the mutation phase and gathers the snapshots the composer
// needs. Mutations are applied before composing and are not rolled back.
func (e *Engine) prepare(ctx context.Context, cls intent.Classification, pageCtx *domain.PageContext) compose.Inputs {
	var in compose.Inputs

	switch cls.Intent {
	case intent.IntentAddWatchlist:
		e.mutateAdd(ctx, cls, pageCtx)
		in.Watchlist = e.listWatchlist(ctx)

	case intent.IntentRemoveWatchlist:
		e.mutateRemove(ctx, cls, pageCtx)
		in.Watchlist = e.listWatchlist(ctx)

	case intent.IntentShowWatchlist:
		in.Watchlist = e.listWatchlist(ctx)

	case intent.IntentSetAlert:
		e.mutateSetAlert(ctx, cls, pageCtx)
		in.Alerts = e.listAlerts(ctx)

	case intent.IntentAnalyzeToken, intent.IntentSafetyCheck, intent.IntentGenerateThread:
		in.Analysis = e.fetchAnalysis(ctx, compose.Symbol(cls.Groups, pageCtx))

	case intent.IntentShowWhaleActivity:
		in.Whale = e.fetchWhaleActivity(ctx)

	case intent.IntentTradingSuggestion:
		symbol := compose.Symbol(cls.Groups, pageCtx)
		if symbol != "" {
			s, err := e.provider.TradingSuggestion(ctx, symbol)
			if err != nil {
				e.logger.Printf("trading suggestion for %s: %v", symbol, err)
				observability.RecordProviderError("trading_suggestion")
			} else {
				in.Suggestion = s
			}
		}

	case intent.IntentShowPortfolio:
		p, err := e.provider.Portfolio(ctx)
		if err != nil {
			e.logger.Printf("portfolio fetch: %v", err)
			observability.RecordProviderError("portfolio")
		} else {
			in.Portfolio = p
		}
	}

	return in
}

// mutateAdd inserts the watchlist entry before composing so the widget and
// the best-performer callout see the post-mutation state.
func (e *Engine) mutateAdd(ctx context.Context, cls intent.Classification, pageCtx *domain.PageContext) {
	symbol := compose.Symbol(cls.Groups, pageCtx)
	if symbol == "" {
		return
	}

	entry := e.buildEntry(ctx, symbol, pageCtx)
	if err := e.watchlist.Add(ctx, entry); err != nil {
		e.logger.Printf("watchlist add %s: %v", symbol, err)
		observability.RecordStoreError("watchlist", "add")
		return
	}
	observability.RecordMutation("watchlist_add")

	// Carry an existing alert config over onto the fresh entry.
	if _, err := e.alerts.GetBySymbol(ctx, symbol); err == nil {
		if err := e.watchlist.SetAlertCount(ctx, symbol, 1); err != nil {
			e.logger.Printf("watchlist alert count %s: %v", symbol, err)
		}
	}
}

func (e *Engine) mutateRemove(ctx context.Context, cls intent.Classification, pageCtx *domain.PageContext) {
	symbol := compose.Symbol(cls.Groups, pageCtx)
	if symbol == "" {
		return
	}

	entry, err := e.watchlist.GetBySymbol(ctx, symbol)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			e.logger.Printf("watchlist lookup %s: %v", symbol, err)
			observability.RecordStoreError("watchlist", "get")
		}
		return
	}

	if err := e.watchlist.Remove(ctx, entry.ID); err != nil {
		e.logger.Printf("watchlist remove %s: %v", symbol, err)
		observability.RecordStoreError("watchlist", "remove")
		return
	}
	observability.RecordMutation("watchlist_remove")
}

func (e *Engine) mutateSetAlert(ctx context.Context, cls intent.Classification, pageCtx *domain.PageContext) {
	req := compose.ParseAlertRequest(cls.Groups, pageCtx)
	if req.Symbol == "" {
		return
	}

	var currentPrice float64
	if analysis := e.fetchAnalysis(ctx, req.Symbol); analysis != nil {
		currentPrice = analysis.Price
	} else if pageCtx != nil && pageCtx.TokenData != nil && pageCtx.TokenData.Price != nil {
		currentPrice = *pageCtx.TokenData.Price
	}

	cfg := compose.BuildAlertConfig(req, currentPrice, e.now())
	if err := e.alerts.Upsert(ctx, cfg); err != nil {
		e.logger.Printf("alert upsert %s: %v", req.Symbol, err)
		observability.RecordStoreError("alerts", "upsert")
		return
	}
	observability.RecordMutation("alert_set")

	if err := e.watchlist.SetAlertCount(ctx, req.Symbol, 1); err != nil {
		e.logger.Printf("watchlist alert count %s: %v", req.Symbol, err)
	}

	if e.publisher != nil {
		if err := e.publisher.PublishAlert(ctx, cfg); err != nil {
			e.logger.Printf("alert publish %s: %v", req.Symbol, err)
			observability.RecordPublishError()
		} else {
			observability.RecordAlertPublished()
		}
	}
}

// buildEntry assembles a watchlist entry from provider data and page context.
// Provider failures degrade to the page-context fields alone.
func (e *Engine) buildEntry(ctx context.Context, symbol string, pageCtx *domain.PageContext) *domain.WatchlistEntry {
	entry := &domain.WatchlistEntry{
		Symbol:  symbol,
		Name:    symbol,
		Chain:   "solana",
		AddedAt: e.now(),
	}

	if analysis := e.fetchAnalysis(ctx, symbol); analysis != nil {
		entry.Name = analysis.Name
		entry.Chain = analysis.Chain
		entry.Price = analysis.Price
		entry.PriceChange24h = analysis.PriceChange24h
	}

	if pageCtx != nil && pageCtx.TokenData != nil {
		td := pageCtx.TokenData
		if td.Chain != "" {
			entry.Chain = td.Chain
		}
		if td.PairAddress != "" {
			if err := chainaddr.Validate(td.PairAddress); err != nil {
				e.logger.Printf("contract address for %s: %v", symbol, err)
			} else {
				entry.ContractAddress = td.PairAddress
			}
		}
		if td.Price != nil {
			entry.Price = *td.Price
		}
		if td.PriceChange24h != nil {
			entry.PriceChange24h = *td.PriceChange24h
		}
		if td.TokenName != nil {
			entry.Name = *td.TokenName
		}
	}

	entry.ID = idhash.ComputeEntryID(entry.Symbol, entry.Chain, entry.ContractAddress)
	return entry
}

func (e *Engine) fetchAnalysis(ctx context.Context, symbol string) *domain.TokenAnalysisData {
	if symbol == "" {
		return nil
	}
	analysis, err := e.provider.TokenAnalysis(ctx, symbol)
	if err != nil {
		e.logger.Printf("token analysis for %s: %v", symbol, err)
		observability.RecordProviderError("token_analysis")
		return nil
	}
	return analysis
}

func (e *Engine) fetchWhaleActivity(ctx context.Context) *domain.WhaleActivityData {
	if e.whales == nil {
		return &domain.WhaleActivityData{}
	}

	txs, err := e.whales.Recent(ctx, whaleFeedLimit)
	if err != nil {
		e.logger.Printf("whale feed: %v", err)
		observability.RecordStoreError("whales", "recent")
		return nil
	}

	// Sources that don't label wallets get a curve-based label.
	for _, tx := range txs {
		if tx.WalletLabel == "" {
			tx.WalletLabel = chainaddr.WalletLabel(tx.WalletAddress)
		}
	}

	since := e.now() - whaleWindow.Milliseconds()
	summary, err := e.whales.Summary(ctx, since)
	if err != nil {
		e.logger.Printf("whale summary: %v", err)
		observability.RecordStoreError("whales", "summary")
		return nil
	}

	return &domain.WhaleActivityData{Transactions: txs, Summary: *summary}
}

func (e *Engine) listWatchlist(ctx context.Context) []*domain.WatchlistEntry {
	list, err := e.watchlist.List(ctx)
	if err != nil {
		e.logger.Printf("watchlist list: %v", err)
		observability.RecordStoreError("watchlist", "list")
		return nil
	}
	return list
}

func (e *Engine) listAlerts(ctx context.Context) []*domain.AlertConfig {
	list, err := e.alerts.List(ctx)
	if err != nil {
		e.logger.Printf("alert list: %v", err)
		observability.RecordStoreError("alerts", "list")
		return nil
	}
	return list
}
