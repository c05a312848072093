package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"token-copilot/internal/compose"
	"token-copilot/internal/domain"
	"token-copilot/internal/observability"
	"token-copilot/internal/storage"
)

// Dispatcher maps widget button actions onto engine turns or direct store
// mutations. Most actions reduce to a synthesized utterance so that button
// presses and typed commands share one code path.
type Dispatcher struct {
	engine    *Engine
	watchlist storage.WatchlistStore
	alerts    storage.AlertStore
	logger    *log.Logger
}

// NewDispatcher creates a dispatcher over the engine and its stores.
func NewDispatcher(engine *Engine, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(os.Stderr, "[dispatch] ", log.LstdFlags)
	}
	return &Dispatcher{
		engine:    engine,
		watchlist: engine.watchlist,
		alerts:    engine.alerts,
		logger:    logger,
	}
}

// Dispatch executes one widget action and returns the follow-up envelope.
// Unknown action tags are logged and return nil without touching any store.
func (d *Dispatcher) Dispatch(ctx context.Context, action domain.ActionTag, payload domain.ActionPayload, pageCtx *domain.PageContext) *domain.ResponseEnvelope {
	observability.RecordWidgetAction(string(action))

	symbol := strings.ToUpper(payload.TokenSymbol)
	if symbol == "" {
		symbol = strings.ToUpper(pageCtx.ContextSymbol())
	}

	switch action {
	case domain.ActionViewWatchlist:
		return d.engine.ProcessTurn(ctx, "show my watchlist", pageCtx)

	case domain.ActionAddToWatchlist:
		if symbol == "" {
			return d.engine.ProcessTurn(ctx, "add to watchlist", pageCtx)
		}
		return d.engine.ProcessTurn(ctx, fmt.Sprintf("add %s to my watchlist", symbol), pageCtx)

	case domain.ActionRemoveFromWatchlist:
		return d.removeEntry(ctx, payload, symbol)

	case domain.ActionSetAlert:
		if symbol == "" {
			return d.engine.ProcessTurn(ctx, "set an alert", pageCtx)
		}
		return d.engine.ProcessTurn(ctx, fmt.Sprintf("set an alert for %s", symbol), pageCtx)

	case domain.ActionEditAlerts:
		return d.editAlerts(ctx, symbol)

	case domain.ActionAnalyzeToken, domain.ActionAnalyzeFurther:
		if symbol == "" {
			return d.engine.ProcessTurn(ctx, "analyze", pageCtx)
		}
		return d.engine.ProcessTurn(ctx, fmt.Sprintf("analyze %s", symbol), pageCtx)

	case domain.ActionTellMore:
		if symbol == "" {
			return d.engine.ProcessTurn(ctx, "tell me more", pageCtx)
		}
		return d.engine.ProcessTurn(ctx, fmt.Sprintf("tell me more about %s", symbol), pageCtx)

	default:
		d.logger.Printf("unknown widget action %q ignored", action)
		return nil
	}
}

// removeEntry removes a watchlist entry by ID when the payload carries one,
// falling back to a symbol lookup. The confirmation is composed directly so
// that ID-addressed removals work for symbols the matcher cannot capture.
func (d *Dispatcher) removeEntry(ctx context.Context, payload domain.ActionPayload, symbol string) *domain.ResponseEnvelope {
	entry := d.resolveEntry(ctx, payload, symbol)
	if entry == nil {
		return &domain.ResponseEnvelope{
			Text: "That token isn't on your watchlist.",
		}
	}

	if err := d.watchlist.Remove(ctx, entry.ID); err != nil {
		d.logger.Printf("watchlist remove %s: %v", entry.Symbol, err)
		observability.RecordStoreError("watchlist", "remove")
		return &domain.ResponseEnvelope{
			Text: "Sorry, I couldn't complete that right now. Please try again.",
		}
	}
	observability.RecordMutation("watchlist_remove")

	return &domain.ResponseEnvelope{
		Text: fmt.Sprintf("%s removed from watchlist.", entry.Symbol),
		Widget: &domain.Widget{
			Kind: domain.WidgetActionConfirmation,
			ActionConfirmation: &domain.ActionConfirmationData{
				ActionType:  domain.ActionWatchlistRemove,
				TokenSymbol: entry.Symbol,
				Message:     fmt.Sprintf("%s removed from watchlist", entry.Symbol),
			},
		},
	}
}

func (d *Dispatcher) resolveEntry(ctx context.Context, payload domain.ActionPayload, symbol string) *domain.WatchlistEntry {
	if payload.EntryID != "" {
		list, err := d.watchlist.List(ctx)
		if err != nil {
			d.logger.Printf("watchlist list: %v", err)
			observability.RecordStoreError("watchlist", "list")
			return nil
		}
		for _, e := range list {
			if e.ID == payload.EntryID {
				return e
			}
		}
		return nil
	}

	if symbol == "" {
		return nil
	}
	entry, err := d.watchlist.GetBySymbol(ctx, symbol)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			d.logger.Printf("watchlist lookup %s: %v", symbol, err)
			observability.RecordStoreError("watchlist", "get")
		}
		return nil
	}
	return entry
}

// editAlerts opens the alert config widget without mutating anything. The
// widget shows the stored config when one exists, otherwise a default draft
// the user can adjust before confirming.
func (d *Dispatcher) editAlerts(ctx context.Context, symbol string) *domain.ResponseEnvelope {
	if symbol == "" {
		return &domain.ResponseEnvelope{
			Text: `Which token's alerts should I open? Try "set alert if BULLA drops 20%".`,
		}
	}

	cfg, err := d.alerts.GetBySymbol(ctx, symbol)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			d.logger.Printf("alert lookup %s: %v", symbol, err)
			observability.RecordStoreError("alerts", "get")
		}
		req := compose.AlertRequest{
			Symbol:    symbol,
			Direction: compose.DefaultAlertDirection,
			Percent:   compose.DefaultAlertPercent,
		}
		cfg = compose.BuildAlertConfig(req, 0, d.engine.now())
	}

	return &domain.ResponseEnvelope{
		Text: fmt.Sprintf("Configure alerts for %s.", symbol),
		Widget: &domain.Widget{
			Kind:        domain.WidgetAlertConfig,
			AlertConfig: cfg,
		},
	}
}
