package engine

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"token-copilot/internal/compose"
	"token-copilot/internal/domain"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *Engine) {
	t.Helper()
	e, _, _, _ := newTestEngine(t)
	return NewDispatcher(e, log.New(io.Discard, "", 0)), e
}

func TestDispatch_ViewWatchlist(t *testing.T) {
	d, e := newTestDispatcher(t)
	ctx := context.Background()

	e.ProcessTurn(ctx, "add BULLA to my watchlist", nil)

	env := d.Dispatch(ctx, domain.ActionViewWatchlist, domain.ActionPayload{}, nil)
	if env == nil || env.Widget == nil || env.Widget.Kind != domain.WidgetWatchlist {
		t.Fatalf("expected watchlist widget, got %+v", env)
	}
	if len(env.Widget.Watchlist.Tokens) != 1 {
		t.Errorf("expected 1 token, got %d", len(env.Widget.Watchlist.Tokens))
	}
}

func TestDispatch_AddToWatchlist(t *testing.T) {
	d, e := newTestDispatcher(t)
	ctx := context.Background()

	env := d.Dispatch(ctx, domain.ActionAddToWatchlist, domain.ActionPayload{TokenSymbol: "wif"}, nil)
	if env == nil || !strings.HasPrefix(env.Text, "WIF added to your watchlist.") {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	if _, err := e.watchlist.GetBySymbol(ctx, "WIF"); err != nil {
		t.Errorf("WIF not stored: %v", err)
	}
}

func TestDispatch_RemoveByEntryID(t *testing.T) {
	d, e := newTestDispatcher(t)
	ctx := context.Background()

	e.ProcessTurn(ctx, "add BULLA to my watchlist", nil)
	entry, err := e.watchlist.GetBySymbol(ctx, "BULLA")
	if err != nil {
		t.Fatalf("GetBySymbol failed: %v", err)
	}

	env := d.Dispatch(ctx, domain.ActionRemoveFromWatchlist, domain.ActionPayload{EntryID: entry.ID}, nil)
	if env == nil || env.Text != "BULLA removed from watchlist." {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Widget == nil || env.Widget.Kind != domain.WidgetActionConfirmation {
		t.Fatalf("expected action_confirmation widget, got %+v", env.Widget)
	}
	if env.Widget.ActionConfirmation.ActionType != domain.ActionWatchlistRemove {
		t.Errorf("actionType = %q", env.Widget.ActionConfirmation.ActionType)
	}

	if _, err := e.watchlist.GetBySymbol(ctx, "BULLA"); err == nil {
		t.Error("entry still present after remove")
	}
}

func TestDispatch_RemoveMissingToken(t *testing.T) {
	d, _ := newTestDispatcher(t)

	env := d.Dispatch(context.Background(), domain.ActionRemoveFromWatchlist, domain.ActionPayload{TokenSymbol: "DOGE"}, nil)
	if env == nil || env.Text != "That token isn't on your watchlist." {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Widget != nil {
		t.Errorf("missing-token removal should carry no widget, got %+v", env.Widget)
	}
}

func TestDispatch_SetAlertUsesDefaults(t *testing.T) {
	d, e := newTestDispatcher(t)
	ctx := context.Background()

	env := d.Dispatch(ctx, domain.ActionSetAlert, domain.ActionPayload{TokenSymbol: "BULLA"}, nil)
	if env == nil || !strings.Contains(env.Text, "Alert configured for BULLA") {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	cfg, err := e.alerts.GetBySymbol(ctx, "BULLA")
	if err != nil {
		t.Fatalf("GetBySymbol failed: %v", err)
	}
	if cfg.Percent != compose.DefaultAlertPercent || cfg.Direction != compose.DefaultAlertDirection {
		t.Errorf("config = %s %v, want defaults", cfg.Direction, cfg.Percent)
	}
}

func TestDispatch_EditAlertsShowsStoredConfig(t *testing.T) {
	d, e := newTestDispatcher(t)
	ctx := context.Background()

	e.ProcessTurn(ctx, "set alert if BULLA drops 15%", nil)

	env := d.Dispatch(ctx, domain.ActionEditAlerts, domain.ActionPayload{TokenSymbol: "BULLA"}, nil)
	if env == nil || env.Widget == nil || env.Widget.Kind != domain.WidgetAlertConfig {
		t.Fatalf("expected alert_config widget, got %+v", env)
	}
	if env.Widget.AlertConfig.Condition != "Price drops 15%" {
		t.Errorf("condition = %q", env.Widget.AlertConfig.Condition)
	}
}

func TestDispatch_EditAlertsDraftsDefault(t *testing.T) {
	d, e := newTestDispatcher(t)
	ctx := context.Background()

	env := d.Dispatch(ctx, domain.ActionEditAlerts, domain.ActionPayload{TokenSymbol: "WIF"}, nil)
	if env == nil || env.Widget == nil || env.Widget.Kind != domain.WidgetAlertConfig {
		t.Fatalf("expected alert_config widget, got %+v", env)
	}
	if env.Widget.AlertConfig.Percent != compose.DefaultAlertPercent {
		t.Errorf("draft percent = %v, want default", env.Widget.AlertConfig.Percent)
	}

	// Opening the editor must not store anything.
	if _, err := e.alerts.GetBySymbol(ctx, "WIF"); err == nil {
		t.Error("edit_alerts persisted a draft config")
	}
}

func TestDispatch_AnalyzeAndTellMore(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	for _, action := range []domain.ActionTag{domain.ActionAnalyzeToken, domain.ActionAnalyzeFurther, domain.ActionTellMore} {
		env := d.Dispatch(ctx, action, domain.ActionPayload{TokenSymbol: "BONK"}, nil)
		if env == nil || env.Widget == nil || env.Widget.Kind != domain.WidgetTokenAnalysis {
			t.Fatalf("Dispatch(%s) expected token_analysis widget, got %+v", action, env)
		}
		if env.Widget.TokenAnalysis.Symbol != "BONK" {
			t.Errorf("Dispatch(%s) symbol = %q", action, env.Widget.TokenAnalysis.Symbol)
		}
	}
}

func TestDispatch_PageContextSymbolFallback(t *testing.T) {
	d, e := newTestDispatcher(t)
	ctx := context.Background()

	pageCtx := &domain.PageContext{
		PageType:  domain.PageDexscreener,
		TokenData: &domain.TokenSnapshot{Chain: "solana", TokenSymbol: ptr("DEGEN")},
	}

	env := d.Dispatch(ctx, domain.ActionAddToWatchlist, domain.ActionPayload{}, pageCtx)
	if env == nil || !strings.HasPrefix(env.Text, "DEGEN added to your watchlist.") {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if _, err := e.watchlist.GetBySymbol(ctx, "DEGEN"); err != nil {
		t.Errorf("DEGEN not stored: %v", err)
	}
}

func TestDispatch_UnknownTagIgnored(t *testing.T) {
	d, e := newTestDispatcher(t)
	ctx := context.Background()

	env := d.Dispatch(ctx, domain.ActionTag("bogus_action"), domain.ActionPayload{TokenSymbol: "BULLA"}, nil)
	if env != nil {
		t.Fatalf("unknown tag should return nil, got %+v", env)
	}

	list, err := e.watchlist.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("unknown tag mutated the watchlist: %d entries", len(list))
	}
}
