package transport

import (
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"token-copilot/internal/domain"
	"token-copilot/internal/engine"
	"token-copilot/internal/market/stub"
	"token-copilot/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	quiet := log.New(io.Discard, "", 0)
	eng := engine.NewEngine(engine.Options{
		Watchlist: memory.NewWatchlistStore(),
		Alerts:    memory.NewAlertStore(),
		Whales:    memory.NewWhaleEventStore(),
		Provider:  stub.NewProvider(),
		Logger:    quiet,
	})
	disp := engine.NewDispatcher(eng, quiet)

	srv := httptest.NewServer(NewServer(eng, disp, nil, quiet))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestSession_UtteranceRoundTrip(t *testing.T) {
	conn := dial(t, newTestServer(t))

	req := inboundFrame{Type: frameUtterance, ID: "m1", Text: "add BULLA to my watchlist"}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var resp outboundFrame
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}

	if resp.Type != frameResponse || resp.ReplyTo != "m1" {
		t.Fatalf("unexpected frame: %+v", resp)
	}
	if resp.ID == "" {
		t.Error("response frame has no id")
	}
	if resp.Response == nil || !strings.HasPrefix(resp.Response.Text, "BULLA added to your watchlist.") {
		t.Errorf("unexpected response: %+v", resp.Response)
	}
	if resp.Response.Widget == nil || resp.Response.Widget.Kind != domain.WidgetActionConfirmation {
		t.Errorf("expected action_confirmation widget, got %+v", resp.Response.Widget)
	}
}

func TestSession_PageContextAppliesToLaterTurns(t *testing.T) {
	conn := dial(t, newTestServer(t))

	symbol := "DEGEN"
	pc := inboundFrame{
		Type: framePageContext,
		ID:   "m1",
		PageContext: &domain.PageContext{
			PageType:  domain.PageDexscreener,
			TokenData: &domain.TokenSnapshot{Chain: "base", TokenSymbol: &symbol},
		},
	}
	if err := conn.WriteJSON(pc); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var ack outboundFrame
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if ack.Type != frameAck || ack.ReplyTo != "m1" {
		t.Fatalf("expected ack, got %+v", ack)
	}

	if err := conn.WriteJSON(inboundFrame{Type: frameUtterance, ID: "m2", Text: "add to watchlist"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var resp outboundFrame
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if resp.Response == nil || !strings.HasPrefix(resp.Response.Text, "DEGEN added to your watchlist.") {
		t.Errorf("page context not applied: %+v", resp.Response)
	}
}

func TestSession_ActionDispatch(t *testing.T) {
	conn := dial(t, newTestServer(t))

	frame := inboundFrame{
		Type:    frameAction,
		ID:      "m1",
		Action:  domain.ActionAnalyzeToken,
		Payload: domain.ActionPayload{TokenSymbol: "BONK"},
	}
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var resp outboundFrame
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if resp.Type != frameResponse {
		t.Fatalf("unexpected frame: %+v", resp)
	}
	if resp.Response.Widget == nil || resp.Response.Widget.Kind != domain.WidgetTokenAnalysis {
		t.Errorf("expected token_analysis widget, got %+v", resp.Response.Widget)
	}
}

func TestSession_UnknownActionGetsErrorFrame(t *testing.T) {
	conn := dial(t, newTestServer(t))

	frame := inboundFrame{Type: frameAction, ID: "m1", Action: domain.ActionTag("bogus")}
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var resp outboundFrame
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if resp.Type != frameError || resp.Error == "" {
		t.Fatalf("expected error frame, got %+v", resp)
	}
}

func TestSession_MalformedFrame(t *testing.T) {
	conn := dial(t, newTestServer(t))

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}

	var resp outboundFrame
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if resp.Type != frameError {
		t.Fatalf("expected error frame, got %+v", resp)
	}

	// Session must survive the bad frame.
	if err := conn.WriteJSON(inboundFrame{Type: frameUtterance, ID: "m2", Text: "show my watchlist"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if resp.Type != frameResponse {
		t.Errorf("session did not recover: %+v", resp)
	}
}
