package transport

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"token-copilot/internal/domain"
	"token-copilot/internal/observability"
)

// Inbound frame types.
const (
	frameUtterance   = "utterance"
	framePageContext = "page_context"
	frameAction      = "action"
)

// Outbound frame types.
const (
	frameResponse = "response"
	frameError    = "error"
	frameAck      = "ack"
)

// inboundFrame is the wire form of a client message. Type selects which of
// the optional fields are read.
type inboundFrame struct {
	Type        string               `json:"type"`
	ID          string               `json:"id,omitempty"`
	Text        string               `json:"text,omitempty"`
	Action      domain.ActionTag     `json:"action,omitempty"`
	Payload     domain.ActionPayload `json:"payload,omitempty"`
	PageContext *domain.PageContext  `json:"pageContext,omitempty"`
}

// outboundFrame is the wire form of a server message.
type outboundFrame struct {
	Type     string                   `json:"type"`
	ID       string                   `json:"id"`
	ReplyTo  string                   `json:"replyTo,omitempty"`
	Response *domain.ResponseEnvelope `json:"response,omitempty"`
	Error    string                   `json:"error,omitempty"`
}

// session is one WebSocket chat connection. The read loop processes frames
// strictly in arrival order; writes are serialized behind writeMu.
type session struct {
	id      string
	conn    *websocket.Conn
	server  *Server
	writeMu sync.Mutex

	// pageCtx is the session's ambient page state, replaced whole by each
	// page_context frame. Only the read loop touches it.
	pageCtx *domain.PageContext

	done chan struct{}
	wg   sync.WaitGroup
}

func newSession(conn *websocket.Conn, server *Server) *session {
	return &session{
		id:     uuid.NewString(),
		conn:   conn,
		server: server,
		done:   make(chan struct{}),
	}
}

// run reads frames until the connection drops, then tears down the pinger.
func (s *session) run(ctx context.Context) {
	s.conn.SetReadLimit(s.server.config.MaxMessageSize)

	s.wg.Add(1)
	go s.pingLoop()

	s.readLoop(ctx)

	close(s.done)
	s.conn.Close()
	s.wg.Wait()
}

func (s *session) readLoop(ctx context.Context) {
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.server.config.ReadTimeout))

		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.server.logger.Printf("session %s read: %v", s.id, err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			s.server.logger.Printf("session %s bad frame: %v", s.id, err)
			s.writeFrame(outboundFrame{Type: frameError, ID: uuid.NewString(), Error: "malformed frame"})
			continue
		}

		observability.RecordMessageReceived(frame.Type)
		s.handleFrame(ctx, frame)
	}
}

func (s *session) handleFrame(ctx context.Context, frame inboundFrame) {
	switch frame.Type {
	case framePageContext:
		s.pageCtx = frame.PageContext
		s.writeFrame(outboundFrame{Type: frameAck, ID: uuid.NewString(), ReplyTo: frame.ID})

	case frameUtterance:
		pageCtx := s.pageCtx
		if frame.PageContext != nil {
			pageCtx = frame.PageContext
		}
		env := s.server.engine.ProcessTurn(ctx, frame.Text, pageCtx)
		s.writeFrame(outboundFrame{Type: frameResponse, ID: uuid.NewString(), ReplyTo: frame.ID, Response: env})

	case frameAction:
		env := s.server.dispatcher.Dispatch(ctx, frame.Action, frame.Payload, s.pageCtx)
		if env == nil {
			s.writeFrame(outboundFrame{Type: frameError, ID: uuid.NewString(), ReplyTo: frame.ID, Error: "unknown action"})
			return
		}
		s.writeFrame(outboundFrame{Type: frameResponse, ID: uuid.NewString(), ReplyTo: frame.ID, Response: env})

	default:
		s.server.logger.Printf("session %s unknown frame type %q", s.id, frame.Type)
		s.writeFrame(outboundFrame{Type: frameError, ID: uuid.NewString(), ReplyTo: frame.ID, Error: "unknown frame type"})
	}
}

func (s *session) writeFrame(frame outboundFrame) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
	if err := s.conn.WriteJSON(frame); err != nil {
		s.server.logger.Printf("session %s write: %v", s.id, err)
	}
}

// pingLoop sends periodic ping frames to keep the connection alive.
func (s *session) pingLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.server.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				// Connection is likely dead; the read loop will exit.
			}
			s.writeMu.Unlock()
		}
	}
}
