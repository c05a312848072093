// Package transport exposes the conversation engine over WebSocket. Each
// connection is one chat session carrying its own page context.
package transport

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"token-copilot/internal/engine"
	"token-copilot/internal/observability"
)

// Config configures WebSocket session behavior.
type Config struct {
	// PingInterval is interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
	// WriteTimeout is timeout for writing messages.
	WriteTimeout time.Duration
	// MaxMessageSize caps inbound frame size in bytes.
	MaxMessageSize int64
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		PingInterval:   30 * time.Second,
		ReadTimeout:    120 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 64 * 1024,
	}
}

// Server upgrades HTTP requests to chat sessions and runs them.
type Server struct {
	engine     *engine.Engine
	dispatcher *engine.Dispatcher
	config     Config
	logger     *log.Logger
	upgrader   websocket.Upgrader
}

// NewServer creates a session server over the engine and dispatcher.
func NewServer(eng *engine.Engine, disp *engine.Dispatcher, config *Config, logger *log.Logger) *Server {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
	}
	if logger == nil {
		logger = log.New(os.Stderr, "[transport] ", log.LstdFlags)
	}

	return &Server{
		engine:     eng,
		dispatcher: disp,
		config:     cfg,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Sessions originate from a browser extension; origin policy is
			// enforced upstream.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and runs the session until the peer leaves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade failed: %v", err)
		return
	}

	sess := newSession(conn, s)
	observability.RecordSessionOpened()
	s.logger.Printf("session %s opened from %s", sess.id, r.RemoteAddr)

	sess.run(r.Context())

	observability.RecordSessionClosed()
	s.logger.Printf("session %s closed", sess.id)
}
