// Package main runs the copilot server: WebSocket chat sessions over the
// conversation engine, backed by pluggable storage, with health, status and
// Prometheus metrics endpoints.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"token-copilot/internal/engine"
	"token-copilot/internal/market/stub"
	"token-copilot/internal/notify"
	"token-copilot/internal/observability"
	"token-copilot/internal/storage"
	chstore "token-copilot/internal/storage/clickhouse"
	"token-copilot/internal/storage/memory"
	"token-copilot/internal/storage/migrations"
	pgstore "token-copilot/internal/storage/postgres"
	"token-copilot/internal/transport"
)

// allStores holds the storage implementations behind the engine.
type allStores struct {
	watchlist storage.WatchlistStore
	alerts    storage.AlertStore
	whales    storage.WhaleEventStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	listenAddr := flag.String("listen-addr", envOr("LISTEN_ADDR", ":8080"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional, whale feed)")
	redisAddr := flag.String("redis-addr", os.Getenv("REDIS_ADDR"), "Redis address for alert publishing (optional)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	seedWhales := flag.Bool("seed-whales", false, "Seed fixture whale transactions on startup")

	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory, logger)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	if *seedWhales {
		if err := stores.whales.InsertBulk(ctx, stub.WhaleTransactions(time.Now().UnixMilli())); err != nil {
			logger.Printf("Failed to seed whale transactions: %v", err)
		} else {
			logger.Println("Seeded fixture whale transactions")
		}
	}

	var publisher notify.AlertPublisher
	if *redisAddr != "" {
		pub, err := notify.NewRedisPublisher(*redisAddr, log.New(os.Stdout, "[notify] ", log.LstdFlags))
		if err != nil {
			logger.Fatalf("Failed to connect alert publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	eng := engine.NewEngine(engine.Options{
		Watchlist: stores.watchlist,
		Alerts:    stores.alerts,
		Whales:    stores.whales,
		Provider:  stub.NewProvider(),
		Publisher: publisher,
		Logger:    log.New(os.Stdout, "[engine] ", log.LstdFlags),
	})
	disp := engine.NewDispatcher(eng, log.New(os.Stdout, "[dispatch] ", log.LstdFlags))
	sessions := transport.NewServer(eng, disp, nil, log.New(os.Stdout, "[transport] ", log.LstdFlags))

	startedAt := time.Now()
	mux := http.NewServeMux()
	mux.Handle("/ws", sessions)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		resp := statusResponse{
			Status:       "running",
			Uptime:       time.Since(startedAt).String(),
			StorageMode:  storageMode(*useMemory),
			WhaleFeed:    *clickhouseDSN != "" || *useMemory,
			AlertsStream: publisher != nil,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	httpServer := &http.Server{Addr: *listenAddr, Handler: mux}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP shutdown error: %v", err)
		}

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		}
	}()

	logger.Printf("Listening on %s (storage: %s)", *listenAddr, storageMode(*useMemory))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// statusResponse is the JSON response for the /status endpoint.
type statusResponse struct {
	Status       string `json:"status"`
	Uptime       string `json:"uptime"`
	StorageMode  string `json:"storage_mode"`
	WhaleFeed    bool   `json:"whale_feed"`
	AlertsStream bool   `json:"alerts_stream"`
}

func storageMode(useMemory bool) string {
	if useMemory {
		return "memory"
	}
	return "postgres"
}

// createStores creates the watchlist, alert and whale stores. The whale
// store lives in ClickHouse when a DSN is given, otherwise in memory.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool, logger *log.Logger) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			watchlist: memory.NewWatchlistStore(),
			alerts:    memory.NewAlertStore(),
			whales:    memory.NewWhaleEventStore(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("apply postgres migrations: %w", err)
	}

	stores := &allStores{
		watchlist: pgstore.NewWatchlistStore(pool),
		alerts:    pgstore.NewAlertStore(pool),
		whales:    memory.NewWhaleEventStore(),
	}

	cleanup := func() { pool.Close() }

	if clickhouseDSN != "" {
		chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
		}
		stores.whales = chstore.NewWhaleEventStore(chConn)
		cleanup = func() {
			chConn.Close()
			pool.Close()
		}
	} else {
		logger.Println("No ClickHouse DSN, whale feed uses in-memory storage")
	}

	return stores, cleanup, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
