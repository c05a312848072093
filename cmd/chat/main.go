// Package main runs an interactive terminal chat against the conversation
// engine with in-memory storage and fixture market data. Useful for trying
// out intents without a running server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"token-copilot/internal/domain"
	"token-copilot/internal/engine"
	"token-copilot/internal/market/stub"
	"token-copilot/internal/storage/memory"
)

func main() {
	seedWhales := flag.Bool("seed-whales", true, "Seed fixture whale transactions")
	verbose := flag.Bool("verbose", false, "Log engine internals to stderr")

	flag.Parse()

	engineLog := log.New(io.Discard, "", 0)
	if *verbose {
		engineLog = log.New(os.Stderr, "[engine] ", log.LstdFlags)
	}

	whales := memory.NewWhaleEventStore()
	if *seedWhales {
		if err := whales.InsertBulk(context.Background(), stub.WhaleTransactions(time.Now().UnixMilli())); err != nil {
			log.Fatalf("seed whale transactions: %v", err)
		}
	}

	eng := engine.NewEngine(engine.Options{
		Watchlist: memory.NewWatchlistStore(),
		Alerts:    memory.NewAlertStore(),
		Whales:    whales,
		Provider:  stub.NewProvider(),
		Logger:    engineLog,
	})

	fmt.Println("token-copilot chat. Type a message, or 'quit' to exit.")
	fmt.Println()

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		env := eng.ProcessTurn(ctx, line, nil)
		printEnvelope(env)
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("read stdin: %v", err)
	}
}

func printEnvelope(env *domain.ResponseEnvelope) {
	fmt.Println(env.Text)
	if env.Widget != nil {
		fmt.Printf("  [widget: %s]\n", env.Widget.Kind)
	}
	fmt.Println()
}
