package memory

import (
	"context"
	"errors"
	"testing"

	"token-copilot/internal/domain"
	"token-copilot/internal/storage"
)

func TestWatchlistStore_AddAndList(t *testing.T) {
	store := NewWatchlistStore()
	ctx := context.Background()

	entries := []*domain.WatchlistEntry{
		{ID: "id1", Symbol: "SOL", Name: "Solana", PriceChange24h: 10},
		{ID: "id2", Symbol: "DOGE", Name: "Dogecoin", PriceChange24h: -5},
	}

	for _, e := range entries {
		if err := store.Add(ctx, e); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(list))
	}

	// Insertion order preserved
	if list[0].Symbol != "SOL" || list[1].Symbol != "DOGE" {
		t.Errorf("Order mismatch: got %s, %s", list[0].Symbol, list[1].Symbol)
	}
}

func TestWatchlistStore_IdempotentAdd(t *testing.T) {
	store := NewWatchlistStore()
	ctx := context.Background()

	first := &domain.WatchlistEntry{ID: "id1", Symbol: "BULLA", Price: 1.0}
	second := &domain.WatchlistEntry{ID: "id2", Symbol: "bulla", Price: 2.0}

	if err := store.Add(ctx, first); err != nil {
		t.Fatalf("First add failed: %v", err)
	}
	if err := store.Add(ctx, second); err != nil {
		t.Fatalf("Second add failed: %v", err)
	}

	list, _ := store.List(ctx)
	if len(list) != 1 {
		t.Fatalf("Expected 1 entry after duplicate add, got %d", len(list))
	}

	// First insertion retained
	if list[0].ID != "id1" {
		t.Errorf("Expected id1 retained, got %s", list[0].ID)
	}
	if list[0].Price != 1.0 {
		t.Errorf("Expected first entry data retained, got price %v", list[0].Price)
	}
}

func TestWatchlistStore_RemoveMissingIsNoOp(t *testing.T) {
	store := NewWatchlistStore()
	ctx := context.Background()

	if err := store.Remove(ctx, "nonexistent"); err != nil {
		t.Errorf("Remove of missing id should be silent, got %v", err)
	}

	entry := &domain.WatchlistEntry{ID: "id1", Symbol: "SOL"}
	if err := store.Add(ctx, entry); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Remove(ctx, "id1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	list, _ := store.List(ctx)
	if len(list) != 0 {
		t.Errorf("Expected empty list after remove, got %d entries", len(list))
	}

	// Symbol is free again for re-adding
	readd := &domain.WatchlistEntry{ID: "id3", Symbol: "SOL"}
	if err := store.Add(ctx, readd); err != nil {
		t.Fatalf("Re-add failed: %v", err)
	}
	list, _ = store.List(ctx)
	if len(list) != 1 || list[0].ID != "id3" {
		t.Error("Re-add after remove should insert a fresh entry")
	}
}

func TestWatchlistStore_BestPerformer(t *testing.T) {
	store := NewWatchlistStore()
	ctx := context.Background()

	_, err := store.BestPerformer(ctx)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on empty store, got %v", err)
	}

	entries := []*domain.WatchlistEntry{
		{ID: "a", Symbol: "A", PriceChange24h: 5},
		{ID: "b", Symbol: "B", PriceChange24h: 20},
		{ID: "c", Symbol: "C", PriceChange24h: 20},
	}
	for _, e := range entries {
		if err := store.Add(ctx, e); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	best, err := store.BestPerformer(ctx)
	if err != nil {
		t.Fatalf("BestPerformer failed: %v", err)
	}

	// Earliest of the tied maximum wins
	if best.Symbol != "B" {
		t.Errorf("Expected B, got %s", best.Symbol)
	}
}

func TestWatchlistStore_GetBySymbol(t *testing.T) {
	store := NewWatchlistStore()
	ctx := context.Background()

	entry := &domain.WatchlistEntry{ID: "id1", Symbol: "BULLA"}
	if err := store.Add(ctx, entry); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	result, err := store.GetBySymbol(ctx, "bulla")
	if err != nil {
		t.Fatalf("GetBySymbol failed: %v", err)
	}
	if result.ID != "id1" {
		t.Errorf("Expected id1, got %s", result.ID)
	}

	_, err = store.GetBySymbol(ctx, "PEPE")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestWatchlistStore_SetAlertCount(t *testing.T) {
	store := NewWatchlistStore()
	ctx := context.Background()

	entry := &domain.WatchlistEntry{ID: "id1", Symbol: "BULLA"}
	if err := store.Add(ctx, entry); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.SetAlertCount(ctx, "bulla", 2); err != nil {
		t.Fatalf("SetAlertCount failed: %v", err)
	}

	result, _ := store.GetBySymbol(ctx, "BULLA")
	if result.AlertCount != 2 || !result.HasAlerts {
		t.Errorf("Expected alertCount 2 with hasAlerts, got %d/%v", result.AlertCount, result.HasAlerts)
	}

	if err := store.SetAlertCount(ctx, "BULLA", 0); err != nil {
		t.Fatalf("SetAlertCount failed: %v", err)
	}
	result, _ = store.GetBySymbol(ctx, "BULLA")
	if result.HasAlerts {
		t.Error("Expected hasAlerts false at zero count")
	}

	// Missing symbol is a silent no-op
	if err := store.SetAlertCount(ctx, "PEPE", 1); err != nil {
		t.Errorf("SetAlertCount on missing symbol should be silent, got %v", err)
	}
}

func TestWatchlistStore_InvalidInput(t *testing.T) {
	store := NewWatchlistStore()
	ctx := context.Background()

	err := store.Add(ctx, nil)
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}

	err = store.Add(ctx, &domain.WatchlistEntry{ID: "", Symbol: "SOL"})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty id, got %v", err)
	}
}

func TestWatchlistStore_ReturnsCopy(t *testing.T) {
	store := NewWatchlistStore()
	ctx := context.Background()

	entry := &domain.WatchlistEntry{ID: "id1", Symbol: "SOL", Price: 100}
	if err := store.Add(ctx, entry); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	entry.Price = 50

	result, _ := store.GetBySymbol(ctx, "SOL")
	if result.Price != 100 {
		t.Error("Store should return copy, not reference")
	}

	result.Price = 1
	again, _ := store.GetBySymbol(ctx, "SOL")
	if again.Price != 100 {
		t.Error("Mutating a returned entry should not affect the store")
	}
}
