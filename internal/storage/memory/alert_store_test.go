package memory

import (
	"context"
	"errors"
	"testing"

	"token-copilot/internal/domain"
	"token-copilot/internal/storage"
)

func TestAlertStore_UpsertAndList(t *testing.T) {
	store := NewAlertStore()
	ctx := context.Background()

	cfg := &domain.AlertConfig{
		TokenSymbol:  "BULLA",
		Condition:    "Price drops 20%",
		Direction:    domain.AlertDrop,
		Percent:      20,
		CurrentPrice: 1.0,
		TriggerPrice: 0.8,
	}

	if err := store.Upsert(ctx, cfg); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 config, got %d", len(list))
	}
	if list[0].Condition != "Price drops 20%" {
		t.Errorf("Condition mismatch: got %q", list[0].Condition)
	}
}

func TestAlertStore_LastWriteWins(t *testing.T) {
	store := NewAlertStore()
	ctx := context.Background()

	first := &domain.AlertConfig{TokenSymbol: "BULLA", Condition: "Price drops 20%", Percent: 20}
	second := &domain.AlertConfig{TokenSymbol: "bulla", Condition: "Price pumps 50%", Percent: 50}

	if err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, second); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	list, _ := store.List(ctx)
	if len(list) != 1 {
		t.Fatalf("Expected 1 config after overwrite, got %d", len(list))
	}

	// Full replace, no merge
	if list[0].Condition != "Price pumps 50%" || list[0].Percent != 50 {
		t.Errorf("Expected latest write, got %q/%v", list[0].Condition, list[0].Percent)
	}
}

func TestAlertStore_OrderIsFirstWrite(t *testing.T) {
	store := NewAlertStore()
	ctx := context.Background()

	for _, sym := range []string{"SOL", "DOGE", "PEPE"} {
		if err := store.Upsert(ctx, &domain.AlertConfig{TokenSymbol: sym}); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	// Overwriting SOL must not move it to the back
	if err := store.Upsert(ctx, &domain.AlertConfig{TokenSymbol: "SOL", Percent: 30}); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	list, _ := store.List(ctx)
	want := []string{"SOL", "DOGE", "PEPE"}
	for i, sym := range want {
		if list[i].TokenSymbol != sym {
			t.Errorf("Position %d: got %s, want %s", i, list[i].TokenSymbol, sym)
		}
	}
}

func TestAlertStore_Remove(t *testing.T) {
	store := NewAlertStore()
	ctx := context.Background()

	if err := store.Remove(ctx, "nonexistent"); err != nil {
		t.Errorf("Remove of missing symbol should be silent, got %v", err)
	}

	if err := store.Upsert(ctx, &domain.AlertConfig{TokenSymbol: "BULLA"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Remove(ctx, "bulla"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	list, _ := store.List(ctx)
	if len(list) != 0 {
		t.Errorf("Expected empty list after remove, got %d", len(list))
	}
}

func TestAlertStore_GetBySymbol(t *testing.T) {
	store := NewAlertStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, &domain.AlertConfig{TokenSymbol: "BULLA", Percent: 20}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	cfg, err := store.GetBySymbol(ctx, "bulla")
	if err != nil {
		t.Fatalf("GetBySymbol failed: %v", err)
	}
	if cfg.TokenSymbol != "BULLA" {
		t.Errorf("Expected normalized symbol BULLA, got %s", cfg.TokenSymbol)
	}

	_, err = store.GetBySymbol(ctx, "PEPE")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAlertStore_InvalidInput(t *testing.T) {
	store := NewAlertStore()
	ctx := context.Background()

	err := store.Upsert(ctx, nil)
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}

	err = store.Upsert(ctx, &domain.AlertConfig{TokenSymbol: ""})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty symbol, got %v", err)
	}
}

func TestAlertStore_ReturnsCopy(t *testing.T) {
	store := NewAlertStore()
	ctx := context.Background()

	cfg := &domain.AlertConfig{TokenSymbol: "BULLA", Percent: 20}
	if err := store.Upsert(ctx, cfg); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	cfg.Percent = 50

	result, _ := store.GetBySymbol(ctx, "BULLA")
	if result.Percent != 20 {
		t.Error("Store should return copy, not reference")
	}
}
