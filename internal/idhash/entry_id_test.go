package idhash

import "testing"

func TestComputeEntryID_Deterministic(t *testing.T) {
	id1 := ComputeEntryID("BULLA", "solana", "mint123")
	id2 := ComputeEntryID("BULLA", "solana", "mint123")

	if id1 != id2 {
		t.Errorf("Same inputs should produce same ID: %s != %s", id1, id2)
	}

	if len(id1) != 64 {
		t.Errorf("Expected 64-char hex hash, got %d chars", len(id1))
	}
}

func TestComputeEntryID_CaseNormalized(t *testing.T) {
	upper := ComputeEntryID("BULLA", "solana", "mint123")
	lower := ComputeEntryID("bulla", "solana", "mint123")

	if upper != lower {
		t.Error("Symbol case should not change the ID")
	}
}

func TestComputeEntryID_DifferentInputs(t *testing.T) {
	base := ComputeEntryID("BULLA", "solana", "mint123")

	variants := []string{
		ComputeEntryID("PEPE", "solana", "mint123"),
		ComputeEntryID("BULLA", "ethereum", "mint123"),
		ComputeEntryID("BULLA", "solana", "mint456"),
	}

	for i, v := range variants {
		if v == base {
			t.Errorf("Variant %d should differ from base ID", i)
		}
	}
}

func TestComputeWhaleTxID_Deterministic(t *testing.T) {
	id1 := ComputeWhaleTxID("sig1", "wallet1", "BULLA")
	id2 := ComputeWhaleTxID("sig1", "wallet1", "bulla")

	if id1 != id2 {
		t.Errorf("Same inputs should produce same ID: %s != %s", id1, id2)
	}

	other := ComputeWhaleTxID("sig2", "wallet1", "BULLA")
	if other == id1 {
		t.Error("Different tx hash should produce different ID")
	}
}
