package screening

import (
	"errors"
	"testing"

	"ixscreen/domain/core"
)

func TestInteractionTable_CanonicalOrder(t *testing.T) {
	table := NewInteractionTable(4)

	want := []Pair{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	got := table.Pairs()

	if len(got) != len(want) {
		t.Fatalf("expected %d pairs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if table.Mains() != 4 {
		t.Errorf("expected 4 mains, got %d", table.Mains())
	}
}

func TestInteractionTable_VariableIndexOffset(t *testing.T) {
	table := NewInteractionTable(4)

	// (1,3) sits at position 4, so its flat variable index is 4 + 4.
	idx, err := table.VariableIndex(Pair{I: 1, J: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 8 {
		t.Errorf("expected variable index 8, got %d", idx)
	}

	// Lookup is order-insensitive.
	swapped, err := table.VariableIndex(Pair{I: 3, J: 1})
	if err != nil {
		t.Fatalf("unexpected error for swapped pair: %v", err)
	}
	if swapped != idx {
		t.Errorf("swapped pair resolved to %d, expected %d", swapped, idx)
	}
}

func TestInteractionTable_MissingPairIsConsistencyError(t *testing.T) {
	table, err := TableFromPairs(5, []Pair{{0, 1}, {2, 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := table.VariableIndex(Pair{I: 0, J: 4}); !errors.Is(err, core.ErrInconsistentPair) {
		t.Errorf("expected ErrInconsistentPair, got %v", err)
	}
}

func TestTableFromPairs_Validation(t *testing.T) {
	if _, err := TableFromPairs(3, []Pair{{0, 3}}); !errors.Is(err, core.ErrInvalidValue) {
		t.Errorf("out-of-range pair: expected ErrInvalidValue, got %v", err)
	}
	if _, err := TableFromPairs(3, []Pair{{1, 1}}); !errors.Is(err, core.ErrInvalidValue) {
		t.Errorf("degenerate pair: expected ErrInvalidValue, got %v", err)
	}
	if _, err := TableFromPairs(3, []Pair{{0, 1}, {1, 0}}); !errors.Is(err, core.ErrInvalidValue) {
		t.Errorf("duplicate pair: expected ErrInvalidValue, got %v", err)
	}
}
