package stats

import (
	"testing"

	"github.com/edanko/keycoach/internal/model"
)

func TestTopErrorKeysOrderAndLimit(t *testing.T) {
	hist := map[rune]int{'e': 10, 'a': 3, 'q': 7, 'z': 0, 'm': 3}
	top := TopErrorKeys(hist, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 keys, got %v", top)
	}
	if top[0] != 'e' || top[1] != 'q' {
		t.Fatalf("unexpected order: %v", top)
	}
	// Tie between 'a' and 'm' breaks by rune order.
	if top[2] != 'a' {
		t.Fatalf("expected 'a' from tie-break, got %q", top[2])
	}
}

func TestTopErrorKeysSkipsZeroCounts(t *testing.T) {
	top := TopErrorKeys(map[rune]int{'z': 0}, 5)
	if len(top) != 0 {
		t.Fatalf("expected no keys, got %v", top)
	}
}

func TestTopErrorKeysEmpty(t *testing.T) {
	if top := TopErrorKeys(nil, 5); top != nil {
		t.Fatalf("expected nil for empty histogram, got %v", top)
	}
	if top := TopErrorKeys(map[rune]int{'a': 1}, 0); top != nil {
		t.Fatalf("expected nil for n=0, got %v", top)
	}
}

func TestSortKeyErrors(t *testing.T) {
	aggs := []model.KeyErrorCount{
		{Key: "b", Count: 2},
		{Key: "a", Count: 5},
		{Key: "c", Count: 2},
	}
	sorted := SortKeyErrors(aggs)
	if sorted[0].Key != "a" || sorted[1].Key != "b" || sorted[2].Key != "c" {
		t.Fatalf("unexpected order: %v", sorted)
	}
	if aggs[0].Key != "b" {
		t.Fatalf("input slice must not be mutated")
	}
}

func TestHistogramFromCounts(t *testing.T) {
	hist := HistogramFromCounts([]model.KeyErrorCount{
		{Key: "e", Count: 4},
		{Key: " ", Count: 1},
		{Key: "", Count: 9},
	})
	if hist['e'] != 4 || hist[' '] != 1 {
		t.Fatalf("unexpected histogram: %v", hist)
	}
	if len(hist) != 2 {
		t.Fatalf("empty keys must be skipped: %v", hist)
	}
}
