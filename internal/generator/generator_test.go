package generator

import (
	"math/rand"
	"strings"
	"testing"
	"unicode"
)

var testWords = []string{"the", "quick", "brown", "fox", "jumps"}

func newTestGenerator() *Generator {
	return NewWithRand(testWords, rand.New(rand.NewSource(42)))
}

func TestRandomExactLength(t *testing.T) {
	g := newTestGenerator()
	for _, length := range []int{1, 10, 50, 200} {
		text := g.Random(length)
		if len([]rune(text)) != length {
			t.Fatalf("length %d: got %d chars", length, len([]rune(text)))
		}
	}
}

func TestRandomUsesWordList(t *testing.T) {
	g := newTestGenerator()
	text := g.Random(120)
	for _, word := range strings.Fields(text) {
		if !hasPrefixOfAny(word, testWords) {
			t.Fatalf("unexpected word %q in %q", word, text)
		}
	}
}

func hasPrefixOfAny(word string, words []string) bool {
	for _, w := range words {
		// Truncation may cut the final word short.
		if word == w || strings.HasPrefix(w, word) {
			return true
		}
	}
	return false
}

func TestSpacedRepetitionEmptyHistogramFallsBack(t *testing.T) {
	g := newTestGenerator()
	text := g.SpacedRepetition(map[rune]int{}, 60)
	if len([]rune(text)) != 60 {
		t.Fatalf("expected 60 chars, got %d", len([]rune(text)))
	}
	for _, word := range strings.Fields(text) {
		if !hasPrefixOfAny(word, testWords) {
			t.Fatalf("fallback should only use the word list, got %q", word)
		}
	}
}

func TestSpacedRepetitionExactLength(t *testing.T) {
	g := newTestGenerator()
	text := g.SpacedRepetition(map[rune]int{'e': 10, 'a': 3}, 50)
	if len([]rune(text)) != 50 {
		t.Fatalf("expected 50 chars, got %d", len([]rune(text)))
	}
}

func TestSpacedRepetitionBiasesWeakKeys(t *testing.T) {
	g := newTestGenerator()
	counts := map[rune]int{}
	total := 0
	for i := 0; i < 200; i++ {
		text := g.SpacedRepetition(map[rune]int{'e': 10, 'a': 3}, 50)
		for _, r := range text {
			if r == ' ' {
				continue
			}
			if !unicode.IsLower(r) {
				t.Fatalf("unexpected rune %q in %q", r, text)
			}
			counts[r]++
			total++
		}
	}
	// Weak keys get p=0.35 each; any other letter at most (0.3)/26 ≈ 0.012.
	weakShare := float64(counts['e']+counts['a']) / float64(total)
	if weakShare < 0.5 {
		t.Fatalf("expected weak keys to dominate, got share %.3f", weakShare)
	}
	for r, c := range counts {
		if r == 'e' || r == 'a' {
			continue
		}
		if c >= counts['e'] || c >= counts['a'] {
			t.Fatalf("letter %q (%d) outnumbers a weak key (e=%d a=%d)", r, c, counts['e'], counts['a'])
		}
	}
}

func TestSpacedRepetitionZeroLength(t *testing.T) {
	g := newTestGenerator()
	if got := g.SpacedRepetition(map[rune]int{'e': 1}, 0); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
	if got := g.Random(0); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}
