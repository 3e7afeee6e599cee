// Package generator builds practice text sequences.
package generator

import (
	"math/rand"
	"strings"
	"time"

	"github.com/edanko/keycoach/internal/stats"
)

const (
	weakKeyCount  = 5
	weakCharBias  = 0.7
	minPseudoWord = 3
	maxPseudoWord = 8
)

// Generator produces randomized practice text.
type Generator struct {
	rnd   *rand.Rand
	words []string
}

// New returns a Generator seeded with the current time.
func New(words []string) *Generator {
	return NewWithRand(words, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand returns a Generator with an injected random source.
func NewWithRand(words []string, rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd, words: words}
}

// Random draws words uniformly from the word list, space-separated,
// truncated to exactly length characters.
func (g *Generator) Random(length int) string {
	if length <= 0 || len(g.words) == 0 {
		return ""
	}
	var b strings.Builder
	for b.Len() < length {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(g.words[g.rnd.Intn(len(g.words))])
	}
	return truncate(b.String(), length)
}

// SpacedRepetition synthesizes pseudo-words biased toward the keys with the
// highest error counts. Each character is drawn from the weak-key set with
// probability 0.7, otherwise a uniform lowercase letter. An empty histogram
// falls back to Random.
func (g *Generator) SpacedRepetition(hist map[rune]int, length int) string {
	weak := stats.TopErrorKeys(hist, weakKeyCount)
	if len(weak) == 0 {
		return g.Random(length)
	}
	if length <= 0 {
		return ""
	}
	var b strings.Builder
	for b.Len() < length {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(g.pseudoWord(weak))
	}
	return truncate(b.String(), length)
}

func (g *Generator) pseudoWord(weak []rune) string {
	n := minPseudoWord + g.rnd.Intn(maxPseudoWord-minPseudoWord+1)
	runes := make([]rune, n)
	for i := range runes {
		if g.rnd.Float64() < weakCharBias {
			runes[i] = weak[g.rnd.Intn(len(weak))]
		} else {
			runes[i] = rune('a' + g.rnd.Intn(26))
		}
	}
	return string(runes)
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length])
}
