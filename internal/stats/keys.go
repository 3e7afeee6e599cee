package stats

import (
	"sort"

	"github.com/edanko/keycoach/internal/model"
)

// TopErrorKeys returns the n keys with the highest error counts, descending,
// ties broken by rune order. Keys with zero errors are skipped.
func TopErrorKeys(hist map[rune]int, n int) []rune {
	if n <= 0 || len(hist) == 0 {
		return nil
	}
	keys := make([]rune, 0, len(hist))
	for k, count := range hist {
		if count <= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if hist[keys[i]] == hist[keys[j]] {
			return keys[i] < keys[j]
		}
		return hist[keys[i]] > hist[keys[j]]
	})
	if n > len(keys) {
		n = len(keys)
	}
	return keys[:n]
}

// SortKeyErrors orders aggregated key errors by count descending for display.
func SortKeyErrors(aggs []model.KeyErrorCount) []model.KeyErrorCount {
	out := make([]model.KeyErrorCount, len(aggs))
	copy(out, aggs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Key < out[j].Key
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// HistogramFromCounts converts stored key error rows to a rune histogram.
func HistogramFromCounts(aggs []model.KeyErrorCount) map[rune]int {
	hist := make(map[rune]int, len(aggs))
	for _, agg := range aggs {
		runes := []rune(agg.Key)
		if len(runes) == 0 {
			continue
		}
		hist[runes[0]] += agg.Count
	}
	return hist
}
