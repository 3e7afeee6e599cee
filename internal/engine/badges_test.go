package engine

import (
	"testing"

	"github.com/edanko/keycoach/internal/model"
)

func TestEvaluateBadgesFirstLessonOnce(t *testing.T) {
	earned := map[string]bool{}
	m := model.Metrics{WPM: 5, Accuracy: 50}

	got := EvaluateBadges(m, model.Beginner, 1, earned)
	if !contains(got, "first-lesson") {
		t.Fatalf("expected first-lesson badge, got %v", got)
	}
	// Re-triggering at the same session count must not re-emit.
	got = EvaluateBadges(m, model.Beginner, 1, earned)
	if contains(got, "first-lesson") {
		t.Fatalf("first-lesson must only be earned once, got %v", got)
	}
}

func TestEvaluateBadgesWPMThresholdsIndependent(t *testing.T) {
	earned := map[string]bool{}
	got := EvaluateBadges(model.Metrics{WPM: 65, Accuracy: 50}, model.Beginner, 2, earned)
	for _, id := range []string{"wpm-20", "wpm-40", "wpm-60"} {
		if !contains(got, id) {
			t.Fatalf("expected %s in %v", id, got)
		}
	}
	if contains(got, "wpm-80") {
		t.Fatalf("wpm-80 should not unlock at 65 WPM: %v", got)
	}
}

func TestEvaluateBadgesAccuracy(t *testing.T) {
	earned := map[string]bool{}
	got := EvaluateBadges(model.Metrics{WPM: 10, Accuracy: 100}, model.Beginner, 2, earned)
	for _, id := range []string{"accuracy-90", "accuracy-95", "perfectionist"} {
		if !contains(got, id) {
			t.Fatalf("expected %s in %v", id, got)
		}
	}

	earned = map[string]bool{}
	got = EvaluateBadges(model.Metrics{WPM: 10, Accuracy: 96}, model.Beginner, 2, earned)
	if contains(got, "perfectionist") {
		t.Fatalf("perfectionist requires exactly 100%% accuracy: %v", got)
	}
}

func TestEvaluateBadgesMasterLevel(t *testing.T) {
	earned := map[string]bool{}
	got := EvaluateBadges(model.Metrics{WPM: 10, Accuracy: 50}, model.Master, 2, earned)
	if !contains(got, "master-level") {
		t.Fatalf("expected master-level badge, got %v", got)
	}
}

func TestEvaluateBadgesSessionMilestones(t *testing.T) {
	earned := map[string]bool{}
	got := EvaluateBadges(model.Metrics{WPM: 1, Accuracy: 10}, model.Beginner, 10, earned)
	if !contains(got, "ten-sessions") {
		t.Fatalf("expected ten-sessions at count 10, got %v", got)
	}
	got = EvaluateBadges(model.Metrics{WPM: 1, Accuracy: 10}, model.Beginner, 25, earned)
	if !contains(got, "quarter-century") {
		t.Fatalf("expected quarter-century at count 25, got %v", got)
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range Catalog {
		if seen[b.ID] {
			t.Fatalf("duplicate badge id %s", b.ID)
		}
		seen[b.ID] = true
		if _, ok := BadgeByID(b.ID); !ok {
			t.Fatalf("BadgeByID failed for %s", b.ID)
		}
	}
}
