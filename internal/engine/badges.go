package engine

import "github.com/edanko/keycoach/internal/model"

// Catalog is the static badge catalog.
var Catalog = []model.Badge{
	{ID: "first-lesson", Name: "First Steps", Description: "Complete your first session"},
	{ID: "ten-sessions", Name: "Regular", Description: "Complete 10 sessions"},
	{ID: "quarter-century", Name: "Dedicated", Description: "Complete 25 sessions"},
	{ID: "wpm-20", Name: "Getting There", Description: "Reach 20 WPM"},
	{ID: "wpm-40", Name: "Quick Fingers", Description: "Reach 40 WPM"},
	{ID: "wpm-60", Name: "Speed Demon", Description: "Reach 60 WPM"},
	{ID: "wpm-80", Name: "Lightning", Description: "Reach 80 WPM"},
	{ID: "accuracy-90", Name: "Sharp Eye", Description: "Finish a session at 90% accuracy"},
	{ID: "accuracy-95", Name: "Precision", Description: "Finish a session at 95% accuracy"},
	{ID: "perfectionist", Name: "Perfectionist", Description: "Finish a session at 100% accuracy"},
	{ID: "master-level", Name: "Master Typist", Description: "Reach the master level"},
}

// BadgeByID looks up a catalog entry.
func BadgeByID(id string) (model.Badge, bool) {
	for _, b := range Catalog {
		if b.ID == id {
			return b, true
		}
	}
	return model.Badge{}, false
}

var sessionMilestones = map[int]string{
	1:  "first-lesson",
	10: "ten-sessions",
	25: "quarter-century",
}

var wpmThresholds = []struct {
	wpm int
	id  string
}{
	{20, "wpm-20"},
	{40, "wpm-40"},
	{60, "wpm-60"},
	{80, "wpm-80"},
}

// EvaluateBadges returns the badge identifiers newly earned by this session
// and marks them in the earned set. Each rule is checked independently, so a
// single session may unlock several badges; a badge unlocks at most once.
func EvaluateBadges(m model.Metrics, level model.Level, sessionCount int, earned map[string]bool) []string {
	var unlocked []string
	award := func(id string) {
		if earned[id] {
			return
		}
		earned[id] = true
		unlocked = append(unlocked, id)
	}

	if id, ok := sessionMilestones[sessionCount]; ok {
		award(id)
	}
	for _, t := range wpmThresholds {
		if m.WPM >= t.wpm {
			award(t.id)
		}
	}
	if m.Accuracy >= 90 {
		award("accuracy-90")
	}
	if m.Accuracy >= 95 {
		award("accuracy-95")
	}
	if m.Accuracy == 100 {
		award("perfectionist")
	}
	if level == model.Master {
		award("master-level")
	}
	return unlocked
}
