package engine

import "github.com/edanko/keycoach/internal/model"

// Accuracy band that keeps the current level.
const (
	demoteBelow  = 80
	promoteAbove = 90
)

// AdjustDifficulty maps session accuracy and the current level to a new
// level, moving at most one step. Accuracy above 90 promotes, below 80
// demotes, the [80,90] band holds. The caller decides whether to apply
// the result.
func AdjustDifficulty(accuracy int, level model.Level) model.Level {
	switch {
	case accuracy > promoteAbove:
		if level < model.Master {
			return level + 1
		}
		return model.Master
	case accuracy < demoteBelow:
		if level > model.Beginner {
			return level - 1
		}
		return model.Beginner
	default:
		return level
	}
}
