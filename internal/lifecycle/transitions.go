// Package lifecycle holds the claim stage transition table and validator.
package lifecycle

import (
	"slices"

	"github.com/mmynk/claimtrack/internal/models"
)

// transitions maps each stage to its allowed successor stages.
// DEPRECIATION is terminal. New claims enter through StageNone.
var transitions = map[models.Stage][]models.Stage{
	models.StageNone:           {models.StageFiled},
	models.StageFiled:          {models.StageAdjusterReview},
	models.StageAdjusterReview: {models.StageApproved, models.StageDenied},
	models.StageApproved:       {models.StageBuild},
	models.StageDenied:         {models.StageAppeal},
	models.StageAppeal:         {models.StageApproved, models.StageDenied},
	models.StageBuild:          {models.StageCompleted},
	models.StageCompleted:      {models.StageDepreciation},
	models.StageDepreciation:   {},
}

// IsValidTransition reports whether a claim may move from one stage to another.
// A from value of StageNone means a new claim, which may only enter at FILED.
// Unknown stages on either side are never valid.
func IsValidTransition(from, to models.Stage) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	return slices.Contains(next, to)
}

// Successors returns a copy of the stages reachable from the given stage.
// It is empty for terminal and unknown stages.
func Successors(from models.Stage) []models.Stage {
	return slices.Clone(transitions[from])
}

// IsTerminal reports whether no transition leaves the stage.
func IsTerminal(stage models.Stage) bool {
	next, ok := transitions[stage]
	return ok && len(next) == 0
}
