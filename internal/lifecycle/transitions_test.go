package lifecycle

import (
	"testing"

	"github.com/mmynk/claimtrack/internal/models"
)

func TestIsValidTransition_NewClaimOnlyEntersAtFiled(t *testing.T) {
	for _, s := range models.AllStages {
		got := IsValidTransition(models.StageNone, s)
		want := s == models.StageFiled
		if got != want {
			t.Errorf("IsValidTransition(none, %s) = %v, want %v", s, got, want)
		}
	}
}

func TestIsValidTransition_Table(t *testing.T) {
	tests := []struct {
		from models.Stage
		to   models.Stage
		want bool
	}{
		{models.StageFiled, models.StageAdjusterReview, true},
		{models.StageFiled, models.StageApproved, false},
		{models.StageAdjusterReview, models.StageApproved, true},
		{models.StageAdjusterReview, models.StageDenied, true},
		{models.StageAdjusterReview, models.StageBuild, false},
		{models.StageApproved, models.StageBuild, true},
		{models.StageApproved, models.StageDenied, false},
		{models.StageDenied, models.StageAppeal, true},
		{models.StageDenied, models.StageApproved, false},
		{models.StageAppeal, models.StageApproved, true},
		{models.StageAppeal, models.StageDenied, true},
		{models.StageBuild, models.StageCompleted, true},
		{models.StageBuild, models.StageDepreciation, false},
		{models.StageCompleted, models.StageDepreciation, true},
		{models.StageFiled, models.StageFiled, false},
		{models.Stage("ARCHIVED"), models.StageFiled, false},
		{models.StageFiled, models.Stage("ARCHIVED"), false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			if got := IsValidTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("IsValidTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestDepreciationIsTerminal(t *testing.T) {
	if !IsTerminal(models.StageDepreciation) {
		t.Fatal("DEPRECIATION should be terminal")
	}
	for _, s := range append([]models.Stage{models.StageNone}, models.AllStages...) {
		if IsValidTransition(models.StageDepreciation, s) {
			t.Errorf("DEPRECIATION -> %s should be invalid", s)
		}
	}
	for _, s := range models.AllStages {
		if s != models.StageDepreciation && IsTerminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestSuccessorsReturnsCopy(t *testing.T) {
	next := Successors(models.StageAdjusterReview)
	if len(next) != 2 {
		t.Fatalf("expected 2 successors, got %d", len(next))
	}
	next[0] = models.StageDepreciation

	if !IsValidTransition(models.StageAdjusterReview, models.StageApproved) {
		t.Error("mutating Successors result changed the transition table")
	}
	if len(Successors(models.Stage("UNKNOWN"))) != 0 {
		t.Error("unknown stage should have no successors")
	}
}
