package models

import (
	"fmt"
	"strings"
)

// Stage is one value of the fixed claim lifecycle enumeration.
// The zero value means the claim has no prior stage (not yet filed).
type Stage string

const (
	StageNone           Stage = ""
	StageFiled          Stage = "FILED"
	StageAdjusterReview Stage = "ADJUSTER_REVIEW"
	StageApproved       Stage = "APPROVED"
	StageDenied         Stage = "DENIED"
	StageAppeal         Stage = "APPEAL"
	StageBuild          Stage = "BUILD"
	StageCompleted      Stage = "COMPLETED"
	StageDepreciation   Stage = "DEPRECIATION"
)

// AllStages lists every lifecycle stage in lifecycle order.
var AllStages = []Stage{
	StageFiled,
	StageAdjusterReview,
	StageApproved,
	StageDenied,
	StageAppeal,
	StageBuild,
	StageCompleted,
	StageDepreciation,
}

// Valid reports whether s is one of the enumerated stages.
// StageNone is not a valid stage to persist.
func (s Stage) Valid() bool {
	for _, stage := range AllStages {
		if s == stage {
			return true
		}
	}
	return false
}

func (s Stage) String() string {
	if s == StageNone {
		return "NONE"
	}
	return string(s)
}

// ParseStage converts a user-supplied stage name into a Stage.
func ParseStage(raw string) (Stage, error) {
	s := Stage(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return StageNone, fmt.Errorf("unknown stage %q", raw)
	}
	return s, nil
}

// Claim represents one insurance claim owned by an organization.
type Claim struct {
	// ID is the unique identifier for the claim (UUID format).
	ID string

	// OrgID is the tenant that owns the claim.
	OrgID string

	// PropertyID references the insured property.
	PropertyID string

	// ClaimNumber is the carrier-assigned claim number, if known.
	ClaimNumber string

	// Carrier is the insurance carrier name. It selects carrier-specific
	// depreciation rates when a rate schedule defines them.
	Carrier string

	// Jurisdiction is the state or region code used for rate lookup.
	Jurisdiction string

	// Stage is the current lifecycle stage.
	Stage Stage

	// EstimatedValueCents is the original estimate.
	EstimatedValueCents int64

	// DeductibleCents is the policy deductible.
	DeductibleCents int64

	// CreatedAt is the Unix timestamp when the claim was filed.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last stage or financial change.
	UpdatedAt int64
}

// StageEvent records one persisted stage change of a claim.
type StageEvent struct {
	ID        string
	ClaimID   string
	FromStage Stage // StageNone for the initial filing
	ToStage   Stage
	ActorID   string
	Note      string
	CreatedAt int64
}
