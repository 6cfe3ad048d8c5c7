package models

import "strings"

// SupplementStatus is the review status of a supplement.
type SupplementStatus string

const (
	SupplementRequested SupplementStatus = "requested"
	SupplementApproved  SupplementStatus = "approved"
	SupplementDenied    SupplementStatus = "denied"
)

// ParseSupplementStatus normalizes a status name. ok is false for unknown names.
func ParseSupplementStatus(raw string) (SupplementStatus, bool) {
	s := SupplementStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case SupplementRequested, SupplementApproved, SupplementDenied:
		return s, true
	}
	return "", false
}

// Supplement represents a request for additional claim value beyond the
// original estimate.
//
// Status changes are not constrained to any transition graph; any known
// status may be set from any other.
type Supplement struct {
	// ID is the unique identifier for the supplement (UUID format).
	ID string

	// ClaimID is the claim this supplement belongs to.
	ClaimID string

	// Description is a short summary of the supplemented scope.
	Description string

	// TotalCents is the requested supplement total.
	TotalCents int64

	// Status is the current review status.
	Status SupplementStatus

	// CreatedAt is the Unix timestamp when the supplement was requested.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last status change.
	UpdatedAt int64
}
