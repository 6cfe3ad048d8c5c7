// Package models defines the core domain models for claimtrack.
//
// # Models
//
//   - Claim: one insurance claim tracked through a fixed lifecycle of stages
//   - StageEvent: audit record written for every persisted stage change
//   - Payment: one disbursement against a claim (append-only)
//   - Supplement: a request for additional claim value beyond the estimate
//
// All money is stored as integer cents. Relationships use ID strings instead
// of pointers, and every claim belongs to exactly one organization (tenant).
//
// Claims are never deleted. Their lifecycle is expressed only through Stage;
// the allowed stage graph lives in package lifecycle.
package models
