// Package storage provides abstractions for persistent claim storage.
package storage

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/mmynk/claimtrack/internal/models"
)

var (
	// ErrNotFound is returned when a claim or supplement does not exist, or
	// belongs to a different organization than the caller's.
	ErrNotFound = eris.New("not found")

	// ErrStageConflict is returned when a stage transition finds the claim
	// in a different stage than the one the caller validated against.
	ErrStageConflict = eris.New("claim stage changed concurrently")
)

// ClaimFilter narrows ListClaims.
type ClaimFilter struct {
	// Stage restricts results to one stage. StageNone matches every stage.
	Stage models.Stage

	// Limit caps the number of claims returned. Zero means no limit.
	Limit int
}

// Store defines the interface for claim storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateClaim persists a new claim and its initial stage event.
	// ID, CreatedAt and UpdatedAt are populated by the store.
	CreateClaim(ctx context.Context, claim *models.Claim, actorID string) error

	// GetClaim retrieves a claim of the given organization.
	// Returns ErrNotFound if no such claim exists in that organization.
	GetClaim(ctx context.Context, orgID, claimID string) (*models.Claim, error)

	// ListClaims returns the organization's claims, newest first.
	ListClaims(ctx context.Context, orgID string, filter ClaimFilter) ([]*models.Claim, error)

	// UpdateClaimFinancials sets the estimated value and deductible.
	UpdateClaimFinancials(ctx context.Context, orgID, claimID string, estimatedCents, deductibleCents int64) error

	// TransitionClaimStage moves a claim from one stage to another and records
	// a stage event in the same transaction. The update only applies while the
	// claim is still in stage from; otherwise ErrStageConflict is returned.
	// Callers validate the transition before calling.
	TransitionClaimStage(ctx context.Context, orgID, claimID string, from, to models.Stage, actorID, note string) error

	// ListStageEvents returns a claim's stage history, oldest first.
	ListStageEvents(ctx context.Context, claimID string) ([]*models.StageEvent, error)

	// CreatePayment appends a payment to a claim's ledger.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPayments returns a claim's payments in recording order.
	ListPayments(ctx context.Context, claimID string) ([]*models.Payment, error)

	// SumPayments returns the total of all payments recorded for a claim.
	SumPayments(ctx context.Context, claimID string) (int64, error)

	// CreateSupplement persists a new supplement.
	CreateSupplement(ctx context.Context, supplement *models.Supplement) error

	// GetSupplement retrieves a supplement by ID.
	GetSupplement(ctx context.Context, supplementID string) (*models.Supplement, error)

	// UpdateSupplementStatus sets a supplement's status.
	UpdateSupplementStatus(ctx context.Context, supplementID string, status models.SupplementStatus) error

	// ListSupplements returns a claim's supplements in creation order,
	// optionally restricted to the given statuses.
	ListSupplements(ctx context.Context, claimID string, statuses ...models.SupplementStatus) ([]*models.Supplement, error)

	// SupplementTotals returns a claim's supplement totals grouped by status.
	SupplementTotals(ctx context.Context, claimID string) (map[models.SupplementStatus]int64, error)

	// Close releases any resources held by the store.
	Close() error
}
