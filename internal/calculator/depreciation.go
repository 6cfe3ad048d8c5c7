// Package calculator derives claim financial summaries: the exposure figure
// and the depreciation invoice draft. Nothing here persists state; every
// result is recomputed from the records passed in or read from a source.
package calculator

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/claimtrack/internal/models"
	"github.com/mmynk/claimtrack/internal/rates"
)

// LineItem is one row of a depreciation draft.
type LineItem struct {
	Description      string
	Cost             int64
	DepreciationRate float64
	Depreciation     int64
	Recoverable      int64
}

// DepreciationDraft is a computed, non-persisted preview of a
// depreciation-release invoice.
type DepreciationDraft struct {
	ClaimID           string
	SubtotalCents     int64
	DepreciationCents int64
	TaxCents          int64
	TotalDueCents     int64
	LineItems         []LineItem
}

// DraftSource loads the records a depreciation draft is built from.
type DraftSource interface {
	GetClaim(ctx context.Context, orgID, claimID string) (*models.Claim, error)
	ListPayments(ctx context.Context, claimID string) ([]*models.Payment, error)
	ListSupplements(ctx context.Context, claimID string, statuses ...models.SupplementStatus) ([]*models.Supplement, error)
}

// BuildDepreciationDraft derives a draft from a claim's payments and
// supplements.
//
// Each payment depreciates at the ACV rate when tagged ACV and at the non-ACV
// rate otherwise. Each approved supplement depreciates at the supplement rate;
// supplements in any other status are skipped. Line items keep input order,
// payments first. Tax applies to (subtotal - depreciation).
func BuildDepreciationDraft(claimID string, payments []*models.Payment, supplements []*models.Supplement, r rates.Rates) DepreciationDraft {
	draft := DepreciationDraft{
		ClaimID:   claimID,
		LineItems: make([]LineItem, 0, len(payments)+len(supplements)),
	}

	for _, p := range payments {
		rate := r.NonACV
		if p.Type == models.PaymentTypeACV {
			rate = r.ACV
		}
		draft.add(newLineItem(paymentDescription(p), p.AmountCents, rate))
	}

	for _, s := range supplements {
		if s.Status != models.SupplementApproved {
			continue
		}
		draft.add(newLineItem(supplementDescription(s), s.TotalCents, r.Supplement))
	}

	taxable := draft.SubtotalCents - draft.DepreciationCents
	draft.TaxCents = applyRate(taxable, r.Tax)
	draft.TotalDueCents = taxable + draft.TaxCents

	return draft
}

// ComputeDepreciationDraft loads a claim with its payments and approved
// supplements and builds the draft using the rates the schedule resolves for
// the claim's carrier and jurisdiction.
// The claim lookup error (storage.ErrNotFound when missing) is returned wrapped.
func ComputeDepreciationDraft(ctx context.Context, src DraftSource, orgID, claimID string, schedule rates.Schedule) (DepreciationDraft, error) {
	claim, err := src.GetClaim(ctx, orgID, claimID)
	if err != nil {
		return DepreciationDraft{}, fmt.Errorf("load claim: %w", err)
	}
	return DraftForClaim(ctx, src, claim, schedule)
}

// DraftForClaim builds the draft for an already loaded claim.
func DraftForClaim(ctx context.Context, src DraftSource, claim *models.Claim, schedule rates.Schedule) (DepreciationDraft, error) {
	payments, err := src.ListPayments(ctx, claim.ID)
	if err != nil {
		return DepreciationDraft{}, fmt.Errorf("load payments: %w", err)
	}

	supplements, err := src.ListSupplements(ctx, claim.ID, models.SupplementApproved)
	if err != nil {
		return DepreciationDraft{}, fmt.Errorf("load supplements: %w", err)
	}

	r := schedule.For(claim.Carrier, claim.Jurisdiction)
	return BuildDepreciationDraft(claim.ID, payments, supplements, r), nil
}

func (d *DepreciationDraft) add(item LineItem) {
	d.LineItems = append(d.LineItems, item)
	d.SubtotalCents += item.Cost
	d.DepreciationCents += item.Depreciation
}

func newLineItem(description string, cost int64, rate float64) LineItem {
	depreciation := applyRate(cost, rate)
	return LineItem{
		Description:      description,
		Cost:             cost,
		DepreciationRate: rate,
		Depreciation:     depreciation,
		Recoverable:      cost - depreciation,
	}
}

// applyRate returns round(cents × rate) to the nearest cent, halves away
// from zero. The product is computed in decimal so 0.15 and friends are exact.
func applyRate(cents int64, rate float64) int64 {
	return decimal.NewFromInt(cents).
		Mul(decimal.NewFromFloat(rate)).
		Round(0).
		IntPart()
}

func paymentDescription(p *models.Payment) string {
	if p.Reference != "" {
		return fmt.Sprintf("%s payment (%s)", p.Type, p.Reference)
	}
	return fmt.Sprintf("%s payment", p.Type)
}

func supplementDescription(s *models.Supplement) string {
	if s.Description != "" {
		return "Supplement: " + s.Description
	}
	return "Approved supplement"
}
