package calculator

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/claimtrack/internal/models"
	"github.com/mmynk/claimtrack/internal/rates"
	"github.com/mmynk/claimtrack/internal/storage"
)

func TestBuildDepreciationDraft(t *testing.T) {
	tests := []struct {
		name         string
		payments     []*models.Payment
		supplements  []*models.Supplement
		validateFunc func(t *testing.T, d DepreciationDraft)
	}{
		{
			name:     "single ACV payment",
			payments: []*models.Payment{{AmountCents: 10000, Type: models.PaymentTypeACV}},
			validateFunc: func(t *testing.T, d DepreciationDraft) {
				// depreciation = round(10000 * 0.25) = 2500, recoverable = 7500
				// tax = round((10000 - 2500) * 0.08) = 600, total = 8100
				if len(d.LineItems) != 1 {
					t.Fatalf("expected 1 line item, got %d", len(d.LineItems))
				}
				item := d.LineItems[0]
				if item.Depreciation != 2500 || item.Recoverable != 7500 {
					t.Errorf("line item = %+v, want depreciation 2500 recoverable 7500", item)
				}
				if item.DepreciationRate != 0.25 {
					t.Errorf("rate = %v, want 0.25", item.DepreciationRate)
				}
				if d.SubtotalCents != 10000 {
					t.Errorf("subtotal = %d, want 10000", d.SubtotalCents)
				}
				if d.DepreciationCents != 2500 {
					t.Errorf("depreciation = %d, want 2500", d.DepreciationCents)
				}
				if d.TaxCents != 600 {
					t.Errorf("tax = %d, want 600", d.TaxCents)
				}
				if d.TotalDueCents != 8100 {
					t.Errorf("total due = %d, want 8100", d.TotalDueCents)
				}
			},
		},
		{
			name: "non-ACV payment and approved supplement",
			payments: []*models.Payment{
				{AmountCents: 20000, Type: models.PaymentTypeRCV, Reference: "CHK-1"},
			},
			supplements: []*models.Supplement{
				{TotalCents: 5000, Status: models.SupplementApproved, Description: "Gutters"},
			},
			validateFunc: func(t *testing.T, d DepreciationDraft) {
				// RCV: 20000 * 0.15 = 3000; supplement: 5000 * 0.20 = 1000
				// subtotal 25000, depreciation 4000, tax round(21000 * 0.08) = 1680
				if len(d.LineItems) != 2 {
					t.Fatalf("expected 2 line items, got %d", len(d.LineItems))
				}
				if d.LineItems[0].Description != "RCV payment (CHK-1)" {
					t.Errorf("payment description = %q", d.LineItems[0].Description)
				}
				if d.LineItems[1].Description != "Supplement: Gutters" {
					t.Errorf("supplement description = %q", d.LineItems[1].Description)
				}
				if d.LineItems[0].Depreciation != 3000 || d.LineItems[1].Depreciation != 1000 {
					t.Errorf("depreciation per item = %d, %d", d.LineItems[0].Depreciation, d.LineItems[1].Depreciation)
				}
				if d.SubtotalCents != 25000 || d.DepreciationCents != 4000 {
					t.Errorf("subtotal/depreciation = %d/%d", d.SubtotalCents, d.DepreciationCents)
				}
				if d.TaxCents != 1680 || d.TotalDueCents != 22680 {
					t.Errorf("tax/total = %d/%d, want 1680/22680", d.TaxCents, d.TotalDueCents)
				}
			},
		},
		{
			name: "non-approved supplements are skipped",
			supplements: []*models.Supplement{
				{TotalCents: 5000, Status: models.SupplementRequested},
				{TotalCents: 7000, Status: models.SupplementDenied},
			},
			validateFunc: func(t *testing.T, d DepreciationDraft) {
				if len(d.LineItems) != 0 {
					t.Errorf("expected no line items, got %d", len(d.LineItems))
				}
				if d.TotalDueCents != 0 {
					t.Errorf("total due = %d, want 0", d.TotalDueCents)
				}
			},
		},
		{
			name:     "half cents round away from zero",
			payments: []*models.Payment{{AmountCents: 10, Type: models.PaymentTypeOther}},
			validateFunc: func(t *testing.T, d DepreciationDraft) {
				// 10 * 0.15 = 1.5 -> 2; tax = round(8 * 0.08) = round(0.64) = 1
				if d.LineItems[0].Depreciation != 2 {
					t.Errorf("depreciation = %d, want 2", d.LineItems[0].Depreciation)
				}
				if d.TaxCents != 1 || d.TotalDueCents != 9 {
					t.Errorf("tax/total = %d/%d, want 1/9", d.TaxCents, d.TotalDueCents)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := BuildDepreciationDraft("claim-1", tt.payments, tt.supplements, rates.Defaults())
			if d.ClaimID != "claim-1" {
				t.Errorf("ClaimID = %q", d.ClaimID)
			}
			tt.validateFunc(t, d)
		})
	}
}

// fakeSource is an in-memory DraftSource and ExposureSource.
type fakeSource struct {
	claim       *models.Claim
	payments    []*models.Payment
	supplements []*models.Supplement
	paymentErr  error
	claimLoads  int
}

func (f *fakeSource) GetClaim(ctx context.Context, orgID, claimID string) (*models.Claim, error) {
	f.claimLoads++
	if f.claim == nil || f.claim.ID != claimID || f.claim.OrgID != orgID {
		return nil, storage.ErrNotFound
	}
	return f.claim, nil
}

func (f *fakeSource) ListPayments(ctx context.Context, claimID string) ([]*models.Payment, error) {
	return f.payments, nil
}

func (f *fakeSource) ListSupplements(ctx context.Context, claimID string, statuses ...models.SupplementStatus) ([]*models.Supplement, error) {
	var out []*models.Supplement
	for _, s := range f.supplements {
		for _, st := range statuses {
			if s.Status == st {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (f *fakeSource) SumPayments(ctx context.Context, claimID string) (int64, error) {
	if f.paymentErr != nil {
		return 0, f.paymentErr
	}
	var sum int64
	for _, p := range f.payments {
		sum += p.AmountCents
	}
	return sum, nil
}

func (f *fakeSource) SupplementTotals(ctx context.Context, claimID string) (map[models.SupplementStatus]int64, error) {
	totals := make(map[models.SupplementStatus]int64)
	for _, s := range f.supplements {
		totals[s.Status] += s.TotalCents
	}
	return totals, nil
}

func TestComputeDepreciationDraft_NotFound(t *testing.T) {
	src := &fakeSource{}
	_, err := ComputeDepreciationDraft(context.Background(), src, "org-1", "missing", rates.DefaultSchedule())
	if err == nil {
		t.Fatal("expected error for missing claim")
	}
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestComputeDepreciationDraft_UsesClaimRates(t *testing.T) {
	schedule, err := rates.Parse([]byte("carriers:\n  Acme:\n    acv: 0.5\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	src := &fakeSource{
		claim:    &models.Claim{ID: "c1", OrgID: "org-1", Carrier: "Acme"},
		payments: []*models.Payment{{AmountCents: 10000, Type: models.PaymentTypeACV}},
		supplements: []*models.Supplement{
			{TotalCents: 1000, Status: models.SupplementRequested},
		},
	}

	d, err := ComputeDepreciationDraft(context.Background(), src, "org-1", "c1", schedule)
	if err != nil {
		t.Fatalf("ComputeDepreciationDraft failed: %v", err)
	}
	if d.DepreciationCents != 5000 {
		t.Errorf("depreciation = %d, want 5000", d.DepreciationCents)
	}
	if len(d.LineItems) != 1 {
		t.Errorf("expected only the payment line item, got %d", len(d.LineItems))
	}
}

func TestComputeDepreciationDraft_Idempotent(t *testing.T) {
	src := &fakeSource{
		claim: &models.Claim{ID: "c1", OrgID: "org-1"},
		payments: []*models.Payment{
			{AmountCents: 12345, Type: models.PaymentTypeACV},
			{AmountCents: 678, Type: models.PaymentTypeDepreciation},
		},
		supplements: []*models.Supplement{{TotalCents: 999, Status: models.SupplementApproved}},
	}
	first, err := ComputeDepreciationDraft(context.Background(), src, "org-1", "c1", rates.DefaultSchedule())
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := ComputeDepreciationDraft(context.Background(), src, "org-1", "c1", rates.DefaultSchedule())
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if first.TotalDueCents != second.TotalDueCents || len(first.LineItems) != len(second.LineItems) {
		t.Errorf("drafts differ: %+v vs %+v", first, second)
	}
	for i := range first.LineItems {
		if first.LineItems[i] != second.LineItems[i] {
			t.Errorf("line item %d differs: %+v vs %+v", i, first.LineItems[i], second.LineItems[i])
		}
	}
}

func TestDraftForClaim_UsesLoadedClaim(t *testing.T) {
	claim := &models.Claim{ID: "c1", OrgID: "org-1", Carrier: "Acme"}
	src := &fakeSource{
		claim:    claim,
		payments: []*models.Payment{{AmountCents: 10000, Type: models.PaymentTypeACV}},
	}

	d, err := DraftForClaim(context.Background(), src, claim, rates.DefaultSchedule())
	if err != nil {
		t.Fatalf("DraftForClaim failed: %v", err)
	}
	if src.claimLoads != 0 {
		t.Errorf("claim loaded %d times, want 0", src.claimLoads)
	}
	if d.ClaimID != "c1" || d.DepreciationCents != 2500 {
		t.Errorf("unexpected draft: %+v", d)
	}

	if _, err := ComputeDepreciationDraft(context.Background(), src, "org-1", "c1", rates.DefaultSchedule()); err != nil {
		t.Fatalf("ComputeDepreciationDraft failed: %v", err)
	}
	if src.claimLoads != 1 {
		t.Errorf("claim loaded %d times, want 1", src.claimLoads)
	}
}
