package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"

	"github.com/mmynk/claimtrack/internal/models"
	"github.com/mmynk/claimtrack/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createClaim(t *testing.T, store *SQLiteStore, orgID string) *models.Claim {
	t.Helper()
	claim := &models.Claim{
		OrgID:               orgID,
		PropertyID:          "prop-1",
		Carrier:             "Acme Mutual",
		Jurisdiction:        "TX",
		EstimatedValueCents: 1500000,
		DeductibleCents:     100000,
	}
	if err := store.CreateClaim(context.Background(), claim, "user-1"); err != nil {
		t.Fatalf("CreateClaim failed: %v", err)
	}
	return claim
}

func TestSQLiteStore_Claims(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateClaim generates ID and files the claim", func(t *testing.T) {
		claim := createClaim(t, store, "org-1")

		if claim.ID == "" {
			t.Error("Expected claim ID to be generated")
		}
		if claim.Stage != models.StageFiled {
			t.Errorf("Stage = %s, want FILED", claim.Stage)
		}
		if claim.CreatedAt == 0 || claim.UpdatedAt != claim.CreatedAt {
			t.Errorf("timestamps not set: created=%d updated=%d", claim.CreatedAt, claim.UpdatedAt)
		}

		events, err := store.ListStageEvents(ctx, claim.ID)
		if err != nil {
			t.Fatalf("ListStageEvents failed: %v", err)
		}
		if len(events) != 1 || events[0].FromStage != models.StageNone || events[0].ToStage != models.StageFiled {
			t.Errorf("expected single filing event, got %+v", events)
		}
	})

	t.Run("GetClaim retrieves complete claim", func(t *testing.T) {
		original := createClaim(t, store, "org-1")

		retrieved, err := store.GetClaim(ctx, "org-1", original.ID)
		if err != nil {
			t.Fatalf("GetClaim failed: %v", err)
		}
		if *retrieved != *original {
			t.Errorf("claim mismatch: got %+v, want %+v", retrieved, original)
		}
	})

	t.Run("GetClaim is scoped to the organization", func(t *testing.T) {
		claim := createClaim(t, store, "org-1")

		_, err := store.GetClaim(ctx, "org-2", claim.ID)
		if !eris.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for foreign org, got %v", err)
		}
		_, err = store.GetClaim(ctx, "org-1", "nonexistent-id")
		if !eris.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for missing claim, got %v", err)
		}
	})

	t.Run("ListClaims filters by org and stage", func(t *testing.T) {
		s := newTestStore(t)
		a := createClaim(t, s, "org-a")
		createClaim(t, s, "org-a")
		createClaim(t, s, "org-b")
		if err := s.TransitionClaimStage(ctx, "org-a", a.ID, models.StageFiled, models.StageAdjusterReview, "u", ""); err != nil {
			t.Fatalf("TransitionClaimStage failed: %v", err)
		}

		all, err := s.ListClaims(ctx, "org-a", storage.ClaimFilter{})
		if err != nil {
			t.Fatalf("ListClaims failed: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected 2 claims for org-a, got %d", len(all))
		}

		review, err := s.ListClaims(ctx, "org-a", storage.ClaimFilter{Stage: models.StageAdjusterReview})
		if err != nil {
			t.Fatalf("ListClaims failed: %v", err)
		}
		if len(review) != 1 || review[0].ID != a.ID {
			t.Errorf("expected only %s in review, got %+v", a.ID, review)
		}

		limited, err := s.ListClaims(ctx, "org-a", storage.ClaimFilter{Limit: 1})
		if err != nil {
			t.Fatalf("ListClaims failed: %v", err)
		}
		if len(limited) != 1 {
			t.Errorf("expected limit 1, got %d", len(limited))
		}
	})

	t.Run("UpdateClaimFinancials", func(t *testing.T) {
		claim := createClaim(t, store, "org-1")
		if err := store.UpdateClaimFinancials(ctx, "org-1", claim.ID, 2000000, 250000); err != nil {
			t.Fatalf("UpdateClaimFinancials failed: %v", err)
		}
		got, err := store.GetClaim(ctx, "org-1", claim.ID)
		if err != nil {
			t.Fatalf("GetClaim failed: %v", err)
		}
		if got.EstimatedValueCents != 2000000 || got.DeductibleCents != 250000 {
			t.Errorf("financials not updated: %+v", got)
		}

		err = store.UpdateClaimFinancials(ctx, "org-2", claim.ID, 1, 1)
		if !eris.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for foreign org, got %v", err)
		}
	})
}

func TestSQLiteStore_TransitionClaimStage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	claim := createClaim(t, store, "org-1")

	if err := store.TransitionClaimStage(ctx, "org-1", claim.ID, models.StageFiled, models.StageAdjusterReview, "adjuster", "assigned"); err != nil {
		t.Fatalf("TransitionClaimStage failed: %v", err)
	}

	got, err := store.GetClaim(ctx, "org-1", claim.ID)
	if err != nil {
		t.Fatalf("GetClaim failed: %v", err)
	}
	if got.Stage != models.StageAdjusterReview {
		t.Errorf("Stage = %s, want ADJUSTER_REVIEW", got.Stage)
	}

	t.Run("stale from-stage is a conflict", func(t *testing.T) {
		err := store.TransitionClaimStage(ctx, "org-1", claim.ID, models.StageFiled, models.StageAdjusterReview, "adjuster", "")
		if !eris.Is(err, storage.ErrStageConflict) {
			t.Fatalf("expected ErrStageConflict, got %v", err)
		}
		unchanged, _ := store.GetClaim(ctx, "org-1", claim.ID)
		if unchanged.Stage != models.StageAdjusterReview {
			t.Errorf("stage changed on conflict: %s", unchanged.Stage)
		}
	})

	t.Run("missing claim is not found", func(t *testing.T) {
		err := store.TransitionClaimStage(ctx, "org-1", "nope", models.StageFiled, models.StageAdjusterReview, "", "")
		if !eris.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	events, err := store.ListStageEvents(ctx, claim.ID)
	if err != nil {
		t.Fatalf("ListStageEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	last := events[1]
	if last.FromStage != models.StageFiled || last.ToStage != models.StageAdjusterReview {
		t.Errorf("unexpected event %+v", last)
	}
	if last.ActorID != "adjuster" || last.Note != "assigned" {
		t.Errorf("event actor/note = %q/%q", last.ActorID, last.Note)
	}
}

func TestSQLiteStore_PaymentsAndSupplements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	claim := createClaim(t, store, "org-1")

	total, err := store.SumPayments(ctx, claim.ID)
	if err != nil {
		t.Fatalf("SumPayments failed: %v", err)
	}
	if total != 0 {
		t.Errorf("empty ledger sum = %d, want 0", total)
	}

	for _, p := range []*models.Payment{
		{ClaimID: claim.ID, AmountCents: 6000, Type: models.PaymentTypeACV, Reference: "CHK-100"},
		{ClaimID: claim.ID, AmountCents: 4000, Type: models.PaymentTypeRCV},
	} {
		if err := store.CreatePayment(ctx, p); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}
		if p.ID == "" || p.CreatedAt == 0 {
			t.Errorf("payment ID/CreatedAt not generated: %+v", p)
		}
	}

	payments, err := store.ListPayments(ctx, claim.ID)
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(payments) != 2 || payments[0].Reference != "CHK-100" || payments[1].Type != models.PaymentTypeRCV {
		t.Errorf("unexpected payments %+v", payments)
	}

	total, err = store.SumPayments(ctx, claim.ID)
	if err != nil {
		t.Fatalf("SumPayments failed: %v", err)
	}
	if total != 10000 {
		t.Errorf("SumPayments = %d, want 10000", total)
	}

	approved := &models.Supplement{ClaimID: claim.ID, Description: "Decking", TotalCents: 2000}
	pending := &models.Supplement{ClaimID: claim.ID, Description: "Gutters", TotalCents: 500}
	for _, sup := range []*models.Supplement{approved, pending} {
		if err := store.CreateSupplement(ctx, sup); err != nil {
			t.Fatalf("CreateSupplement failed: %v", err)
		}
		if sup.Status != models.SupplementRequested {
			t.Errorf("default status = %s, want requested", sup.Status)
		}
	}
	if err := store.UpdateSupplementStatus(ctx, approved.ID, models.SupplementApproved); err != nil {
		t.Fatalf("UpdateSupplementStatus failed: %v", err)
	}
	if err := store.UpdateSupplementStatus(ctx, "missing", models.SupplementApproved); !eris.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	got, err := store.GetSupplement(ctx, approved.ID)
	if err != nil {
		t.Fatalf("GetSupplement failed: %v", err)
	}
	if got.Status != models.SupplementApproved {
		t.Errorf("status = %s, want approved", got.Status)
	}

	onlyApproved, err := store.ListSupplements(ctx, claim.ID, models.SupplementApproved)
	if err != nil {
		t.Fatalf("ListSupplements failed: %v", err)
	}
	if len(onlyApproved) != 1 || onlyApproved[0].ID != approved.ID {
		t.Errorf("expected only approved supplement, got %+v", onlyApproved)
	}

	all, err := store.ListSupplements(ctx, claim.ID)
	if err != nil {
		t.Fatalf("ListSupplements failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 supplements, got %d", len(all))
	}

	totals, err := store.SupplementTotals(ctx, claim.ID)
	if err != nil {
		t.Fatalf("SupplementTotals failed: %v", err)
	}
	if totals[models.SupplementApproved] != 2000 || totals[models.SupplementRequested] != 500 {
		t.Errorf("unexpected totals %+v", totals)
	}
}
