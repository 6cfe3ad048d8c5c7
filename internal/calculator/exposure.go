package calculator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/claimtrack/internal/models"
)

// Exposure is the running financial exposure of one claim, in cents.
type Exposure struct {
	PaidCents               int64
	ApprovedSupplementCents int64
	PendingSupplementCents  int64
	ExposureCents           int64
}

// ExposureSource provides the two aggregates the exposure figure is built from.
type ExposureSource interface {
	// SumPayments returns the sum of all payment amounts recorded for the claim.
	SumPayments(ctx context.Context, claimID string) (int64, error)

	// SupplementTotals returns supplement totals grouped by status.
	SupplementTotals(ctx context.Context, claimID string) (map[models.SupplementStatus]int64, error)
}

// SumExposure combines the aggregates into an Exposure.
// Every payment counts toward paid. Only approved and requested supplements
// count; denied or unknown statuses are ignored.
func SumExposure(paid int64, supplementTotals map[models.SupplementStatus]int64) Exposure {
	e := Exposure{
		PaidCents:               paid,
		ApprovedSupplementCents: supplementTotals[models.SupplementApproved],
		PendingSupplementCents:  supplementTotals[models.SupplementRequested],
	}
	e.ExposureCents = e.PaidCents + e.ApprovedSupplementCents + e.PendingSupplementCents
	return e
}

// ComputeExposure reads the payment and supplement aggregates for a claim and
// combines them.
//
// The two reads run concurrently and are not wrapped in a transaction, so a
// write landing between them may be reflected in one aggregate but not the
// other. The figure is a display summary, not a binding amount.
func ComputeExposure(ctx context.Context, src ExposureSource, claimID string) (Exposure, error) {
	var (
		paid   int64
		totals map[models.SupplementStatus]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		paid, err = src.SumPayments(gctx, claimID)
		if err != nil {
			return fmt.Errorf("sum payments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totals, err = src.SupplementTotals(gctx, claimID)
		if err != nil {
			return fmt.Errorf("sum supplements: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Exposure{}, err
	}

	return SumExposure(paid, totals), nil
}
