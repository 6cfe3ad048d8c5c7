package service

import (
	"github.com/mmynk/claimtrack/internal/calculator"
	"github.com/mmynk/claimtrack/internal/models"
	"github.com/mmynk/claimtrack/pkg/claimsapi"
)

func claimToAPI(c *models.Claim) *claimsapi.Claim {
	return &claimsapi.Claim{
		ID:                  c.ID,
		OrgID:               c.OrgID,
		PropertyID:          c.PropertyID,
		ClaimNumber:         c.ClaimNumber,
		Carrier:             c.Carrier,
		Jurisdiction:        c.Jurisdiction,
		Stage:               string(c.Stage),
		EstimatedValueCents: c.EstimatedValueCents,
		DeductibleCents:     c.DeductibleCents,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func stageEventToAPI(e *models.StageEvent) *claimsapi.StageEvent {
	return &claimsapi.StageEvent{
		ID:        e.ID,
		ClaimID:   e.ClaimID,
		FromStage: string(e.FromStage),
		ToStage:   string(e.ToStage),
		ActorID:   e.ActorID,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}

func paymentToAPI(p *models.Payment) *claimsapi.Payment {
	return &claimsapi.Payment{
		ID:          p.ID,
		ClaimID:     p.ClaimID,
		AmountCents: p.AmountCents,
		Type:        string(p.Type),
		Reference:   p.Reference,
		RecordedBy:  p.RecordedBy,
		CreatedAt:   p.CreatedAt,
	}
}

func supplementToAPI(s *models.Supplement) *claimsapi.Supplement {
	return &claimsapi.Supplement{
		ID:          s.ID,
		ClaimID:     s.ClaimID,
		Description: s.Description,
		TotalCents:  s.TotalCents,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func exposureToAPI(e calculator.Exposure) *claimsapi.Exposure {
	return &claimsapi.Exposure{
		ExposureCents:           e.ExposureCents,
		PaidCents:               e.PaidCents,
		ApprovedSupplementCents: e.ApprovedSupplementCents,
		PendingSupplementCents:  e.PendingSupplementCents,
	}
}

// DraftToAPI converts a computed draft to its wire form.
func DraftToAPI(d calculator.DepreciationDraft) *claimsapi.DepreciationDraft {
	items := make([]*claimsapi.LineItem, len(d.LineItems))
	for i, li := range d.LineItems {
		items[i] = &claimsapi.LineItem{
			Description:      li.Description,
			Cost:             li.Cost,
			DepreciationRate: li.DepreciationRate,
			Depreciation:     li.Depreciation,
			Recoverable:      li.Recoverable,
		}
	}
	return &claimsapi.DepreciationDraft{
		SubtotalCents:     d.SubtotalCents,
		DepreciationCents: d.DepreciationCents,
		TaxCents:          d.TaxCents,
		TotalDueCents:     d.TotalDueCents,
		LineItems:         items,
	}
}

func stagesToAPI(stages []models.Stage) []string {
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = string(s)
	}
	return out
}
