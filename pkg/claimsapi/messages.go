package claimsapi

// Claim is the wire form of a claim.
type Claim struct {
	ID                  string `json:"id"`
	OrgID               string `json:"orgId"`
	PropertyID          string `json:"propertyId,omitempty"`
	ClaimNumber         string `json:"claimNumber,omitempty"`
	Carrier             string `json:"carrier,omitempty"`
	Jurisdiction        string `json:"jurisdiction,omitempty"`
	Stage               string `json:"stage"`
	EstimatedValueCents int64  `json:"estimatedValueCents"`
	DeductibleCents     int64  `json:"deductibleCents"`
	CreatedAt           int64  `json:"createdAt"`
	UpdatedAt           int64  `json:"updatedAt"`
}

// StageEvent is one entry of a claim's stage history. FromStage is empty for
// the filing event.
type StageEvent struct {
	ID        string `json:"id"`
	ClaimID   string `json:"claimId"`
	FromStage string `json:"fromStage"`
	ToStage   string `json:"toStage"`
	ActorID   string `json:"actorId,omitempty"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type Payment struct {
	ID          string `json:"id"`
	ClaimID     string `json:"claimId"`
	AmountCents int64  `json:"amountCents"`
	Type        string `json:"type"`
	Reference   string `json:"reference,omitempty"`
	RecordedBy  string `json:"recordedBy,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

type Supplement struct {
	ID          string `json:"id"`
	ClaimID     string `json:"claimId"`
	Description string `json:"description,omitempty"`
	TotalCents  int64  `json:"totalCents"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// Exposure is a claim's running financial exposure in integer cents.
type Exposure struct {
	ExposureCents           int64 `json:"exposureCents"`
	PaidCents               int64 `json:"paidCents"`
	ApprovedSupplementCents int64 `json:"approvedSupplementCents"`
	PendingSupplementCents  int64 `json:"pendingSupplementCents"`
}

// LineItem is one row of a depreciation draft. Amounts are integer cents.
type LineItem struct {
	Description      string  `json:"description"`
	Cost             int64   `json:"cost"`
	DepreciationRate float64 `json:"depreciationRate"`
	Depreciation     int64   `json:"depreciation"`
	Recoverable      int64   `json:"recoverable"`
}

// DepreciationDraft is a computed preview of a depreciation-release invoice.
type DepreciationDraft struct {
	SubtotalCents     int64       `json:"subtotalCents"`
	DepreciationCents int64       `json:"depreciationCents"`
	TaxCents          int64       `json:"taxCents"`
	TotalDueCents     int64       `json:"totalDueCents"`
	LineItems         []*LineItem `json:"lineItems"`
}

// ClaimService messages.

type CreateClaimRequest struct {
	PropertyID          string `json:"propertyId"`
	ClaimNumber         string `json:"claimNumber"`
	Carrier             string `json:"carrier"`
	Jurisdiction        string `json:"jurisdiction"`
	EstimatedValueCents int64  `json:"estimatedValueCents"`
	DeductibleCents     int64  `json:"deductibleCents"`
}

type CreateClaimResponse struct {
	Claim *Claim `json:"claim"`
}

type GetClaimRequest struct {
	ClaimID string `json:"claimId"`
}

type GetClaimResponse struct {
	Claim *Claim `json:"claim"`
}

type ListClaimsRequest struct {
	// Stage filters by lifecycle stage when set.
	Stage string `json:"stage,omitempty"`
	Limit int32  `json:"limit,omitempty"`
}

type ListClaimsResponse struct {
	Claims []*Claim `json:"claims"`
}

type UpdateClaimFinancialsRequest struct {
	ClaimID             string `json:"claimId"`
	EstimatedValueCents int64  `json:"estimatedValueCents"`
	DeductibleCents     int64  `json:"deductibleCents"`
}

type UpdateClaimFinancialsResponse struct {
	Claim *Claim `json:"claim"`
}

type TransitionStageRequest struct {
	ClaimID string `json:"claimId"`
	Stage   string `json:"stage"`
	Note    string `json:"note,omitempty"`
}

type TransitionStageResponse struct {
	Claim *Claim `json:"claim"`
}

type GetStageHistoryRequest struct {
	ClaimID string `json:"claimId"`
}

type GetStageHistoryResponse struct {
	Events []*StageEvent `json:"events"`
}

// ValidateTransitionRequest asks whether from may move to to. An empty From
// means a claim that has not been filed yet.
type ValidateTransitionRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
}

type ValidateTransitionResponse struct {
	Valid      bool     `json:"valid"`
	Successors []string `json:"successors"`
}

// FinanceService messages.

type RecordPaymentRequest struct {
	ClaimID     string `json:"claimId"`
	AmountCents int64  `json:"amountCents"`
	Type        string `json:"type"`
	Reference   string `json:"reference,omitempty"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsRequest struct {
	ClaimID string `json:"claimId"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type CreateSupplementRequest struct {
	ClaimID     string `json:"claimId"`
	Description string `json:"description"`
	TotalCents  int64  `json:"totalCents"`
}

type CreateSupplementResponse struct {
	Supplement *Supplement `json:"supplement"`
}

type SetSupplementStatusRequest struct {
	SupplementID string `json:"supplementId"`
	Status       string `json:"status"`
}

type SetSupplementStatusResponse struct {
	Supplement *Supplement `json:"supplement"`
}

type ListSupplementsRequest struct {
	ClaimID  string   `json:"claimId"`
	Statuses []string `json:"statuses,omitempty"`
}

type ListSupplementsResponse struct {
	Supplements []*Supplement `json:"supplements"`
}

type GetExposureRequest struct {
	ClaimID string `json:"claimId"`
}

type GetExposureResponse struct {
	Exposure *Exposure `json:"exposure"`
}

type GetDepreciationDraftRequest struct {
	ClaimID string `json:"claimId"`
}

type GetDepreciationDraftResponse struct {
	Draft *DepreciationDraft `json:"draft"`
}
