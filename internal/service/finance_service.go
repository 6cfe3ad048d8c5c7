package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/claimtrack/internal/calculator"
	"github.com/mmynk/claimtrack/internal/models"
	"github.com/mmynk/claimtrack/internal/rates"
	"github.com/mmynk/claimtrack/internal/storage"
	"github.com/mmynk/claimtrack/pkg/claimsapi"
)

var _ claimsapi.FinanceServiceHandler = (*FinanceService)(nil)

// FinanceService implements the Connect FinanceService: the payment ledger,
// supplements, and the exposure and depreciation summaries derived from them.
type FinanceService struct {
	store    storage.Store
	schedule rates.Schedule
}

// NewFinanceService creates a new FinanceService. schedule supplies the
// depreciation and tax rates for drafts.
func NewFinanceService(store storage.Store, schedule rates.Schedule) *FinanceService {
	return &FinanceService{store: store, schedule: schedule}
}

// RecordPayment appends a payment to a claim's ledger.
func (s *FinanceService) RecordPayment(ctx context.Context, req *connect.Request[claimsapi.RecordPaymentRequest]) (*connect.Response[claimsapi.RecordPaymentResponse], error) {
	userID, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RecordPayment request received",
		"claim_id", req.Msg.ClaimID,
		"amount_cents", req.Msg.AmountCents,
		"type", req.Msg.Type,
	)

	if req.Msg.AmountCents <= 0 {
		return nil, invalidArgument(errors.New("amount must be positive"))
	}
	paymentType, ok := models.ParsePaymentType(req.Msg.Type)
	if !ok {
		return nil, invalidArgument(fmt.Errorf("unknown payment type %q", req.Msg.Type))
	}

	if _, err := s.store.GetClaim(ctx, orgID, req.Msg.ClaimID); err != nil {
		slog.Warn("RecordPayment failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	payment := &models.Payment{
		ClaimID:     req.Msg.ClaimID,
		AmountCents: req.Msg.AmountCents,
		Type:        paymentType,
		Reference:   req.Msg.Reference,
		RecordedBy:  userID,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Payment recorded", "payment_id", payment.ID, "claim_id", payment.ClaimID)

	return connect.NewResponse(&claimsapi.RecordPaymentResponse{Payment: paymentToAPI(payment)}), nil
}

// ListPayments returns a claim's payments in recording order.
func (s *FinanceService) ListPayments(ctx context.Context, req *connect.Request[claimsapi.ListPaymentsRequest]) (*connect.Response[claimsapi.ListPaymentsResponse], error) {
	_, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetClaim(ctx, orgID, req.Msg.ClaimID); err != nil {
		return nil, toConnectError(err)
	}

	payments, err := s.store.ListPayments(ctx, req.Msg.ClaimID)
	if err != nil {
		slog.Error("ListPayments failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*claimsapi.Payment, len(payments))
	for i, p := range payments {
		out[i] = paymentToAPI(p)
	}
	return connect.NewResponse(&claimsapi.ListPaymentsResponse{Payments: out}), nil
}

// CreateSupplement opens a supplement request against a claim.
func (s *FinanceService) CreateSupplement(ctx context.Context, req *connect.Request[claimsapi.CreateSupplementRequest]) (*connect.Response[claimsapi.CreateSupplementResponse], error) {
	_, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.TotalCents <= 0 {
		return nil, invalidArgument(errors.New("total must be positive"))
	}

	if _, err := s.store.GetClaim(ctx, orgID, req.Msg.ClaimID); err != nil {
		slog.Warn("CreateSupplement failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	supplement := &models.Supplement{
		ClaimID:     req.Msg.ClaimID,
		Description: req.Msg.Description,
		TotalCents:  req.Msg.TotalCents,
		Status:      models.SupplementRequested,
	}
	if err := s.store.CreateSupplement(ctx, supplement); err != nil {
		slog.Error("CreateSupplement failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Supplement created", "supplement_id", supplement.ID, "claim_id", supplement.ClaimID)

	return connect.NewResponse(&claimsapi.CreateSupplementResponse{Supplement: supplementToAPI(supplement)}), nil
}

// SetSupplementStatus sets a supplement's status. Any known status may be
// set from any other.
func (s *FinanceService) SetSupplementStatus(ctx context.Context, req *connect.Request[claimsapi.SetSupplementStatusRequest]) (*connect.Response[claimsapi.SetSupplementStatusResponse], error) {
	_, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	status, ok := models.ParseSupplementStatus(req.Msg.Status)
	if !ok {
		return nil, invalidArgument(fmt.Errorf("unknown supplement status %q", req.Msg.Status))
	}

	supplement, err := s.ownedSupplement(ctx, orgID, req.Msg.SupplementID)
	if err != nil {
		slog.Warn("SetSupplementStatus failed", "supplement_id", req.Msg.SupplementID, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateSupplementStatus(ctx, supplement.ID, status); err != nil {
		slog.Error("SetSupplementStatus failed", "supplement_id", supplement.ID, "error", err)
		return nil, toConnectError(err)
	}

	updated, err := s.store.GetSupplement(ctx, supplement.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Supplement status changed",
		"supplement_id", updated.ID,
		"from", supplement.Status,
		"to", updated.Status,
	)

	return connect.NewResponse(&claimsapi.SetSupplementStatusResponse{Supplement: supplementToAPI(updated)}), nil
}

// ownedSupplement loads a supplement and checks its claim belongs to orgID.
// Supplements of other organizations read as not found.
func (s *FinanceService) ownedSupplement(ctx context.Context, orgID, supplementID string) (*models.Supplement, error) {
	supplement, err := s.store.GetSupplement(ctx, supplementID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetClaim(ctx, orgID, supplement.ClaimID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("supplement %s: %w", supplementID, storage.ErrNotFound)
		}
		return nil, err
	}
	return supplement, nil
}

// ListSupplements returns a claim's supplements, optionally filtered by status.
func (s *FinanceService) ListSupplements(ctx context.Context, req *connect.Request[claimsapi.ListSupplementsRequest]) (*connect.Response[claimsapi.ListSupplementsResponse], error) {
	_, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]models.SupplementStatus, 0, len(req.Msg.Statuses))
	for _, raw := range req.Msg.Statuses {
		status, ok := models.ParseSupplementStatus(raw)
		if !ok {
			return nil, invalidArgument(fmt.Errorf("unknown supplement status %q", raw))
		}
		statuses = append(statuses, status)
	}

	if _, err := s.store.GetClaim(ctx, orgID, req.Msg.ClaimID); err != nil {
		return nil, toConnectError(err)
	}

	supplements, err := s.store.ListSupplements(ctx, req.Msg.ClaimID, statuses...)
	if err != nil {
		slog.Error("ListSupplements failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*claimsapi.Supplement, len(supplements))
	for i, sup := range supplements {
		out[i] = supplementToAPI(sup)
	}
	return connect.NewResponse(&claimsapi.ListSupplementsResponse{Supplements: out}), nil
}

// GetExposure computes a claim's current financial exposure.
func (s *FinanceService) GetExposure(ctx context.Context, req *connect.Request[claimsapi.GetExposureRequest]) (*connect.Response[claimsapi.GetExposureResponse], error) {
	_, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetExposure request received", "claim_id", req.Msg.ClaimID)

	if _, err := s.store.GetClaim(ctx, orgID, req.Msg.ClaimID); err != nil {
		slog.Warn("GetExposure failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	exposure, err := calculator.ComputeExposure(ctx, s.store, req.Msg.ClaimID)
	if err != nil {
		slog.Error("GetExposure failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetExposure successful",
		"claim_id", req.Msg.ClaimID,
		"exposure_cents", exposure.ExposureCents,
	)

	return connect.NewResponse(&claimsapi.GetExposureResponse{Exposure: exposureToAPI(exposure)}), nil
}

// GetDepreciationDraft builds a depreciation invoice draft for a claim.
func (s *FinanceService) GetDepreciationDraft(ctx context.Context, req *connect.Request[claimsapi.GetDepreciationDraftRequest]) (*connect.Response[claimsapi.GetDepreciationDraftResponse], error) {
	_, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetDepreciationDraft request received", "claim_id", req.Msg.ClaimID)

	draft, err := calculator.ComputeDepreciationDraft(ctx, s.store, orgID, req.Msg.ClaimID, s.schedule)
	if err != nil {
		slog.Warn("GetDepreciationDraft failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetDepreciationDraft successful",
		"claim_id", req.Msg.ClaimID,
		"line_items", len(draft.LineItems),
		"total_due_cents", draft.TotalDueCents,
	)

	return connect.NewResponse(&claimsapi.GetDepreciationDraftResponse{Draft: DraftToAPI(draft)}), nil
}

// ExportDraft loads a claim and its depreciation draft for spreadsheet export.
// Errors are Connect errors.
func (s *FinanceService) ExportDraft(ctx context.Context, claimID string) (*models.Claim, calculator.DepreciationDraft, error) {
	_, orgID, err := caller(ctx)
	if err != nil {
		return nil, calculator.DepreciationDraft{}, err
	}

	claim, err := s.store.GetClaim(ctx, orgID, claimID)
	if err != nil {
		return nil, calculator.DepreciationDraft{}, toConnectError(err)
	}

	draft, err := calculator.DraftForClaim(ctx, s.store, claim, s.schedule)
	if err != nil {
		slog.Warn("ExportDraft failed", "claim_id", claimID, "error", err)
		return nil, calculator.DepreciationDraft{}, toConnectError(err)
	}
	return claim, draft, nil
}
