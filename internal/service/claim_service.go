package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/claimtrack/internal/lifecycle"
	"github.com/mmynk/claimtrack/internal/metrics"
	"github.com/mmynk/claimtrack/internal/models"
	"github.com/mmynk/claimtrack/internal/storage"
	"github.com/mmynk/claimtrack/pkg/claimsapi"
)

var _ claimsapi.ClaimServiceHandler = (*ClaimService)(nil)

// ClaimService implements the Connect ClaimService.
type ClaimService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewClaimService creates a new ClaimService with the given storage backend.
// m may be nil.
func NewClaimService(store storage.Store, m *metrics.Metrics) *ClaimService {
	return &ClaimService{store: store, metrics: m}
}

// CreateClaim files a new claim in the caller's organization.
func (s *ClaimService) CreateClaim(ctx context.Context, req *connect.Request[claimsapi.CreateClaimRequest]) (*connect.Response[claimsapi.CreateClaimResponse], error) {
	userID, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateClaim request received",
		"org_id", orgID,
		"claim_number", req.Msg.ClaimNumber,
	)

	if req.Msg.EstimatedValueCents < 0 || req.Msg.DeductibleCents < 0 {
		return nil, invalidArgument(errors.New("monetary fields must not be negative"))
	}

	claim := &models.Claim{
		OrgID:               orgID,
		PropertyID:          req.Msg.PropertyID,
		ClaimNumber:         req.Msg.ClaimNumber,
		Carrier:             req.Msg.Carrier,
		Jurisdiction:        req.Msg.Jurisdiction,
		// New claims only enter the lifecycle at FILED.
		Stage:               models.StageFiled,
		EstimatedValueCents: req.Msg.EstimatedValueCents,
		DeductibleCents:     req.Msg.DeductibleCents,
	}
	if err := s.store.CreateClaim(ctx, claim, userID); err != nil {
		slog.Error("CreateClaim failed", "org_id", orgID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.ObserveTransition(string(models.StageFiled), metrics.ResultApplied)

	slog.Info("Claim created", "claim_id", claim.ID, "org_id", orgID)

	return connect.NewResponse(&claimsapi.CreateClaimResponse{Claim: claimToAPI(claim)}), nil
}

// GetClaim retrieves a claim of the caller's organization.
func (s *ClaimService) GetClaim(ctx context.Context, req *connect.Request[claimsapi.GetClaimRequest]) (*connect.Response[claimsapi.GetClaimResponse], error) {
	_, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	claim, err := s.store.GetClaim(ctx, orgID, req.Msg.ClaimID)
	if err != nil {
		slog.Warn("GetClaim failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&claimsapi.GetClaimResponse{Claim: claimToAPI(claim)}), nil
}

// ListClaims lists the caller's claims, newest first.
func (s *ClaimService) ListClaims(ctx context.Context, req *connect.Request[claimsapi.ListClaimsRequest]) (*connect.Response[claimsapi.ListClaimsResponse], error) {
	_, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	filter := storage.ClaimFilter{Limit: int(req.Msg.Limit)}
	if req.Msg.Stage != "" {
		stage, err := models.ParseStage(req.Msg.Stage)
		if err != nil {
			return nil, invalidArgument(err)
		}
		filter.Stage = stage
	}
	if filter.Limit < 0 {
		return nil, invalidArgument(errors.New("limit must not be negative"))
	}

	claims, err := s.store.ListClaims(ctx, orgID, filter)
	if err != nil {
		slog.Error("ListClaims failed", "org_id", orgID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*claimsapi.Claim, len(claims))
	for i, c := range claims {
		out[i] = claimToAPI(c)
	}

	slog.Info("ListClaims successful", "org_id", orgID, "count", len(out))

	return connect.NewResponse(&claimsapi.ListClaimsResponse{Claims: out}), nil
}

// UpdateClaimFinancials sets a claim's estimated value and deductible.
func (s *ClaimService) UpdateClaimFinancials(ctx context.Context, req *connect.Request[claimsapi.UpdateClaimFinancialsRequest]) (*connect.Response[claimsapi.UpdateClaimFinancialsResponse], error) {
	_, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.EstimatedValueCents < 0 || req.Msg.DeductibleCents < 0 {
		return nil, invalidArgument(errors.New("monetary fields must not be negative"))
	}

	err = s.store.UpdateClaimFinancials(ctx, orgID, req.Msg.ClaimID, req.Msg.EstimatedValueCents, req.Msg.DeductibleCents)
	if err != nil {
		slog.Warn("UpdateClaimFinancials failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	claim, err := s.store.GetClaim(ctx, orgID, req.Msg.ClaimID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Claim financials updated", "claim_id", claim.ID)

	return connect.NewResponse(&claimsapi.UpdateClaimFinancialsResponse{Claim: claimToAPI(claim)}), nil
}

// TransitionStage moves a claim to a new lifecycle stage.
//
// The transition is validated against the claim's current stage and then
// persisted only if the claim is still in that stage. An invalid transition
// returns CodeFailedPrecondition and a concurrent change CodeAborted; in both
// cases nothing is written.
func (s *ClaimService) TransitionStage(ctx context.Context, req *connect.Request[claimsapi.TransitionStageRequest]) (*connect.Response[claimsapi.TransitionStageResponse], error) {
	userID, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("TransitionStage request received",
		"claim_id", req.Msg.ClaimID,
		"to", req.Msg.Stage,
	)

	to, err := models.ParseStage(req.Msg.Stage)
	if err != nil {
		return nil, invalidArgument(err)
	}

	claim, err := s.store.GetClaim(ctx, orgID, req.Msg.ClaimID)
	if err != nil {
		slog.Warn("TransitionStage failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	from := claim.Stage
	if !lifecycle.IsValidTransition(from, to) {
		s.metrics.ObserveTransition(string(to), metrics.ResultRejected)
		slog.Warn("TransitionStage rejected", "claim_id", claim.ID, "from", from, "to", to)
		return nil, toConnectError(fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to))
	}

	if err := s.store.TransitionClaimStage(ctx, orgID, claim.ID, from, to, userID, req.Msg.Note); err != nil {
		if errors.Is(err, storage.ErrStageConflict) {
			s.metrics.ObserveTransition(string(to), metrics.ResultConflict)
		}
		slog.Warn("TransitionStage failed", "claim_id", claim.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.ObserveTransition(string(to), metrics.ResultApplied)

	updated, err := s.store.GetClaim(ctx, orgID, claim.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Claim stage changed", "claim_id", claim.ID, "from", from, "to", to)

	return connect.NewResponse(&claimsapi.TransitionStageResponse{Claim: claimToAPI(updated)}), nil
}

// GetStageHistory returns a claim's stage changes, oldest first.
func (s *ClaimService) GetStageHistory(ctx context.Context, req *connect.Request[claimsapi.GetStageHistoryRequest]) (*connect.Response[claimsapi.GetStageHistoryResponse], error) {
	_, orgID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetClaim(ctx, orgID, req.Msg.ClaimID); err != nil {
		return nil, toConnectError(err)
	}

	events, err := s.store.ListStageEvents(ctx, req.Msg.ClaimID)
	if err != nil {
		slog.Error("GetStageHistory failed", "claim_id", req.Msg.ClaimID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*claimsapi.StageEvent, len(events))
	for i, e := range events {
		out[i] = stageEventToAPI(e)
	}

	return connect.NewResponse(&claimsapi.GetStageHistoryResponse{Events: out}), nil
}

// ValidateTransition reports whether from may move to to without touching
// any claim. An invalid pair is a normal answer, not an error.
func (s *ClaimService) ValidateTransition(ctx context.Context, req *connect.Request[claimsapi.ValidateTransitionRequest]) (*connect.Response[claimsapi.ValidateTransitionResponse], error) {
	from := models.StageNone
	if req.Msg.From != "" {
		parsed, err := models.ParseStage(req.Msg.From)
		if err != nil {
			return nil, invalidArgument(err)
		}
		from = parsed
	}
	to, err := models.ParseStage(req.Msg.To)
	if err != nil {
		return nil, invalidArgument(err)
	}

	return connect.NewResponse(&claimsapi.ValidateTransitionResponse{
		Valid:      lifecycle.IsValidTransition(from, to),
		Successors: stagesToAPI(lifecycle.Successors(from)),
	}), nil
}
