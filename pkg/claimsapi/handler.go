package claimsapi

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// ClaimServiceHandler is implemented by servers of claims.v1.ClaimService.
type ClaimServiceHandler interface {
	CreateClaim(context.Context, *connect.Request[CreateClaimRequest]) (*connect.Response[CreateClaimResponse], error)
	GetClaim(context.Context, *connect.Request[GetClaimRequest]) (*connect.Response[GetClaimResponse], error)
	ListClaims(context.Context, *connect.Request[ListClaimsRequest]) (*connect.Response[ListClaimsResponse], error)
	UpdateClaimFinancials(context.Context, *connect.Request[UpdateClaimFinancialsRequest]) (*connect.Response[UpdateClaimFinancialsResponse], error)
	TransitionStage(context.Context, *connect.Request[TransitionStageRequest]) (*connect.Response[TransitionStageResponse], error)
	GetStageHistory(context.Context, *connect.Request[GetStageHistoryRequest]) (*connect.Response[GetStageHistoryResponse], error)
	ValidateTransition(context.Context, *connect.Request[ValidateTransitionRequest]) (*connect.Response[ValidateTransitionResponse], error)
}

// FinanceServiceHandler is implemented by servers of claims.v1.FinanceService.
type FinanceServiceHandler interface {
	RecordPayment(context.Context, *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error)
	CreateSupplement(context.Context, *connect.Request[CreateSupplementRequest]) (*connect.Response[CreateSupplementResponse], error)
	SetSupplementStatus(context.Context, *connect.Request[SetSupplementStatusRequest]) (*connect.Response[SetSupplementStatusResponse], error)
	ListSupplements(context.Context, *connect.Request[ListSupplementsRequest]) (*connect.Response[ListSupplementsResponse], error)
	GetExposure(context.Context, *connect.Request[GetExposureRequest]) (*connect.Response[GetExposureResponse], error)
	GetDepreciationDraft(context.Context, *connect.Request[GetDepreciationDraftRequest]) (*connect.Response[GetDepreciationDraftResponse], error)
}

// NewClaimServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewClaimServiceHandler(svc ClaimServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	createClaim := connect.NewUnaryHandler(ClaimServiceCreateClaimProcedure, svc.CreateClaim, opts...)
	getClaim := connect.NewUnaryHandler(ClaimServiceGetClaimProcedure, svc.GetClaim, opts...)
	listClaims := connect.NewUnaryHandler(ClaimServiceListClaimsProcedure, svc.ListClaims, opts...)
	updateFinancials := connect.NewUnaryHandler(ClaimServiceUpdateClaimFinancialsProcedure, svc.UpdateClaimFinancials, opts...)
	transitionStage := connect.NewUnaryHandler(ClaimServiceTransitionStageProcedure, svc.TransitionStage, opts...)
	getStageHistory := connect.NewUnaryHandler(ClaimServiceGetStageHistoryProcedure, svc.GetStageHistory, opts...)
	validateTransition := connect.NewUnaryHandler(ClaimServiceValidateTransitionProcedure, svc.ValidateTransition, opts...)

	return "/" + ClaimServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ClaimServiceCreateClaimProcedure:
			createClaim.ServeHTTP(w, r)
		case ClaimServiceGetClaimProcedure:
			getClaim.ServeHTTP(w, r)
		case ClaimServiceListClaimsProcedure:
			listClaims.ServeHTTP(w, r)
		case ClaimServiceUpdateClaimFinancialsProcedure:
			updateFinancials.ServeHTTP(w, r)
		case ClaimServiceTransitionStageProcedure:
			transitionStage.ServeHTTP(w, r)
		case ClaimServiceGetStageHistoryProcedure:
			getStageHistory.ServeHTTP(w, r)
		case ClaimServiceValidateTransitionProcedure:
			validateTransition.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewFinanceServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewFinanceServiceHandler(svc FinanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	recordPayment := connect.NewUnaryHandler(FinanceServiceRecordPaymentProcedure, svc.RecordPayment, opts...)
	listPayments := connect.NewUnaryHandler(FinanceServiceListPaymentsProcedure, svc.ListPayments, opts...)
	createSupplement := connect.NewUnaryHandler(FinanceServiceCreateSupplementProcedure, svc.CreateSupplement, opts...)
	setSupplementStatus := connect.NewUnaryHandler(FinanceServiceSetSupplementStatusProcedure, svc.SetSupplementStatus, opts...)
	listSupplements := connect.NewUnaryHandler(FinanceServiceListSupplementsProcedure, svc.ListSupplements, opts...)
	getExposure := connect.NewUnaryHandler(FinanceServiceGetExposureProcedure, svc.GetExposure, opts...)
	getDraft := connect.NewUnaryHandler(FinanceServiceGetDepreciationDraftProcedure, svc.GetDepreciationDraft, opts...)

	return "/" + FinanceServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case FinanceServiceRecordPaymentProcedure:
			recordPayment.ServeHTTP(w, r)
		case FinanceServiceListPaymentsProcedure:
			listPayments.ServeHTTP(w, r)
		case FinanceServiceCreateSupplementProcedure:
			createSupplement.ServeHTTP(w, r)
		case FinanceServiceSetSupplementStatusProcedure:
			setSupplementStatus.ServeHTTP(w, r)
		case FinanceServiceListSupplementsProcedure:
			listSupplements.ServeHTTP(w, r)
		case FinanceServiceGetExposureProcedure:
			getExposure.ServeHTTP(w, r)
		case FinanceServiceGetDepreciationDraftProcedure:
			getDraft.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// withCodec puts Codec first so callers can still override it.
func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}
