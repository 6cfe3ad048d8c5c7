package claimsapi

import (
	"context"

	"connectrpc.com/connect"
)

// ClaimServiceClient is a client for the claims.v1.ClaimService service.
type ClaimServiceClient interface {
	CreateClaim(context.Context, *connect.Request[CreateClaimRequest]) (*connect.Response[CreateClaimResponse], error)
	GetClaim(context.Context, *connect.Request[GetClaimRequest]) (*connect.Response[GetClaimResponse], error)
	ListClaims(context.Context, *connect.Request[ListClaimsRequest]) (*connect.Response[ListClaimsResponse], error)
	UpdateClaimFinancials(context.Context, *connect.Request[UpdateClaimFinancialsRequest]) (*connect.Response[UpdateClaimFinancialsResponse], error)
	TransitionStage(context.Context, *connect.Request[TransitionStageRequest]) (*connect.Response[TransitionStageResponse], error)
	GetStageHistory(context.Context, *connect.Request[GetStageHistoryRequest]) (*connect.Response[GetStageHistoryResponse], error)
	ValidateTransition(context.Context, *connect.Request[ValidateTransitionRequest]) (*connect.Response[ValidateTransitionResponse], error)
}

// FinanceServiceClient is a client for the claims.v1.FinanceService service.
type FinanceServiceClient interface {
	RecordPayment(context.Context, *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error)
	CreateSupplement(context.Context, *connect.Request[CreateSupplementRequest]) (*connect.Response[CreateSupplementResponse], error)
	SetSupplementStatus(context.Context, *connect.Request[SetSupplementStatusRequest]) (*connect.Response[SetSupplementStatusResponse], error)
	ListSupplements(context.Context, *connect.Request[ListSupplementsRequest]) (*connect.Response[ListSupplementsResponse], error)
	GetExposure(context.Context, *connect.Request[GetExposureRequest]) (*connect.Response[GetExposureResponse], error)
	GetDepreciationDraft(context.Context, *connect.Request[GetDepreciationDraftRequest]) (*connect.Response[GetDepreciationDraftResponse], error)
}

// NewClaimServiceClient constructs a client for claims.v1.ClaimService.
// baseURL is the server root, e.g. http://localhost:8080.
func NewClaimServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ClaimServiceClient {
	opts = withClientCodec(opts)
	return &claimServiceClient{
		createClaim:        connect.NewClient[CreateClaimRequest, CreateClaimResponse](httpClient, baseURL+ClaimServiceCreateClaimProcedure, opts...),
		getClaim:           connect.NewClient[GetClaimRequest, GetClaimResponse](httpClient, baseURL+ClaimServiceGetClaimProcedure, opts...),
		listClaims:         connect.NewClient[ListClaimsRequest, ListClaimsResponse](httpClient, baseURL+ClaimServiceListClaimsProcedure, opts...),
		updateFinancials:   connect.NewClient[UpdateClaimFinancialsRequest, UpdateClaimFinancialsResponse](httpClient, baseURL+ClaimServiceUpdateClaimFinancialsProcedure, opts...),
		transitionStage:    connect.NewClient[TransitionStageRequest, TransitionStageResponse](httpClient, baseURL+ClaimServiceTransitionStageProcedure, opts...),
		getStageHistory:    connect.NewClient[GetStageHistoryRequest, GetStageHistoryResponse](httpClient, baseURL+ClaimServiceGetStageHistoryProcedure, opts...),
		validateTransition: connect.NewClient[ValidateTransitionRequest, ValidateTransitionResponse](httpClient, baseURL+ClaimServiceValidateTransitionProcedure, opts...),
	}
}

type claimServiceClient struct {
	createClaim        *connect.Client[CreateClaimRequest, CreateClaimResponse]
	getClaim           *connect.Client[GetClaimRequest, GetClaimResponse]
	listClaims         *connect.Client[ListClaimsRequest, ListClaimsResponse]
	updateFinancials   *connect.Client[UpdateClaimFinancialsRequest, UpdateClaimFinancialsResponse]
	transitionStage    *connect.Client[TransitionStageRequest, TransitionStageResponse]
	getStageHistory    *connect.Client[GetStageHistoryRequest, GetStageHistoryResponse]
	validateTransition *connect.Client[ValidateTransitionRequest, ValidateTransitionResponse]
}

func (c *claimServiceClient) CreateClaim(ctx context.Context, req *connect.Request[CreateClaimRequest]) (*connect.Response[CreateClaimResponse], error) {
	return c.createClaim.CallUnary(ctx, req)
}

func (c *claimServiceClient) GetClaim(ctx context.Context, req *connect.Request[GetClaimRequest]) (*connect.Response[GetClaimResponse], error) {
	return c.getClaim.CallUnary(ctx, req)
}

func (c *claimServiceClient) ListClaims(ctx context.Context, req *connect.Request[ListClaimsRequest]) (*connect.Response[ListClaimsResponse], error) {
	return c.listClaims.CallUnary(ctx, req)
}

func (c *claimServiceClient) UpdateClaimFinancials(ctx context.Context, req *connect.Request[UpdateClaimFinancialsRequest]) (*connect.Response[UpdateClaimFinancialsResponse], error) {
	return c.updateFinancials.CallUnary(ctx, req)
}

func (c *claimServiceClient) TransitionStage(ctx context.Context, req *connect.Request[TransitionStageRequest]) (*connect.Response[TransitionStageResponse], error) {
	return c.transitionStage.CallUnary(ctx, req)
}

func (c *claimServiceClient) GetStageHistory(ctx context.Context, req *connect.Request[GetStageHistoryRequest]) (*connect.Response[GetStageHistoryResponse], error) {
	return c.getStageHistory.CallUnary(ctx, req)
}

func (c *claimServiceClient) ValidateTransition(ctx context.Context, req *connect.Request[ValidateTransitionRequest]) (*connect.Response[ValidateTransitionResponse], error) {
	return c.validateTransition.CallUnary(ctx, req)
}

// NewFinanceServiceClient constructs a client for claims.v1.FinanceService.
func NewFinanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FinanceServiceClient {
	opts = withClientCodec(opts)
	return &financeServiceClient{
		recordPayment:       connect.NewClient[RecordPaymentRequest, RecordPaymentResponse](httpClient, baseURL+FinanceServiceRecordPaymentProcedure, opts...),
		listPayments:        connect.NewClient[ListPaymentsRequest, ListPaymentsResponse](httpClient, baseURL+FinanceServiceListPaymentsProcedure, opts...),
		createSupplement:    connect.NewClient[CreateSupplementRequest, CreateSupplementResponse](httpClient, baseURL+FinanceServiceCreateSupplementProcedure, opts...),
		setSupplementStatus: connect.NewClient[SetSupplementStatusRequest, SetSupplementStatusResponse](httpClient, baseURL+FinanceServiceSetSupplementStatusProcedure, opts...),
		listSupplements:     connect.NewClient[ListSupplementsRequest, ListSupplementsResponse](httpClient, baseURL+FinanceServiceListSupplementsProcedure, opts...),
		getExposure:         connect.NewClient[GetExposureRequest, GetExposureResponse](httpClient, baseURL+FinanceServiceGetExposureProcedure, opts...),
		getDraft:            connect.NewClient[GetDepreciationDraftRequest, GetDepreciationDraftResponse](httpClient, baseURL+FinanceServiceGetDepreciationDraftProcedure, opts...),
	}
}

type financeServiceClient struct {
	recordPayment       *connect.Client[RecordPaymentRequest, RecordPaymentResponse]
	listPayments        *connect.Client[ListPaymentsRequest, ListPaymentsResponse]
	createSupplement    *connect.Client[CreateSupplementRequest, CreateSupplementResponse]
	setSupplementStatus *connect.Client[SetSupplementStatusRequest, SetSupplementStatusResponse]
	listSupplements     *connect.Client[ListSupplementsRequest, ListSupplementsResponse]
	getExposure         *connect.Client[GetExposureRequest, GetExposureResponse]
	getDraft            *connect.Client[GetDepreciationDraftRequest, GetDepreciationDraftResponse]
}

func (c *financeServiceClient) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *financeServiceClient) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *financeServiceClient) CreateSupplement(ctx context.Context, req *connect.Request[CreateSupplementRequest]) (*connect.Response[CreateSupplementResponse], error) {
	return c.createSupplement.CallUnary(ctx, req)
}

func (c *financeServiceClient) SetSupplementStatus(ctx context.Context, req *connect.Request[SetSupplementStatusRequest]) (*connect.Response[SetSupplementStatusResponse], error) {
	return c.setSupplementStatus.CallUnary(ctx, req)
}

func (c *financeServiceClient) ListSupplements(ctx context.Context, req *connect.Request[ListSupplementsRequest]) (*connect.Response[ListSupplementsResponse], error) {
	return c.listSupplements.CallUnary(ctx, req)
}

func (c *financeServiceClient) GetExposure(ctx context.Context, req *connect.Request[GetExposureRequest]) (*connect.Response[GetExposureResponse], error) {
	return c.getExposure.CallUnary(ctx, req)
}

func (c *financeServiceClient) GetDepreciationDraft(ctx context.Context, req *connect.Request[GetDepreciationDraftRequest]) (*connect.Response[GetDepreciationDraftResponse], error) {
	return c.getDraft.CallUnary(ctx, req)
}

func withClientCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

