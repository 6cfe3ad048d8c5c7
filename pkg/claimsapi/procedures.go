package claimsapi

const (
	// ClaimServiceName is the fully-qualified name of the ClaimService service.
	ClaimServiceName = "claims.v1.ClaimService"
	// FinanceServiceName is the fully-qualified name of the FinanceService service.
	FinanceServiceName = "claims.v1.FinanceService"
)

const (
	ClaimServiceCreateClaimProcedure           = "/claims.v1.ClaimService/CreateClaim"
	ClaimServiceGetClaimProcedure              = "/claims.v1.ClaimService/GetClaim"
	ClaimServiceListClaimsProcedure            = "/claims.v1.ClaimService/ListClaims"
	ClaimServiceUpdateClaimFinancialsProcedure = "/claims.v1.ClaimService/UpdateClaimFinancials"
	ClaimServiceTransitionStageProcedure       = "/claims.v1.ClaimService/TransitionStage"
	ClaimServiceGetStageHistoryProcedure       = "/claims.v1.ClaimService/GetStageHistory"
	ClaimServiceValidateTransitionProcedure    = "/claims.v1.ClaimService/ValidateTransition"
)

const (
	FinanceServiceRecordPaymentProcedure        = "/claims.v1.FinanceService/RecordPayment"
	FinanceServiceListPaymentsProcedure         = "/claims.v1.FinanceService/ListPayments"
	FinanceServiceCreateSupplementProcedure     = "/claims.v1.FinanceService/CreateSupplement"
	FinanceServiceSetSupplementStatusProcedure  = "/claims.v1.FinanceService/SetSupplementStatus"
	FinanceServiceListSupplementsProcedure      = "/claims.v1.FinanceService/ListSupplements"
	FinanceServiceGetExposureProcedure          = "/claims.v1.FinanceService/GetExposure"
	FinanceServiceGetDepreciationDraftProcedure = "/claims.v1.FinanceService/GetDepreciationDraft"
)
