// Package httpapi serves the REST routes the claims front end calls: stage
// changes, the exposure summary and the depreciation draft.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"

	"github.com/mmynk/claimtrack/internal/export"
	"github.com/mmynk/claimtrack/internal/service"
	"github.com/mmynk/claimtrack/pkg/claimsapi"
)

// Handler serves the REST routes on top of the Connect services.
type Handler struct {
	claims  *service.ClaimService
	finance *service.FinanceService
}

// New creates a Handler.
func New(claims *service.ClaimService, finance *service.FinanceService) *Handler {
	return &Handler{claims: claims, finance: finance}
}

// Router returns the /api routes. middlewares run before every route, in
// order; authentication belongs there.
func (h *Handler) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middlewares...)
		r.Route("/claims/{claimID}", func(r chi.Router) {
			r.Post("/stage", h.transitionStage)
			r.Get("/exposure", h.exposure)
			r.Get("/depreciation-draft", h.depreciationDraft)
			r.Get("/depreciation-draft.xlsx", h.depreciationDraftXLSX)
		})
	})
	return r
}

type transitionBody struct {
	Stage string `json:"stage"`
	Note  string `json:"note,omitempty"`
}

func (h *Handler) transitionStage(w http.ResponseWriter, r *http.Request) {
	var body transitionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Stage == "" {
		writeError(w, http.StatusBadRequest, "stage is required")
		return
	}

	resp, err := h.claims.TransitionStage(r.Context(), connect.NewRequest(&claimsapi.TransitionStageRequest{
		ClaimID: chi.URLParam(r, "claimID"),
		Stage:   body.Stage,
		Note:    body.Note,
	}))
	if err != nil {
		writeConnectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Msg.Claim)
}

func (h *Handler) exposure(w http.ResponseWriter, r *http.Request) {
	resp, err := h.finance.GetExposure(r.Context(), connect.NewRequest(&claimsapi.GetExposureRequest{
		ClaimID: chi.URLParam(r, "claimID"),
	}))
	if err != nil {
		writeConnectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Msg.Exposure)
}

func (h *Handler) depreciationDraft(w http.ResponseWriter, r *http.Request) {
	resp, err := h.finance.GetDepreciationDraft(r.Context(), connect.NewRequest(&claimsapi.GetDepreciationDraftRequest{
		ClaimID: chi.URLParam(r, "claimID"),
	}))
	if err != nil {
		writeConnectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Msg.Draft)
}

func (h *Handler) depreciationDraftXLSX(w http.ResponseWriter, r *http.Request) {
	claim, draft, err := h.finance.ExportDraft(r.Context(), chi.URLParam(r, "claimID"))
	if err != nil {
		writeConnectError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="depreciation-%s.xlsx"`, claim.ID))
	if err := export.WriteDraftXLSX(w, claim, draft); err != nil {
		// Headers are gone by now; the client sees a truncated file.
		slog.Error("depreciation draft export failed", "claim_id", claim.ID, "error", err)
	}
}

// statusFor maps a Connect code to the HTTP status the REST routes return.
func statusFor(code connect.Code) int {
	switch code {
	case connect.CodeInvalidArgument:
		return http.StatusBadRequest
	case connect.CodeUnauthenticated:
		return http.StatusUnauthorized
	case connect.CodePermissionDenied:
		return http.StatusForbidden
	case connect.CodeNotFound:
		return http.StatusNotFound
	case connect.CodeFailedPrecondition, connect.CodeAborted:
		return http.StatusConflict
	case connect.CodeResourceExhausted:
		return http.StatusTooManyRequests
	case connect.CodeCanceled, connect.CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeConnectError(w http.ResponseWriter, err error) {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	status := statusFor(connectErr.Code())
	msg := connectErr.Message()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeError(w, status, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
