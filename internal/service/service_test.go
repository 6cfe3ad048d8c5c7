package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/claimtrack/internal/middleware"
	"github.com/mmynk/claimtrack/internal/rates"
	"github.com/mmynk/claimtrack/internal/storage/sqlite"
	"github.com/mmynk/claimtrack/pkg/claimsapi"
)

// testAuthInterceptor returns a Connect interceptor that sets a test user and
// organization in the context. The organization can be overridden per request
// with the X-Test-Org header.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			orgID := "org-1"
			if h := req.Header().Get("X-Test-Org"); h != "" {
				orgID = h
			}
			ctx = context.WithValue(ctx, middleware.UserIDKey, "adjuster-1")
			ctx = context.WithValue(ctx, middleware.OrgIDKey, orgID)
			return next(ctx, req)
		}
	}
}

type testClients struct {
	claims  claimsapi.ClaimServiceClient
	finance claimsapi.FinanceServiceClient
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	authInterceptor := connect.WithInterceptors(testAuthInterceptor())
	claimPath, claimHandler := claimsapi.NewClaimServiceHandler(NewClaimService(store, nil), authInterceptor)
	financePath, financeHandler := claimsapi.NewFinanceServiceHandler(NewFinanceService(store, rates.DefaultSchedule()), authInterceptor)

	mux := http.NewServeMux()
	mux.Handle(claimPath, claimHandler)
	mux.Handle(financePath, financeHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return testClients{
		claims:  claimsapi.NewClaimServiceClient(http.DefaultClient, server.URL),
		finance: claimsapi.NewFinanceServiceClient(http.DefaultClient, server.URL),
	}
}

func createTestClaim(t *testing.T, c testClients) *claimsapi.Claim {
	t.Helper()
	resp, err := c.claims.CreateClaim(context.Background(), connect.NewRequest(&claimsapi.CreateClaimRequest{
		PropertyID:          "prop-1",
		ClaimNumber:         "CLM-100",
		Carrier:             "Acme Mutual",
		Jurisdiction:        "TX",
		EstimatedValueCents: 1500000,
		DeductibleCents:     100000,
	}))
	if err != nil {
		t.Fatalf("CreateClaim failed: %v", err)
	}
	return resp.Msg.Claim
}

func otherOrg[T any](msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("X-Test-Org", "org-2")
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}
