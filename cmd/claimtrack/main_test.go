package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/mmynk/claimtrack/internal/auth"
	"github.com/mmynk/claimtrack/internal/config"
	"github.com/mmynk/claimtrack/internal/models"
	"github.com/mmynk/claimtrack/internal/rates"
	"github.com/mmynk/claimtrack/internal/storage/sqlite"
	"github.com/mmynk/claimtrack/pkg/claimsapi"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"serve", "migrate", "token", "exposure", "draft"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)

	require.NotNil(t, draftCmd.Flags().Lookup("xlsx"))
	require.NotNil(t, draftCmd.Flags().Lookup("org"))
}

// setupWorkdir points the CLI at a fresh SQLite database and returns a store
// on the same file.
func setupWorkdir(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	dbPath := filepath.Join(dir, "claims.db")
	t.Setenv("CLAIMS_STORE_SQLITE_PATH", dbPath)
	t.Setenv("CLAIMS_AUTH_JWT_SECRET", "test-secret")
	t.Setenv("CLAIMS_LOG_LEVEL", "error")

	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestExposureCommand(t *testing.T) {
	store := setupWorkdir(t)
	ctx := context.Background()

	claim := &models.Claim{OrgID: "org-1"}
	require.NoError(t, store.CreateClaim(ctx, claim, "cli"))
	require.NoError(t, store.CreatePayment(ctx, &models.Payment{ClaimID: claim.ID, AmountCents: 10000, Type: models.PaymentTypeACV}))

	out := execute(t, "exposure", claim.ID, "--org", "org-1")

	var got claimsapi.Exposure
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, claimsapi.Exposure{ExposureCents: 10000, PaidCents: 10000}, got)
}

func TestDraftCommand(t *testing.T) {
	store := setupWorkdir(t)
	ctx := context.Background()

	claim := &models.Claim{OrgID: "org-1", ClaimNumber: "CLM-9"}
	require.NoError(t, store.CreateClaim(ctx, claim, "cli"))
	require.NoError(t, store.CreatePayment(ctx, &models.Payment{ClaimID: claim.ID, AmountCents: 10000, Type: models.PaymentTypeACV}))

	out := execute(t, "draft", claim.ID, "--org", "org-1")
	var draft claimsapi.DepreciationDraft
	require.NoError(t, json.Unmarshal([]byte(out), &draft))
	assert.Equal(t, int64(8100), draft.TotalDueCents)

	path := filepath.Join(t.TempDir(), "draft.xlsx")
	execute(t, "draft", claim.ID, "--org", "org-1", "--xlsx", path)
	t.Cleanup(func() { draftXLSX = "" })

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Sheets, 1)
}

func TestTokenCommand(t *testing.T) {
	setupWorkdir(t)

	out := execute(t, "token", "--user", "user-1", "--org", "org-1")

	claims, err := auth.NewJWTManager("test-secret", time.Hour).Validate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "org-1", claims.OrgID)
}

func TestServerHandler(t *testing.T) {
	store := setupWorkdir(t)
	c, err := config.Load()
	require.NoError(t, err)
	cfg = c

	server := httptest.NewServer(newServerHandler(store, rates.DefaultSchedule()))
	t.Cleanup(server.Close)

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("connect requires token", func(t *testing.T) {
		client := claimsapi.NewClaimServiceClient(http.DefaultClient, server.URL)
		_, err := client.ListClaims(context.Background(), connect.NewRequest(&claimsapi.ListClaimsRequest{}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("connect with token", func(t *testing.T) {
		token, err := auth.NewJWTManager("test-secret", time.Hour).Generate(auth.Identity{UserID: "u1", OrgID: "org-1"})
		require.NoError(t, err)

		client := claimsapi.NewClaimServiceClient(http.DefaultClient, server.URL)
		req := connect.NewRequest(&claimsapi.CreateClaimRequest{ClaimNumber: "CLM-1"})
		req.Header().Set("Authorization", "Bearer "+token)
		resp, err := client.CreateClaim(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "FILED", resp.Msg.Claim.Stage)

		restReq, err := http.NewRequest(http.MethodGet, server.URL+"/api/claims/"+resp.Msg.Claim.ID+"/exposure", nil)
		require.NoError(t, err)
		restReq.Header.Set("Authorization", "Bearer "+token)
		restResp, err := http.DefaultClient.Do(restReq)
		require.NoError(t, err)
		defer restResp.Body.Close()
		assert.Equal(t, http.StatusOK, restResp.StatusCode)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		// The unauthenticated ListClaims call above is still counted.
		assert.Contains(t, string(body),
			`claimtrack_rpc_requests_total{code="unauthenticated",procedure="`+claimsapi.ClaimServiceListClaimsProcedure+`"} 1`)
	})
}
