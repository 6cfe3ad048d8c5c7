package claimsapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecFieldNames(t *testing.T) {
	data, err := Codec{}.Marshal(&Exposure{
		ExposureCents:           12500,
		PaidCents:               10000,
		ApprovedSupplementCents: 2000,
		PendingSupplementCents:  500,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"exposureCents":12500,"paidCents":10000,"approvedSupplementCents":2000,"pendingSupplementCents":500}`, string(data))

	data, err = Codec{}.Marshal(&DepreciationDraft{
		SubtotalCents:     10000,
		DepreciationCents: 2500,
		TaxCents:          600,
		TotalDueCents:     8100,
		LineItems: []*LineItem{{
			Description: "ACV payment", Cost: 10000, DepreciationRate: 0.25, Depreciation: 2500, Recoverable: 7500,
		}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"subtotalCents": 10000, "depreciationCents": 2500, "taxCents": 600, "totalDueCents": 8100,
		"lineItems": [{"description": "ACV payment", "cost": 10000, "depreciationRate": 0.25, "depreciation": 2500, "recoverable": 7500}]
	}`, string(data))
}

func TestCodecUnmarshal(t *testing.T) {
	var req TransitionStageRequest
	require.NoError(t, Codec{}.Unmarshal([]byte(`{"claimId":"c1","stage":"FILED","note":"x"}`), &req))
	assert.Equal(t, TransitionStageRequest{ClaimID: "c1", Stage: "FILED", Note: "x"}, req)
	assert.Equal(t, "json", Codec{}.Name())
}
