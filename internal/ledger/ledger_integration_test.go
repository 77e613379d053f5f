package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/claimload/internal/db"
	"github.com/vvka-141/claimload/internal/ledger"
	"github.com/vvka-141/claimload/internal/logging"
	testhelpers "github.com/vvka-141/claimload/internal/testing"
	"github.com/vvka-141/claimload/pkg/claimload"
)

func TestLedger_StartThenFail_ReadsBackZeroCounts(t *testing.T) {
	connString := testhelpers.RequireWarehouse(t)
	pool := testhelpers.ConnectPool(t, connString)
	testhelpers.ResetWarehouse(t, pool)

	led := ledger.NewLedger(db.NewPoolAdapter(pool), logging.NewNullLogger())

	// A run that dies before any counts are recorded. The row must still
	// read back as a closed run with zero counts, not NULLs.
	runID, err := led.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, led.Finish(context.Background(), runID, claimload.StatusFailed))

	var status string
	var endedAt any
	counts := make([]int64, 7)
	require.NoError(t, pool.QueryRow(context.Background(), `
		SELECT "Status", "EndedAt",
		       "StgProviderCount", "StgPatientCount", "StgClaimCount",
		       "ProviderCount", "PatientCount", "ClaimCount", "RejectTotal"
		  FROM "ETL_Run" WHERE "RunID" = $1`, runID).
		Scan(&status, &endedAt,
			&counts[0], &counts[1], &counts[2],
			&counts[3], &counts[4], &counts[5], &counts[6]))

	assert.Equal(t, "FAILED", status)
	assert.NotNil(t, endedAt)
	for _, n := range counts {
		assert.Zero(t, n)
	}
}

func TestLedger_RecordCounts_PersistsOnRow(t *testing.T) {
	connString := testhelpers.RequireWarehouse(t)
	pool := testhelpers.ConnectPool(t, connString)
	testhelpers.ResetWarehouse(t, pool)

	led := ledger.NewLedger(db.NewPoolAdapter(pool), logging.NewNullLogger())

	runID, err := led.Start(context.Background())
	require.NoError(t, err)

	staging := claimload.EntityCounts{Provider: 4, Patient: 9, Claim: 21}
	final := claimload.EntityCounts{Provider: 4, Patient: 9, Claim: 19}
	require.NoError(t, led.RecordCounts(context.Background(), runID, staging, final, 2))
	require.NoError(t, led.Finish(context.Background(), runID, claimload.StatusSuccess))

	var stgClaims, finalClaims, rejects int64
	require.NoError(t, pool.QueryRow(context.Background(), `
		SELECT "StgClaimCount", "ClaimCount", "RejectTotal"
		  FROM "ETL_Run" WHERE "RunID" = $1`, runID).
		Scan(&stgClaims, &finalClaims, &rejects))
	assert.Equal(t, int64(21), stgClaims)
	assert.Equal(t, int64(19), finalClaims)
	assert.Equal(t, int64(2), rejects)
}
