package testing

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/claimload/internal/testinfra"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartWarehouse(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test warehouse connection string.
// Priority: CLAIMLOAD_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("CLAIMLOAD_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("CLAIMLOAD_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireWarehouse combines SkipIfShort and GetTestConnectionString.
// Returns a provisioned warehouse connection string or skips the test.
func RequireWarehouse(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// ConnectPool opens a pool against the test warehouse and closes it with the test.
func ConnectPool(t *testing.T, connString string) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("failed to connect to test warehouse: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// ResetWarehouse clears every table so tests start from an empty warehouse.
func ResetWarehouse(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		TRUNCATE TABLE "Claim", "Reject_Claim", "StgClaim", "StgPatient", "StgProvider",
		               "Patient", "Provider", "ETL_Run"
		RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to reset test warehouse: %v", err)
	}
}
