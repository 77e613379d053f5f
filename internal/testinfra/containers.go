package testinfra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	PostgresImage    = "postgres:17-alpine"
	PostgresUser     = "postgres"
	PostgresPassword = "postgres"
	PostgresDB       = "claims"
)

type WarehouseContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

// StartWarehouse starts a disposable PostgreSQL container provisioned with
// the external warehouse schema: staging tables, final tables, the run
// ledger, and reference implementations of the upsert procedures. The
// procedure bodies mirror what the warehouse team ships: natural-key merges,
// with unresolvable claims diverted to Reject_Claim tagged by run.
func StartWarehouse(ctx context.Context) (*WarehouseContainer, error) {
	schemaPath, err := writeSchemaScript()
	if err != nil {
		return nil, err
	}

	ctr, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(PostgresDB),
		postgres.WithInitScripts(schemaPath),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &WarehouseContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}

func writeSchemaScript() (string, error) {
	dir, err := os.MkdirTemp("", "claimload-schema")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, "01-warehouse.sql")
	if err := os.WriteFile(path, []byte(warehouseSchema), 0644); err != nil {
		return "", fmt.Errorf("write warehouse schema: %w", err)
	}
	return path, nil
}
