package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/claimload/internal/retry"
	"github.com/vvka-141/claimload/pkg/claimload"
)

// tokenExpiryWarning is how close to expiry a freshly minted token can be
// before the operator is warned. A load run that outlives its token keeps
// its established connections, but new pool connections would fail.
const tokenExpiryWarning = 5 * time.Minute

// TokenBasedConnector dials the warehouse with a cloud-minted token in
// place of a password (AWS RDS IAM, Azure Entra ID). The token is acquired
// inside every connection attempt, so a retry after a long backoff never
// presents an expired credential.
type TokenBasedConnector struct {
	config   *claimload.ConnectionConfig
	provider TokenProvider
	executor *retry.Executor
	label    string
}

// NewTokenBasedConnector wires a TokenProvider into a connector. label
// names the auth scheme in messages ("AWS IAM", "Azure").
func NewTokenBasedConnector(config *claimload.ConnectionConfig, provider TokenProvider, label string) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:   config,
		provider: provider,
		executor: newConnectExecutor(),
		label:    label,
	}
}

// Connect mints a token, builds the pool, and proves it with a ping.
// Transient failures are retried with a fresh token each time.
func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := c.executor.Execute(ctx, func(ctx context.Context) error {
		token, expiresOn, err := c.provider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire %s token: %w", c.label, err)
		}
		if ttl := time.Until(expiresOn); ttl < tokenExpiryWarning {
			fmt.Fprintf(os.Stderr, "Warning: %s token expires in %v\n", c.label, ttl.Round(time.Second))
		}

		endpoint := *c.config
		endpoint.Password = token

		poolConfig, err := pgxpool.ParseConfig(BuildConnectionString(&endpoint))
		if err != nil {
			return fmt.Errorf("failed to parse connection config: %w", err)
		}
		configurePool(poolConfig)

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}
