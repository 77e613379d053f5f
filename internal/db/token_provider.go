package db

import (
	"context"
	"time"
)

// TokenProvider mints the short-lived credential used as the warehouse
// password when the deployment authenticates through a cloud identity
// instead of a static secret.
type TokenProvider interface {
	// GetToken returns a token and its expiry. The connector uses the token
	// as the PostgreSQL password for exactly one pool construction; a stale
	// token is re-minted on the next attempt, never cached.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String identifies the provider in log lines. Never include the secret.
	String() string
}

// AzurePostgreSQLScope is the OAuth scope under which Entra ID issues
// tokens for Azure Database for PostgreSQL.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"
