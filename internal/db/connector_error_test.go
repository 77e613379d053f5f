package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/claimload/pkg/claimload"
)

func TestWrapConnectionError_OperatorHints(t *testing.T) {
	tests := []struct {
		name     string
		errMsg   string
		host     string
		port     int
		database string
		wantHint string
	}{
		{
			name:     "warehouse not listening",
			errMsg:   "dial tcp 127.0.0.1:5432: connection refused",
			host:     "127.0.0.1",
			port:     5432,
			database: "claims",
			wantHint: "connection refused to 127.0.0.1:5432",
		},
		{
			name:     "windows spelling of refused",
			errMsg:   "dial tcp 127.0.0.1:5432: connectex: No connection could be made because the target machine actively refused it",
			host:     "127.0.0.1",
			port:     5432,
			database: "claims",
			wantHint: "connection refused to 127.0.0.1:5432",
		},
		{
			name:     "hostname typo",
			errMsg:   "dial tcp: lookup warehuose.internal: no such host",
			host:     "warehuose.internal",
			port:     5432,
			database: "claims",
			wantHint: `cannot resolve host "warehuose.internal"`,
		},
		{
			name:     "bad credentials",
			errMsg:   `password authentication failed for user "etl"`,
			host:     "localhost",
			port:     5432,
			database: "claims",
			wantHint: `password authentication failed for database "claims"`,
		},
		{
			name:     "database never provisioned",
			errMsg:   `database "claims" does not exist`,
			host:     "localhost",
			port:     5432,
			database: "claims",
			wantHint: `database "claims" does not exist`,
		},
		{
			name:     "silent firewall drop",
			errMsg:   "dial tcp 10.0.0.1:5432: i/o timeout",
			host:     "10.0.0.1",
			port:     5432,
			database: "claims",
			wantHint: "connection timed out to 10.0.0.1:5432",
		},
		{
			name:     "server demands TLS",
			errMsg:   "SSL is not enabled on the server",
			host:     "localhost",
			port:     5432,
			database: "claims",
			wantHint: "SSL/TLS connection error",
		},
		{
			name:     "connection slots exhausted",
			errMsg:   "FATAL: too many connections for role",
			host:     "localhost",
			port:     5432,
			database: "claims",
			wantHint: `too many connections to database "claims"`,
		},
		{
			name:     "unrecognized failure gets the generic hint",
			errMsg:   "something completely unexpected happened",
			host:     "localhost",
			port:     5432,
			database: "claims",
			wantHint: "failed to connect to database",
		},
		{
			name:     "matching is case insensitive",
			errMsg:   "CONNECTION REFUSED by firewall",
			host:     "fw.internal",
			port:     5433,
			database: "claims",
			wantHint: "connection refused to fw.internal:5433",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := errors.New(tt.errMsg)
			wrapped := wrapConnectionError(original, tt.host, tt.port, tt.database)
			require.Error(t, wrapped)

			assert.Contains(t, wrapped.Error(), tt.wantHint)

			// The raw driver error must survive for diagnosis, and the
			// sentinel must chain so the CLI maps the failure to an exit code.
			assert.ErrorIs(t, wrapped, original)
			assert.ErrorIs(t, wrapped, claimload.ErrConnectionFailed)
		})
	}
}
