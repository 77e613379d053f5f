package retry

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient_WarehouseErrors(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		// Infrastructure flaps clear on their own.
		{"connection dropped mid dial", &pgconn.PgError{Code: "08006"}, true},
		{"client cannot establish connection", &pgconn.PgError{Code: "08001"}, true},
		{"connection slots exhausted", &pgconn.PgError{Code: "53300"}, true},
		{"out of memory on server", &pgconn.PgError{Code: "53200"}, true},
		{"warehouse still starting up", &pgconn.PgError{Code: "57P03"}, true},
		{"admin shutdown in progress", &pgconn.PgError{Code: "57P01"}, true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock with maintenance job", &pgconn.PgError{Code: "40P01"}, true},
		{"staging table lock not available", &pgconn.PgError{Code: "55P03"}, true},

		// SQL and data trouble will not improve by redialing.
		{"syntax error in procedure call", &pgconn.PgError{Code: "42601"}, false},
		{"staging relation missing", &pgconn.PgError{Code: "42P01"}, false},
		{"duplicate natural key", &pgconn.PgError{Code: "23505"}, false},
		{"claim references missing patient", &pgconn.PgError{Code: "23503"}, false},
		{"etl role lacks privilege", &pgconn.PgError{Code: "42501"}, false},

		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(tt.err))
		})
	}
}

func TestIsTransient_UnwrapsThroughLayers(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	// Connectors wrap driver errors with context before classification sees
	// them; errors.As must still find the PgError underneath.
	inner := &pgconn.PgError{Code: "57P03", Message: "the database system is starting up"}
	wrapped := fmt.Errorf("failed to connect to warehouse: %w", inner)
	assert.True(t, c.IsTransient(wrapped))

	fatal := fmt.Errorf("merge failed: %w", &pgconn.PgError{Code: "42883"})
	assert.False(t, c.IsTransient(fatal))
}

func TestIsTransient_NetworkFlaps(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"refused during container startup", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, true},
		{"reset by failover", &net.OpError{Op: "read", Err: syscall.ECONNRESET}, true},
		{"network unreachable", &net.OpError{Op: "dial", Err: syscall.ENETUNREACH}, true},
		{"host unreachable", &net.OpError{Op: "dial", Err: syscall.EHOSTUNREACH}, true},
		{"dns server misbehaving", &net.DNSError{Err: "server misbehaving", IsTemporary: true}, true},
		{"dns timeout", &net.DNSError{Err: "timeout", IsTimeout: true}, true},
		// A host that does not exist stays nonexistent on retry.
		{"dns name not found", &net.DNSError{Err: "no such host", IsNotFound: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(tt.err))
		})
	}
}

func TestIsTransient_StringifiedErrors(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	tests := []struct {
		msg  string
		want bool
	}{
		{"dial tcp 10.0.0.5:5432: connection refused", true},
		{"read tcp: connection reset by peer", true},
		{"write tcp: broken pipe", true},
		{"read tcp: i/o timeout", true},
		{"unexpected EOF", true},
		{"FATAL: too many connections for role \"etl\"", true},
		{"server closed the connection unexpectedly", true},
		{"FATAL: the database system is starting up", true},

		// Deliberately fatal as text: a dead deadline or a missing host
		// does not heal between attempts.
		{"context deadline exceeded", false},
		{"lookup warehouse.invalid: no such host", false},
		{"some unrelated failure", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(errors.New(tt.msg)))
		})
	}
}
