package retry

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// transientPgClasses are SQLSTATE classes where redialing the warehouse can
// help: 08 connection exception, 53 insufficient resources, 57 operator
// intervention (failover, shutdown in progress).
var transientPgClasses = map[string]bool{
	"08": true,
	"53": true,
	"57": true,
}

// transientPgCodes are codes outside those classes that clear on their own.
// Serialization failures and lock waits show up when a load run lands while
// the warehouse team is running maintenance against the final tables.
var transientPgCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
}

// transientMessages covers errors that reach us only as text, typically a
// dial failure stringified somewhere inside the driver.
var transientMessages = []string{
	"connection refused",
	"connection reset",
	"i/o timeout",
	"broken pipe",
	"unexpected eof",
	"too many connections",
	"server closed the connection",
	"the database system is starting up",
}

// PostgreSQLErrorClassifier decides whether a warehouse error is worth
// another connection attempt. Anything that looks like data or SQL trouble
// (bad staging schema, violated constraint, missing procedure) is fatal;
// only infrastructure flaps are transient.
type PostgreSQLErrorClassifier struct{}

// NewPostgreSQLErrorClassifier returns the classifier used by the connectors.
func NewPostgreSQLErrorClassifier() *PostgreSQLErrorClassifier {
	return &PostgreSQLErrorClassifier{}
}

// IsTransient reports whether retrying err could succeed.
func (c *PostgreSQLErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if len(pgErr.Code) >= 2 && transientPgClasses[pgErr.Code[:2]] {
			return true
		}
		return transientPgCodes[pgErr.Code]
	}

	if isNetworkFlap(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientMessages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// isNetworkFlap recognizes transient failures below the protocol: DNS
// hiccups and interrupted or refused TCP connections. A DNS name that
// simply does not exist is not a flap; retrying will not invent the host.
func isNetworkFlap(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Temporary() || opErr.Timeout() {
			return true
		}
		for _, errno := range []syscall.Errno{
			syscall.ECONNREFUSED,
			syscall.ECONNRESET,
			syscall.ENETUNREACH,
			syscall.EHOSTUNREACH,
		} {
			if errors.Is(opErr.Err, errno) {
				return true
			}
		}
	}
	return false
}
