// Package retry rides out warehouse connection flaps. A classifier decides
// whether a failure can clear on its own (Postgres restarting, a network
// blip, a saturated connection slot) and a backoff strategy decides how long
// to wait before dialing again.
//
// Only connection establishment goes through this package. Staging loads and
// merge procedures are never retried: replaying a half-applied load is worse
// than failing the run and letting the ledger record it.
package retry
