package claimload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Run completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to warehouse or storage
	ExitSourceError     = 12 // Source object missing, unparseable, or wrong schema
	ExitEmptyLoad       = 13 // A staging load would insert zero rows
	ExitMergeFailed     = 14 // A merge procedure failed server-side
)

const (
	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultContainer is the storage container holding the landing CSVs
	// when none is configured.
	DefaultContainer = "landing"

	// DefaultTimeout bounds a whole run. Catastrophic failure protection
	// against stalled network or database calls, not a per-step timeout.
	DefaultTimeout = 10 * time.Minute
)

// Source object names, one per entity.
const (
	ProviderObject = "providers.csv"
	PatientObject  = "patients.csv"
	ClaimObject    = "claims.csv"
)

// Staging relation names. The external warehouse schema owns these; the
// loader only ever truncates and appends.
const (
	StgProviderTable = "StgProvider"
	StgPatientTable  = "StgPatient"
	StgClaimTable    = "StgClaim"
)

// Final relation names, read-only from this system's point of view.
const (
	ProviderTable    = "Provider"
	PatientTable     = "Patient"
	ClaimTable       = "Claim"
	RejectClaimTable = "Reject_Claim"
)

// RunTable is the run ledger relation.
const RunTable = "ETL_Run"

// Merge procedure names. Bodies are external and opaque to this core.
const (
	ProcUpsertProvider = "sp_upsert_provider"
	ProcUpsertPatient  = "sp_upsert_patient"
	ProcUpsertClaim    = "sp_upsert_claim"
)
