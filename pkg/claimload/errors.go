package claimload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := service.Run(ctx, config)
//	if errors.Is(err, claimload.ErrSchemaMismatch) {
//	    // Handle a malformed source file
//	}
var (
	// ErrInvalidConfig indicates a required environment value or
	// configuration field is missing or invalid. No run is attempted.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the warehouse connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrObjectNotFound indicates a source object is missing from storage.
	ErrObjectNotFound = errors.New("object not found")

	// ErrParse indicates source bytes could not be parsed as delimited text.
	ErrParse = errors.New("parse failed")

	// ErrSchemaMismatch indicates expected columns are absent from a source
	// table even after the single-column repair attempt.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrEmptyLoad indicates a staging load would insert zero rows.
	// Empty loads are rejected so a later merge cannot silently no-op.
	ErrEmptyLoad = errors.New("empty load rejected")

	// ErrMergeFailed indicates a merge procedure failed server-side.
	// Remaining merges are aborted and the run is finalized as FAILED.
	ErrMergeFailed = errors.New("merge execution failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrObjectNotFound):
		return ExitSourceError
	case errors.Is(err, ErrParse):
		return ExitSourceError
	case errors.Is(err, ErrSchemaMismatch):
		return ExitSourceError
	case errors.Is(err, ErrEmptyLoad):
		return ExitEmptyLoad
	case errors.Is(err, ErrMergeFailed):
		return ExitMergeFailed
	}

	// Check for common connection error patterns
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
