package claimload

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"invalid config", fmt.Errorf("missing server: %w", ErrInvalidConfig), ExitConfigError},
		{"connection failed", ErrConnectionFailed, ExitConnectionError},
		{"object not found", fmt.Errorf("providers.csv: %w", ErrObjectNotFound), ExitSourceError},
		{"parse error", ErrParse, ExitSourceError},
		{"schema mismatch", ErrSchemaMismatch, ExitSourceError},
		{"empty load", fmt.Errorf("StgClaim: %w", ErrEmptyLoad), ExitEmptyLoad},
		{"merge failed", fmt.Errorf("sp_upsert_patient: %w", ErrMergeFailed), ExitMergeFailed},
		{"unclassified", errors.New("boom"), ExitGeneralError},
		{"connection refused pattern", errors.New("dial tcp: connection refused"), ExitConnectionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
