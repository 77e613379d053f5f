package claimload

import (
	"errors"
	"fmt"
	"time"
)

// RunStatus is the terminal (or in-flight) state of a ledger run row.
type RunStatus string

const (
	StatusRunning RunStatus = "RUNNING"
	StatusSuccess RunStatus = "SUCCESS"
	StatusFailed  RunStatus = "FAILED"

	// StatusPartial is declared in the ledger schema but no code path sets
	// it. Its semantics (some merges succeed, others fail?) are an open
	// product decision; do not start using it without one.
	StatusPartial RunStatus = "PARTIAL"
)

// IsTerminal returns true for statuses that end a run.
func (s RunStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusPartial
}

// EntityCounts holds per-entity row counts. Entities missing from a counts
// map default to zero at the ledger layer, so a partial map is fine.
type EntityCounts struct {
	Provider int64
	Patient  int64
	Claim    int64
}

// RunReport summarizes a completed run for the caller.
type RunReport struct {
	RunID       int64
	Staging     EntityCounts
	Final       EntityCounts
	RejectTotal int64
	Status      RunStatus
	Elapsed     time.Duration
}

// RunConfig contains all parameters needed for one load run.
type RunConfig struct {
	// ConnectionString is the warehouse connection string (URI format).
	ConnectionString string

	// StorageConnectionString authenticates against the object storage
	// account holding the landing CSVs.
	StorageConnectionString string

	// Container is the storage container to read from (default "landing").
	Container string

	// Timeout is the global timeout for the entire run.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool

	// AuthMethod indicates the warehouse authentication mechanism to use.
	AuthMethod AuthMethod

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// Validate checks if the RunConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if c.StorageConnectionString == "" {
		errs = append(errs, fmt.Errorf("StorageConnectionString is required: %w", ErrInvalidConfig))
	}

	if c.Container == "" {
		errs = append(errs, fmt.Errorf("Container is required: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("unknown auth method %d: %w", c.AuthMethod, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed warehouse connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, DefaultAzureCredential chain is used (env vars, managed identity, CLI, etc.)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is used for AWS IAM token acquisition.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance) for Google IAM authentication.
	GoogleInstance string
}

// AuthMethod represents the type of warehouse authentication to use.
type AuthMethod int

const (
	AuthMethodStandard    AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                        // AWS IAM Database Authentication
	AuthMethodGoogleIAM                     // Google Cloud SQL IAM
	AuthMethodAzureEntraID                  // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
