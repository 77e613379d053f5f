package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/claimload/internal/db"
	"github.com/vvka-141/claimload/pkg/claimload"
)

// Flags represents connection and storage parameters from CLI flags.
// These follow PostgreSQL standard flag conventions (-h, -p, -U, -d).
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use one of these methods instead:
//  1. $PGPASSWORD environment variable
//  2. Connection string with embedded password
type Flags struct {
	Connection string // full connection string, mutually exclusive with granular flags
	Host       string
	Port       int
	Username   string
	Database   string
	SSLMode    string

	StorageConnection string
	Container         string

	Azure         bool // enable Azure Entra ID auth for the warehouse
	AzureTenantID string
	AzureClientID string

	AWSIAM    bool
	AWSRegion string

	GoogleInstance string
}

// EnvVars represents the recognized environment variables.
// Warehouse variables follow PostgreSQL client conventions
// (https://www.postgresql.org/docs/current/libpq-envars.html); storage and
// cloud-auth variables follow the Azure/AWS SDK standard names.
type EnvVars struct {
	PGHOST       string
	PGPORT       string
	PGUSER       string
	PGPASSWORD   string
	PGDATABASE   string
	PGSSLMODE    string
	DATABASE_URL string // full connection string (Heroku/Rails convention)

	AZURE_STORAGE_CONNECTION_STRING string
	AZURE_STORAGE_CONTAINER         string

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
	AWS_REGION          string
}

// LoadFromEnvironment loads the recognized environment variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:       os.Getenv("PGHOST"),
		PGPORT:       os.Getenv("PGPORT"),
		PGUSER:       os.Getenv("PGUSER"),
		PGPASSWORD:   os.Getenv("PGPASSWORD"),
		PGDATABASE:   os.Getenv("PGDATABASE"),
		PGSSLMODE:    os.Getenv("PGSSLMODE"),
		DATABASE_URL: os.Getenv("DATABASE_URL"),

		AZURE_STORAGE_CONNECTION_STRING: os.Getenv("AZURE_STORAGE_CONNECTION_STRING"),
		AZURE_STORAGE_CONTAINER:         os.Getenv("AZURE_STORAGE_CONTAINER"),

		AZURE_TENANT_ID:     os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: os.Getenv("AZURE_CLIENT_SECRET"),
		AWS_REGION:          os.Getenv("AWS_REGION"),
	}
}

// ResolveConnection produces a warehouse ConnectionConfig from flags,
// environment, and the optional project file, in that precedence order.
// Defaults fill whatever remains (localhost:5432, sslmode prefer).
//
// project may be nil when no claimload.yaml exists.
func ResolveConnection(flags *Flags, env *EnvVars, project *ProjectConfig) (*claimload.ConnectionConfig, error) {
	if flags == nil {
		flags = &Flags{}
	}
	if env == nil {
		env = LoadFromEnvironment()
	}

	cfg := &claimload.ConnectionConfig{
		Host:    "localhost",
		Port:    5432,
		SSLMode: "prefer",
		AppName: "claimload",
	}

	// Project file first; environment and flags layer on top.
	if project != nil {
		applyProject(cfg, &project.Connection)
	}

	if env.PGHOST != "" {
		cfg.Host = env.PGHOST
	}
	if env.PGPORT != "" {
		port, err := strconv.Atoi(env.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid PGPORT %q: %w", env.PGPORT, claimload.ErrInvalidConfig)
		}
		cfg.Port = port
	}
	if env.PGUSER != "" {
		cfg.Username = env.PGUSER
	}
	if env.PGPASSWORD != "" {
		cfg.Password = env.PGPASSWORD
	}
	if env.PGDATABASE != "" {
		cfg.Database = env.PGDATABASE
	}
	if env.PGSSLMODE != "" {
		cfg.SSLMode = env.PGSSLMODE
	}
	if env.AZURE_TENANT_ID != "" {
		cfg.AzureTenantID = env.AZURE_TENANT_ID
	}
	if env.AZURE_CLIENT_ID != "" {
		cfg.AzureClientID = env.AZURE_CLIENT_ID
	}
	if env.AZURE_CLIENT_SECRET != "" {
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	}
	if env.AWS_REGION != "" {
		cfg.AWSRegion = env.AWS_REGION
	}

	// A connection string supplies the whole endpoint at once. The --connection
	// flag wins over $DATABASE_URL; granular flags still override single parts.
	connStr := flags.Connection
	if connStr == "" {
		connStr = env.DATABASE_URL
	}
	if connStr != "" {
		parsed, err := db.ParseConnectionString(connStr)
		if err != nil {
			return nil, fmt.Errorf("invalid connection string: %v: %w", err, claimload.ErrInvalidConfig)
		}
		cfg.Host = parsed.Host
		cfg.Port = parsed.Port
		cfg.Username = parsed.Username
		cfg.Database = parsed.Database
		cfg.SSLMode = parsed.SSLMode
		if parsed.Password != "" {
			cfg.Password = parsed.Password
		}
		if parsed.AppName != "" {
			cfg.AppName = parsed.AppName
		}
		if parsed.ConnectTimeout > 0 {
			cfg.ConnectTimeout = parsed.ConnectTimeout
		}
		if len(parsed.AdditionalParams) > 0 {
			cfg.AdditionalParams = parsed.AdditionalParams
		}
	}

	if flags.Host != "" {
		cfg.Host = flags.Host
	}
	if flags.Port != 0 {
		cfg.Port = flags.Port
	}
	if flags.Username != "" {
		cfg.Username = flags.Username
	}
	if flags.Database != "" {
		cfg.Database = flags.Database
	}
	if flags.SSLMode != "" {
		cfg.SSLMode = flags.SSLMode
	}
	if flags.AzureTenantID != "" {
		cfg.AzureTenantID = flags.AzureTenantID
	}
	if flags.AzureClientID != "" {
		cfg.AzureClientID = flags.AzureClientID
	}
	if flags.AWSRegion != "" {
		cfg.AWSRegion = flags.AWSRegion
	}
	if flags.GoogleInstance != "" {
		cfg.GoogleInstance = flags.GoogleInstance
	}

	if err := resolveAuthMethod(cfg, flags, project); err != nil {
		return nil, err
	}

	if cfg.Database == "" {
		return nil, fmt.Errorf("database name is required (use -d, $PGDATABASE, or claimload.yaml): %w", claimload.ErrInvalidConfig)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("username is required (use -U, $PGUSER, or claimload.yaml): %w", claimload.ErrInvalidConfig)
	}

	return cfg, nil
}

// ResolveStorage returns the storage connection string and container name.
// The container defaults to claimload.DefaultContainer ("landing").
func ResolveStorage(flags *Flags, env *EnvVars, project *ProjectConfig) (connStr, container string, err error) {
	if flags == nil {
		flags = &Flags{}
	}
	if env == nil {
		env = LoadFromEnvironment()
	}

	connStr = env.AZURE_STORAGE_CONNECTION_STRING
	if flags.StorageConnection != "" {
		connStr = flags.StorageConnection
	}
	if connStr == "" {
		return "", "", fmt.Errorf("storage connection string is required (use --storage-connection or $AZURE_STORAGE_CONNECTION_STRING): %w", claimload.ErrInvalidConfig)
	}

	container = claimload.DefaultContainer
	if project != nil && project.Storage.Container != "" {
		container = project.Storage.Container
	}
	if env.AZURE_STORAGE_CONTAINER != "" {
		container = env.AZURE_STORAGE_CONTAINER
	}
	if flags.Container != "" {
		container = flags.Container
	}

	return connStr, container, nil
}

func applyProject(cfg *claimload.ConnectionConfig, pc *ConnectionConfig) {
	if pc.Host != "" {
		cfg.Host = pc.Host
	}
	if pc.Port != 0 {
		cfg.Port = pc.Port
	}
	if pc.Username != "" {
		cfg.Username = pc.Username
	}
	if pc.Database != "" {
		cfg.Database = pc.Database
	}
	if pc.SSLMode != "" {
		cfg.SSLMode = pc.SSLMode
	}
	if pc.AzureTenantID != "" {
		cfg.AzureTenantID = pc.AzureTenantID
	}
	if pc.AzureClientID != "" {
		cfg.AzureClientID = pc.AzureClientID
	}
	if pc.AWSRegion != "" {
		cfg.AWSRegion = pc.AWSRegion
	}
	if pc.GoogleInstance != "" {
		cfg.GoogleInstance = pc.GoogleInstance
	}
}

// resolveAuthMethod picks the warehouse authentication mechanism.
// Flags win over the project file; standard password auth is the default.
func resolveAuthMethod(cfg *claimload.ConnectionConfig, flags *Flags, project *ProjectConfig) error {
	method := ""
	if project != nil {
		method = project.Connection.AuthMethod
	}
	switch {
	case flags.Azure:
		method = "azure"
	case flags.AWSIAM:
		method = "aws-iam"
	case flags.GoogleInstance != "":
		method = "google-iam"
	}

	switch method {
	case "", "standard":
		cfg.AuthMethod = claimload.AuthMethodStandard
	case "azure":
		cfg.AuthMethod = claimload.AuthMethodAzureEntraID
	case "aws-iam":
		cfg.AuthMethod = claimload.AuthMethodAWSIAM
	case "google-iam":
		cfg.AuthMethod = claimload.AuthMethodGoogleIAM
		if cfg.GoogleInstance == "" {
			return fmt.Errorf("google-iam auth requires google_instance (project:region:instance): %w", claimload.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown auth_method %q: %w", method, claimload.ErrInvalidConfig)
	}
	return nil
}
