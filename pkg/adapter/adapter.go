// Package adapter defines the database adapter contract for sqlbuild.
//
// Concrete implementations live in pkg/adapters/ subdirectories and register
// themselves in their init() functions:
//
//	import _ "github.com/leapstack-labs/sqlbuild/pkg/adapters/duckdb"
package adapter

import (
	"context"
	"database/sql"
)

// Config holds the configuration for connecting to a database target.
type Config struct {
	// Type specifies the database type (e.g., "duckdb", "postgres", "sqlite")
	Type string

	// Database is the file path for file-based databases (":memory:" for
	// in-memory) or the database name for network databases
	Database string

	// Host is the hostname for network-based databases
	Host string

	// Port is the port number for network-based databases
	Port int

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Schema is the default schema to use
	Schema string

	// Options contains additional driver-specific options
	Options map[string]string
}

// Rows wraps sql.Rows to provide a consistent interface across adapters.
type Rows struct {
	*sql.Rows
}

// Adapter is the contract all database adapters implement. Its Exec method
// satisfies the builder's Executor capability, so a connected Adapter can be
// handed straight to builder.New.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// Ping verifies the connection is alive.
	Ping(ctx context.Context) error

	// DriverName returns the adapter's registered type name.
	DriverName() string
}
