// Package config provides project configuration for sqlbuild.
// Configuration is loaded from sqlbuild.yaml, with environment variables
// and CLI flags layered on top.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbuild/pkg/adapter"
)

// ProjectConfig is the root configuration for a sqlbuild project.
type ProjectConfig struct {
	// ScriptsDir is the directory containing .sql scripts.
	ScriptsDir string `koanf:"scripts_dir"`

	// Verbose enables debug-level logging.
	Verbose bool `koanf:"verbose"`

	// Target is the database the scripts are applied against.
	Target *TargetConfig `koanf:"target"`
}

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // duckdb, postgres, sqlite

	// File-based databases (DuckDB, SQLite): file path or ":memory:".
	// Network databases: database name.
	Database string `koanf:"database"`

	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	Schema string `koanf:"schema"`

	// Options contains additional driver-specific options
	Options map[string]string `koanf:"options"`
}

// Validate checks if the target configuration is valid.
// It uses the adapter registry to determine which adapter types are available.
func (t *TargetConfig) Validate() error {
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.List(),
		}
	}

	return nil
}

// ToAdapterConfig converts the target to an adapter.Config.
func (t *TargetConfig) ToAdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     strings.ToLower(t.Type),
		Database: t.Database,
		Host:     t.Host,
		Port:     t.Port,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
	}
}
