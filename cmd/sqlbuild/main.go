// Package main provides the sqlbuild CLI.
package main

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/sqlbuild/internal/cli"

	// Register the built-in database adapters.
	_ "github.com/leapstack-labs/sqlbuild/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/sqlbuild/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/sqlbuild/pkg/adapters/sqlite"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
