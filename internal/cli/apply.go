package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbuild/internal/builder"
	"github.com/leapstack-labs/sqlbuild/pkg/adapter"
)

// applyOptions holds options for the apply command.
type applyOptions struct {
	DryRun bool
}

func newApplyCommand() *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <name>...",
		Short: "Apply scripts and their requirements in dependency order",
		Long: `Apply the named scripts against the configured database target.

Each named script is resolved depth-first: its requirements are applied
before its own statements, and every script is applied at most once per
invocation. The run stops at the first failure; sqlbuild performs no
rollback, so wrap the target in an external transaction if you need
all-or-nothing behavior.`,
		Example: `  # Apply one script (and whatever it requires)
  sqlbuild apply feature1

  # Apply several scripts in one run
  sqlbuild apply schema fixtures views

  # Print the statements without touching a database
  sqlbuild apply feature1 --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print statements instead of executing them")

	return cmd
}

func runApply(cmd *cobra.Command, opts *applyOptions, names []string) error {
	ctx := cmd.Context()
	startTime := time.Now()

	executor, cleanup, err := buildExecutor(ctx, cmd, opts.DryRun)
	if err != nil {
		return err
	}
	defer cleanup()

	b := builder.New(executor, cfg.ScriptsDir, builder.WithLogger(logger))
	if err := b.Require(ctx, names...); err != nil {
		var loopErr *builder.DependencyLoopError
		if errors.As(err, &loopErr) {
			return fmt.Errorf("requirement %q is part of a dependency loop (try 'sqlbuild dag' for the full cycle): %w", loopErr.Requirement, err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d script(s) in %s\n",
		len(names), time.Since(startTime).Round(time.Millisecond))
	return nil
}

// buildExecutor returns the executor the builder dispatches statements to:
// a connected database adapter, or a printing executor for dry runs.
func buildExecutor(ctx context.Context, cmd *cobra.Command, dryRun bool) (builder.Executor, func(), error) {
	if dryRun {
		out := cmd.OutOrStdout()
		exec := builder.ExecutorFunc(func(_ context.Context, sql string) error {
			_, err := fmt.Fprintf(out, "%s;\n", sql)
			return err
		})
		return exec, func() {}, nil
	}

	if err := cfg.Target.Validate(); err != nil {
		return nil, nil, err
	}

	db, err := adapter.New(cfg.Target.ToAdapterConfig(), logger)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Connect(ctx, cfg.Target.ToAdapterConfig()); err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}
