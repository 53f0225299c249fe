package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbuild/internal/discovery"
)

func newDagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dag",
		Short: "Show the requirement graph",
		Long: `Show every script with its requirements and dependents, and report
requirement cycles with their full path. The apply command reports only the
script that closed a cycle; this view has the whole graph.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDag(cmd)
		},
	}
}

func runDag(cmd *cobra.Command) error {
	scripts, err := discovery.Discover(cfg.ScriptsDir)
	if err != nil {
		return err
	}

	graph, err := discovery.BuildGraph(scripts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Requirement graph:")
	fmt.Fprintln(w)

	for _, name := range graph.Scripts() {
		fmt.Fprintf(w, "  %s\n", name)
		if requires := graph.Requires(name); len(requires) > 0 {
			fmt.Fprintf(w, "    requires: %s\n", strings.Join(requires, ", "))
		}
		if dependents := graph.Dependents(name); len(dependents) > 0 {
			fmt.Fprintf(w, "    required by: %s\n", strings.Join(dependents, ", "))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %d scripts, %d requirements\n",
		graph.ScriptCount(), graph.RequirementCount())

	if hasCycle, cycle := graph.HasCycle(); hasCycle {
		return fmt.Errorf("requirement cycle: %s", strings.Join(cycle, " -> "))
	}

	return nil
}
