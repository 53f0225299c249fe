package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbuild/internal/discovery"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all scripts in application order",
		Long: `List every script in the scripts directory in the order sqlbuild would
apply them, with the requirements each one declares.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	scripts, err := discovery.Discover(cfg.ScriptsDir)
	if err != nil {
		return err
	}

	byName := make(map[string]*discovery.Script, len(scripts))
	for _, s := range scripts {
		byName[s.Name] = s
	}

	graph, err := discovery.BuildGraph(scripts)
	if err != nil {
		return err
	}

	order, err := graph.TopologicalSort()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Script", "Requires"})
	for i, name := range order {
		s := byName[name]
		if s == nil {
			continue
		}
		t.AppendRow(table.Row{i + 1, s.Name, strings.Join(s.Requires, ", ")})
	}
	t.Render()
	fmt.Fprintf(w, "(%d scripts)\n", len(scripts))

	return nil
}
