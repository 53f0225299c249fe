// Package dag models the requirement graph between scripts.
// It provides cycle detection and topological ordering for the offline
// inspection commands; the builder keeps its own per-run state.
package dag

import (
	"fmt"
	"sort"
)

// Graph is a directed graph of script names. An edge runs from a
// requirement to the script that declares it.
type Graph struct {
	nodes      map[string]struct{}
	dependents map[string][]string // requirement -> scripts that require it
	requires   map[string][]string // script -> its requirements
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:      make(map[string]struct{}),
		dependents: make(map[string][]string),
		requires:   make(map[string][]string),
	}
}

// AddScript adds a script node. Adding the same name twice is a no-op.
func (g *Graph) AddScript(name string) {
	if _, ok := g.nodes[name]; ok {
		return
	}
	g.nodes[name] = struct{}{}
	g.dependents[name] = []string{}
	g.requires[name] = []string{}
}

// AddRequirement records that script requires requirement. Both nodes must
// already exist. Self-requirements are rejected.
func (g *Graph) AddRequirement(script, requirement string) error {
	if _, ok := g.nodes[script]; !ok {
		return fmt.Errorf("script %q does not exist", script)
	}
	if _, ok := g.nodes[requirement]; !ok {
		return fmt.Errorf("requirement %q of script %q does not exist", requirement, script)
	}
	if script == requirement {
		return fmt.Errorf("script %q requires itself", script)
	}
	if !contains(g.dependents[requirement], script) {
		g.dependents[requirement] = append(g.dependents[requirement], script)
	}
	if !contains(g.requires[script], requirement) {
		g.requires[script] = append(g.requires[script], requirement)
	}
	return nil
}

// Requires returns the direct requirements of a script.
func (g *Graph) Requires(name string) []string {
	return g.requires[name]
}

// Dependents returns the scripts that directly require name.
func (g *Graph) Dependents(name string) []string {
	return g.dependents[name]
}

// Scripts returns all script names, sorted.
func (g *Graph) Scripts() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScriptCount returns the number of scripts in the graph.
func (g *Graph) ScriptCount() int {
	return len(g.nodes)
}

// RequirementCount returns the number of requirement edges.
func (g *Graph) RequirementCount() int {
	count := 0
	for _, deps := range g.requires {
		count += len(deps)
	}
	return count
}

// Roots returns scripts with no requirements, sorted.
func (g *Graph) Roots() []string {
	var roots []string
	for name := range g.nodes {
		if len(g.requires[name]) == 0 {
			roots = append(roots, name)
		}
	}
	sort.Strings(roots)
	return roots
}

// HasCycle reports whether the graph contains a requirement cycle, along
// with one offending path.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	cameFrom := make(map[string]string)

	var cycle []string

	var visit func(name string) bool
	visit = func(name string) bool {
		visited[name] = true
		onStack[name] = true

		for _, dep := range g.dependents[name] {
			if !visited[dep] {
				cameFrom[dep] = name
				if visit(dep) {
					return true
				}
			} else if onStack[dep] {
				cycle = []string{dep}
				for curr := name; curr != dep; curr = cameFrom[curr] {
					cycle = append([]string{curr}, cycle...)
				}
				cycle = append([]string{dep}, cycle...)
				return true
			}
		}

		onStack[name] = false
		return false
	}

	for name := range g.nodes {
		if !visited[name] {
			if visit(name) {
				return true, cycle
			}
		}
	}
	return false, nil
}

// TopologicalSort returns script names with every requirement ordered
// before its dependents. Ties are broken alphabetically so the order is
// deterministic. Returns an error if the graph has a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if hasCycle, cycle := g.HasCycle(); hasCycle {
		return nil, fmt.Errorf("requirement cycle: %v", cycle)
	}

	visited := make(map[string]bool)
	var order []string

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, req := range g.requires[name] {
			visit(req)
		}
		order = append(order, name)
	}

	for _, name := range g.Scripts() {
		visit(name)
	}
	return order, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
