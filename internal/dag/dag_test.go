package dag

import (
	"reflect"
	"testing"
)

func TestGraph_AddScriptAndRequirement(t *testing.T) {
	g := New()

	g.AddScript("base")
	g.AddScript("views")
	g.AddScript("fixtures")

	if g.ScriptCount() != 3 {
		t.Errorf("expected 3 scripts, got %d", g.ScriptCount())
	}

	if err := g.AddRequirement("views", "base"); err != nil {
		t.Errorf("failed to add requirement: %v", err)
	}
	if err := g.AddRequirement("fixtures", "views"); err != nil {
		t.Errorf("failed to add requirement: %v", err)
	}

	if g.RequirementCount() != 2 {
		t.Errorf("expected 2 requirements, got %d", g.RequirementCount())
	}
}

func TestGraph_AddRequirement_UnknownScripts(t *testing.T) {
	g := New()
	g.AddScript("a")

	if err := g.AddRequirement("a", "nonexistent"); err == nil {
		t.Error("expected error for unknown requirement")
	}
	if err := g.AddRequirement("nonexistent", "a"); err == nil {
		t.Error("expected error for unknown script")
	}
}

func TestGraph_AddRequirement_SelfRequirement(t *testing.T) {
	g := New()
	g.AddScript("a")

	if err := g.AddRequirement("a", "a"); err == nil {
		t.Error("expected error for self-requirement")
	}
}

func TestGraph_AddRequirement_Duplicate(t *testing.T) {
	g := New()
	g.AddScript("a")
	g.AddScript("b")

	_ = g.AddRequirement("b", "a")
	_ = g.AddRequirement("b", "a")

	if g.RequirementCount() != 1 {
		t.Errorf("duplicate requirement should not add an edge, got %d", g.RequirementCount())
	}
}

func TestGraph_RequiresAndDependents(t *testing.T) {
	g := New()
	g.AddScript("base")
	g.AddScript("views")
	_ = g.AddRequirement("views", "base")

	if got := g.Requires("views"); !reflect.DeepEqual(got, []string{"base"}) {
		t.Errorf("expected [base], got %v", got)
	}
	if got := g.Dependents("base"); !reflect.DeepEqual(got, []string{"views"}) {
		t.Errorf("expected [views], got %v", got)
	}
}

func TestGraph_HasCycle(t *testing.T) {
	g := New()
	g.AddScript("a")
	g.AddScript("b")
	g.AddScript("c")
	_ = g.AddRequirement("b", "a")
	_ = g.AddRequirement("c", "b")

	if hasCycle, _ := g.HasCycle(); hasCycle {
		t.Error("acyclic graph reported as cyclic")
	}

	_ = g.AddRequirement("a", "c")
	hasCycle, cycle := g.HasCycle()
	if !hasCycle {
		t.Fatal("cycle not detected")
	}
	if len(cycle) < 3 {
		t.Errorf("cycle path too short: %v", cycle)
	}
	if cycle[0] != cycle[len(cycle)-1] {
		t.Errorf("cycle path should start and end at the same script: %v", cycle)
	}
}

func TestGraph_TopologicalSort(t *testing.T) {
	g := New()
	g.AddScript("top")
	g.AddScript("left")
	g.AddScript("right")
	g.AddScript("base")
	_ = g.AddRequirement("left", "base")
	_ = g.AddRequirement("right", "base")
	_ = g.AddRequirement("top", "left")
	_ = g.AddRequirement("top", "right")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 4 {
		t.Fatalf("expected 4 scripts, got %d", len(order))
	}

	pos := make(map[string]int)
	for i, name := range order {
		pos[name] = i
	}
	if pos["base"] > pos["left"] || pos["base"] > pos["right"] {
		t.Errorf("base must come before its dependents: %v", order)
	}
	if pos["left"] > pos["top"] || pos["right"] > pos["top"] {
		t.Errorf("top must come last: %v", order)
	}
}

func TestGraph_TopologicalSort_Cycle(t *testing.T) {
	g := New()
	g.AddScript("a")
	g.AddScript("b")
	_ = g.AddRequirement("a", "b")
	_ = g.AddRequirement("b", "a")

	if _, err := g.TopologicalSort(); err == nil {
		t.Error("expected error for cyclic graph")
	}
}

func TestGraph_Roots(t *testing.T) {
	g := New()
	g.AddScript("base")
	g.AddScript("other")
	g.AddScript("views")
	_ = g.AddRequirement("views", "base")

	want := []string{"base", "other"}
	if got := g.Roots(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGraph_Scripts_Sorted(t *testing.T) {
	g := New()
	g.AddScript("c")
	g.AddScript("a")
	g.AddScript("b")
	g.AddScript("a") // duplicate is a no-op

	want := []string{"a", "b", "c"}
	if got := g.Scripts(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
