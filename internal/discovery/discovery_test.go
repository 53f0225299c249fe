package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeScripts(t *testing.T, scripts map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range scripts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestDiscover(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"views.sql":    "-- Require: base\nCREATE VIEW v AS SELECT 1;",
		"base.sql":     "CREATE TABLE t (id INTEGER);",
		"notes.txt":    "not a script",
		"fixtures.sql": "-- Require: base, views\nINSERT INTO t VALUES (1);",
	})

	scripts, err := Discover(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scripts) != 3 {
		t.Fatalf("expected 3 scripts, got %d", len(scripts))
	}

	// Sorted by name.
	names := []string{scripts[0].Name, scripts[1].Name, scripts[2].Name}
	if !reflect.DeepEqual(names, []string{"base", "fixtures", "views"}) {
		t.Errorf("unexpected names: %v", names)
	}

	if !reflect.DeepEqual(scripts[1].Requires, []string{"base", "views"}) {
		t.Errorf("fixtures requirements wrong: %v", scripts[1].Requires)
	}
	if scripts[0].Requires != nil {
		t.Errorf("base should have no requirements, got %v", scripts[0].Requires)
	}
}

func TestDiscover_MissingDirectory(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDiscover_KeepsUnknownHeaders(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"a.sql": "-- Owner: data-team\n-- Require: b\nSELECT 1;",
		"b.sql": "SELECT 2;",
	})

	scripts, err := Discover(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scripts[0].Headers["owner"] != "data-team" {
		t.Errorf("unrecognized headers should be retained, got %v", scripts[0].Headers)
	}
}

func TestBuildGraph(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"views.sql": "-- Require: base\nCREATE VIEW v AS SELECT 1;",
		"base.sql":  "CREATE TABLE t (id INTEGER);",
	})

	scripts, err := Discover(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	graph, err := BuildGraph(scripts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := graph.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"base", "views"}) {
		t.Errorf("expected [base views], got %v", order)
	}
}

func TestBuildGraph_UnknownRequirement(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"a.sql": "-- Require: ghost\nSELECT 1;",
	})

	scripts, err := Discover(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := BuildGraph(scripts); err == nil {
		t.Error("expected error for requirement naming an unknown script")
	}
}
