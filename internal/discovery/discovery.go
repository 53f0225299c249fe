// Package discovery scans a scripts directory and builds the requirement
// graph without applying anything. It backs the inspection commands.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlbuild/internal/builder"
	"github.com/leapstack-labs/sqlbuild/internal/dag"
)

// Script describes one discovered script and its declared requirements.
type Script struct {
	// Name is the requirement name (filename without extension).
	Name string
	// Path is the absolute or directory-relative path to the script file.
	Path string
	// Requires lists the direct requirements from the script's headers,
	// in declaration order.
	Requires []string
	// Headers holds all parsed header directives, including unrecognized ones.
	Headers map[string]string
}

// Discover reads every script in dir and returns them sorted by name.
func Discover(dir string) ([]*Script, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scripts directory: %w", err)
	}

	var scripts []*Script
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), builder.ScriptExt) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening script: %w", err)
		}
		headers, err := builder.ParseHeaders(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing headers of %s: %w", path, err)
		}

		scripts = append(scripts, &Script{
			Name:     strings.TrimSuffix(entry.Name(), builder.ScriptExt),
			Path:     path,
			Requires: builder.SplitRequires(headers["require"]),
			Headers:  headers,
		})
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Name < scripts[j].Name })
	return scripts, nil
}

// BuildGraph assembles the requirement graph for a set of scripts. A
// requirement naming a script that was not discovered is an error here;
// the builder itself would surface it as a missing file at apply time.
func BuildGraph(scripts []*Script) (*dag.Graph, error) {
	g := dag.New()
	for _, s := range scripts {
		g.AddScript(s.Name)
	}
	for _, s := range scripts {
		for _, req := range s.Requires {
			if err := g.AddRequirement(s.Name, req); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
