// Package builder applies SQL scripts from a directory in dependency order.
//
// Scripts declare prerequisites with a "-- Require: name, ..." header line.
// Requiring a script first applies its (transitive) requirements depth-first,
// left to right, then streams the script's own statements to an Executor.
// Each script is applied at most once per Builder.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/sqlbuild/internal/splitsql"
)

// ScriptExt is the file extension scripts are stored under.
const ScriptExt = ".sql"

// requireHeader is the only header key the builder interprets.
const requireHeader = "require"

// Executor is the capability the builder needs from its caller: execute one
// SQL statement against some data store. Failures must be reported, not
// swallowed; the builder stops the current script on the first error.
type Executor interface {
	Exec(ctx context.Context, sql string) error
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, sql string) error

// Exec calls f(ctx, sql).
func (f ExecutorFunc) Exec(ctx context.Context, sql string) error {
	return f(ctx, sql)
}

// DependencyLoopError is returned when a script is required again while its
// own requirements are still being resolved. It names the requirement that
// closed the cycle, not the full path.
type DependencyLoopError struct {
	Requirement string
}

func (e *DependencyLoopError) Error() string {
	return fmt.Sprintf("dependency loop: %s", e.Requirement)
}

// Builder resolves and applies scripts. It is not safe for concurrent use;
// callers needing parallel builds must use independent Builder instances.
type Builder struct {
	executor Executor
	dir      string
	logger   *slog.Logger

	applied    map[string]struct{}
	inProgress []string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the structured logger (default: discard).
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a Builder that loads scripts from dir and applies their
// statements through executor. The executor and directory are borrowed and
// must stay valid for the Builder's lifetime.
func New(executor Executor, dir string, opts ...Option) *Builder {
	b := &Builder{
		executor: executor,
		dir:      dir,
		logger:   slog.New(slog.DiscardHandler),
		applied:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Require applies the named scripts and everything they transitively
// require, each at most once, dependencies first. Names already applied by
// this Builder are skipped. Resolution is fail-fast: the first error aborts
// the remaining names.
func (b *Builder) Require(ctx context.Context, names ...string) error {
	for _, name := range names {
		if _, ok := b.applied[name]; ok {
			continue
		}
		if b.resolving(name) {
			return &DependencyLoopError{Requirement: name}
		}
		if err := b.requireOne(ctx, name); err != nil {
			return err
		}
		b.applied[name] = struct{}{}
	}
	return nil
}

// Applied reports whether a script has been fully applied by this Builder.
func (b *Builder) Applied(name string) bool {
	_, ok := b.applied[name]
	return ok
}

// resolving reports whether name is currently on the in-progress stack.
func (b *Builder) resolving(name string) bool {
	for _, n := range b.inProgress {
		if n == name {
			return true
		}
	}
	return false
}

// requireOne resolves a single script: requirements first, then its own
// statements. The in-progress entry is released on every exit path.
func (b *Builder) requireOne(ctx context.Context, name string) error {
	b.inProgress = append(b.inProgress, name)
	defer func() {
		b.inProgress = b.inProgress[:len(b.inProgress)-1]
	}()

	path := filepath.Join(b.dir, name+ScriptExt)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading script %q: %w", name, err)
	}

	headers, err := ParseHeaders(strings.NewReader(string(content)))
	if err != nil {
		return fmt.Errorf("parsing headers of %q: %w", name, err)
	}
	if requires := SplitRequires(headers[requireHeader]); len(requires) > 0 {
		b.logger.Debug("resolving requirements", "script", name, "requires", requires)
		if err := b.Require(ctx, requires...); err != nil {
			return err
		}
	}

	b.logger.Info("applying script", "script", name)
	return b.execute(ctx, name, string(content))
}

// execute streams the script body through the statement splitter and
// dispatches each statement to the executor in source order. Literal percent
// characters are doubled so statements pass cleanly through execution layers
// that treat "%" as a parameter placeholder.
func (b *Builder) execute(ctx context.Context, name, content string) error {
	s := splitsql.New(strings.NewReader(content))
	for s.Scan() {
		stmt := strings.ReplaceAll(s.Statement(), "%", "%%")
		b.logger.Debug("executing statement", "script", name, "sql", stmt)
		if err := b.executor.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("executing statement of %q: %w", name, err)
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("reading script %q: %w", name, err)
	}
	return nil
}
