package driver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ndca/internal/ast"
	"ndca/internal/compiler"
	"ndca/internal/interp"
	"ndca/internal/lang"
)

// Backend selects an execution engine.
type Backend uint8

const (
	// BackendInterp is the tree-walking interpreter.
	BackendInterp Backend = iota
	// BackendCompiled is the closure-compiling engine.
	BackendCompiled
)

func (b Backend) String() string {
	switch b {
	case BackendInterp:
		return "interp"
	case BackendCompiled:
		return "compiled"
	}
	return "unknown"
}

// ParseBackend maps a CLI flag value to a backend.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "interp":
		return BackendInterp, nil
	case "compiled":
		return BackendCompiled, nil
	}
	return 0, fmt.Errorf("unknown backend %q (want interp or compiled)", name)
}

// Run executes a built rule's transition function on the chosen backend.
func Run(rule *ast.Rule, backend Backend, stateCount int) (lang.CellState, *lang.Error) {
	switch backend {
	case BackendInterp:
		return interp.RunTransition(rule.Transition, stateCount)
	case BackendCompiled:
		c, err := compiler.Compile(rule.Transition, stateCount)
		if err != nil {
			return 0, err
		}
		return c.Call()
	}
	return 0, lang.Internalf("unknown backend %d", backend)
}

// ParityResult holds one backend's outcome of a parity run.
type ParityResult struct {
	Backend Backend
	Value   lang.CellState
	Err     *lang.Error
}

// RunParity executes the rule on both backends concurrently and reports
// whether they agree: same value, or same fault code and span.
func RunParity(ctx context.Context, rule *ast.Rule, stateCount int) ([2]ParityResult, bool, error) {
	var results [2]ParityResult

	g, _ := errgroup.WithContext(ctx)
	for i, backend := range [2]Backend{BackendInterp, BackendCompiled} {
		i, backend := i, backend
		g.Go(func() error {
			v, err := Run(rule, backend, stateCount)
			results[i] = ParityResult{Backend: backend, Value: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, false, err
	}

	return results, sameOutcome(results[0], results[1]), nil
}

func sameOutcome(a, b ParityResult) bool {
	if (a.Err == nil) != (b.Err == nil) {
		return false
	}
	if a.Err != nil {
		return a.Err.Code == b.Err.Code &&
			a.Err.Span == b.Err.Span &&
			a.Err.HasSpan == b.Err.HasSpan
	}
	return a.Value == b.Value
}
