// Package driver runs the full rule pipeline: load, tokenize, parse, type
// check, flatten. Everything downstream (the engines, the CLI, the debugger)
// consumes the flattened rule it produces.
package driver

import (
	"ndca/internal/ast"
	"ndca/internal/lang"
	"ndca/internal/parser"
	"ndca/internal/sema"
	"ndca/internal/source"
)

// DefaultStateCount is the cell state count used when no manifest or flag
// overrides it.
const DefaultStateCount = 100

// Build parses and checks a rule and flattens its transition function.
// The returned rule is ready for either execution engine.
func Build(src *source.Source) (*ast.Rule, *lang.Error) {
	file, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	rule, err := sema.Check(src, file)
	if err != nil {
		return nil, err
	}
	ast.Flatten(rule.Transition)
	return rule, nil
}

// CheckCached reports a rule's build outcome, serving unchanged sources
// from the disk cache. On a miss it builds the rule, records the outcome
// and returns the build error (nil for a clean rule) so callers can render
// it. Cache I/O failures degrade to an uncached build.
func CheckCached(cache *DiskCache, src *source.Source) (payload *RulePayload, fromCache bool, buildErr *lang.Error) {
	key := HashSource(src)
	var cached RulePayload
	if ok, err := cache.Get(key, &cached); err == nil && ok {
		return &cached, true, nil
	}

	rule, buildErr := Build(src)
	payload = PayloadFor(src, rule, buildErr)
	_ = cache.Put(key, payload)
	return payload, false, buildErr
}

// Load reads a rule file and builds it. The error is an *lang.Error for
// language problems and a plain I/O error when the file cannot be read.
func Load(path string) (*ast.Rule, error) {
	src, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	rule, lerr := Build(src)
	if lerr != nil {
		return nil, lerr
	}
	return rule, nil
}
