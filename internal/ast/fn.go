// Package ast holds the typed statement and expression trees of an NDCA
// rule, plus the flattening transform that turns structured control flow
// into one linear, goto-addressable instruction sequence.
package ast

import (
	"ndca/internal/lang"
	"ndca/internal/source"
)

// FunctionKind distinguishes the transition function from helper functions.
type FunctionKind uint8

const (
	// FuncTransition is the rule's transition function; it must return a
	// cell state.
	FuncTransition FunctionKind = iota
	// FuncHelper is a user-defined helper function with an arbitrary
	// return type. Helpers are not executable yet.
	FuncHelper
)

func (k FunctionKind) String() string {
	switch k {
	case FuncTransition:
		return "transition"
	case FuncHelper:
		return "helper"
	}
	return "unknown"
}

// Function is one executable function of a rule: its kind, the declared
// variables with their static types, and the statement body. The body is
// built once by the parser and checker, rewritten exactly once in place by
// Flatten, and read-only afterwards.
type Function struct {
	Kind       FunctionKind
	ReturnType lang.Type // helper return type; transition functions return a cell state
	Vars       map[string]lang.Type
	Statements StatementBlock
}

// Rule is a complete cellular automaton description. The only executable
// part for now is its transition function.
type Rule struct {
	Source     *source.Source
	Transition *Function
}
