// Package parser builds the untyped surface tree of an NDCA rule. The
// checker (internal/sema) lowers it to the typed ast representation.
package parser

import (
	"ndca/internal/ast"
	"ndca/internal/source"
	"ndca/internal/token"
)

// File is a parsed rule file: a sequence of top-level directives.
type File struct {
	Directives []Directive
}

// Directive is one top-level `@name { ... }` block.
type Directive struct {
	Span source.Span
	Name source.Spanned[string] // without the leading '@'
	Body []Stmt
}

// StmtKind enumerates surface statement kinds.
type StmtKind uint8

const (
	// StmtSet is `set name op expr`.
	StmtSet StmtKind = iota
	// StmtIf is `if expr { ... } else { ... }`.
	StmtIf
	// StmtBecome is `become expr`.
	StmtBecome
	// StmtEnd is `end`.
	StmtEnd
)

// Stmt is one surface statement, tagged by Kind.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	Name     source.Spanned[string] // StmtSet target
	AssignOp token.Kind             // Assign or a compound assignment
	Value    *Expr                  // StmtSet / StmtBecome
	Cond     *Expr                  // StmtIf
	IfTrue   []Stmt
	IfFalse  []Stmt
}

// ExprKind enumerates surface expression kinds.
type ExprKind uint8

const (
	// ExprIntLit is an integer literal.
	ExprIntLit ExprKind = iota
	// ExprVar is a variable reference.
	ExprVar
	// ExprNeg is unary negation.
	ExprNeg
	// ExprBinary is a binary arithmetic operation.
	ExprBinary
	// ExprCompare is a chained comparison.
	ExprCompare
	// ExprCell is `#lit` or `#(expr)`: conversion to a cell state.
	ExprCell
)

// Expr is one surface expression, tagged by Kind. Types are assigned
// later by the checker.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Int         int64      // ExprIntLit
	Name        string     // ExprVar
	X           *Expr      // ExprNeg operand / ExprCell inner
	Lhs, Rhs    *Expr      // ExprBinary
	Op          ast.MathOp // ExprBinary
	Initial     *Expr      // ExprCompare
	Comparisons []ComparisonLink
}

// ComparisonLink is one (operator, operand) link of a surface chain.
type ComparisonLink struct {
	Op   ast.Cmp
	Expr *Expr
}
