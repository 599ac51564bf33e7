package ast

import (
	"ndca/internal/lang"
	"ndca/internal/source"
)

// MathOp enumerates binary arithmetic operators.
type MathOp uint8

const (
	OpAdd MathOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpExp // recognized syntactically, unimplemented
)

func (op MathOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	case OpExp:
		return "**"
	}
	return "?"
}

// Cmp enumerates the full comparison operator set, valid for integers.
type Cmp uint8

const (
	CmpEql Cmp = iota
	CmpNeq
	CmpLt
	CmpGt
	CmpLte
	CmpGte
)

func (c Cmp) String() string {
	switch c {
	case CmpEql:
		return "=="
	case CmpNeq:
		return "!="
	case CmpLt:
		return "<"
	case CmpGt:
		return ">"
	case CmpLte:
		return "<="
	case CmpGte:
		return ">="
	}
	return "?"
}

// CompareInts applies an integer comparison operator.
func CompareInts(op Cmp, x, y int64) bool {
	switch op {
	case CmpEql:
		return x == y
	case CmpNeq:
		return x != y
	case CmpLt:
		return x < y
	case CmpGt:
		return x > y
	case CmpLte:
		return x <= y
	case CmpGte:
		return x >= y
	}
	return false
}

// EqCmp enumerates the equality-only comparison operators, the only ones
// valid for cell states.
type EqCmp uint8

const (
	EqEql EqCmp = iota
	EqNeq
)

func (c EqCmp) String() string {
	switch c {
	case EqEql:
		return "=="
	case EqNeq:
		return "!="
	}
	return "?"
}

// CompareCells applies a cell state equality operator.
func CompareCells(op EqCmp, x, y lang.CellState) bool {
	switch op {
	case EqEql:
		return x == y
	case EqNeq:
		return x != y
	}
	return false
}

// CmpOp constrains the operator parameter of a comparison chain.
type CmpOp interface {
	~uint8
	String() string
}

// Comparison is one (operator, operand) link of a comparison chain.
type Comparison[E any, C CmpOp] struct {
	Op   C
	Expr source.Spanned[E]
}

// CmpExpr is a chained comparison: an initial operand plus an ordered
// sequence of (operator, operand) pairs sharing adjacent operands, e.g.
// `a < b < c` checks a < b and b < c.
type CmpExpr[E any, C CmpOp] struct {
	Initial     source.Spanned[E]
	Comparisons []Comparison[E, C]
}

// IntExprKind enumerates integer expression kinds.
type IntExprKind uint8

const (
	// IntLiteral is an integer literal.
	IntLiteral IntExprKind = iota
	// IntVar reads an integer-typed variable.
	IntVar
	// IntNeg is unary negation.
	IntNeg
	// IntBinaryOp is a binary arithmetic operation.
	IntBinaryOp
	// IntCmp is a chained integer comparison; it evaluates to 0 or 1.
	IntCmp
	// IntCmpCellState is a chained cell state equality comparison; it
	// evaluates to 0 or 1.
	IntCmpCellState
	// IntFnCall is a helper function call, recognized but unimplemented.
	IntFnCall
)

// IntExpr is an integer-typed expression, tagged by Kind. Expressions are
// immutable once built.
type IntExpr struct {
	Kind IntExprKind

	Literal int64
	Var     string
	Operand *source.Spanned[IntExpr] // IntNeg
	Lhs     *source.Spanned[IntExpr] // IntBinaryOp
	Rhs     *source.Spanned[IntExpr] // IntBinaryOp
	Op      MathOp
	Cmp     *CmpExpr[IntExpr, Cmp]
	CmpCell *CmpExpr[CellStateExpr, EqCmp]
}

// CellStateExprKind enumerates cell state expression kinds.
type CellStateExprKind uint8

const (
	// CellVar reads a cell-state-typed variable.
	CellVar CellStateExprKind = iota
	// CellFromID converts an integer expression to a cell state, checking
	// it lies in [0, state count).
	CellFromID
	// CellFnCall is a helper function call, recognized but unimplemented.
	CellFnCall
)

// CellStateExpr is a cell-state-typed expression, tagged by Kind.
type CellStateExpr struct {
	Kind CellStateExprKind

	Var    string
	FromID *source.Spanned[IntExpr]
}

// ExprKind tags the two expression families.
type ExprKind uint8

const (
	// ExprInt wraps an integer expression.
	ExprInt ExprKind = iota
	// ExprCellState wraps a cell state expression.
	ExprCellState
)

// Expr is either an integer or a cell state expression, as assigned by the
// type checker.
type Expr struct {
	Kind ExprKind
	Int  *source.Spanned[IntExpr]
	Cell *source.Spanned[CellStateExpr]
}

// IntExprOf wraps a spanned integer expression.
func IntExprOf(e source.Spanned[IntExpr]) Expr {
	return Expr{Kind: ExprInt, Int: &e}
}

// CellExprOf wraps a spanned cell state expression.
func CellExprOf(e source.Spanned[CellStateExpr]) Expr {
	return Expr{Kind: ExprCellState, Cell: &e}
}

// Type returns the expression's static type.
func (e Expr) Type() lang.Type {
	switch e.Kind {
	case ExprInt:
		return lang.TypeInt
	case ExprCellState:
		return lang.TypeCellState
	}
	return lang.TypeVoid
}

// Span returns the expression's source span.
func (e Expr) Span() source.Span {
	switch e.Kind {
	case ExprInt:
		return e.Int.Span
	case ExprCellState:
		return e.Cell.Span
	}
	return source.Span{}
}

// AsCellStateExpr narrows to the cell state variant; a mismatch means the
// checker let a badly typed expression through.
func (e Expr) AsCellStateExpr() (*source.Spanned[CellStateExpr], *lang.Error) {
	if e.Kind != ExprCellState {
		return nil, lang.Internalf("expected cell state expression but got %s", e.Type())
	}
	return e.Cell, nil
}

// AsIntExpr narrows to the integer variant; a mismatch means the checker
// let a badly typed expression through.
func (e Expr) AsIntExpr() (*source.Spanned[IntExpr], *lang.Error) {
	if e.Kind != ExprInt {
		return nil, lang.Internalf("expected integer expression but got %s", e.Type())
	}
	return e.Int, nil
}
