package ast

import (
	"ndca/internal/source"
)

// Constructors for spanned tree nodes. The checker builds the typed tree
// through these; tests use them to assemble functions directly.

// LitInt builds an integer literal expression.
func LitInt(span source.Span, v int64) source.Spanned[IntExpr] {
	return source.At(span, IntExpr{Kind: IntLiteral, Literal: v})
}

// VarInt builds an integer variable reference.
func VarInt(span source.Span, name string) source.Spanned[IntExpr] {
	return source.At(span, IntExpr{Kind: IntVar, Var: name})
}

// Neg builds a unary negation.
func Neg(span source.Span, x source.Spanned[IntExpr]) source.Spanned[IntExpr] {
	return source.At(span, IntExpr{Kind: IntNeg, Operand: &x})
}

// BinOp builds a binary arithmetic operation.
func BinOp(span source.Span, lhs source.Spanned[IntExpr], op MathOp, rhs source.Spanned[IntExpr]) source.Spanned[IntExpr] {
	return source.At(span, IntExpr{Kind: IntBinaryOp, Lhs: &lhs, Op: op, Rhs: &rhs})
}

// CmpInts builds a chained integer comparison.
func CmpInts(span source.Span, initial source.Spanned[IntExpr], comps ...Comparison[IntExpr, Cmp]) source.Spanned[IntExpr] {
	return source.At(span, IntExpr{
		Kind: IntCmp,
		Cmp:  &CmpExpr[IntExpr, Cmp]{Initial: initial, Comparisons: comps},
	})
}

// CmpCells builds a chained cell state equality comparison.
func CmpCells(span source.Span, initial source.Spanned[CellStateExpr], comps ...Comparison[CellStateExpr, EqCmp]) source.Spanned[IntExpr] {
	return source.At(span, IntExpr{
		Kind:    IntCmpCellState,
		CmpCell: &CmpExpr[CellStateExpr, EqCmp]{Initial: initial, Comparisons: comps},
	})
}

// VarCell builds a cell state variable reference.
func VarCell(span source.Span, name string) source.Spanned[CellStateExpr] {
	return source.At(span, CellStateExpr{Kind: CellVar, Var: name})
}

// FromID builds an integer-to-cell-state conversion.
func FromID(span source.Span, x source.Spanned[IntExpr]) source.Spanned[CellStateExpr] {
	return source.At(span, CellStateExpr{Kind: CellFromID, FromID: &x})
}

// NewSetVar builds a variable assignment statement.
func NewSetVar(span source.Span, name source.Spanned[string], value Expr) source.Spanned[Stmt] {
	return source.At(span, Stmt{
		Kind:   StmtSetVar,
		SetVar: SetVarStmt{Name: name, Value: value},
	})
}

// NewIf builds a structured branch statement.
func NewIf(span source.Span, cond source.Spanned[IntExpr], ifTrue, ifFalse StatementBlock) source.Spanned[Stmt] {
	return source.At(span, Stmt{
		Kind: StmtIf,
		If:   IfStmt{Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse},
	})
}

// NewReturn builds a `become` statement.
func NewReturn(span source.Span, value Expr) source.Spanned[Stmt] {
	return source.At(span, Stmt{Kind: StmtReturn, Return: ReturnStmt{Value: value}})
}

// NewEnd builds an `end` statement.
func NewEnd(span source.Span) source.Spanned[Stmt] {
	return source.At(span, Stmt{Kind: StmtEnd})
}

// NewGoto builds a goto with a pre-decremented target.
func NewGoto(span source.Span, target int) source.Spanned[Stmt] {
	return source.At(span, Stmt{Kind: StmtGoto, Goto: GotoStmt{Target: target}})
}
