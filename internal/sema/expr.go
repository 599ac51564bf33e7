package sema

import (
	"ndca/internal/ast"
	"ndca/internal/lang"
	"ndca/internal/parser"
	"ndca/internal/source"
)

// checkExpr infers a surface expression's type and builds the matching typed
// node. Variable references take their type from the variable's first
// assignment.
func (c *checker) checkExpr(e *parser.Expr) (ast.Expr, *lang.Error) {
	var zero ast.Expr
	switch e.Kind {
	case parser.ExprIntLit:
		return ast.IntExprOf(ast.LitInt(e.Span, e.Int)), nil
	case parser.ExprVar:
		t, ok := c.fn.Vars[e.Name]
		if !ok {
			return zero, lang.UninitializedVariable(e.Span)
		}
		switch t {
		case lang.TypeInt:
			return ast.IntExprOf(ast.VarInt(e.Span, e.Name)), nil
		case lang.TypeCellState:
			return ast.CellExprOf(ast.VarCell(e.Span, e.Name)), nil
		}
		return zero, lang.Internalf("variable %q has type %s", e.Name, t)
	case parser.ExprNeg:
		x, err := c.checkIntExpr(e.X)
		if err != nil {
			return zero, err
		}
		return ast.IntExprOf(ast.Neg(e.Span, x)), nil
	case parser.ExprBinary:
		lhs, err := c.checkIntExpr(e.Lhs)
		if err != nil {
			return zero, err
		}
		rhs, err := c.checkIntExpr(e.Rhs)
		if err != nil {
			return zero, err
		}
		return ast.IntExprOf(ast.BinOp(e.Span, lhs, e.Op, rhs)), nil
	case parser.ExprCompare:
		return c.checkCompare(e)
	case parser.ExprCell:
		id, err := c.checkIntExpr(e.X)
		if err != nil {
			return zero, err
		}
		return ast.CellExprOf(ast.FromID(e.Span, id)), nil
	}
	return zero, lang.Internalf("unknown surface expression kind %d", e.Kind)
}

// checkCompare types a comparison chain. Every operand must share the
// initial operand's type; integer chains allow all six operators, cell state
// chains only equality and inequality.
func (c *checker) checkCompare(e *parser.Expr) (ast.Expr, *lang.Error) {
	var zero ast.Expr
	initial, err := c.checkExpr(e.Initial)
	if err != nil {
		return zero, err
	}

	switch initial.Kind {
	case ast.ExprInt:
		comps := make([]ast.Comparison[ast.IntExpr, ast.Cmp], 0, len(e.Comparisons))
		for _, link := range e.Comparisons {
			operand, err := c.checkIntExpr(link.Expr)
			if err != nil {
				return zero, err
			}
			comps = append(comps, ast.Comparison[ast.IntExpr, ast.Cmp]{Op: link.Op, Expr: operand})
		}
		return ast.IntExprOf(ast.CmpInts(e.Span, *initial.Int, comps...)), nil
	case ast.ExprCellState:
		comps := make([]ast.Comparison[ast.CellStateExpr, ast.EqCmp], 0, len(e.Comparisons))
		for _, link := range e.Comparisons {
			op, ok := eqOp(link.Op)
			if !ok {
				// Ordered comparison is only defined for integers.
				return zero, lang.TypeMismatch(link.Expr.Span, lang.TypeInt, lang.TypeCellState)
			}
			operand, err := c.checkCellExpr(link.Expr)
			if err != nil {
				return zero, err
			}
			comps = append(comps, ast.Comparison[ast.CellStateExpr, ast.EqCmp]{Op: op, Expr: operand})
		}
		return ast.IntExprOf(ast.CmpCells(e.Span, *initial.Cell, comps...)), nil
	}
	return zero, lang.Internalf("comparison operand has type %s", initial.Type())
}

func eqOp(op ast.Cmp) (ast.EqCmp, bool) {
	switch op {
	case ast.CmpEql:
		return ast.EqEql, true
	case ast.CmpNeq:
		return ast.EqNeq, true
	}
	return 0, false
}

// checkIntExpr checks an expression in a position that requires an integer.
func (c *checker) checkIntExpr(e *parser.Expr) (source.Spanned[ast.IntExpr], *lang.Error) {
	var zero source.Spanned[ast.IntExpr]
	expr, err := c.checkExpr(e)
	if err != nil {
		return zero, err
	}
	if expr.Kind != ast.ExprInt {
		return zero, lang.TypeMismatch(expr.Span(), lang.TypeInt, expr.Type())
	}
	return *expr.Int, nil
}

// checkCellExpr checks an expression in a position that requires a cell state.
func (c *checker) checkCellExpr(e *parser.Expr) (source.Spanned[ast.CellStateExpr], *lang.Error) {
	var zero source.Spanned[ast.CellStateExpr]
	expr, err := c.checkExpr(e)
	if err != nil {
		return zero, err
	}
	if expr.Kind != ast.ExprCellState {
		return zero, lang.TypeMismatch(expr.Span(), lang.TypeCellState, expr.Type())
	}
	return *expr.Cell, nil
}
