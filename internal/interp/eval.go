package interp

import (
	"fortio.org/safecast"

	"ndca/internal/ast"
	"ndca/internal/lang"
	"ndca/internal/source"
)

// EvalIntExpr evaluates an expression to an integer, attributing any
// fault to the innermost expression's span.
func (s *State) EvalIntExpr(expr *source.Spanned[ast.IntExpr]) (source.Spanned[int64], *lang.Error) {
	span := expr.Span
	var zero source.Spanned[int64]

	switch expr.Inner.Kind {
	case ast.IntFnCall:
		return zero, lang.Unimplemented(span)

	case ast.IntVar:
		v, ok := s.Vars[expr.Inner.Var]
		if !ok {
			return zero, lang.Internalf("read of undeclared variable %q not caught by type checker", expr.Inner.Var)
		}
		i, err := v.AsInt()
		if err != nil {
			return zero, err
		}
		return source.At(span, i), nil

	case ast.IntLiteral:
		return source.At(span, expr.Inner.Literal), nil

	case ast.IntNeg:
		v, err := s.EvalIntExpr(expr.Inner.Operand)
		if err != nil {
			return zero, err
		}
		res, ok := lang.CheckedNeg(v.Inner)
		if !ok {
			return zero, lang.OverflowDuringNegation(span)
		}
		return source.At(span, res), nil

	case ast.IntBinaryOp:
		res, err := s.evalBinaryOp(span, &expr.Inner)
		if err != nil {
			return zero, err
		}
		return source.At(span, res), nil

	case ast.IntCmp:
		res, err := evalCmpChain(s, expr.Inner.Cmp, (*State).EvalIntExpr, ast.CompareInts)
		if err != nil {
			return zero, err
		}
		return source.At(span, res), nil

	case ast.IntCmpCellState:
		res, err := evalCmpChain(s, expr.Inner.CmpCell, (*State).EvalCellStateExpr, ast.CompareCells)
		if err != nil {
			return zero, err
		}
		return source.At(span, res), nil
	}
	return zero, lang.Internalf("unknown integer expression kind %d", expr.Inner.Kind)
}

// evalBinaryOp evaluates both operands left to right, then applies the
// operator with a divide-by-zero pre-check and overflow-checked
// arithmetic.
func (s *State) evalBinaryOp(span source.Span, expr *ast.IntExpr) (int64, *lang.Error) {
	lhs, err := s.EvalIntExpr(expr.Lhs)
	if err != nil {
		return 0, err
	}
	rhs, err := s.EvalIntExpr(expr.Rhs)
	if err != nil {
		return 0, err
	}

	// Division by zero faults before the operation is attempted.
	if (expr.Op == ast.OpDiv || expr.Op == ast.OpRem) && rhs.Inner == 0 {
		return 0, lang.DivideByZero(span)
	}

	switch expr.Op {
	case ast.OpAdd:
		res, ok := lang.CheckedAdd(lhs.Inner, rhs.Inner)
		if !ok {
			return 0, lang.OverflowDuringAddition(span)
		}
		return res, nil
	case ast.OpSub:
		res, ok := lang.CheckedSub(lhs.Inner, rhs.Inner)
		if !ok {
			return 0, lang.OverflowDuringSubtraction(span)
		}
		return res, nil
	case ast.OpMul:
		res, ok := lang.CheckedMul(lhs.Inner, rhs.Inner)
		if !ok {
			return 0, lang.OverflowDuringMultiplication(span)
		}
		return res, nil
	case ast.OpDiv:
		res, ok := lang.CheckedDiv(lhs.Inner, rhs.Inner)
		if !ok {
			// MinInt64 / -1 is the negation of MinInt64.
			return 0, lang.OverflowDuringNegation(span)
		}
		return res, nil
	case ast.OpRem:
		res, ok := lang.CheckedRem(lhs.Inner, rhs.Inner)
		if !ok {
			return 0, lang.OverflowDuringNegation(span)
		}
		return res, nil
	case ast.OpExp:
		return 0, lang.Unimplemented(span)
	}
	return 0, lang.Internalf("unknown binary operator %d", expr.Op)
}

// EvalCellStateExpr evaluates an expression to a cell state value.
func (s *State) EvalCellStateExpr(expr *source.Spanned[ast.CellStateExpr]) (source.Spanned[lang.CellState], *lang.Error) {
	span := expr.Span
	var zero source.Spanned[lang.CellState]

	switch expr.Inner.Kind {
	case ast.CellFnCall:
		return zero, lang.Unimplemented(span)

	case ast.CellVar:
		v, ok := s.Vars[expr.Inner.Var]
		if !ok {
			return zero, lang.Internalf("read of undeclared variable %q not caught by type checker", expr.Inner.Var)
		}
		c, err := v.AsCellState()
		if err != nil {
			return zero, err
		}
		return source.At(span, c), nil

	case ast.CellFromID:
		id, err := s.EvalIntExpr(expr.Inner.FromID)
		if err != nil {
			return zero, err
		}
		if id.Inner < 0 || id.Inner >= int64(s.StateCount) {
			return zero, lang.CellStateOutOfRange(span)
		}
		c, convErr := safecast.Conv[uint8](id.Inner)
		if convErr != nil {
			return zero, lang.WrapInternal(convErr)
		}
		return source.At(span, lang.CellState(c)), nil
	}
	return zero, lang.Internalf("unknown cell state expression kind %d", expr.Inner.Kind)
}

// evalCmpChain evaluates a chained comparison as a short-circuiting
// conjunction: each link compares the previous operand value with the
// next; the first false link yields 0 without evaluating the rest, and a
// fully true chain yields 1.
func evalCmpChain[E any, C ast.CmpOp, V any](
	s *State,
	chain *ast.CmpExpr[E, C],
	evalFn func(*State, *source.Spanned[E]) (source.Spanned[V], *lang.Error),
	cmpFn func(C, V, V) bool,
) (int64, *lang.Error) {
	lhs, err := evalFn(s, &chain.Initial)
	if err != nil {
		return 0, err
	}
	prev := lhs.Inner
	for i := range chain.Comparisons {
		rhs, err := evalFn(s, &chain.Comparisons[i].Expr)
		if err != nil {
			return 0, err
		}
		if !cmpFn(chain.Comparisons[i].Op, prev, rhs.Inner) {
			return 0, nil
		}
		// The current RHS becomes the next comparison's LHS.
		prev = rhs.Inner
	}
	return 1, nil
}
