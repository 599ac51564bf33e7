package compiler

import (
	"fortio.org/safecast"

	"ndca/internal/ast"
	"ndca/internal/lang"
	"ndca/internal/source"
)

// Compiled expressions are plain closures over the machine. Spans needed
// for fault attribution are captured at compile time.

func (cc *compilation) compileIntExpr(expr *source.Spanned[ast.IntExpr]) (func(m *machine) (int64, *lang.Error), *lang.Error) {
	span := expr.Span

	switch expr.Inner.Kind {
	case ast.IntFnCall:
		return nil, lang.Unimplemented(span)

	case ast.IntVar:
		slot, err := cc.slotOf(expr.Inner.Var)
		if err != nil {
			return nil, err
		}
		return func(m *machine) (int64, *lang.Error) {
			return m.slots[slot].AsInt()
		}, nil

	case ast.IntLiteral:
		v := expr.Inner.Literal
		return func(*machine) (int64, *lang.Error) {
			return v, nil
		}, nil

	case ast.IntNeg:
		operand, err := cc.compileIntExpr(expr.Inner.Operand)
		if err != nil {
			return nil, err
		}
		return func(m *machine) (int64, *lang.Error) {
			v, err := operand(m)
			if err != nil {
				return 0, err
			}
			res, ok := lang.CheckedNeg(v)
			if !ok {
				return 0, lang.OverflowDuringNegation(span)
			}
			return res, nil
		}, nil

	case ast.IntBinaryOp:
		return cc.compileBinaryOp(span, &expr.Inner)

	case ast.IntCmp:
		return compileCmpChain(cc, expr.Inner.Cmp, (*compilation).compileIntExpr, ast.CompareInts)

	case ast.IntCmpCellState:
		return compileCmpChain(cc, expr.Inner.CmpCell, (*compilation).compileCellExpr, ast.CompareCells)
	}
	return nil, lang.Internalf("unknown integer expression kind %d", expr.Inner.Kind)
}

// compileBinaryOp evaluates both operands left to right, then applies the
// operator with a divide-by-zero pre-check and overflow-checked arithmetic.
// Fault codes and spans match the interpreter exactly.
func (cc *compilation) compileBinaryOp(span source.Span, expr *ast.IntExpr) (func(m *machine) (int64, *lang.Error), *lang.Error) {
	lhs, err := cc.compileIntExpr(expr.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := cc.compileIntExpr(expr.Rhs)
	if err != nil {
		return nil, err
	}

	var apply func(a, b int64) (int64, *lang.Error)
	switch expr.Op {
	case ast.OpAdd:
		apply = func(a, b int64) (int64, *lang.Error) {
			res, ok := lang.CheckedAdd(a, b)
			if !ok {
				return 0, lang.OverflowDuringAddition(span)
			}
			return res, nil
		}
	case ast.OpSub:
		apply = func(a, b int64) (int64, *lang.Error) {
			res, ok := lang.CheckedSub(a, b)
			if !ok {
				return 0, lang.OverflowDuringSubtraction(span)
			}
			return res, nil
		}
	case ast.OpMul:
		apply = func(a, b int64) (int64, *lang.Error) {
			res, ok := lang.CheckedMul(a, b)
			if !ok {
				return 0, lang.OverflowDuringMultiplication(span)
			}
			return res, nil
		}
	case ast.OpDiv:
		apply = func(a, b int64) (int64, *lang.Error) {
			if b == 0 {
				return 0, lang.DivideByZero(span)
			}
			res, ok := lang.CheckedDiv(a, b)
			if !ok {
				// MinInt64 / -1 is the negation of MinInt64.
				return 0, lang.OverflowDuringNegation(span)
			}
			return res, nil
		}
	case ast.OpRem:
		apply = func(a, b int64) (int64, *lang.Error) {
			if b == 0 {
				return 0, lang.DivideByZero(span)
			}
			res, ok := lang.CheckedRem(a, b)
			if !ok {
				return 0, lang.OverflowDuringNegation(span)
			}
			return res, nil
		}
	case ast.OpExp:
		return nil, lang.Unimplemented(span)
	default:
		return nil, lang.Internalf("unknown binary operator %d", expr.Op)
	}

	return func(m *machine) (int64, *lang.Error) {
		a, err := lhs(m)
		if err != nil {
			return 0, err
		}
		b, err := rhs(m)
		if err != nil {
			return 0, err
		}
		return apply(a, b)
	}, nil
}

func (cc *compilation) compileCellExpr(expr *source.Spanned[ast.CellStateExpr]) (func(m *machine) (lang.CellState, *lang.Error), *lang.Error) {
	span := expr.Span

	switch expr.Inner.Kind {
	case ast.CellFnCall:
		return nil, lang.Unimplemented(span)

	case ast.CellVar:
		slot, err := cc.slotOf(expr.Inner.Var)
		if err != nil {
			return nil, err
		}
		return func(m *machine) (lang.CellState, *lang.Error) {
			return m.slots[slot].AsCellState()
		}, nil

	case ast.CellFromID:
		id, err := cc.compileIntExpr(expr.Inner.FromID)
		if err != nil {
			return nil, err
		}
		return func(m *machine) (lang.CellState, *lang.Error) {
			v, err := id(m)
			if err != nil {
				return 0, err
			}
			if v < 0 || v >= int64(m.stateCount) {
				return 0, lang.CellStateOutOfRange(span)
			}
			c, convErr := safecast.Conv[uint8](v)
			if convErr != nil {
				return 0, lang.WrapInternal(convErr)
			}
			return lang.CellState(c), nil
		}, nil
	}
	return nil, lang.Internalf("unknown cell state expression kind %d", expr.Inner.Kind)
}

// compileCmpChain compiles a chained comparison to a short-circuiting
// conjunction: each link compares the previous operand value with the next;
// the first false link yields 0 without evaluating the rest.
func compileCmpChain[E any, C ast.CmpOp, V any](
	cc *compilation,
	chain *ast.CmpExpr[E, C],
	compileFn func(*compilation, *source.Spanned[E]) (func(m *machine) (V, *lang.Error), *lang.Error),
	cmpFn func(C, V, V) bool,
) (func(m *machine) (int64, *lang.Error), *lang.Error) {
	initial, err := compileFn(cc, &chain.Initial)
	if err != nil {
		return nil, err
	}
	type link struct {
		op   C
		eval func(m *machine) (V, *lang.Error)
	}
	links := make([]link, 0, len(chain.Comparisons))
	for i := range chain.Comparisons {
		eval, err := compileFn(cc, &chain.Comparisons[i].Expr)
		if err != nil {
			return nil, err
		}
		links = append(links, link{op: chain.Comparisons[i].Op, eval: eval})
	}

	return func(m *machine) (int64, *lang.Error) {
		prev, err := initial(m)
		if err != nil {
			return 0, err
		}
		for _, l := range links {
			rhs, err := l.eval(m)
			if err != nil {
				return 0, err
			}
			if !cmpFn(l.op, prev, rhs) {
				return 0, nil
			}
			// The current RHS becomes the next comparison's LHS.
			prev = rhs
		}
		return 1, nil
	}, nil
}
