package interp

import (
	"math"
	"testing"

	"ndca/internal/ast"
	"ndca/internal/lang"
	"ndca/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.NewSpan(start, end)
}

// evalState returns a State with no instructions, for expression tests.
func evalState(t *testing.T, stateCount int, vars map[string]lang.Value) *State {
	t.Helper()
	if vars == nil {
		vars = map[string]lang.Value{}
	}
	return &State{
		Vars:       vars,
		FuncKind:   ast.FuncTransition,
		StateCount: stateCount,
	}
}

func evalInt(t *testing.T, s *State, e source.Spanned[ast.IntExpr]) (int64, *lang.Error) {
	t.Helper()
	v, err := s.EvalIntExpr(&e)
	return v.Inner, err
}

func TestEvalIntExpr_Basics(t *testing.T) {
	s := evalState(t, 100, map[string]lang.Value{"x": lang.MakeInt(7)})

	tests := []struct {
		name     string
		expr     source.Spanned[ast.IntExpr]
		expected int64
	}{
		{"literal", ast.LitInt(sp(0, 1), 42), 42},
		{"variable", ast.VarInt(sp(0, 1), "x"), 7},
		{"negation", ast.Neg(sp(0, 2), ast.LitInt(sp(1, 2), 5)), -5},
		{"addition", ast.BinOp(sp(0, 5), ast.LitInt(sp(0, 1), 2), ast.OpAdd, ast.LitInt(sp(4, 5), 3)), 5},
		{"subtraction", ast.BinOp(sp(0, 5), ast.LitInt(sp(0, 1), 2), ast.OpSub, ast.LitInt(sp(4, 5), 10)), -8},
		{"multiplication", ast.BinOp(sp(0, 5), ast.LitInt(sp(0, 1), 6), ast.OpMul, ast.LitInt(sp(4, 5), 7)), 42},
		{"division truncates", ast.BinOp(sp(0, 5), ast.LitInt(sp(0, 1), 10), ast.OpDiv, ast.LitInt(sp(4, 5), 3)), 3},
		{"remainder", ast.BinOp(sp(0, 5), ast.LitInt(sp(0, 1), 297), ast.OpRem, ast.LitInt(sp(4, 5), 2)), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evalInt(t, s, tt.expr)
			if err != nil {
				t.Fatalf("unexpected fault: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestEvalIntExpr_OverflowBoundaries(t *testing.T) {
	s := evalState(t, 100, nil)

	tests := []struct {
		name     string
		expr     source.Spanned[ast.IntExpr]
		expected lang.Code
	}{
		{
			"negating MinInt64",
			ast.Neg(sp(0, 1), ast.LitInt(sp(0, 1), math.MinInt64)),
			lang.CodeIntegerOverflowDuringNegation,
		},
		{
			"MaxInt64 + 1",
			ast.BinOp(sp(0, 1), ast.LitInt(sp(0, 1), math.MaxInt64), ast.OpAdd, ast.LitInt(sp(0, 1), 1)),
			lang.CodeIntegerOverflowDuringAddition,
		},
		{
			"MinInt64 - 1",
			ast.BinOp(sp(0, 1), ast.LitInt(sp(0, 1), math.MinInt64), ast.OpSub, ast.LitInt(sp(0, 1), 1)),
			lang.CodeIntegerOverflowDuringSubtraction,
		},
		{
			"MaxInt64 * 2",
			ast.BinOp(sp(0, 1), ast.LitInt(sp(0, 1), math.MaxInt64), ast.OpMul, ast.LitInt(sp(0, 1), 2)),
			lang.CodeIntegerOverflowDuringMultiplication,
		},
		{
			"MinInt64 / -1",
			ast.BinOp(sp(0, 1), ast.LitInt(sp(0, 1), math.MinInt64), ast.OpDiv, ast.LitInt(sp(0, 1), -1)),
			lang.CodeIntegerOverflowDuringNegation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalInt(t, s, tt.expr)
			if err == nil {
				t.Fatal("expected a fault")
			}
			if err.Code != tt.expected {
				t.Errorf("fault code = %v, want %v", err.Code, tt.expected)
			}
		})
	}
}

func TestEvalIntExpr_DivideByZero(t *testing.T) {
	s := evalState(t, 100, nil)

	for _, op := range []ast.MathOp{ast.OpDiv, ast.OpRem} {
		expr := ast.BinOp(sp(10, 16), ast.LitInt(sp(10, 12), 10), op, ast.LitInt(sp(15, 16), 0))
		_, err := evalInt(t, s, expr)
		if err == nil {
			t.Fatalf("%s: expected a fault", op)
		}
		if err.Code != lang.CodeDivideByZero {
			t.Errorf("%s: fault code = %v, want CodeDivideByZero", op, err.Code)
		}
		if !err.HasSpan || err.Span != sp(10, 16) {
			t.Errorf("%s: fault span = %v, want %v", op, err.Span, sp(10, 16))
		}
	}
}

func TestEvalIntExpr_ChainedComparison(t *testing.T) {
	s := evalState(t, 100, nil)

	tests := []struct {
		name     string
		expr     source.Spanned[ast.IntExpr]
		expected int64
	}{
		{
			// 3 < 5 > 10: first link true, second false.
			"short-circuits to 0",
			ast.CmpInts(sp(0, 1), ast.LitInt(sp(0, 1), 3),
				ast.Comparison[ast.IntExpr, ast.Cmp]{Op: ast.CmpLt, Expr: ast.LitInt(sp(0, 1), 5)},
				ast.Comparison[ast.IntExpr, ast.Cmp]{Op: ast.CmpGt, Expr: ast.LitInt(sp(0, 1), 10)},
			),
			0,
		},
		{
			// 1 < 2 < 3: every link true.
			"full chain yields 1",
			ast.CmpInts(sp(0, 1), ast.LitInt(sp(0, 1), 1),
				ast.Comparison[ast.IntExpr, ast.Cmp]{Op: ast.CmpLt, Expr: ast.LitInt(sp(0, 1), 2)},
				ast.Comparison[ast.IntExpr, ast.Cmp]{Op: ast.CmpLt, Expr: ast.LitInt(sp(0, 1), 3)},
			),
			1,
		},
		{
			"single comparison",
			ast.CmpInts(sp(0, 1), ast.LitInt(sp(0, 1), 1),
				ast.Comparison[ast.IntExpr, ast.Cmp]{Op: ast.CmpEql, Expr: ast.LitInt(sp(0, 1), 1)},
			),
			1,
		},
		{
			"empty chain is vacuously true",
			ast.CmpInts(sp(0, 1), ast.LitInt(sp(0, 1), 1)),
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evalInt(t, s, tt.expr)
			if err != nil {
				t.Fatalf("unexpected fault: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestEvalIntExpr_ChainShortCircuitSkipsRemainingOperands(t *testing.T) {
	// 5 < 3 == (1/0): the failing first link must prevent the
	// divide-by-zero operand from ever being evaluated.
	s := evalState(t, 100, nil)
	expr := ast.CmpInts(sp(0, 1), ast.LitInt(sp(0, 1), 5),
		ast.Comparison[ast.IntExpr, ast.Cmp]{Op: ast.CmpLt, Expr: ast.LitInt(sp(0, 1), 3)},
		ast.Comparison[ast.IntExpr, ast.Cmp]{
			Op:   ast.CmpEql,
			Expr: ast.BinOp(sp(0, 1), ast.LitInt(sp(0, 1), 1), ast.OpDiv, ast.LitInt(sp(0, 1), 0)),
		},
	)
	got, err := evalInt(t, s, expr)
	if err != nil {
		t.Fatalf("short-circuit should skip the faulting operand, got %v", err)
	}
	if got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestEvalIntExpr_CellStateChain(t *testing.T) {
	s := evalState(t, 100, map[string]lang.Value{
		"a": lang.MakeCellState(4),
		"b": lang.MakeCellState(4),
		"c": lang.MakeCellState(9),
	})

	eq := ast.CmpCells(sp(0, 1), ast.VarCell(sp(0, 1), "a"),
		ast.Comparison[ast.CellStateExpr, ast.EqCmp]{Op: ast.EqEql, Expr: ast.VarCell(sp(0, 1), "b")},
	)
	if got, err := evalInt(t, s, eq); err != nil || got != 1 {
		t.Errorf("a == b: got %d, %v; want 1", got, err)
	}

	ne := ast.CmpCells(sp(0, 1), ast.VarCell(sp(0, 1), "a"),
		ast.Comparison[ast.CellStateExpr, ast.EqCmp]{Op: ast.EqNeq, Expr: ast.VarCell(sp(0, 1), "c")},
	)
	if got, err := evalInt(t, s, ne); err != nil || got != 1 {
		t.Errorf("a != c: got %d, %v; want 1", got, err)
	}
}

func TestEvalCellStateExpr_FromIDRangeCheck(t *testing.T) {
	s := evalState(t, 100, nil)

	tests := []struct {
		name     string
		id       int64
		expected lang.Code // CodeUnknown means success expected
		value    lang.CellState
	}{
		{"zero", 0, lang.CodeUnknown, 0},
		{"last valid", 99, lang.CodeUnknown, 99},
		{"negative", -1, lang.CodeCellStateOutOfRange, 0},
		{"equal to count", 100, lang.CodeCellStateOutOfRange, 0},
		{"far out", 1 << 40, lang.CodeCellStateOutOfRange, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := ast.FromID(sp(0, 4), ast.LitInt(sp(1, 3), tt.id))
			got, err := s.EvalCellStateExpr(&expr)
			if tt.expected == lang.CodeUnknown {
				if err != nil {
					t.Fatalf("unexpected fault: %v", err)
				}
				if got.Inner != tt.value {
					t.Errorf("got #%d, want #%d", got.Inner, tt.value)
				}
				return
			}
			if err == nil {
				t.Fatal("expected a fault")
			}
			if err.Code != tt.expected {
				t.Errorf("fault code = %v, want %v", err.Code, tt.expected)
			}
			if !err.HasSpan || err.Span != sp(0, 4) {
				t.Errorf("fault span = %v, want %v", err.Span, sp(0, 4))
			}
		})
	}
}

func TestEvalExpr_TypeMismatchIsInternal(t *testing.T) {
	s := evalState(t, 100, map[string]lang.Value{"c": lang.MakeCellState(1)})

	intRead := ast.VarInt(sp(0, 1), "c")
	if _, err := evalInt(t, s, intRead); err == nil || err.Code != lang.CodeInternal {
		t.Errorf("integer read of cell state variable should be internal, got %v", err)
	}

	s2 := evalState(t, 100, map[string]lang.Value{"i": lang.MakeInt(1)})
	cellRead := ast.VarCell(sp(0, 1), "i")
	if _, err := s2.EvalCellStateExpr(&cellRead); err == nil || err.Code != lang.CodeInternal {
		t.Errorf("cell state read of integer variable should be internal, got %v", err)
	}
}

func TestEvalIntExpr_ExpUnimplemented(t *testing.T) {
	s := evalState(t, 100, nil)
	expr := ast.BinOp(sp(2, 9), ast.LitInt(sp(2, 3), 2), ast.OpExp, ast.LitInt(sp(8, 9), 10))
	_, err := evalInt(t, s, expr)
	if err == nil || err.Code != lang.CodeUnimplemented {
		t.Errorf("exponentiation should be unimplemented, got %v", err)
	}
}
