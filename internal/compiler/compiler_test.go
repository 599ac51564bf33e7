package compiler_test

import (
	"testing"

	"ndca/internal/ast"
	"ndca/internal/compiler"
	"ndca/internal/interp"
	"ndca/internal/lang"
	"ndca/internal/source"
	"ndca/internal/testkit"
)

func sp(start, end uint32) source.Span {
	return source.NewSpan(start, end)
}

func compile(t *testing.T, fn *ast.Function, stateCount int) *compiler.Compiled {
	t.Helper()
	ast.Flatten(fn)
	c, err := compiler.Compile(fn, stateCount)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return c
}

func TestCompile_DemoRule(t *testing.T) {
	c := compile(t, testkit.DemoTransition(), testkit.DemoStateCount)
	got, err := c.Call()
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != testkit.ExpectedDemoResult {
		t.Errorf("result = #%d, want #%d", got, testkit.ExpectedDemoResult)
	}
}

func TestCompile_CallIsRepeatable(t *testing.T) {
	c := compile(t, testkit.DemoTransition(), testkit.DemoStateCount)
	for i := 0; i < 3; i++ {
		got, err := c.Call()
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got != testkit.ExpectedDemoResult {
			t.Errorf("call %d = #%d, want #%d", i, got, testkit.ExpectedDemoResult)
		}
	}
}

func TestCompile_BranchFallthrough(t *testing.T) {
	// if 0 {} else {}  — both arms empty, falls through to become #7.
	fn := &ast.Function{
		Kind:       ast.FuncTransition,
		ReturnType: lang.TypeCellState,
		Vars:       map[string]lang.Type{},
		Statements: ast.StatementBlock{
			ast.NewIf(sp(0, 1), ast.LitInt(sp(0, 1), 0), nil, nil),
			ast.NewReturn(sp(1, 2), ast.CellExprOf(ast.FromID(sp(1, 2), ast.LitInt(sp(1, 2), 7)))),
		},
	}
	c := compile(t, fn, 10)
	got, err := c.Call()
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Errorf("result = #%d, want #7", got)
	}
}

func TestCompile_RunOffEndIsInternal(t *testing.T) {
	fn := &ast.Function{
		Kind:       ast.FuncTransition,
		ReturnType: lang.TypeCellState,
		Vars:       map[string]lang.Type{},
		Statements: ast.StatementBlock{ast.NewEnd(sp(0, 1))},
	}
	c := compile(t, fn, 10)
	_, err := c.Call()
	if err == nil || err.Code != lang.CodeInternal {
		t.Errorf("err = %v, want internal", err)
	}
}

func TestCompile_HelperIsUnimplemented(t *testing.T) {
	fn := &ast.Function{
		Kind:       ast.FuncHelper,
		ReturnType: lang.TypeInt,
		Vars:       map[string]lang.Type{},
	}
	_, err := compiler.Compile(fn, 10)
	if err == nil || err.Code != lang.CodeUnimplemented {
		t.Errorf("err = %v, want unimplemented", err)
	}
}

// faultFn builds `become #(lhs op rhs)` so a single arithmetic fault can be
// provoked in both engines.
func faultFn(lhs int64, op ast.MathOp, rhs int64) *ast.Function {
	opSpan := sp(10, 20)
	return &ast.Function{
		Kind:       ast.FuncTransition,
		ReturnType: lang.TypeCellState,
		Vars:       map[string]lang.Type{},
		Statements: ast.StatementBlock{
			ast.NewReturn(sp(0, 25), ast.CellExprOf(ast.FromID(sp(5, 25),
				ast.BinOp(opSpan, ast.LitInt(sp(10, 12), lhs), op, ast.LitInt(sp(18, 20), rhs))))),
		},
	}
}

func TestCompile_FaultParityWithInterpreter(t *testing.T) {
	const maxInt64 = 1<<63 - 1
	const minInt64 = -1 << 63

	tests := []struct {
		name string
		fn   *ast.Function
	}{
		{"divide by zero", faultFn(10, ast.OpDiv, 0)},
		{"remainder by zero", faultFn(10, ast.OpRem, 0)},
		{"addition overflow", faultFn(maxInt64, ast.OpAdd, 1)},
		{"subtraction overflow", faultFn(minInt64, ast.OpSub, 1)},
		{"multiplication overflow", faultFn(maxInt64, ast.OpMul, 2)},
		{"division overflow", faultFn(minInt64, ast.OpDiv, -1)},
		{"state out of range", faultFn(3, ast.OpAdd, 200)},
		{"negative state", faultFn(0, ast.OpSub, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast.Flatten(tt.fn)

			_, interpErr := interp.RunTransition(tt.fn, testkit.DemoStateCount)
			if interpErr == nil {
				t.Fatal("interpreter should fault")
			}

			c, err := compiler.Compile(tt.fn, testkit.DemoStateCount)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			_, callErr := c.Call()
			if callErr == nil {
				t.Fatal("compiled call should fault")
			}

			if callErr.Code != interpErr.Code {
				t.Errorf("codes differ: compiled %v, interpreted %v", callErr.Code, interpErr.Code)
			}
			if callErr.Span != interpErr.Span || callErr.HasSpan != interpErr.HasSpan {
				t.Errorf("spans differ: compiled %v, interpreted %v", callErr.Span, interpErr.Span)
			}
		})
	}
}

func TestCompile_ResultParityWithInterpreter(t *testing.T) {
	fn := testkit.DemoTransition()
	ast.Flatten(fn)

	want, err := interp.RunTransition(fn, testkit.DemoStateCount)
	if err != nil {
		t.Fatalf("interpreter: %v", err)
	}

	c, cerr := compiler.Compile(fn, testkit.DemoStateCount)
	if cerr != nil {
		t.Fatalf("Compile: %v", cerr)
	}
	got, callErr := c.Call()
	if callErr != nil {
		t.Fatalf("Call: %v", callErr)
	}
	if got != want {
		t.Errorf("compiled = #%d, interpreted = #%d", got, want)
	}
}
