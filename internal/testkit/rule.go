// Package testkit builds reference rule fixtures shared by the engine
// test suites, so the interpreter and the compiled backend are exercised
// on identical inputs.
package testkit

import (
	"ndca/internal/ast"
	"ndca/internal/lang"
	"ndca/internal/source"
)

// DemoRuleSource is the canonical demo transition function. Both engines
// must return cell state #9 for it.
const DemoRuleSource = `@transition {
    set x = 3
    set y = 2 - 10
    set y -= 3
    set z = -y / x
    if 3 * 99 % 2 == 1 {
        become #(10 / 3 * 3)
    } else {
        become #12
    }
    become #2
}
`

// ExpectedDemoResult is the cell state DemoRuleSource must produce.
const ExpectedDemoResult = lang.CellState(9)

// DemoStateCount is the cell state count the demo rule is checked against.
const DemoStateCount = 100

func sp(n uint32) source.Span {
	return source.NewSpan(n, n+1)
}

// DemoTransition builds the demo transition function directly as a typed
// tree, bypassing the parser and checker. The body is unflattened.
//
//	set x = 3
//	set y = 2 - 10
//	set y = y - 3            (y = -11)
//	set z = -y / x           (z = 3)
//	if 3 * 99 % 2 == 1 { become #(10 / 3 * 3) } else { become #12 }
//	become #2                (unreachable)
func DemoTransition() *ast.Function {
	name := func(n string) source.Spanned[string] { return source.At(sp(0), n) }

	cond := ast.CmpInts(sp(5),
		ast.BinOp(sp(5),
			ast.BinOp(sp(5), ast.LitInt(sp(5), 3), ast.OpMul, ast.LitInt(sp(5), 99)),
			ast.OpRem, ast.LitInt(sp(5), 2)),
		ast.Comparison[ast.IntExpr, ast.Cmp]{Op: ast.CmpEql, Expr: ast.LitInt(sp(5), 1)},
	)

	become9 := ast.NewReturn(sp(6), ast.CellExprOf(ast.FromID(sp(6),
		ast.BinOp(sp(6),
			ast.BinOp(sp(6), ast.LitInt(sp(6), 10), ast.OpDiv, ast.LitInt(sp(6), 3)),
			ast.OpMul, ast.LitInt(sp(6), 3)))))

	become12 := ast.NewReturn(sp(7), ast.CellExprOf(ast.FromID(sp(7), ast.LitInt(sp(7), 12))))

	return &ast.Function{
		Kind:       ast.FuncTransition,
		ReturnType: lang.TypeCellState,
		Vars: map[string]lang.Type{
			"x": lang.TypeInt,
			"y": lang.TypeInt,
			"z": lang.TypeInt,
		},
		Statements: ast.StatementBlock{
			ast.NewSetVar(sp(1), name("x"), ast.IntExprOf(ast.LitInt(sp(1), 3))),
			ast.NewSetVar(sp(2), name("y"), ast.IntExprOf(
				ast.BinOp(sp(2), ast.LitInt(sp(2), 2), ast.OpSub, ast.LitInt(sp(2), 10)))),
			ast.NewSetVar(sp(3), name("y"), ast.IntExprOf(
				ast.BinOp(sp(3), ast.VarInt(sp(3), "y"), ast.OpSub, ast.LitInt(sp(3), 3)))),
			ast.NewSetVar(sp(4), name("z"), ast.IntExprOf(
				ast.BinOp(sp(4), ast.Neg(sp(4), ast.VarInt(sp(4), "y")), ast.OpDiv, ast.VarInt(sp(4), "x")))),
			ast.NewIf(sp(5), cond,
				ast.StatementBlock{become9},
				ast.StatementBlock{become12},
			),
			ast.NewReturn(sp(8), ast.CellExprOf(ast.FromID(sp(8), ast.LitInt(sp(8), 2)))),
		},
	}
}
