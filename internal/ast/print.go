package ast

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// DumpFunction writes a human-readable instruction listing. For a
// flattened function every line is one addressable instruction; jump
// targets are printed as the real destination index (encoded target + 1).
func DumpFunction(w io.Writer, fn *Function) {
	if w == nil || fn == nil {
		return
	}
	fmt.Fprintf(w, "%s fn, vars=%d\n", fn.Kind, len(fn.Vars))

	names := make([]string, 0, len(fn.Vars))
	for name := range fn.Vars {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  var %s: %s\n", name, fn.Vars[name])
	}

	for i := range fn.Statements {
		fmt.Fprintf(w, "  %3d: %s\n", i, StmtString(&fn.Statements[i].Inner))
	}
}

// StmtString renders one statement on a single line.
func StmtString(s *Stmt) string {
	switch s.Kind {
	case StmtSetVar:
		return fmt.Sprintf("set %s = %s", s.SetVar.Name.Inner, ExprString(s.SetVar.Value))
	case StmtIf:
		return fmt.Sprintf("if %s then %s else %s",
			IntExprString(&s.If.Cond.Inner), blockString(s.If.IfTrue), blockString(s.If.IfFalse))
	case StmtReturn:
		return fmt.Sprintf("become %s", ExprString(s.Return.Value))
	case StmtEnd:
		return "end"
	case StmtGoto:
		return fmt.Sprintf("goto %d", s.Goto.Target+1)
	}
	return "<unknown>"
}

func blockString(block StatementBlock) string {
	switch len(block) {
	case 0:
		return "fall"
	case 1:
		return StmtString(&block[0].Inner)
	default:
		parts := make([]string, len(block))
		for i := range block {
			parts[i] = StmtString(&block[i].Inner)
		}
		return "{ " + strings.Join(parts, "; ") + " }"
	}
}

// ExprString renders a typed expression.
func ExprString(e Expr) string {
	switch e.Kind {
	case ExprInt:
		return IntExprString(&e.Int.Inner)
	case ExprCellState:
		return CellExprString(&e.Cell.Inner)
	}
	return "<invalid>"
}

// IntExprString renders an integer expression in source-like form.
func IntExprString(e *IntExpr) string {
	switch e.Kind {
	case IntLiteral:
		return fmt.Sprintf("%d", e.Literal)
	case IntVar:
		return e.Var
	case IntNeg:
		return "-" + IntExprString(&e.Operand.Inner)
	case IntBinaryOp:
		return fmt.Sprintf("(%s %s %s)",
			IntExprString(&e.Lhs.Inner), e.Op, IntExprString(&e.Rhs.Inner))
	case IntCmp:
		return cmpString(e.Cmp, IntExprString)
	case IntCmpCellState:
		return cmpString(e.CmpCell, CellExprString)
	case IntFnCall:
		return "<fn call>"
	}
	return "<invalid>"
}

// CellExprString renders a cell state expression in source-like form.
func CellExprString(e *CellStateExpr) string {
	switch e.Kind {
	case CellVar:
		return e.Var
	case CellFromID:
		return "#(" + IntExprString(&e.FromID.Inner) + ")"
	case CellFnCall:
		return "<fn call>"
	}
	return "<invalid>"
}

func cmpString[E any, C CmpOp](c *CmpExpr[E, C], render func(*E) string) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(render(&c.Initial.Inner))
	for i := range c.Comparisons {
		sb.WriteString(" ")
		sb.WriteString(c.Comparisons[i].Op.String())
		sb.WriteString(" ")
		sb.WriteString(render(&c.Comparisons[i].Expr.Inner))
	}
	sb.WriteString(")")
	return sb.String()
}
