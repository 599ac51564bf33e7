// Package sema lowers the untyped surface tree produced by the parser into
// the typed statement tree. It resolves every variable's type from its first
// assignment, rejects reads of variables that have no assignment yet, and
// checks that assignments, branch conditions, comparisons and `become` values
// are well typed. Code that passes the checker satisfies the "well-typed"
// precondition the execution engines rely on.
package sema

import (
	"ndca/internal/ast"
	"ndca/internal/lang"
	"ndca/internal/parser"
	"ndca/internal/source"
	"ndca/internal/token"
)

// TransitionDirective is the only directive name with executable semantics.
const TransitionDirective = "transition"

// Check type-checks a parsed file and builds the typed rule. Exactly one
// @transition directive must be present.
func Check(src *source.Source, file *parser.File) (*ast.Rule, *lang.Error) {
	rule := &ast.Rule{Source: src}
	for _, dir := range file.Directives {
		if dir.Name.Inner != TransitionDirective {
			return nil, lang.InvalidDirectiveName(dir.Name.Span)
		}
		if rule.Transition != nil {
			return nil, lang.MultipleTransitionFunctions(dir.Name.Span)
		}
		fn, err := checkFunction(ast.FuncTransition, lang.TypeCellState, dir.Body)
		if err != nil {
			return nil, err
		}
		rule.Transition = fn
	}
	if rule.Transition == nil {
		return nil, lang.MissingTransitionFunction()
	}
	return rule, nil
}

func checkFunction(kind ast.FunctionKind, ret lang.Type, body []parser.Stmt) (*ast.Function, *lang.Error) {
	c := &checker{
		fn: &ast.Function{
			Kind:       kind,
			ReturnType: ret,
			Vars:       make(map[string]lang.Type),
		},
	}
	block, err := c.checkBlock(body)
	if err != nil {
		return nil, err
	}
	c.fn.Statements = block
	return c.fn, nil
}

type checker struct {
	fn *ast.Function
}

func (c *checker) checkBlock(stmts []parser.Stmt) (ast.StatementBlock, *lang.Error) {
	block := make(ast.StatementBlock, 0, len(stmts))
	for i := range stmts {
		s, err := c.checkStmt(&stmts[i])
		if err != nil {
			return nil, err
		}
		block = append(block, s)
	}
	return block, nil
}

func (c *checker) checkStmt(stmt *parser.Stmt) (source.Spanned[ast.Stmt], *lang.Error) {
	var zero source.Spanned[ast.Stmt]
	switch stmt.Kind {
	case parser.StmtSet:
		return c.checkSet(stmt)
	case parser.StmtIf:
		cond, err := c.checkIntExpr(stmt.Cond)
		if err != nil {
			return zero, err
		}
		ifTrue, err := c.checkBlock(stmt.IfTrue)
		if err != nil {
			return zero, err
		}
		ifFalse, err := c.checkBlock(stmt.IfFalse)
		if err != nil {
			return zero, err
		}
		return ast.NewIf(stmt.Span, cond, ifTrue, ifFalse), nil
	case parser.StmtBecome:
		value, err := c.checkExpr(stmt.Value)
		if err != nil {
			return zero, err
		}
		if got := value.Type(); got != c.fn.ReturnType {
			return zero, lang.TypeMismatch(value.Span(), c.fn.ReturnType, got)
		}
		return ast.NewReturn(stmt.Span, value), nil
	case parser.StmtEnd:
		return ast.NewEnd(stmt.Span), nil
	}
	return zero, lang.Internalf("unknown surface statement kind %d", stmt.Kind)
}

// checkSet handles plain and compound assignments. A compound assignment
// `set x op= e` desugars to `set x = x op e`, so it reads x and therefore
// requires x to be assigned already.
func (c *checker) checkSet(stmt *parser.Stmt) (source.Spanned[ast.Stmt], *lang.Error) {
	var zero source.Spanned[ast.Stmt]
	var value ast.Expr
	if op, compound := compoundOp(stmt.AssignOp); compound {
		cur, ok := c.fn.Vars[stmt.Name.Inner]
		if !ok {
			return zero, lang.UninitializedVariable(stmt.Name.Span)
		}
		if cur != lang.TypeInt {
			return zero, lang.TypeMismatch(stmt.Name.Span, lang.TypeInt, cur)
		}
		rhs, err := c.checkIntExpr(stmt.Value)
		if err != nil {
			return zero, err
		}
		span := stmt.Name.Span.Cover(rhs.Span)
		value = ast.IntExprOf(ast.BinOp(span, ast.VarInt(stmt.Name.Span, stmt.Name.Inner), op, rhs))
	} else {
		v, err := c.checkExpr(stmt.Value)
		if err != nil {
			return zero, err
		}
		value = v
	}

	got := value.Type()
	if cur, ok := c.fn.Vars[stmt.Name.Inner]; ok {
		// The first assignment fixes the variable's type for good.
		if cur != got {
			return zero, lang.TypeMismatch(value.Span(), cur, got)
		}
	} else {
		c.fn.Vars[stmt.Name.Inner] = got
	}
	return ast.NewSetVar(stmt.Span, stmt.Name, value), nil
}

func compoundOp(kind token.Kind) (ast.MathOp, bool) {
	switch kind {
	case token.PlusAssign:
		return ast.OpAdd, true
	case token.MinusAssign:
		return ast.OpSub, true
	case token.StarAssign:
		return ast.OpMul, true
	case token.SlashAssign:
		return ast.OpDiv, true
	case token.PercentAssign:
		return ast.OpRem, true
	}
	return 0, false
}
