package ast

import (
	"ndca/internal/source"
)

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	// StmtSetVar assigns the value of an expression to a variable.
	StmtSetVar StmtKind = iota
	// StmtIf branches on an integer condition.
	StmtIf
	// StmtReturn ends execution with a value (`become` in source).
	StmtReturn
	// StmtEnd ends execution with no value.
	StmtEnd
	// StmtGoto transfers control to an absolute instruction index. It is
	// produced only by Flatten, never by the parser.
	StmtGoto
)

func (k StmtKind) String() string {
	switch k {
	case StmtSetVar:
		return "set"
	case StmtIf:
		return "if"
	case StmtReturn:
		return "become"
	case StmtEnd:
		return "end"
	case StmtGoto:
		return "goto"
	}
	return "unknown"
}

// Stmt is one statement, tagged by Kind with the matching variant field set.
type Stmt struct {
	Kind StmtKind

	SetVar SetVarStmt
	If     IfStmt
	Return ReturnStmt
	Goto   GotoStmt
}

// StatementBlock is an ordered statement sequence. After flattening exactly
// one top-level block exists; every formerly nested block is either empty
// (fallthrough) or a single Goto.
type StatementBlock []source.Spanned[Stmt]

// SetVarStmt assigns Value to the variable Name.
type SetVarStmt struct {
	Name  source.Spanned[string]
	Value Expr
}

// IfStmt evaluates Cond as an integer; nonzero selects IfTrue.
type IfStmt struct {
	Cond    source.Spanned[IntExpr]
	IfTrue  StatementBlock
	IfFalse StatementBlock
}

// ReturnStmt ends execution, producing Value.
type ReturnStmt struct {
	Value Expr
}

// GotoStmt holds a pre-decremented jump target: the interpreter advances
// its program counter by one after every instruction, including Goto, so
// Target is always the intended destination index minus one.
type GotoStmt struct {
	Target int
}
