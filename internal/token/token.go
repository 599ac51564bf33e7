package token

import (
	"ndca/internal/source"
)

// Token is a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsAssignOp reports whether the token is '=' or a compound assignment.
func (t Token) IsAssignOp() bool {
	switch t.Kind {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign:
		return true
	default:
		return false
	}
}

// IsCmpOp reports whether the token is a comparison operator.
func (t Token) IsCmpOp() bool {
	switch t.Kind {
	case EqEq, BangEq, Lt, Gt, LtEq, GtEq:
		return true
	default:
		return false
	}
}
