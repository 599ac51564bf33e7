package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit

	// KwSet represents the 'set' keyword.
	KwSet // set
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwBecome represents the 'become' keyword.
	KwBecome // become
	// KwEnd represents the 'end' keyword.
	KwEnd // end

	// At represents '@', introducing a directive.
	At
	// Hash represents '#', introducing a cell state literal.
	Hash
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace

	// Assign represents '='.
	Assign
	// PlusAssign represents '+='.
	PlusAssign
	// MinusAssign represents '-='.
	MinusAssign
	// StarAssign represents '*='.
	StarAssign
	// SlashAssign represents '/='.
	SlashAssign
	// PercentAssign represents '%='.
	PercentAssign

	// Plus represents '+'.
	Plus
	// Minus represents '-'.
	Minus
	// Star represents '*'.
	Star
	// StarStar represents '**'.
	StarStar
	// Slash represents '/'.
	Slash
	// Percent represents '%'.
	Percent

	// EqEq represents '=='.
	EqEq
	// BangEq represents '!='.
	BangEq
	// Lt represents '<'.
	Lt
	// Gt represents '>'.
	Gt
	// LtEq represents '<='.
	LtEq
	// GtEq represents '>='.
	GtEq
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case KwSet:
		return "'set'"
	case KwIf:
		return "'if'"
	case KwElse:
		return "'else'"
	case KwBecome:
		return "'become'"
	case KwEnd:
		return "'end'"
	case At:
		return "'@'"
	case Hash:
		return "'#'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case Assign:
		return "'='"
	case PlusAssign:
		return "'+='"
	case MinusAssign:
		return "'-='"
	case StarAssign:
		return "'*='"
	case SlashAssign:
		return "'/='"
	case PercentAssign:
		return "'%='"
	case Plus:
		return "'+'"
	case Minus:
		return "'-'"
	case Star:
		return "'*'"
	case StarStar:
		return "'**'"
	case Slash:
		return "'/'"
	case Percent:
		return "'%'"
	case EqEq:
		return "'=='"
	case BangEq:
		return "'!='"
	case Lt:
		return "'<'"
	case Gt:
		return "'>'"
	case LtEq:
		return "'<='"
	case GtEq:
		return "'>='"
	}
	return "unknown"
}

// Lookup maps an identifier's text to its keyword kind, or Ident.
func Lookup(text string) Kind {
	switch text {
	case "set":
		return KwSet
	case "if":
		return KwIf
	case "else":
		return KwElse
	case "become":
		return KwBecome
	case "end":
		return KwEnd
	}
	return Ident
}
