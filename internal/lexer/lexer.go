// Package lexer tokenizes NDCA rule source.
package lexer

import (
	"strconv"

	"ndca/internal/lang"
	"ndca/internal/source"
	"ndca/internal/token"
)

// Lexer produces tokens from a rule's normalized source text.
type Lexer struct {
	src *source.Source
	pos uint32
}

// New builds a lexer over a loaded source.
func New(src *source.Source) *Lexer {
	return &Lexer{src: src}
}

// Tokenize scans the whole source, stopping at the first error.
// The returned slice always ends with an EOF token on success.
func Tokenize(src *source.Source) ([]token.Token, *lang.Error) {
	lx := New(src)
	var out []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out, nil
		}
	}
}

// Next returns the next significant token, skipping whitespace and
// comments. After EOF it keeps returning EOF.
func (lx *Lexer) Next() (token.Token, *lang.Error) {
	if err := lx.skipTrivia(); err != nil {
		return token.Token{}, err
	}
	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: source.NewSpan(lx.pos, lx.pos)}, nil
	}

	ch := lx.peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdent(), nil
	case isDigit(ch):
		return lx.scanNumber()
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) scanIdent() token.Token {
	start := lx.pos
	for !lx.eof() && isIdentContinue(lx.peek()) {
		lx.pos++
	}
	span := source.NewSpan(start, lx.pos)
	text := string(lx.src.Content[start:lx.pos])
	return token.Token{Kind: token.Lookup(text), Span: span, Text: text}
}

func (lx *Lexer) scanNumber() (token.Token, *lang.Error) {
	start := lx.pos
	for !lx.eof() && isDigit(lx.peek()) {
		lx.pos++
	}
	span := source.NewSpan(start, lx.pos)
	text := string(lx.src.Content[start:lx.pos])
	if _, err := strconv.ParseInt(text, 10, 64); err != nil {
		return token.Token{}, lang.Expected(span, "an integer that fits in 64 bits")
	}
	return token.Token{Kind: token.IntLit, Span: span, Text: text}, nil
}

func (lx *Lexer) scanOperator() (token.Token, *lang.Error) {
	start := lx.pos
	one := func(kind token.Kind) (token.Token, *lang.Error) {
		lx.pos++
		return lx.emit(kind, start), nil
	}
	two := func(kind token.Kind) (token.Token, *lang.Error) {
		lx.pos += 2
		return lx.emit(kind, start), nil
	}

	ch := lx.peek()
	next := lx.peekAt(1)
	switch ch {
	case '@':
		return one(token.At)
	case '#':
		return one(token.Hash)
	case '(':
		return one(token.LParen)
	case ')':
		return one(token.RParen)
	case '{':
		return one(token.LBrace)
	case '}':
		return one(token.RBrace)
	case '=':
		if next == '=' {
			return two(token.EqEq)
		}
		return one(token.Assign)
	case '!':
		if next == '=' {
			return two(token.BangEq)
		}
	case '<':
		if next == '=' {
			return two(token.LtEq)
		}
		return one(token.Lt)
	case '>':
		if next == '=' {
			return two(token.GtEq)
		}
		return one(token.Gt)
	case '+':
		if next == '=' {
			return two(token.PlusAssign)
		}
		return one(token.Plus)
	case '-':
		if next == '=' {
			return two(token.MinusAssign)
		}
		return one(token.Minus)
	case '*':
		if next == '=' {
			return two(token.StarAssign)
		}
		if next == '*' {
			return two(token.StarStar)
		}
		return one(token.Star)
	case '/':
		if next == '=' {
			return two(token.SlashAssign)
		}
		return one(token.Slash)
	case '%':
		if next == '=' {
			return two(token.PercentAssign)
		}
		return one(token.Percent)
	}
	return token.Token{}, lang.UnknownSymbol(source.NewSpan(start, start+1))
}

func (lx *Lexer) emit(kind token.Kind, start uint32) token.Token {
	span := source.NewSpan(start, lx.pos)
	return token.Token{Kind: kind, Span: span, Text: string(lx.src.Content[start:lx.pos])}
}

// skipTrivia consumes whitespace, line comments, and block comments. An
// unterminated block comment is an error attributed to its opener.
func (lx *Lexer) skipTrivia() *lang.Error {
	for !lx.eof() {
		ch := lx.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.pos++
		case ch == '/' && lx.peekAt(1) == '/':
			for !lx.eof() && lx.peek() != '\n' {
				lx.pos++
			}
		case ch == '/' && lx.peekAt(1) == '*':
			start := lx.pos
			lx.pos += 2
			for {
				if lx.eof() {
					return lang.Unterminated(source.NewSpan(start, start+2), "comment")
				}
				if lx.peek() == '*' && lx.peekAt(1) == '/' {
					lx.pos += 2
					break
				}
				lx.pos++
			}
		default:
			return nil
		}
	}
	return nil
}

func (lx *Lexer) eof() bool {
	return lx.pos >= lx.src.Len()
}

func (lx *Lexer) peek() byte {
	return lx.src.Content[lx.pos]
}

// peekAt returns the byte at the given lookahead offset, or 0 past EOF.
func (lx *Lexer) peekAt(offset uint32) byte {
	if lx.pos+offset >= lx.src.Len() {
		return 0
	}
	return lx.src.Content[lx.pos+offset]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
