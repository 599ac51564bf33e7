package parser

import (
	"strconv"

	"ndca/internal/ast"
	"ndca/internal/lang"
	"ndca/internal/lexer"
	"ndca/internal/source"
	"ndca/internal/token"
)

// Parse tokenizes and parses a rule source into its surface tree.
func Parse(src *source.Source) (*File, *lang.Error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseFile()
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *parser) next() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind token.Kind, what string) (token.Token, *lang.Error) {
	tok := p.peek()
	if tok.Kind != kind {
		return token.Token{}, lang.Expected(tok.Span, what)
	}
	return p.next(), nil
}

func (p *parser) parseFile() (*File, *lang.Error) {
	file := &File{}
	for p.peek().Kind != token.EOF {
		if p.peek().Kind != token.At {
			return nil, lang.TopLevelNonDirective(p.peek().Span)
		}
		dir, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		file.Directives = append(file.Directives, dir)
	}
	return file, nil
}

func (p *parser) parseDirective() (Directive, *lang.Error) {
	at := p.next() // '@'
	nameTok, err := p.expect(token.Ident, "a directive name")
	if err != nil {
		return Directive{}, lang.InvalidDirectiveName(at.Span.Cover(p.peek().Span))
	}

	open, err := p.expect(token.LBrace, "'{'")
	if err != nil {
		return Directive{}, err
	}
	body, err := p.parseBlockBody(open)
	if err != nil {
		return Directive{}, err
	}

	span := at.Span.Cover(p.toks[p.pos-1].Span)
	return Directive{
		Span: span,
		Name: source.At(at.Span.Cover(nameTok.Span), nameTok.Text),
		Body: body,
	}, nil
}

// parseBlockBody parses statements up to the matching '}'. The opening
// brace is reported as unmatched if the input ends first.
func (p *parser) parseBlockBody(open token.Token) ([]Stmt, *lang.Error) {
	var body []Stmt
	for {
		switch p.peek().Kind {
		case token.RBrace:
			p.next()
			return body, nil
		case token.EOF:
			return nil, lang.Unmatched(open.Span, '{', '}')
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
}

func (p *parser) parseStmt() (Stmt, *lang.Error) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwSet:
		return p.parseSet()
	case token.KwIf:
		return p.parseIf()
	case token.KwBecome:
		return p.parseBecome()
	case token.KwEnd:
		p.next()
		return Stmt{Kind: StmtEnd, Span: tok.Span}, nil
	default:
		return Stmt{}, lang.Expected(tok.Span, "a statement")
	}
}

func (p *parser) parseSet() (Stmt, *lang.Error) {
	kw := p.next() // 'set'
	nameTok, err := p.expect(token.Ident, "a variable name")
	if err != nil {
		return Stmt{}, err
	}
	opTok := p.peek()
	if !opTok.IsAssignOp() {
		return Stmt{}, lang.Expected(opTok.Span, "an assignment operator")
	}
	p.next()
	value, err := p.parseExpr()
	if err != nil {
		return Stmt{}, err
	}
	return Stmt{
		Kind:     StmtSet,
		Span:     kw.Span.Cover(value.Span),
		Name:     source.At(nameTok.Span, nameTok.Text),
		AssignOp: opTok.Kind,
		Value:    value,
	}, nil
}

func (p *parser) parseIf() (Stmt, *lang.Error) {
	kw := p.next() // 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return Stmt{}, err
	}
	open, err := p.expect(token.LBrace, "'{'")
	if err != nil {
		return Stmt{}, err
	}
	ifTrue, err := p.parseBlockBody(open)
	if err != nil {
		return Stmt{}, err
	}

	stmt := Stmt{
		Kind:   StmtIf,
		Span:   kw.Span.Cover(p.toks[p.pos-1].Span),
		Cond:   cond,
		IfTrue: ifTrue,
	}
	if p.peek().Kind != token.KwElse {
		return stmt, nil
	}
	p.next() // 'else'

	// `else if` chains nest as a single-statement false arm.
	if p.peek().Kind == token.KwIf {
		nested, err := p.parseIf()
		if err != nil {
			return Stmt{}, err
		}
		stmt.IfFalse = []Stmt{nested}
		stmt.Span = stmt.Span.Cover(nested.Span)
		return stmt, nil
	}

	open, err = p.expect(token.LBrace, "'{'")
	if err != nil {
		return Stmt{}, err
	}
	ifFalse, err := p.parseBlockBody(open)
	if err != nil {
		return Stmt{}, err
	}
	stmt.IfFalse = ifFalse
	stmt.Span = stmt.Span.Cover(p.toks[p.pos-1].Span)
	return stmt, nil
}

func (p *parser) parseBecome() (Stmt, *lang.Error) {
	kw := p.next() // 'become'
	value, err := p.parseExpr()
	if err != nil {
		return Stmt{}, err
	}
	return Stmt{
		Kind:  StmtBecome,
		Span:  kw.Span.Cover(value.Span),
		Value: value,
	}, nil
}

// Expression grammar, loosest to tightest:
//
//	expr    := add (cmpOp add)*        chained comparison
//	add     := mul (('+'|'-') mul)*
//	mul     := pow (('*'|'/'|'%') pow)*
//	pow     := unary ('**' pow)?       right-associative
//	unary   := '-' unary | primary
//	primary := int | ident | '#' int | '#(' expr ')' | '(' expr ')'
func (p *parser) parseExpr() (*Expr, *lang.Error) {
	initial, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	if !p.peek().IsCmpOp() {
		return initial, nil
	}

	chain := &Expr{Kind: ExprCompare, Span: initial.Span, Initial: initial}
	for p.peek().IsCmpOp() {
		opTok := p.next()
		operand, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		chain.Comparisons = append(chain.Comparisons, ComparisonLink{
			Op:   cmpOf(opTok.Kind),
			Expr: operand,
		})
		chain.Span = chain.Span.Cover(operand.Span)
	}
	return chain, nil
}

func cmpOf(kind token.Kind) ast.Cmp {
	switch kind {
	case token.EqEq:
		return ast.CmpEql
	case token.BangEq:
		return ast.CmpNeq
	case token.Lt:
		return ast.CmpLt
	case token.Gt:
		return ast.CmpGt
	case token.LtEq:
		return ast.CmpLte
	default:
		return ast.CmpGte
	}
}

func (p *parser) parseAdd() (*Expr, *lang.Error) {
	lhs, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.MathOp
		switch p.peek().Kind {
		case token.Plus:
			op = ast.OpAdd
		case token.Minus:
			op = ast.OpSub
		default:
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		lhs = binary(lhs, op, rhs)
	}
}

func (p *parser) parseMul() (*Expr, *lang.Error) {
	lhs, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.MathOp
		switch p.peek().Kind {
		case token.Star:
			op = ast.OpMul
		case token.Slash:
			op = ast.OpDiv
		case token.Percent:
			op = ast.OpRem
		default:
			return lhs, nil
		}
		p.next()
		rhs, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		lhs = binary(lhs, op, rhs)
	}
}

func (p *parser) parsePow() (*Expr, *lang.Error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != token.StarStar {
		return lhs, nil
	}
	p.next()
	rhs, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	return binary(lhs, ast.OpExp, rhs), nil
}

func binary(lhs *Expr, op ast.MathOp, rhs *Expr) *Expr {
	return &Expr{
		Kind: ExprBinary,
		Span: lhs.Span.Cover(rhs.Span),
		Lhs:  lhs,
		Op:   op,
		Rhs:  rhs,
	}
}

func (p *parser) parseUnary() (*Expr, *lang.Error) {
	if p.peek().Kind != token.Minus {
		return p.parsePrimary()
	}
	minus := p.next()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Expr{
		Kind: ExprNeg,
		Span: minus.Span.Cover(operand.Span),
		X:    operand,
	}, nil
}

func (p *parser) parsePrimary() (*Expr, *lang.Error) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.next()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, lang.Expected(tok.Span, "an integer that fits in 64 bits")
		}
		return &Expr{Kind: ExprIntLit, Span: tok.Span, Int: v}, nil

	case token.Ident:
		p.next()
		return &Expr{Kind: ExprVar, Span: tok.Span, Name: tok.Text}, nil

	case token.Hash:
		return p.parseCell()

	case token.LParen:
		open := p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind != token.RParen {
			return nil, lang.Unmatched(open.Span, '(', ')')
		}
		closeTok := p.next()
		inner.Span = open.Span.Cover(closeTok.Span)
		return inner, nil
	}
	return nil, lang.Expected(tok.Span, "an expression")
}

func (p *parser) parseCell() (*Expr, *lang.Error) {
	hash := p.next() // '#'
	switch p.peek().Kind {
	case token.IntLit:
		tok := p.next()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, lang.Expected(tok.Span, "an integer that fits in 64 bits")
		}
		return &Expr{
			Kind: ExprCell,
			Span: hash.Span.Cover(tok.Span),
			X:    &Expr{Kind: ExprIntLit, Span: tok.Span, Int: v},
		}, nil

	case token.Ident:
		tok := p.next()
		return &Expr{
			Kind: ExprCell,
			Span: hash.Span.Cover(tok.Span),
			X:    &Expr{Kind: ExprVar, Span: tok.Span, Name: tok.Text},
		}, nil

	case token.LParen:
		open := p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind != token.RParen {
			return nil, lang.Unmatched(open.Span, '(', ')')
		}
		closeTok := p.next()
		return &Expr{
			Kind: ExprCell,
			Span: hash.Span.Cover(closeTok.Span),
			X:    inner,
		}, nil
	}
	return nil, lang.Expected(p.peek().Span, "a cell state id")
}
