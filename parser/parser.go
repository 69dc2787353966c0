// Package parser implements the pioasm Pratt/precedence-climbing parser:
// it drives a token.Token stream from the scanner through a sorted table
// of prefix/infix rules, producing directive and instruction side effects
// on a Sink and general expressions for value operands.
package parser

import (
	"github.com/dcrockford/pioasm/ir"
	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/dcrockford/pioasm/scanner"
	"github.com/dcrockford/pioasm/token"
)

// Parser drives one token stream to completion against a Sink. It is
// single-use: call Parse once.
type Parser struct {
	sc        *scanner.Scanner
	cur       token.Token
	peek      token.Token
	sink      Sink
	exprStack []ir.Expr
	scanErr   *pioasmerr.Error
}

// New builds a Parser over src (source text) reading filename for error
// positions, driving sink with the statements and expressions it parses.
func New(filename, src string, sink Sink) *Parser {
	return NewFromScanner(scanner.New(filename, src), sink)
}

// NewFromScanner builds a Parser over an already-constructed Scanner,
// e.g. one fed from a readline callable rather than an in-memory string.
func NewFromScanner(sc *scanner.Scanner, sink Sink) *Parser {
	p := &Parser{sc: sc, sink: sink}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	if p.scanErr != nil {
		return
	}
	tok, err := p.sc.Next()
	if err != nil {
		p.scanErr = err
		return
	}
	p.peek = tok
}

// Parse consumes the entire token stream, returning the first error
// encountered (scan or parse); all errors are fatal, per the error
// handling policy — there is no recovery and no partial result on error.
func (p *Parser) Parse() *pioasmerr.Error {
	for p.cur.Kind != token.EOF {
		if p.scanErr != nil {
			return p.scanErr
		}
		p.exprStack = p.exprStack[:0]
		if err := p.parsePrecedence(PrecNone); err != nil {
			return err
		}
	}
	if p.scanErr != nil {
		return p.scanErr
	}
	return nil
}

func (p *Parser) pushExpr(e ir.Expr) {
	p.exprStack = append(p.exprStack, e)
}

func (p *Parser) popExpr() ir.Expr {
	n := len(p.exprStack)
	e := p.exprStack[n-1]
	p.exprStack = p.exprStack[:n-1]
	return e
}

// parsePrecedence is the Pratt driver: consume one token, invoke its
// prefix rule, then, unless that rule ended the statement, repeatedly
// consume infix operators whose precedence is at least minPrec.
func (p *Parser) parsePrecedence(minPrec Precedence) *pioasmerr.Error {
	tok := p.cur
	p.advance()

	r := lookupRule(tok)
	if r == nil || r.prefix == nil {
		return pioasmerr.New(pioasmerr.NotAPrefixOperator, tok.Pos, "unexpected token %s", tok)
	}
	ended, err := r.prefix(p, tok)
	if err != nil {
		return err
	}
	if ended {
		return nil
	}

	for {
		nr := lookupRule(p.cur)
		if nr == nil || nr.infix == nil || nr.prec < minPrec {
			break
		}
		opTok := p.cur
		p.advance()
		if err := nr.infix(p, opTok); err != nil {
			return err
		}
	}
	return nil
}

// expectKeyword consumes p.cur if it is a Keyword with the given text, failing
// with ExpectedToken otherwise.
func (p *Parser) expectKeyword(text string) *pioasmerr.Error {
	if p.cur.Kind != token.Keyword || p.cur.Text != text {
		return pioasmerr.New(pioasmerr.ExpectedToken, p.cur.Pos, "expected %q, got %s", text, p.cur)
	}
	p.advance()
	return nil
}

func (p *Parser) atKeyword(text string) bool {
	return p.cur.Kind == token.Keyword && p.cur.Text == text
}

// skipOptionalComma consumes a single ',' keyword token if present; the
// SDK syntax treats commas between operands as optional.
func (p *Parser) skipOptionalComma() {
	if p.atKeyword(",") {
		p.advance()
	}
}

func (p *Parser) expectNewline() *pioasmerr.Error {
	if p.cur.Kind != token.Newline && p.cur.Kind != token.EOF {
		return pioasmerr.New(pioasmerr.ExpectedToken, p.cur.Pos, "expected end of line, got %s", p.cur)
	}
	if p.cur.Kind == token.Newline {
		p.advance()
	}
	return nil
}
