package parser

import (
	"strings"

	"github.com/dcrockford/pioasm/ir"
	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/dcrockford/pioasm/token"
)

// prefixDot dispatches ".keyword" directives: the "." token itself carries
// no meaning, so it peeks the following keyword and routes to the matching
// directive body.
func prefixDot(p *Parser, dot token.Token) (bool, *pioasmerr.Error) {
	if p.cur.Kind != token.Keyword {
		return false, pioasmerr.New(pioasmerr.ExpectedToken, p.cur.Pos, "expected a directive name after '.', got %s", p.cur)
	}
	name := p.cur.Text
	switch name {
	case "program":
		return directiveProgram(p, dot)
	case "define":
		return directiveDefine(p, dot)
	case "origin":
		return directiveOrigin(p, dot)
	case "side_set":
		return directiveSideSet(p, dot)
	case "wrap_target":
		p.advance()
		if err := p.sink.WrapTarget(dot.Pos); err != nil {
			return false, err
		}
		return true, p.expectNewline()
	case "wrap":
		p.advance()
		if err := p.sink.Wrap(dot.Pos); err != nil {
			return false, err
		}
		return true, p.expectNewline()
	case "word":
		return directiveWord(p, dot)
	case "lang_opt":
		return directiveLangOpt(p, dot)
	case "pio_version":
		return directivePioVersion(p, dot)
	default:
		return false, pioasmerr.New(pioasmerr.ExpectedToken, p.cur.Pos, "unknown directive %q", name)
	}
}

func directiveProgram(p *Parser, dot token.Token) (bool, *pioasmerr.Error) {
	p.advance() // "program"
	if p.cur.Kind != token.Symbol && p.cur.Kind != token.Keyword {
		return false, pioasmerr.New(pioasmerr.ExpectedToken, p.cur.Pos, "expected a program name, got %s", p.cur)
	}
	name := p.cur.Text
	p.advance()
	if err := p.sink.BeginProgram(name, dot.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func directivePioVersion(p *Parser, dot token.Token) (bool, *pioasmerr.Error) {
	p.advance() // "pio_version"
	if p.cur.Kind != token.Symbol && p.cur.Kind != token.Keyword {
		return false, pioasmerr.New(pioasmerr.ExpectedToken, p.cur.Pos, "expected a PIO version name, got %s", p.cur)
	}
	name := p.cur.Text
	p.advance()
	if err := p.sink.PIOVersion(name, dot.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func directiveDefine(p *Parser, dot token.Token) (bool, *pioasmerr.Error) {
	p.advance() // "define"
	public := false
	if p.atKeyword("public") {
		public = true
		p.advance()
	}
	if p.cur.Kind != token.Symbol && p.cur.Kind != token.Keyword {
		return false, pioasmerr.New(pioasmerr.ExpectedToken, p.cur.Pos, "expected a define name, got %s", p.cur)
	}
	name := p.cur.Text
	p.advance()
	value, err := p.parseValue()
	if err != nil {
		return false, err
	}
	if err := p.sink.Define(name, value, public, dot.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func directiveOrigin(p *Parser, dot token.Token) (bool, *pioasmerr.Error) {
	p.advance() // "origin"
	value, err := p.parseValue()
	if err != nil {
		return false, err
	}
	if err := p.sink.Origin(value, dot.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func directiveSideSet(p *Parser, dot token.Token) (bool, *pioasmerr.Error) {
	p.advance() // "side_set"
	count, err := p.parseValue()
	if err != nil {
		return false, err
	}
	opt, pindirs := false, false
	for {
		switch {
		case p.atKeyword("opt"):
			opt = true
			p.advance()
		case p.atKeyword("pindirs"):
			pindirs = true
			p.advance()
		default:
			if err := p.sink.SideSet(count, opt, pindirs, dot.Pos); err != nil {
				return false, err
			}
			return true, p.expectNewline()
		}
	}
}

func directiveWord(p *Parser, dot token.Token) (bool, *pioasmerr.Error) {
	p.advance() // "word"
	value, err := p.parseValue()
	if err != nil {
		return false, err
	}
	mods, err := parseModifiers(p)
	if err != nil {
		return false, err
	}
	node := &ir.WordNode{Modifiers: mods, Value: value}
	if err := p.sink.Emit(node, dot.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

// directiveLangOpt captures ".lang_opt <lang> <key> = <rest of line>"
// opaquely: neither the language name, key, nor right-hand side is
// interpreted by the core assembler.
func directiveLangOpt(p *Parser, dot token.Token) (bool, *pioasmerr.Error) {
	p.advance() // "lang_opt"
	if p.cur.Kind != token.Symbol && p.cur.Kind != token.Keyword {
		return false, pioasmerr.New(pioasmerr.ExpectedToken, p.cur.Pos, "expected a language name, got %s", p.cur)
	}
	lang := p.cur.Text
	p.advance()
	if p.cur.Kind != token.Symbol && p.cur.Kind != token.Keyword {
		return false, pioasmerr.New(pioasmerr.ExpectedToken, p.cur.Pos, "expected an option key, got %s", p.cur)
	}
	key := p.cur.Text
	p.advance()
	if err := p.expectKeyword("="); err != nil {
		return false, err
	}
	var rest []string
	for p.cur.Kind != token.Newline && p.cur.Kind != token.EOF {
		rest = append(rest, p.cur.Text)
		p.advance()
	}
	if err := p.sink.LangOpt(lang, key, strings.Join(rest, " "), dot.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

// prefixPublic handles "public <label>:", a visibility prefix on a label
// definition.
func prefixPublic(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	if p.cur.Kind != token.Label {
		return false, pioasmerr.New(pioasmerr.ExpectedToken, p.cur.Pos, "expected a label after 'public', got %s", p.cur)
	}
	name := p.cur.Text
	pos := p.cur.Pos
	p.advance()
	if err := p.sink.PlaceLabel(name, true, pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func prefixLabel(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	if err := p.sink.PlaceLabel(tok.Text, false, tok.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

// prefixNewline treats a blank line as a complete, empty statement.
func prefixNewline(p *Parser, _ token.Token) (bool, *pioasmerr.Error) {
	return true, nil
}

// The "." and "public" keyword rules are registered centrally in
// table.go, alongside every other keyword rule, so the table's
// sortedness check sees the complete set in one place.
func init() {
	registerKind(token.Label, prefixLabel, nil, PrecStmt)
	registerKind(token.Newline, prefixNewline, nil, PrecStmt)
}
