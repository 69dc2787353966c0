package parser

import (
	"github.com/dcrockford/pioasm/ir"
	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/dcrockford/pioasm/token"
)

// parseModifiers parses the "side <value>" and "[ <expr> ]" modifiers that
// may trail any instruction, in either order, at most once each.
func parseModifiers(p *Parser) (ir.Modifiers, *pioasmerr.Error) {
	var m ir.Modifiers
	for {
		switch {
		case p.atKeyword("side"):
			if m.Side != nil {
				return m, pioasmerr.New(pioasmerr.InvalidOperand, p.cur.Pos, "duplicate side modifier")
			}
			p.advance()
			v, err := p.parseValue()
			if err != nil {
				return m, err
			}
			m.Side = &v
		case p.atKeyword("["):
			if m.Delay != nil {
				return m, pioasmerr.New(pioasmerr.InvalidOperand, p.cur.Pos, "duplicate delay modifier")
			}
			p.advance()
			v, err := p.parseValue()
			if err != nil {
				return m, err
			}
			if err := p.expectKeyword("]"); err != nil {
				return m, err
			}
			m.Delay = &v
		default:
			return m, nil
		}
	}
}

func prefixJmp(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	cond := ir.CondAlways
	switch {
	case p.atKeyword("!"):
		p.advance()
		switch {
		case p.atKeyword("x"):
			p.advance()
			cond = ir.CondNotX
		case p.atKeyword("y"):
			p.advance()
			cond = ir.CondNotY
		case p.atKeyword("osre"):
			p.advance()
			cond = ir.CondNotOSRE
		default:
			return false, pioasmerr.New(pioasmerr.InvalidOperand, p.cur.Pos, "invalid jmp condition after '!'")
		}
	case p.atKeyword("x"):
		pos := p.cur.Pos
		p.advance()
		switch {
		case p.atKeyword("--"):
			p.advance()
			cond = ir.CondXDec
		case p.atKeyword("!="):
			p.advance()
			if err := p.expectKeyword("y"); err != nil {
				return false, err
			}
			cond = ir.CondXNeY
		default:
			return false, pioasmerr.New(pioasmerr.InvalidOperand, pos, "invalid jmp condition")
		}
	case p.atKeyword("y"):
		pos := p.cur.Pos
		p.advance()
		if !p.atKeyword("--") {
			return false, pioasmerr.New(pioasmerr.InvalidOperand, pos, "invalid jmp condition")
		}
		p.advance()
		cond = ir.CondYDec
	case p.atKeyword("pin"):
		p.advance()
		cond = ir.CondPin
	}

	p.skipOptionalComma()
	target, err := p.parseValue()
	if err != nil {
		return false, err
	}
	mods, merr := parseModifiers(p)
	if merr != nil {
		return false, merr
	}
	node := &ir.JmpNode{Modifiers: mods, Cond: cond, Target: target}
	if err := p.sink.Emit(node, tok.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func prefixWait(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	if p.cur.Kind != token.Number || (p.cur.Value != 0 && p.cur.Value != 1) {
		return false, pioasmerr.New(pioasmerr.InvalidOperand, p.cur.Pos, "expected a wait polarity of 0 or 1")
	}
	polarity := int(p.cur.Value)
	p.advance()

	var src ir.WaitSource
	var mod ir.IrqModifier
	switch {
	case p.atKeyword("gpio"):
		p.advance()
		src = ir.WaitGPIO
	case p.atKeyword("pin"):
		p.advance()
		src = ir.WaitPin
	case p.atKeyword("irq"):
		p.advance()
		src = ir.WaitIRQ
		if p.atKeyword("prev") {
			p.advance()
			mod = ir.IrqModPrev
		} else if p.atKeyword("next") {
			p.advance()
			mod = ir.IrqModNext
		}
	case p.atKeyword("jmppin"):
		p.advance()
		src = ir.WaitJmpPin
	default:
		return false, pioasmerr.New(pioasmerr.InvalidOperand, p.cur.Pos, "expected a wait source, got %s", p.cur)
	}

	index := ir.Int(0)
	rel := false
	if src == ir.WaitJmpPin {
		if p.atKeyword("+") {
			p.advance()
			v, err := p.parseValue()
			if err != nil {
				return false, err
			}
			index = v
		}
	} else {
		p.skipOptionalComma()
		v, err := p.parseValue()
		if err != nil {
			return false, err
		}
		index = v
		if src == ir.WaitIRQ && p.atKeyword("rel") {
			p.advance()
			rel = true
		}
	}

	mods, merr := parseModifiers(p)
	if merr != nil {
		return false, merr
	}
	node := &ir.WaitNode{Modifiers: mods, Polarity: polarity, Source: src, IrqMod: mod, Index: index, Rel: rel}
	if err := p.sink.Emit(node, tok.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func parseInSource(p *Parser) (ir.InSource, *pioasmerr.Error) {
	switch {
	case p.atKeyword("pins"):
		p.advance()
		return ir.InPins, nil
	case p.atKeyword("x"):
		p.advance()
		return ir.InX, nil
	case p.atKeyword("y"):
		p.advance()
		return ir.InY, nil
	case p.atKeyword("null"):
		p.advance()
		return ir.InNull, nil
	case p.atKeyword("isr"):
		p.advance()
		return ir.InISR, nil
	case p.atKeyword("osr"):
		p.advance()
		return ir.InOSR, nil
	default:
		return 0, pioasmerr.New(pioasmerr.InvalidOperand, p.cur.Pos, "expected an in source, got %s", p.cur)
	}
}

func prefixIn(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	src, err := parseInSource(p)
	if err != nil {
		return false, err
	}
	p.skipOptionalComma()
	count, verr := p.parseValue()
	if verr != nil {
		return false, verr
	}
	mods, merr := parseModifiers(p)
	if merr != nil {
		return false, merr
	}
	node := &ir.InNode{Modifiers: mods, Source: src, Count: count}
	if err := p.sink.Emit(node, tok.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func parseOutDest(p *Parser) (ir.OutDest, *pioasmerr.Error) {
	switch {
	case p.atKeyword("pins"):
		p.advance()
		return ir.OutPins, nil
	case p.atKeyword("x"):
		p.advance()
		return ir.OutX, nil
	case p.atKeyword("y"):
		p.advance()
		return ir.OutY, nil
	case p.atKeyword("null"):
		p.advance()
		return ir.OutNull, nil
	case p.atKeyword("pindirs"):
		p.advance()
		return ir.OutPinDirs, nil
	case p.atKeyword("pc"):
		p.advance()
		return ir.OutPC, nil
	case p.atKeyword("isr"):
		p.advance()
		return ir.OutISR, nil
	case p.atKeyword("osr"):
		p.advance()
		return ir.OutOSR, nil
	default:
		return 0, pioasmerr.New(pioasmerr.InvalidOperand, p.cur.Pos, "expected an out destination, got %s", p.cur)
	}
}

func prefixOut(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	dst, err := parseOutDest(p)
	if err != nil {
		return false, err
	}
	p.skipOptionalComma()
	count, verr := p.parseValue()
	if verr != nil {
		return false, verr
	}
	mods, merr := parseModifiers(p)
	if merr != nil {
		return false, merr
	}
	node := &ir.OutNode{Modifiers: mods, Dest: dst, Count: count}
	if err := p.sink.Emit(node, tok.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func prefixPush(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	ifFull, block := false, true
	for {
		switch {
		case p.atKeyword("iffull"):
			ifFull = true
			p.advance()
		case p.atKeyword("block"):
			block = true
			p.advance()
		case p.atKeyword("noblock"):
			block = false
			p.advance()
		default:
			mods, err := parseModifiers(p)
			if err != nil {
				return false, err
			}
			node := &ir.PushNode{Modifiers: mods, IfFull: ifFull, Block: block}
			if err := p.sink.Emit(node, tok.Pos); err != nil {
				return false, err
			}
			return true, p.expectNewline()
		}
	}
}

func prefixPull(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	ifEmpty, block := false, true
	for {
		switch {
		case p.atKeyword("ifempty"):
			ifEmpty = true
			p.advance()
		case p.atKeyword("block"):
			block = true
			p.advance()
		case p.atKeyword("noblock"):
			block = false
			p.advance()
		default:
			mods, err := parseModifiers(p)
			if err != nil {
				return false, err
			}
			node := &ir.PullNode{Modifiers: mods, IfEmpty: ifEmpty, Block: block}
			if err := p.sink.Emit(node, tok.Pos); err != nil {
				return false, err
			}
			return true, p.expectNewline()
		}
	}
}

func parseMovDest(p *Parser) (ir.MovDest, *pioasmerr.Error) {
	switch {
	case p.atKeyword("pins"):
		p.advance()
		return ir.MovDestPins, nil
	case p.atKeyword("x"):
		p.advance()
		return ir.MovDestX, nil
	case p.atKeyword("y"):
		p.advance()
		return ir.MovDestY, nil
	case p.atKeyword("exec"):
		p.advance()
		return ir.MovDestExec, nil
	case p.atKeyword("pc"):
		p.advance()
		return ir.MovDestPC, nil
	case p.atKeyword("isr"):
		p.advance()
		return ir.MovDestISR, nil
	case p.atKeyword("osr"):
		p.advance()
		return ir.MovDestOSR, nil
	default:
		return 0, pioasmerr.New(pioasmerr.InvalidOperand, p.cur.Pos, "expected a mov destination, got %s", p.cur)
	}
}

func parseMovSource(p *Parser) (ir.MovSource, *pioasmerr.Error) {
	switch {
	case p.atKeyword("pins"):
		p.advance()
		return ir.MovSrcPins, nil
	case p.atKeyword("x"):
		p.advance()
		return ir.MovSrcX, nil
	case p.atKeyword("y"):
		p.advance()
		return ir.MovSrcY, nil
	case p.atKeyword("null"):
		p.advance()
		return ir.MovSrcNull, nil
	case p.atKeyword("status"):
		p.advance()
		return ir.MovSrcStatus, nil
	case p.atKeyword("isr"):
		p.advance()
		return ir.MovSrcISR, nil
	case p.atKeyword("osr"):
		p.advance()
		return ir.MovSrcOSR, nil
	default:
		return 0, pioasmerr.New(pioasmerr.InvalidOperand, p.cur.Pos, "expected a mov source, got %s", p.cur)
	}
}

func prefixMov(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	dst, err := parseMovDest(p)
	if err != nil {
		return false, err
	}
	p.skipOptionalComma()
	op := ir.MovOpNone
	switch {
	case p.atKeyword("~"), p.atKeyword("!"):
		op = ir.MovOpInvert
		p.advance()
	case p.atKeyword("::"):
		op = ir.MovOpReverse
		p.advance()
	}
	src, serr := parseMovSource(p)
	if serr != nil {
		return false, serr
	}
	mods, merr := parseModifiers(p)
	if merr != nil {
		return false, merr
	}
	node := &ir.MovNode{Modifiers: mods, Dest: dst, Op: op, Source: src}
	if err := p.sink.Emit(node, tok.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func prefixIrq(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	mod := ir.IrqModNone
	switch {
	case p.atKeyword("prev"):
		mod = ir.IrqModPrev
		p.advance()
	case p.atKeyword("next"):
		mod = ir.IrqModNext
		p.advance()
	}

	action := ir.IrqSet
	switch {
	case p.atKeyword("set"):
		p.advance()
		action = ir.IrqSet
	case p.atKeyword("nowait"):
		p.advance()
		action = ir.IrqNowait
	case p.atKeyword("wait"):
		p.advance()
		action = ir.IrqWait
	case p.atKeyword("clear"):
		p.advance()
		action = ir.IrqClear
	}

	index, err := p.parseValue()
	if err != nil {
		return false, err
	}
	rel := false
	if p.atKeyword("rel") {
		rel = true
		p.advance()
	}
	mods, merr := parseModifiers(p)
	if merr != nil {
		return false, merr
	}
	node := &ir.IrqNode{Modifiers: mods, Action: action, Mod: mod, Rel: rel, Index: index}
	if err := p.sink.Emit(node, tok.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func parseSetDest(p *Parser) (ir.SetDest, *pioasmerr.Error) {
	switch {
	case p.atKeyword("pins"):
		p.advance()
		return ir.SetDestPins, nil
	case p.atKeyword("x"):
		p.advance()
		return ir.SetDestX, nil
	case p.atKeyword("y"):
		p.advance()
		return ir.SetDestY, nil
	case p.atKeyword("pindirs"):
		p.advance()
		return ir.SetDestPinDirs, nil
	default:
		return 0, pioasmerr.New(pioasmerr.InvalidOperand, p.cur.Pos, "expected a set destination, got %s", p.cur)
	}
}

func prefixSet(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	dst, err := parseSetDest(p)
	if err != nil {
		return false, err
	}
	p.skipOptionalComma()
	value, verr := p.parseValue()
	if verr != nil {
		return false, verr
	}
	mods, merr := parseModifiers(p)
	if merr != nil {
		return false, merr
	}
	node := &ir.SetNode{Modifiers: mods, Dest: dst, Value: value}
	if err := p.sink.Emit(node, tok.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}

func prefixNop(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	mods, err := parseModifiers(p)
	if err != nil {
		return false, err
	}
	node := &ir.NopNode{Modifiers: mods}
	if err := p.sink.Emit(node, tok.Pos); err != nil {
		return false, err
	}
	return true, p.expectNewline()
}
