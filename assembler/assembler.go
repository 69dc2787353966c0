// Package assembler is the facade tying the parser to the defines,
// resolver and encoder packages: it implements parser.Sink, accumulating
// one program's worth of IR across phase 1 (parse) and running phase 2
// (resolve + encode) each time a ".program" boundary is crossed.
package assembler

import (
	"github.com/dcrockford/pioasm/defines"
	"github.com/dcrockford/pioasm/encoder"
	"github.com/dcrockford/pioasm/ir"
	"github.com/dcrockford/pioasm/parser"
	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/dcrockford/pioasm/program"
	"github.com/dcrockford/pioasm/resolver"
	"github.com/dcrockford/pioasm/token"
)

// pending holds one in-progress ".program" block's phase-1 state: the
// instruction list built so far and the directive flags that must not
// repeat (side_set, wrap, wrap_target).
type pending struct {
	prog          *program.Program
	insts         []ir.Instruction
	sideSetSet    bool
	wrapTargetSet bool
	wrapSet       bool
}

// Assembler drives the parser through phase 1 and runs phase 2 itself. It
// is single-use per source stream but may assemble several ".program"
// blocks from that one stream, returning one *program.Program per block.
type Assembler struct {
	version  program.Version
	global   *defines.Table
	programs []*program.Program
	cur      *pending
}

var _ parser.Sink = (*Assembler)(nil)

// New returns an Assembler with an empty assembler-scope defines table and
// the default RP2040 target version.
func New() *Assembler {
	return &Assembler{version: program.RP2040, global: defines.New()}
}

// Assemble parses src under filename through a fresh Assembler and returns
// every assembled program in source order.
func Assemble(filename, src string) ([]*program.Program, *pioasmerr.Error) {
	asm := New()
	p := parser.New(filename, src, asm)
	if err := p.Parse(); err != nil {
		return nil, err
	}
	if err := asm.Finish(); err != nil {
		return nil, err
	}
	return asm.Programs(), nil
}

// Programs returns every program finalized so far, in source order.
func (a *Assembler) Programs() []*program.Program {
	return a.programs
}

// Finish finalizes the in-progress program, if any. Call once the driving
// parser has consumed its entire token stream.
func (a *Assembler) Finish() *pioasmerr.Error {
	if a.cur == nil {
		return nil
	}
	return a.finalizeCurrent()
}

// finalizeCurrent runs phase 2 (resolve + encode) over the accumulated
// instruction list and appends the finished program.
func (a *Assembler) finalizeCurrent() *pioasmerr.Error {
	p := a.cur
	a.cur = nil

	if p.wrapTargetSet && p.wrapSet && *p.prog.WrapTarget > *p.prog.Wrap {
		return pioasmerr.NewNoPos(pioasmerr.InvalidOperand, "wrap_target must not come after wrap")
	}

	enc := encoder.New(p.prog.SideSet, p.prog.PIOVersion)
	res := resolver.New(enc, p.prog.Defines)
	for _, inst := range p.insts {
		inst.Accept(res)
		if res.Err() != nil {
			return res.Err()
		}
	}
	if enc.Err() != nil {
		return enc.Err()
	}
	p.prog.Opcodes = enc.Opcodes()

	if p.wrapTargetSet && (*p.prog.WrapTarget < 0 || *p.prog.WrapTarget >= len(p.prog.Opcodes)) {
		return pioasmerr.NewNoPos(pioasmerr.OutOfRange, "wrap_target %d out of range for %d-instruction program", *p.prog.WrapTarget, len(p.prog.Opcodes))
	}
	if p.wrapSet && (*p.prog.Wrap < 0 || *p.prog.Wrap >= len(p.prog.Opcodes)) {
		return pioasmerr.NewNoPos(pioasmerr.OutOfRange, "wrap %d out of range for %d-instruction program", *p.prog.Wrap, len(p.prog.Opcodes))
	}

	a.programs = append(a.programs, p.prog)
	return nil
}

func (a *Assembler) requireProgram(pos token.Position) (*pending, *pioasmerr.Error) {
	if a.cur == nil {
		return nil, pioasmerr.New(pioasmerr.InstructionOutsideProgram, pos, "instruction outside any .program block")
	}
	return a.cur, nil
}

// defines returns the table a directive occurring right now should affect:
// the current program's, or the assembler-scope table outside any program.
func (a *Assembler) defines() *defines.Table {
	if a.cur != nil {
		return a.cur.prog.Defines
	}
	return a.global
}

// resolveNow evaluates a directive operand immediately, against whatever is
// already in scope. Unlike instruction operands (resolved in phase 2
// against the complete label table), directive values such as .origin,
// .side_set and .define must already be resolvable at the point they
// appear: they cannot forward-reference a label placed later in the
// program.
func (a *Assembler) resolveNow(v ir.Value) (int32, *pioasmerr.Error) {
	defs := a.defines()
	lookup := func(name string) (int32, *pioasmerr.Error) { return defs.Resolve(name) }
	switch {
	case v.Expr != nil:
		return v.Expr.Eval(lookup)
	case v.IsSymbol:
		return defs.Resolve(v.Symbol)
	default:
		return v.Int, nil
	}
}

func (a *Assembler) BeginProgram(name string, pos token.Position) *pioasmerr.Error {
	if a.cur != nil {
		if err := a.finalizeCurrent(); err != nil {
			return err
		}
	}
	seeded, err := a.global.Copy(true)
	if err != nil {
		return err
	}
	prog := program.New(name, a.version)
	prog.Defines = seeded
	a.cur = &pending{prog: prog}
	return nil
}

func (a *Assembler) PIOVersion(name string, pos token.Position) *pioasmerr.Error {
	switch name {
	case "rp2040":
		a.version = program.RP2040
	case "rp2350":
		a.version = program.RP2350
	default:
		return pioasmerr.New(pioasmerr.InvalidOperand, pos, "unknown pio_version %q", name)
	}
	if a.cur != nil {
		a.cur.prog.PIOVersion = a.version
	}
	return nil
}

func (a *Assembler) Origin(addr ir.Value, pos token.Position) *pioasmerr.Error {
	p, err := a.requireProgram(pos)
	if err != nil {
		return err
	}
	n, verr := a.resolveNow(addr)
	if verr != nil {
		return verr
	}
	v := int(n)
	p.prog.Origin = &v
	return nil
}

func (a *Assembler) SideSet(count ir.Value, opt bool, pindirs bool, pos token.Position) *pioasmerr.Error {
	p, err := a.requireProgram(pos)
	if err != nil {
		return err
	}
	if p.sideSetSet {
		return pioasmerr.New(pioasmerr.InvalidSideSetConfig, pos, "side_set already specified for this program")
	}
	n, verr := a.resolveNow(count)
	if verr != nil {
		return verr
	}
	cfg := program.SideSetConfig{Count: int(n), SideEn: opt, PinDirs: pindirs}
	if verr := encoder.ValidateSideSetConfig(cfg); verr != nil {
		return verr
	}
	p.prog.SideSet = cfg
	p.sideSetSet = true
	return nil
}

func (a *Assembler) Define(name string, value ir.Value, public bool, pos token.Position) *pioasmerr.Error {
	n, verr := a.resolveNow(value)
	if verr != nil {
		return verr
	}
	return a.defines().Define(name, n, public)
}

func (a *Assembler) WrapTarget(pos token.Position) *pioasmerr.Error {
	p, err := a.requireProgram(pos)
	if err != nil {
		return err
	}
	if p.wrapTargetSet {
		return pioasmerr.New(pioasmerr.WrapTargetAlreadyUsed, pos, "wrap_target already specified for this program")
	}
	idx := len(p.insts)
	p.prog.WrapTarget = &idx
	p.wrapTargetSet = true
	return nil
}

func (a *Assembler) Wrap(pos token.Position) *pioasmerr.Error {
	p, err := a.requireProgram(pos)
	if err != nil {
		return err
	}
	if p.wrapSet {
		return pioasmerr.New(pioasmerr.WrapAlreadyUsed, pos, "wrap already specified for this program")
	}
	idx := len(p.insts) - 1
	if idx < 0 {
		idx = 0
	}
	p.prog.Wrap = &idx
	p.wrapSet = true
	return nil
}

func (a *Assembler) LangOpt(lang, key, rest string, pos token.Position) *pioasmerr.Error {
	p, err := a.requireProgram(pos)
	if err != nil {
		return err
	}
	p.prog.LangOpts = append(p.prog.LangOpts, program.LangOpt{Lang: lang, Key: key, Rest: rest})
	return nil
}

func (a *Assembler) PlaceLabel(name string, public bool, pos token.Position) *pioasmerr.Error {
	p, err := a.requireProgram(pos)
	if err != nil {
		return err
	}
	if err := p.prog.Defines.Declare(name, public); err != nil {
		return err
	}
	return p.prog.Defines.Assign(name, int32(len(p.insts)))
}

func (a *Assembler) Emit(inst ir.Instruction, pos token.Position) *pioasmerr.Error {
	p, err := a.requireProgram(pos)
	if err != nil {
		return err
	}
	p.insts = append(p.insts, inst)
	return nil
}
