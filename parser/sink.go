package parser

import (
	"github.com/dcrockford/pioasm/ir"
	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/dcrockford/pioasm/token"
)

// Sink receives the side effects the parser produces: program lifecycle,
// directive effects on defines/program options, label placement, and
// instruction emission. The assembler facade implements Sink; an embedded
// DSL adapter may target the same interface instead of text, per the
// External Interfaces contract.
type Sink interface {
	BeginProgram(name string, pos token.Position) *pioasmerr.Error
	PIOVersion(name string, pos token.Position) *pioasmerr.Error
	Origin(addr ir.Value, pos token.Position) *pioasmerr.Error
	SideSet(count ir.Value, opt bool, pindirs bool, pos token.Position) *pioasmerr.Error
	Define(name string, value ir.Value, public bool, pos token.Position) *pioasmerr.Error
	WrapTarget(pos token.Position) *pioasmerr.Error
	Wrap(pos token.Position) *pioasmerr.Error
	LangOpt(lang, key, rest string, pos token.Position) *pioasmerr.Error
	PlaceLabel(name string, public bool, pos token.Position) *pioasmerr.Error
	Emit(inst ir.Instruction, pos token.Position) *pioasmerr.Error
}
