// Package encoder implements the bit-exact PIO opcode encoder: an
// ir.Visitor that appends one 16-bit word per instruction mnemonic and
// ORs side-set/delay bits onto the most recently emitted word.
package encoder

import (
	"github.com/dcrockford/pioasm/ir"
	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/dcrockford/pioasm/program"
)

// Encoder accumulates the opcode stream for one program. It implements
// ir.Visitor and is normally driven through a resolver.Resolver rather
// than fed IR directly, since operands may still be symbols.
type Encoder struct {
	cfg     program.SideSetConfig
	version program.Version
	opcodes []uint16
	err     *pioasmerr.Error
}

// New builds an Encoder for the given side-set configuration and target
// version. cfg is assumed already validated by ValidateSideSetConfig.
func New(cfg program.SideSetConfig, version program.Version) *Encoder {
	return &Encoder{cfg: cfg, version: version}
}

// ValidateSideSetConfig checks the side-set count and side_en/pindirs
// combination named in the spec: count in [0,5], and side_en requires
// count >= 2 (one bit is reserved for the per-instruction enable flag,
// leaving at least one payload bit for the side-set value itself).
func ValidateSideSetConfig(cfg program.SideSetConfig) *pioasmerr.Error {
	if cfg.Count < 0 || cfg.Count > 5 {
		return pioasmerr.NewNoPos(pioasmerr.InvalidSideSetConfig, "side-set count %d out of range 0..5", cfg.Count)
	}
	if cfg.SideEn && cfg.Count < 2 {
		return pioasmerr.NewNoPos(pioasmerr.InvalidSideSetConfig, "side_en requires side-set count >= 2, got %d", cfg.Count)
	}
	return nil
}

// Opcodes returns the emitted words so far.
func (e *Encoder) Opcodes() []uint16 {
	return e.opcodes
}

// Err returns the first error raised during encoding, if any. Once set,
// further Visitor calls are no-ops; callers check Err once per program.
func (e *Encoder) Err() *pioasmerr.Error {
	return e.err
}

func (e *Encoder) fail(kind pioasmerr.Kind, format string, args ...any) {
	if e.err == nil {
		e.err = pioasmerr.NewNoPos(kind, format, args...)
	}
}

func (e *Encoder) emit(major uint16, fields uint16) {
	if e.err != nil {
		return
	}
	if len(e.opcodes) >= 32 {
		e.fail(pioasmerr.ProgramTooLong, "program exceeds 32 instructions")
		return
	}
	e.opcodes = append(e.opcodes, (major<<13)|fields)
}

func (e *Encoder) resolvedInt(v ir.Value) int32 {
	if v.IsSymbol {
		e.fail(pioasmerr.ValueNotAssigned, "unresolved symbol %q reached the encoder", v.Symbol)
		return 0
	}
	return v.Int
}

func (e *Encoder) check1Bit(v ir.Value, where string) uint16 {
	n := e.resolvedInt(v)
	if n < 0 || n > 1 {
		e.fail(pioasmerr.OutOfRange, "%s: %d out of range 0..1", where, n)
		return 0
	}
	return uint16(n)
}

// check5BitsSigned implements the spec's general 5-bit field check: values
// -16..31, encoded modulo 32. Used for the wait index, irq index and set
// data fields.
func (e *Encoder) check5BitsSigned(v ir.Value, where string) uint16 {
	n := e.resolvedInt(v)
	if n < -16 || n > 31 {
		e.fail(pioasmerr.OutOfRange, "%s: %d out of range -16..31", where, n)
		return 0
	}
	return uint16(n) & 0x1f
}

// check5BitsUnsigned is used for jmp targets: the PIO ISA encodes jump
// addresses as unsigned 0..31, not the signed two's-complement range the
// generic 5-bit check allows (see the jmp-target Open Question in
// DESIGN.md).
func (e *Encoder) check5BitsUnsigned(v ir.Value, where string) uint16 {
	n := e.resolvedInt(v)
	if n < 0 || n > 31 {
		e.fail(pioasmerr.OutOfRange, "%s: %d out of range 0..31", where, n)
		return 0
	}
	return uint16(n) & 0x1f
}

func (e *Encoder) check16Bits(v ir.Value, where string) uint16 {
	n := e.resolvedInt(v)
	if n < -32768 || n > 65535 {
		e.fail(pioasmerr.OutOfRange, "%s: %d out of range -32768..65535", where, n)
		return 0
	}
	return uint16(n)
}

func (e *Encoder) checkPinCount(v ir.Value, where string) uint16 {
	n := e.resolvedInt(v)
	if n < 1 || n > 32 {
		e.fail(pioasmerr.OutOfRange, "%s: %d out of range 1..32", where, n)
		return 0
	}
	return uint16(n) & 0x1f // 32 truncates to 0, per the ISA's "0 means 32" convention.
}

// --- ir.Visitor ---

func (e *Encoder) Jmp(cond ir.Cond, target ir.Value) {
	condBits, ok := jmpCondBits[cond]
	if !ok {
		e.fail(pioasmerr.InvalidOperand, "jmp: unknown condition %v", cond)
		return
	}
	addr := e.check5BitsUnsigned(target, "jmp target")
	e.emit(0b000, condBits<<5|addr)
}

func (e *Encoder) Wait(polarity int, src ir.WaitSource, mod ir.IrqModifier, index ir.Value, rel bool) {
	if e.version == program.RP2040 && src == ir.WaitJmpPin {
		e.fail(pioasmerr.InvalidOperand, "wait jmppin requires pio_version rp2350")
		return
	}
	if e.version == program.RP2040 && mod != ir.IrqModNone {
		e.fail(pioasmerr.InvalidOperand, "wait irq prev/next requires pio_version rp2350")
		return
	}
	srcBits, ok := waitSourceBits[src]
	if !ok {
		e.fail(pioasmerr.InvalidOperand, "wait: unknown source %v", src)
		return
	}
	pol := e.check1Bit(ir.Int(int32(polarity)), "wait polarity")
	idx := e.check5BitsSigned(index, "wait index")
	e.emit(0b001, pol<<7|srcBits<<5|idx)
}

func (e *Encoder) In(src ir.InSource, count ir.Value) {
	srcBits, ok := inSourceBits[src]
	if !ok {
		e.fail(pioasmerr.InvalidOperand, "in: unknown source %v", src)
		return
	}
	n := e.checkPinCount(count, "in count")
	e.emit(0b010, srcBits<<5|n)
}

func (e *Encoder) Out(dst ir.OutDest, count ir.Value) {
	dstBits, ok := outDestBits[dst]
	if !ok {
		e.fail(pioasmerr.InvalidOperand, "out: unknown destination %v", dst)
		return
	}
	n := e.checkPinCount(count, "out count")
	e.emit(0b011, dstBits<<5|n)
}

func (e *Encoder) Push(ifFull bool, block bool) {
	var fields uint16
	if ifFull {
		fields |= 1 << 6
	}
	if block {
		fields |= 1 << 5
	}
	e.emit(0b100, fields) // bit 7 = 0 distinguishes push from pull.
}

func (e *Encoder) Pull(ifEmpty bool, block bool) {
	fields := uint16(1 << 7)
	if ifEmpty {
		fields |= 1 << 6
	}
	if block {
		fields |= 1 << 5
	}
	e.emit(0b100, fields)
}

func (e *Encoder) Mov(dst ir.MovDest, op ir.MovOp, src ir.MovSource) {
	dstBits, ok := movDestBits[dst]
	if !ok {
		e.fail(pioasmerr.InvalidOperand, "mov: unknown destination %v", dst)
		return
	}
	srcBits, ok := movSourceBits[src]
	if !ok {
		e.fail(pioasmerr.InvalidOperand, "mov: unknown source %v", src)
		return
	}
	opBits, ok := movOpBits[op]
	if !ok {
		e.fail(pioasmerr.InvalidOperand, "mov: unknown op %v", op)
		return
	}
	e.emit(0b101, dstBits<<5|opBits<<3|srcBits)
}

func (e *Encoder) Irq(action ir.IrqAction, mod ir.IrqModifier, rel bool, index ir.Value) {
	if e.version == program.RP2040 && mod != ir.IrqModNone {
		e.fail(pioasmerr.InvalidOperand, "irq prev/next requires pio_version rp2350")
		return
	}
	var fields uint16
	switch action {
	case ir.IrqClear:
		fields |= 1 << 6
	case ir.IrqWait:
		fields |= 1 << 5
	case ir.IrqSet, ir.IrqNowait:
		// no bits set
	default:
		e.fail(pioasmerr.InvalidOperand, "irq: unknown action %v", action)
		return
	}
	if rel {
		fields |= 0x10
	}
	idx := e.check5BitsSigned(index, "irq index")
	e.emit(0b110, fields|idx)
}

func (e *Encoder) Set(dst ir.SetDest, value ir.Value) {
	dstBits, ok := setDestBits[dst]
	if !ok {
		e.fail(pioasmerr.InvalidOperand, "set: unknown destination %v", dst)
		return
	}
	data := e.check5BitsSigned(value, "set data")
	e.emit(0b111, dstBits<<5|data)
}

func (e *Encoder) Nop() {
	// nop is mov y, y.
	e.Mov(ir.MovDestY, ir.MovOpNone, ir.MovSrcY)
}

func (e *Encoder) Word(value ir.Value) {
	if e.err != nil {
		return
	}
	if len(e.opcodes) >= 32 {
		e.fail(pioasmerr.ProgramTooLong, "program exceeds 32 instructions")
		return
	}
	e.opcodes = append(e.opcodes, e.check16Bits(value, ".word"))
}

// Delay ORs the delay field onto the most recently emitted opcode. It must
// be called, per the canonical visit order, after the mnemonic method and
// before Side.
func (e *Encoder) Delay(value ir.Value) {
	if e.err != nil || len(e.opcodes) == 0 {
		return
	}
	width := e.cfg.DelayWidth()
	n := e.resolvedInt(value)
	if n < -16 || n > 31 {
		e.fail(pioasmerr.OutOfRange, "delay: %d out of range -16..31", n)
		return
	}
	nd := uint16(n) & 0x1f
	if nd >= 1<<uint(width) {
		e.fail(pioasmerr.OutOfRange, "delay: %d exceeds %d-bit delay width", n, width)
		return
	}
	e.opcodes[len(e.opcodes)-1] |= nd << 8
}

// Side ORs the side-set field, and (when side_en is configured) the
// per-instruction enable flag, onto the most recently emitted opcode.
func (e *Encoder) Side(value ir.Value) {
	if e.err != nil || len(e.opcodes) == 0 {
		return
	}
	payloadWidth := e.cfg.Count
	if e.cfg.SideEn {
		payloadWidth--
	}
	if payloadWidth <= 0 {
		e.fail(pioasmerr.InvalidSideSetConfig, "side-set value given but side-set count is %d", e.cfg.Count)
		return
	}
	n := e.resolvedInt(value)
	if n < 0 || n >= 1<<uint(payloadWidth) {
		e.fail(pioasmerr.OutOfRange, "side: %d exceeds %d-bit side-set field", n, payloadWidth)
		return
	}
	ss := uint16(n) << uint(e.cfg.DelayWidth())
	if e.cfg.SideEn {
		ss |= 1 << 4 // per-instruction side-set-enable flag, top of the 5-bit field.
	}
	e.opcodes[len(e.opcodes)-1] |= ss << 8
}

var _ ir.Visitor = (*Encoder)(nil)
