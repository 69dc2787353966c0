// Package resolver implements the pass that substitutes symbolic operands
// (labels, defines, general expressions) with resolved integers by
// looking them up in a program's defines table, then forwards the
// resolved instruction to another ir.Visitor (normally an encoder).
package resolver

import (
	"github.com/dcrockford/pioasm/defines"
	"github.com/dcrockford/pioasm/ir"
	"github.com/dcrockford/pioasm/pioasmerr"
)

// Resolver wraps another ir.Visitor. It is itself an ir.Visitor so it can
// be driven the same way the encoder is driven directly when every
// operand is already an integer (the "resolving twice" idempotence
// property: re-resolving already-resolved IR is a no-op pass-through).
type Resolver struct {
	next ir.Visitor
	defs *defines.Table
	err  *pioasmerr.Error
}

// New builds a Resolver that resolves operands against defs and forwards
// resolved instructions to next.
func New(next ir.Visitor, defs *defines.Table) *Resolver {
	return &Resolver{next: next, defs: defs}
}

// Err returns the first resolution error, if any.
func (r *Resolver) Err() *pioasmerr.Error {
	return r.err
}

func (r *Resolver) lookup(name string) (int32, *pioasmerr.Error) {
	return r.defs.Resolve(name)
}

func (r *Resolver) resolve(v ir.Value) ir.Value {
	if r.err != nil {
		return v
	}
	if v.Expr != nil {
		n, err := v.Expr.Eval(r.lookup)
		if err != nil {
			r.err = err
			return ir.Int(0)
		}
		return ir.Int(n)
	}
	if v.IsSymbol {
		n, err := r.defs.Resolve(v.Symbol)
		if err != nil {
			r.err = err
			return ir.Int(0)
		}
		return ir.Int(n)
	}
	return v
}

func (r *Resolver) Jmp(cond ir.Cond, target ir.Value) {
	r.next.Jmp(cond, r.resolve(target))
}

func (r *Resolver) Wait(polarity int, src ir.WaitSource, mod ir.IrqModifier, index ir.Value, rel bool) {
	r.next.Wait(polarity, src, mod, r.resolve(index), rel)
}

func (r *Resolver) In(src ir.InSource, count ir.Value) {
	r.next.In(src, r.resolve(count))
}

func (r *Resolver) Out(dst ir.OutDest, count ir.Value) {
	r.next.Out(dst, r.resolve(count))
}

func (r *Resolver) Push(ifFull bool, block bool) {
	r.next.Push(ifFull, block)
}

func (r *Resolver) Pull(ifEmpty bool, block bool) {
	r.next.Pull(ifEmpty, block)
}

func (r *Resolver) Mov(dst ir.MovDest, op ir.MovOp, src ir.MovSource) {
	r.next.Mov(dst, op, src)
}

func (r *Resolver) Irq(action ir.IrqAction, mod ir.IrqModifier, rel bool, index ir.Value) {
	r.next.Irq(action, mod, rel, r.resolve(index))
}

func (r *Resolver) Set(dst ir.SetDest, value ir.Value) {
	r.next.Set(dst, r.resolve(value))
}

func (r *Resolver) Nop() {
	r.next.Nop()
}

func (r *Resolver) Word(value ir.Value) {
	r.next.Word(r.resolve(value))
}

func (r *Resolver) Delay(value ir.Value) {
	r.next.Delay(r.resolve(value))
}

func (r *Resolver) Side(value ir.Value) {
	r.next.Side(r.resolve(value))
}

var _ ir.Visitor = (*Resolver)(nil)
