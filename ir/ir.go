// Package ir defines the instruction intermediate representation the
// parser builds and the resolver/encoder/printer walk via the Visitor
// interface.
package ir

import "github.com/dcrockford/pioasm/pioasmerr"

// Value is a number, a symbol awaiting resolution, or a general
// parenthesized expression, per the grammar's "Value (used by
// instruction operand slots)" production. Exactly one of Expr, IsSymbol,
// or the plain Int case applies; Expr takes precedence when non-nil.
type Value struct {
	IsSymbol bool
	Int      int32
	Symbol   string
	Expr     Expr
}

// Int wraps an already-resolved integer value.
func Int(n int32) Value { return Value{Int: n} }

// Sym wraps a symbol reference to be resolved later.
func Sym(name string) Value { return Value{IsSymbol: true, Symbol: name} }

// ExprValue wraps a general expression, used for the "( expr )" operand
// form.
func ExprValue(e Expr) Value { return Value{Expr: e} }

func (v Value) String() string {
	if v.Expr != nil {
		return "(expr)"
	}
	if v.IsSymbol {
		return v.Symbol
	}
	return itoa(int(v.Int))
}

// Lookup resolves a symbol name to its integer value; implemented by the
// defines table (see the resolver package), kept here as a plain function
// type so this package need not import defines.
type Lookup func(name string) (int32, *pioasmerr.Error)

// Expr is a node of the general expression grammar used by .define and
// parenthesized operand values: integer and symbol leaves, unary
// negation/bit-invert/bit-reverse, and binary + - * / & | == != < << >>.
// All arithmetic is two's-complement 32-bit; division by zero is
// BadExpression.
type Expr interface {
	Eval(lookup Lookup) (int32, *pioasmerr.Error)
}

type ExprInt int32

func (e ExprInt) Eval(Lookup) (int32, *pioasmerr.Error) { return int32(e), nil }

type ExprSymbol string

func (e ExprSymbol) Eval(lookup Lookup) (int32, *pioasmerr.Error) { return lookup(string(e)) }

// UnaryOp identifies a unary expression operator.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryInvert
	UnaryReverse
)

type ExprUnary struct {
	Op UnaryOp
	X  Expr
}

func (e ExprUnary) Eval(lookup Lookup) (int32, *pioasmerr.Error) {
	x, err := e.X.Eval(lookup)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case UnaryNeg:
		return -x, nil
	case UnaryInvert:
		return ^x, nil
	case UnaryReverse:
		return int32(reverse32(uint32(x))), nil
	default:
		return 0, pioasmerr.NewNoPos(pioasmerr.BadExpression, "unknown unary operator")
	}
}

func reverse32(x uint32) uint32 {
	var r uint32
	for i := 0; i < 32; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// BinaryOp identifies a binary expression operator.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinAnd
	BinOr
	BinEq
	BinNeq
	BinLt
	BinShl
	BinShr
)

type ExprBinary struct {
	Op   BinaryOp
	L, R Expr
}

func (e ExprBinary) Eval(lookup Lookup) (int32, *pioasmerr.Error) {
	l, err := e.L.Eval(lookup)
	if err != nil {
		return 0, err
	}
	r, err := e.R.Eval(lookup)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case BinAdd:
		return l + r, nil
	case BinSub:
		return l - r, nil
	case BinMul:
		return l * r, nil
	case BinDiv:
		if r == 0 {
			return 0, pioasmerr.NewNoPos(pioasmerr.BadExpression, "division by zero")
		}
		return l / r, nil
	case BinMod:
		if r == 0 {
			return 0, pioasmerr.NewNoPos(pioasmerr.BadExpression, "division by zero")
		}
		return l % r, nil
	case BinAnd:
		return l & r, nil
	case BinOr:
		return l | r, nil
	case BinEq:
		return boolToInt32(l == r), nil
	case BinNeq:
		return boolToInt32(l != r), nil
	case BinLt:
		return boolToInt32(l < r), nil
	case BinShl:
		return l << uint32(r), nil
	case BinShr:
		return l >> uint32(r), nil
	default:
		return 0, pioasmerr.NewNoPos(pioasmerr.BadExpression, "unknown binary operator")
	}
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Cond is a jmp condition.
type Cond int

const (
	CondAlways Cond = iota
	CondNotX
	CondXDec
	CondNotY
	CondYDec
	CondXNeY
	CondPin
	CondNotOSRE
)

// WaitSource names the source operand of a wait instruction.
type WaitSource int

const (
	WaitGPIO WaitSource = iota
	WaitPin
	WaitIRQ
	WaitJmpPin
)

// IrqModifier selects prev/next for RP2350 irq sources, or none.
type IrqModifier int

const (
	IrqModNone IrqModifier = iota
	IrqModPrev
	IrqModNext
)

// InSource names the source operand of an in instruction.
type InSource int

const (
	InPins InSource = iota
	InX
	InY
	InNull
	InISR
	InOSR
)

// OutDest names the destination operand of an out instruction.
type OutDest int

const (
	OutPins OutDest = iota
	OutX
	OutY
	OutNull
	OutPinDirs
	OutPC
	OutISR
	OutOSR
)

// MovDest names the destination operand of a mov instruction.
type MovDest int

const (
	MovDestPins MovDest = iota
	MovDestX
	MovDestY
	MovDestExec
	MovDestPC
	MovDestISR
	MovDestOSR
)

// MovSource names the source operand of a mov instruction.
type MovSource int

const (
	MovSrcPins MovSource = iota
	MovSrcX
	MovSrcY
	MovSrcNull
	MovSrcStatus
	MovSrcISR
	MovSrcOSR
)

// MovOp is the unary transform mov applies to its source: none, bit
// inversion ("~"/"!"), or bit reversal ("::").
type MovOp int

const (
	MovOpNone MovOp = iota
	MovOpInvert
	MovOpReverse
)

// IrqAction is the action verb of an irq instruction.
type IrqAction int

const (
	IrqSet IrqAction = iota
	IrqNowait
	IrqWait
	IrqClear
)

// SetDest names the destination operand of a set instruction.
type SetDest int

const (
	SetDestPins SetDest = iota
	SetDestX
	SetDestY
	SetDestPinDirs
)

// Modifiers is embedded in every instruction node: the optional side-set
// value and delay cycle count that may follow any mnemonic.
type Modifiers struct {
	Side  *Value
	Delay *Value
}

// Node is one entry of a program's instruction list: either a real PIO
// instruction (implements Instruction) or a pseudo-node recorded directly
// on the program (WrapTarget, Wrap, Origin).
type Node interface {
	isNode()
}

// Instruction is the subset of Node that the Visitor contract applies to:
// the ten mnemonics plus the Word pseudo-instruction.
type Instruction interface {
	Node
	// Accept invokes the mnemonic method on v first, then Delay, then
	// Side, per the canonical visit order the encoder relies on to OR
	// side/delay bits onto the last emitted opcode.
	Accept(v Visitor)
}

// Visitor abstracts every downstream consumer of the IR: the encoder, the
// resolver (which wraps another Visitor), and any future printer. Methods
// correspond one to one with the mnemonics plus side/delay modifiers.
type Visitor interface {
	Jmp(cond Cond, target Value)
	Wait(polarity int, src WaitSource, mod IrqModifier, index Value, rel bool)
	In(src InSource, count Value)
	Out(dst OutDest, count Value)
	Push(ifFull bool, block bool)
	Pull(ifEmpty bool, block bool)
	Mov(dst MovDest, op MovOp, src MovSource)
	Irq(action IrqAction, mod IrqModifier, rel bool, index Value)
	Set(dst SetDest, value Value)
	Nop()
	Word(value Value)
	Delay(value Value)
	Side(value Value)
}

func visitModifiers(v Visitor, m Modifiers) {
	if m.Delay != nil {
		v.Delay(*m.Delay)
	}
	if m.Side != nil {
		v.Side(*m.Side)
	}
}

type JmpNode struct {
	Modifiers
	Cond   Cond
	Target Value
}

func (*JmpNode) isNode() {}
func (n *JmpNode) Accept(v Visitor) {
	v.Jmp(n.Cond, n.Target)
	visitModifiers(v, n.Modifiers)
}

type WaitNode struct {
	Modifiers
	Polarity int
	Source   WaitSource
	IrqMod   IrqModifier
	Index    Value
	Rel      bool
}

func (*WaitNode) isNode() {}
func (n *WaitNode) Accept(v Visitor) {
	v.Wait(n.Polarity, n.Source, n.IrqMod, n.Index, n.Rel)
	visitModifiers(v, n.Modifiers)
}

type InNode struct {
	Modifiers
	Source InSource
	Count  Value
}

func (*InNode) isNode() {}
func (n *InNode) Accept(v Visitor) {
	v.In(n.Source, n.Count)
	visitModifiers(v, n.Modifiers)
}

type OutNode struct {
	Modifiers
	Dest  OutDest
	Count Value
}

func (*OutNode) isNode() {}
func (n *OutNode) Accept(v Visitor) {
	v.Out(n.Dest, n.Count)
	visitModifiers(v, n.Modifiers)
}

type PushNode struct {
	Modifiers
	IfFull bool
	Block  bool
}

func (*PushNode) isNode() {}
func (n *PushNode) Accept(v Visitor) {
	v.Push(n.IfFull, n.Block)
	visitModifiers(v, n.Modifiers)
}

type PullNode struct {
	Modifiers
	IfEmpty bool
	Block   bool
}

func (*PullNode) isNode() {}
func (n *PullNode) Accept(v Visitor) {
	v.Pull(n.IfEmpty, n.Block)
	visitModifiers(v, n.Modifiers)
}

type MovNode struct {
	Modifiers
	Dest   MovDest
	Op     MovOp
	Source MovSource
}

func (*MovNode) isNode() {}
func (n *MovNode) Accept(v Visitor) {
	v.Mov(n.Dest, n.Op, n.Source)
	visitModifiers(v, n.Modifiers)
}

type IrqNode struct {
	Modifiers
	Action IrqAction
	Mod    IrqModifier
	Rel    bool
	Index  Value
}

func (*IrqNode) isNode() {}
func (n *IrqNode) Accept(v Visitor) {
	v.Irq(n.Action, n.Mod, n.Rel, n.Index)
	visitModifiers(v, n.Modifiers)
}

type SetNode struct {
	Modifiers
	Dest  SetDest
	Value Value
}

func (*SetNode) isNode() {}
func (n *SetNode) Accept(v Visitor) {
	v.Set(n.Dest, n.Value)
	visitModifiers(v, n.Modifiers)
}

type NopNode struct {
	Modifiers
}

func (*NopNode) isNode() {}
func (n *NopNode) Accept(v Visitor) {
	v.Nop()
	visitModifiers(v, n.Modifiers)
}

type WordNode struct {
	Modifiers
	Value Value
}

func (*WordNode) isNode() {}
func (n *WordNode) Accept(v Visitor) {
	v.Word(n.Value)
	visitModifiers(v, n.Modifiers)
}

// WrapTargetNode and WrapNode record that .wrap_target/.wrap appeared at
// the current instruction index; the assembler facade applies them
// directly to the Program rather than routing them through Visitor.
type WrapTargetNode struct{}

func (WrapTargetNode) isNode() {}

type WrapNode struct{}

func (WrapNode) isNode() {}

// OriginNode records a .origin directive's operand.
type OriginNode struct {
	Address int
}

func (OriginNode) isNode() {}
