package ir_test

import (
	"testing"

	"github.com/dcrockford/pioasm/ir"
	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/stretchr/testify/require"
)

func noLookup(name string) (int32, *pioasmerr.Error) {
	return 0, pioasmerr.NewNoPos(pioasmerr.NotDefined, "unexpected lookup of %q", name)
}

func TestExprInt_Eval(t *testing.T) {
	n, err := ir.ExprInt(42).Eval(noLookup)
	require.Nil(t, err)
	require.Equal(t, int32(42), n)
}

func TestExprSymbol_Eval(t *testing.T) {
	lookup := func(name string) (int32, *pioasmerr.Error) {
		require.Equal(t, "FOO", name)
		return 7, nil
	}
	n, err := ir.ExprSymbol("FOO").Eval(lookup)
	require.Nil(t, err)
	require.Equal(t, int32(7), n)
}

func TestExprUnary_Neg(t *testing.T) {
	n, err := ir.ExprUnary{Op: ir.UnaryNeg, X: ir.ExprInt(5)}.Eval(noLookup)
	require.Nil(t, err)
	require.Equal(t, int32(-5), n)
}

func TestExprUnary_Invert(t *testing.T) {
	n, err := ir.ExprUnary{Op: ir.UnaryInvert, X: ir.ExprInt(0)}.Eval(noLookup)
	require.Nil(t, err)
	require.Equal(t, int32(-1), n)
}

func TestExprUnary_Reverse(t *testing.T) {
	n, err := ir.ExprUnary{Op: ir.UnaryReverse, X: ir.ExprInt(1)}.Eval(noLookup)
	require.Nil(t, err)
	require.Equal(t, int32(1)<<31, n)
}

func TestExprBinary_Arithmetic(t *testing.T) {
	cases := []struct {
		op       ir.BinaryOp
		l, r     int32
		expected int32
	}{
		{ir.BinAdd, 3, 4, 7},
		{ir.BinSub, 10, 3, 7},
		{ir.BinMul, 6, 7, 42},
		{ir.BinDiv, 20, 4, 5},
		{ir.BinMod, 20, 6, 2},
		{ir.BinAnd, 0b1100, 0b1010, 0b1000},
		{ir.BinOr, 0b1100, 0b1010, 0b1110},
		{ir.BinEq, 5, 5, 1},
		{ir.BinNeq, 5, 6, 1},
		{ir.BinLt, 3, 5, 1},
		{ir.BinShl, 1, 4, 16},
		{ir.BinShr, 16, 4, 1},
	}
	for _, c := range cases {
		n, err := ir.ExprBinary{Op: c.op, L: ir.ExprInt(c.l), R: ir.ExprInt(c.r)}.Eval(noLookup)
		require.Nil(t, err)
		require.Equal(t, c.expected, n, "op %v", c.op)
	}
}

func TestExprBinary_DivisionByZero(t *testing.T) {
	_, err := ir.ExprBinary{Op: ir.BinDiv, L: ir.ExprInt(1), R: ir.ExprInt(0)}.Eval(noLookup)
	require.NotNil(t, err)
	require.Equal(t, pioasmerr.BadExpression, err.Kind)
}

func TestExprBinary_ModuloByZero(t *testing.T) {
	_, err := ir.ExprBinary{Op: ir.BinMod, L: ir.ExprInt(1), R: ir.ExprInt(0)}.Eval(noLookup)
	require.NotNil(t, err)
	require.Equal(t, pioasmerr.BadExpression, err.Kind)
}

func TestExprBinary_Nested(t *testing.T) {
	// (2 + 3) * 4
	e := ir.ExprBinary{
		Op: ir.BinMul,
		L:  ir.ExprBinary{Op: ir.BinAdd, L: ir.ExprInt(2), R: ir.ExprInt(3)},
		R:  ir.ExprInt(4),
	}
	n, err := e.Eval(noLookup)
	require.Nil(t, err)
	require.Equal(t, int32(20), n)
}

func TestValue_String(t *testing.T) {
	require.Equal(t, "42", ir.Int(42).String())
	require.Equal(t, "FOO", ir.Sym("FOO").String())
	require.Equal(t, "(expr)", ir.ExprValue(ir.ExprInt(1)).String())
}

func TestExprUnary_PropagatesLookupError(t *testing.T) {
	_, err := ir.ExprUnary{Op: ir.UnaryNeg, X: ir.ExprSymbol("MISSING")}.Eval(noLookup)
	require.NotNil(t, err)
	require.Equal(t, pioasmerr.NotDefined, err.Kind)
}
