package parser

import (
	"github.com/dcrockford/pioasm/ir"
	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/dcrockford/pioasm/token"
)

// parseValue parses one general expression at PrecExpr and below, per the
// grammar's "Value" production (Number, Symbol, unary/binary expression, or
// a parenthesized sub-expression), returning it as an ir.Value usable in
// any operand slot.
func (p *Parser) parseValue() (ir.Value, *pioasmerr.Error) {
	base := len(p.exprStack)
	if err := p.parsePrecedence(PrecExpr); err != nil {
		return ir.Value{}, err
	}
	if len(p.exprStack) != base+1 {
		return ir.Value{}, pioasmerr.New(pioasmerr.ExpectedValue, p.cur.Pos, "expected a value")
	}
	return exprToValue(p.popExpr()), nil
}

// exprToValue collapses a bare literal/symbol expression leaf back to the
// simple Value forms, keeping ir.ExprValue reserved for genuine compound
// expressions.
func exprToValue(e ir.Expr) ir.Value {
	switch v := e.(type) {
	case ir.ExprInt:
		return ir.Int(int32(v))
	case ir.ExprSymbol:
		return ir.Sym(string(v))
	default:
		return ir.ExprValue(e)
	}
}

func prefixNumber(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	p.pushExpr(ir.ExprInt(int32(tok.Value)))
	return false, nil
}

func prefixSymbol(p *Parser, tok token.Token) (bool, *pioasmerr.Error) {
	p.pushExpr(ir.ExprSymbol(tok.Text))
	return false, nil
}

// prefixParen parses "( expr )"; the opening paren is already consumed by
// the driver, so only the inner expression and the closing paren remain.
func prefixParen(p *Parser, _ token.Token) (bool, *pioasmerr.Error) {
	if err := p.parsePrecedence(PrecExpr); err != nil {
		return false, err
	}
	if err := p.expectKeyword(")"); err != nil {
		return false, err
	}
	return false, nil
}

func prefixUnary(op ir.UnaryOp) prefixFn {
	return func(p *Parser, _ token.Token) (bool, *pioasmerr.Error) {
		if err := p.parsePrecedence(PrecUnary); err != nil {
			return false, err
		}
		p.pushExpr(ir.ExprUnary{Op: op, X: p.popExpr()})
		return false, nil
	}
}

func infixBinary(op ir.BinaryOp) infixFn {
	return func(p *Parser, _ token.Token) *pioasmerr.Error {
		prec := PrecPrimary
		if rule := lookupRule(token.Token{Kind: token.Keyword, Text: binaryOpKey[op]}); rule != nil {
			prec = rule.prec
		}
		lhs := p.popExpr()
		if err := p.parsePrecedence(prec + 1); err != nil {
			return err
		}
		rhs := p.popExpr()
		p.pushExpr(ir.ExprBinary{Op: op, L: lhs, R: rhs})
		return nil
	}
}

// binaryOpKey maps each BinaryOp back to its operator keyword text, used by
// infixBinary to recover its own precedence for left-associative recursion
// without hard-coding it twice.
var binaryOpKey = map[ir.BinaryOp]string{
	ir.BinAdd: "+",
	ir.BinSub: "-",
	ir.BinMul: "*",
	ir.BinDiv: "/",
	ir.BinMod: "%",
	ir.BinAnd: "&",
	ir.BinOr:  "|",
	ir.BinEq:  "==",
	ir.BinNeq: "!=",
	ir.BinLt:  "<",
	ir.BinShl: "<<",
	ir.BinShr: ">>",
}

// Every operator's keyword rule ("-", "~", "!", "::", "+", and so on) is
// registered centrally in table.go, alongside every other keyword rule,
// so the table's sortedness check sees the complete set in one place.
// "-" there is wired as both the unary negation prefix and the binary
// subtraction infix; "~" and "!" are aliases for bitwise invert.
func init() {
	registerKind(token.Number, prefixNumber, nil, PrecPrimary)
	registerKind(token.Symbol, prefixSymbol, nil, PrecPrimary)
}
