package parser

import (
	"sort"

	"github.com/dcrockford/pioasm/ir"
	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/dcrockford/pioasm/token"
)

// prefixFn parses a prefix position: a value leaf/unary operator (pushes
// onto the expression stack) or a statement starter — a directive, a
// mnemonic, a label, or a blank line (drives the sink directly and
// reports whether it fully consumed a statement through its Newline).
type prefixFn func(p *Parser, tok token.Token) (endedStatement bool, err *pioasmerr.Error)

// infixFn parses an infix operator: pops its left operand (already on the
// stack), recursively parses its right operand at one precedence above
// its own, and pushes the combined expression.
type infixFn func(p *Parser, opTok token.Token) *pioasmerr.Error

type rule struct {
	key    string // keyword text this row matches; "" for kind-keyed rows
	kind   token.Kind
	byKind bool
	prefix prefixFn
	infix  infixFn
	prec   Precedence
}

// keywordRules holds every row keyed by Keyword text, sorted ascending by
// key. Its sortedness is a checked invariant (see table_test.go and the
// init below), and lookups are by binary search, per the spec's explicit
// requirement for both the reserved-word table and this one.
var keywordRules []rule

// kindRules holds the rows keyed by token kind alone: Label, Newline,
// Number, Symbol.
var kindRules = map[token.Kind]rule{}

func registerKeyword(key string, prefix prefixFn, infix infixFn, prec Precedence) {
	keywordRules = append(keywordRules, rule{key: key, prefix: prefix, infix: infix, prec: prec})
}

func registerKind(kind token.Kind, prefix prefixFn, infix infixFn, prec Precedence) {
	kindRules[kind] = rule{kind: kind, byKind: true, prefix: prefix, infix: infix, prec: prec}
}

// init registers every keyword rule in one place, in the same hand-authored
// ascending order the check below verifies — mirroring reserved.go's
// sorted literal table rather than sorting the rows into place after the
// fact. Prefix/infix bodies are defined alongside the concern they belong
// to (directives.go, instructions.go, value.go); this table only wires
// their keyword text, precedence, and mutual ordering.
func init() {
	registerKeyword("!", prefixUnary(ir.UnaryInvert), nil, PrecUnary)
	registerKeyword("!=", nil, infixBinary(ir.BinNeq), PrecEquality)
	registerKeyword("%", nil, infixBinary(ir.BinMod), PrecFactor)
	registerKeyword("&", nil, infixBinary(ir.BinAnd), PrecAnd)
	registerKeyword("(", prefixParen, nil, PrecPrimary)
	registerKeyword("*", nil, infixBinary(ir.BinMul), PrecFactor)
	registerKeyword("+", nil, infixBinary(ir.BinAdd), PrecTerm)
	registerKeyword("-", prefixUnary(ir.UnaryNeg), infixBinary(ir.BinSub), PrecTerm)
	registerKeyword(".", prefixDot, nil, PrecStmt)
	registerKeyword("/", nil, infixBinary(ir.BinDiv), PrecFactor)
	registerKeyword("::", prefixUnary(ir.UnaryReverse), nil, PrecUnary)
	registerKeyword("<", nil, infixBinary(ir.BinLt), PrecCompare)
	registerKeyword("<<", nil, infixBinary(ir.BinShl), PrecShift)
	registerKeyword("==", nil, infixBinary(ir.BinEq), PrecEquality)
	registerKeyword(">>", nil, infixBinary(ir.BinShr), PrecShift)
	registerKeyword("in", prefixIn, nil, PrecStmt)
	registerKeyword("irq", prefixIrq, nil, PrecStmt)
	registerKeyword("jmp", prefixJmp, nil, PrecStmt)
	registerKeyword("mov", prefixMov, nil, PrecStmt)
	registerKeyword("nop", prefixNop, nil, PrecStmt)
	registerKeyword("out", prefixOut, nil, PrecStmt)
	registerKeyword("public", prefixPublic, nil, PrecStmt)
	registerKeyword("pull", prefixPull, nil, PrecStmt)
	registerKeyword("push", prefixPush, nil, PrecStmt)
	registerKeyword("set", prefixSet, nil, PrecStmt)
	registerKeyword("wait", prefixWait, nil, PrecStmt)
	registerKeyword("|", nil, infixBinary(ir.BinOr), PrecOr)
	registerKeyword("~", prefixUnary(ir.UnaryInvert), nil, PrecUnary)

	if !sort.SliceIsSorted(keywordRules, func(i, j int) bool { return keywordRules[i].key < keywordRules[j].key }) {
		panic("parser: keywordRules table is not sorted")
	}
	seen := map[string]bool{}
	for _, r := range keywordRules {
		if seen[r.key] {
			panic("parser: duplicate keyword rule for " + r.key)
		}
		seen[r.key] = true
	}
}

// lookupRule returns the rule for tok, or nil if tok has neither a prefix
// nor an infix handler (NotAPrefixOperator/NotAnInfixOperator territory).
func lookupRule(tok token.Token) *rule {
	switch tok.Kind {
	case token.Keyword:
		i := sort.Search(len(keywordRules), func(i int) bool { return keywordRules[i].key >= tok.Text })
		if i < len(keywordRules) && keywordRules[i].key == tok.Text {
			return &keywordRules[i]
		}
		return nil
	default:
		if r, ok := kindRules[tok.Kind]; ok {
			return &r
		}
		return nil
	}
}
