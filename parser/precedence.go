package parser

// Precedence orders the binding power of infix operators, low to high, per
// the ladder: STMT < NONE < ASSIGN < OR < AND < EQUALITY < COMPARE < SHIFT
// < TERM < FACTOR < UNARY < PRIMARY. EXPR aliases OR: general expressions
// parse at OR precedence and below.
type Precedence int

const (
	PrecStmt Precedence = iota
	PrecNone
	PrecAssign
	PrecOr // PrecExpr aliases PrecOr
	PrecAnd
	PrecEquality
	PrecCompare
	PrecShift
	PrecTerm
	PrecFactor
	PrecUnary
	PrecPrimary
)

const PrecExpr = PrecOr
