// Package pioasmerr defines the single error kind produced anywhere in the
// pioasm core: scanning, parsing, resolving and encoding all fail through
// the same *Error type, distinguished only by its Kind.
package pioasmerr

import (
	"fmt"

	"github.com/dcrockford/pioasm/token"
)

// Kind distinguishes the sub-category of a failure. All kinds are fatal;
// none are recovered locally by the scanner, parser, resolver or encoder.
type Kind int

const (
	UnterminatedComment Kind = iota
	BadInput
	BadNumber
	NotAPrefixOperator
	NotAnInfixOperator
	ExpectedValue
	ExpectedToken
	InvalidOperand
	AlreadyDefined
	AlreadyAssigned
	NotDeclared
	ValueNotAssigned
	NotDefined
	OutOfRange
	ProgramTooLong
	InstructionOutsideProgram
	WrapAlreadyUsed
	WrapTargetAlreadyUsed
	InvalidSideSetConfig
	BadExpression
)

var kindNames = [...]string{
	"UnterminatedComment",
	"BadInput",
	"BadNumber",
	"NotAPrefixOperator",
	"NotAnInfixOperator",
	"ExpectedValue",
	"ExpectedToken",
	"InvalidOperand",
	"AlreadyDefined",
	"AlreadyAssigned",
	"NotDeclared",
	"ValueNotAssigned",
	"NotDefined",
	"OutOfRange",
	"ProgramTooLong",
	"InstructionOutsideProgram",
	"WrapAlreadyUsed",
	"WrapTargetAlreadyUsed",
	"InvalidSideSetConfig",
	"BadExpression",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is the PIOSyntaxError named throughout the spec: a kind, a human
// message, and a source position where one is available. A zero Pos (not
// token.Position.IsValid()) means the error is not tied to a source line,
// e.g. an encoder error raised from DSL-built IR.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is supports errors.Is(err, pioasmerr.New(SomeKind, token.Position{}, "")) style
// matching by Kind alone; callers typically compare via errors.As and Kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// New constructs an *Error with a source position.
func New(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// NewNoPos constructs an *Error with no source position, for failures that
// originate outside the scanner/parser (e.g. encoder errors from DSL-built
// IR, or Defines table operations performed directly by a host program).
func NewNoPos(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
