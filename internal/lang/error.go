package lang

import (
	"fmt"

	"ndca/internal/source"
)

// Error is a language error: a code, a rendered message, and an optional
// span pointing back into the rule source. The zero Span with HasSpan=false
// means the error has no source attribution.
type Error struct {
	Code    Code
	Message string
	Span    source.Span
	HasSpan bool
	Err     error // wrapped foreign error, set only for CodeInternal
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes a wrapped foreign error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithSpan returns a copy of the error attributed to the given span.
// Errors that already carry a span keep the original attribution.
func (e *Error) WithSpan(span source.Span) *Error {
	if e.HasSpan {
		return e
	}
	out := *e
	out.Span = span
	out.HasSpan = true
	return &out
}

func spanned(code Code, span source.Span, msg string) *Error {
	return &Error{Code: code, Message: msg, Span: span, HasSpan: true}
}

// Unimplemented reports a recognized-but-unimplemented construct.
func Unimplemented(span source.Span) *Error {
	return spanned(CodeUnimplemented, span, "This feature is unimplemented")
}

// Internal reports a toolchain bug. Internal errors are always surfaced,
// never downgraded: they mean an upstream stage broke its contract.
func Internal(msg string) *Error {
	return &Error{
		Code:    CodeInternal,
		Message: fmt.Sprintf("Internal error: %s\nThis is a bug in NDCA, not in your rule. Please report it!", msg),
	}
}

// Internalf is Internal with formatting.
func Internalf(format string, args ...any) *Error {
	return Internal(fmt.Sprintf(format, args...))
}

// WrapInternal wraps a foreign error value opaquely as an internal error.
func WrapInternal(err error) *Error {
	e := Internalf("%v", err)
	e.Err = err
	return e
}

// UnknownSymbol reports an unrecognized character or symbol.
func UnknownSymbol(span source.Span) *Error {
	return spanned(CodeUnknownSymbol, span, "Unknown symbol")
}

// Unterminated reports a construct that never ends (string, block comment, ...).
func Unterminated(span source.Span, what string) *Error {
	return spanned(CodeUnterminated, span, fmt.Sprintf("This %s never ends", what))
}

// Unmatched reports an opening delimiter with no matching closer.
func Unmatched(span source.Span, open, close rune) *Error {
	return spanned(CodeUnmatched, span, fmt.Sprintf("This '%c' has no matching '%c'", open, close))
}

// Expected reports that the parser wanted something it did not find.
func Expected(span source.Span, what string) *Error {
	return spanned(CodeExpected, span, fmt.Sprintf("Expected %s", what))
}

// TopLevelNonDirective reports a non-directive at the top level of a rule.
func TopLevelNonDirective(span source.Span) *Error {
	return spanned(CodeTopLevelNonDirective, span, "Only directives may appear at the top level of a rule")
}

// InvalidDirectiveName reports an unrecognized directive.
func InvalidDirectiveName(span source.Span) *Error {
	return spanned(CodeInvalidDirectiveName, span, "Invalid directive name")
}

// MissingTransitionFunction reports a rule with no @transition directive.
func MissingTransitionFunction() *Error {
	return &Error{Code: CodeMissingTransitionFunction, Message: "Missing transition function"}
}

// MultipleTransitionFunctions reports a rule with more than one @transition
// directive; the span points at the second one.
func MultipleTransitionFunctions(span source.Span) *Error {
	return spanned(CodeMultipleTransitionFunctions, span, "Multiple transition functions")
}

// TypeMismatch reports a type error at the given span.
func TypeMismatch(span source.Span, expected, got Type) *Error {
	return spanned(CodeTypeError, span, fmt.Sprintf("Type error: expected %s but got %s", expected, got))
}

// UninitializedVariable reports a read of a variable that might not have
// been assigned yet.
func UninitializedVariable(span source.Span) *Error {
	return spanned(CodeUninitializedVariable, span, "This variable might not be initialized before use")
}

// OverflowDuringNegation reports signed overflow while negating.
func OverflowDuringNegation(span source.Span) *Error {
	return spanned(CodeIntegerOverflowDuringNegation, span, "Integer overflow during negation")
}

// OverflowDuringAddition reports signed overflow while adding.
func OverflowDuringAddition(span source.Span) *Error {
	return spanned(CodeIntegerOverflowDuringAddition, span, "Integer overflow during addition")
}

// OverflowDuringSubtraction reports signed overflow while subtracting.
func OverflowDuringSubtraction(span source.Span) *Error {
	return spanned(CodeIntegerOverflowDuringSubtraction, span, "Integer overflow during subtraction")
}

// OverflowDuringMultiplication reports signed overflow while multiplying.
func OverflowDuringMultiplication(span source.Span) *Error {
	return spanned(CodeIntegerOverflowDuringMultiplication, span, "Integer overflow during multiplication")
}

// DivideByZero reports an integer division or remainder with zero divisor.
func DivideByZero(span source.Span) *Error {
	return spanned(CodeDivideByZero, span, "Divide by zero")
}

// CellStateOutOfRange reports a cell state id outside [0, state count).
func CellStateOutOfRange(span source.Span) *Error {
	return spanned(CodeCellStateOutOfRange, span, "Cell state out of range")
}
