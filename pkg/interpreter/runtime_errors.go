package interpreter

import (
	"fmt"

	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/runtime"
)

// ErrorKind classifies evaluation failures. The values double as diagnostic
// codes.
type ErrorKind string

const (
	ArgumentError            ErrorKind = "argument-error"
	UnknownIdentifier        ErrorKind = "unknown-identifier"
	InvalidBinaryOperation   ErrorKind = "invalid-binary-operation"
	DivisionByZero           ErrorKind = "division-by-zero"
	InvalidNumberOfArguments ErrorKind = "invalid-number-of-arguments"
)

// RuntimeError is the single error type produced by evaluation. Only the
// fields relevant to Kind are populated.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Span    ast.Span

	// UnknownIdentifier
	Variable *ast.Variable
	// InvalidBinaryOperation and DivisionByZero
	Op      ast.BinaryOp
	Left    runtime.Kind
	Right   runtime.Kind
	Divisor ast.Span
	// InvalidNumberOfArguments
	Function *ast.FunctionLiteral
	Call     *ast.FunctionCall

	// CallStack lists the spans of the calls the error unwound through,
	// innermost first.
	CallStack []ast.Span
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Label pairs a span with the text shown under it.
type Label struct {
	Span    ast.Span
	Message string
}

// Labels returns the ordered spans a diagnostic should point at. The first
// label is the primary one.
func (e *RuntimeError) Labels() []Label {
	switch e.Kind {
	case UnknownIdentifier:
		span := e.Span
		if e.Variable != nil {
			span = e.Variable.Span()
		}
		return []Label{{Span: span, Message: e.Message}}
	case DivisionByZero:
		return []Label{
			{Span: e.Span, Message: e.Message},
			{Span: e.Divisor, Message: "divisor is zero"},
		}
	case InvalidNumberOfArguments:
		labels := make([]Label, 0, 2)
		if e.Call != nil {
			labels = append(labels, Label{Span: e.Call.Span(), Message: "arguments supplied"})
		} else {
			labels = append(labels, Label{Span: e.Span, Message: "arguments supplied"})
		}
		if e.Function != nil {
			labels = append(labels, Label{Span: e.Function.ParametersSpan(), Message: "parameters expected"})
		}
		return labels
	default:
		return []Label{{Span: e.Span, Message: e.Message}}
	}
}

func newArgumentError(message string, span ast.Span) *RuntimeError {
	return &RuntimeError{Kind: ArgumentError, Message: message, Span: span}
}

func newUnknownIdentifier(v *ast.Variable) *RuntimeError {
	return &RuntimeError{
		Kind:     UnknownIdentifier,
		Message:  fmt.Sprintf("unknown identifier '%s'", v.Text),
		Span:     v.Span(),
		Variable: v,
	}
}

func newInvalidBinaryOperation(expr *ast.BinaryExpression, left, right runtime.Value) *RuntimeError {
	return &RuntimeError{
		Kind:    InvalidBinaryOperation,
		Message: fmt.Sprintf("invalid binary operation: cannot apply '%s' to %s and %s", expr.Op.Symbol(), left.Kind(), right.Kind()),
		Span:    expr.Span(),
		Op:      expr.Op,
		Left:    left.Kind(),
		Right:   right.Kind(),
	}
}

func newDivisionByZero(expr *ast.BinaryExpression, left, right runtime.Value) *RuntimeError {
	return &RuntimeError{
		Kind:    DivisionByZero,
		Message: "division by zero",
		Span:    expr.Span(),
		Op:      expr.Op,
		Left:    left.Kind(),
		Right:   right.Kind(),
		Divisor: expr.Rhs.Span(),
	}
}

func newInvalidNumberOfArguments(fn *ast.FunctionLiteral, call *ast.FunctionCall) *RuntimeError {
	return &RuntimeError{
		Kind:     InvalidNumberOfArguments,
		Message:  fmt.Sprintf("invalid number of arguments: expected %d, got %d", len(fn.Parameters), len(call.Arguments)),
		Span:     call.Span(),
		Function: fn,
		Call:     call,
	}
}
