package interpreter

import (
	"fmt"
	"io"

	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluatePrint(expr *ast.PrintExpression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.Evaluate(expr.Value, env)
	if err != nil {
		return nil, err
	}
	text := runtime.FormatValue(val)
	if i.printNewline {
		text += "\n"
	}
	if _, err := io.WriteString(i.stdout, text); err != nil {
		return nil, fmt.Errorf("interpreter: write output: %w", err)
	}
	return val, nil
}

func (i *Interpreter) evaluateIf(expr *ast.IfExpression, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.Evaluate(expr.Condition, env)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(runtime.BoolValue)
	if !ok {
		return nil, newArgumentError(fmt.Sprintf("condition must be a bool, got %s", cond.Kind()), expr.Condition.Span())
	}
	if b.Val {
		return i.Evaluate(expr.Then, env)
	}
	return i.Evaluate(expr.Otherwise, env)
}

// evaluateLet binds into the current frame, so every closure that captured
// this frame observes the binding, including the bound value itself.
func (i *Interpreter) evaluateLet(expr *ast.LetExpression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.Evaluate(expr.Value, env)
	if err != nil {
		return nil, err
	}
	env.Set(expr.Name.Text, val)
	return i.Evaluate(expr.Next, env)
}

func (i *Interpreter) evaluateTuple(expr *ast.TupleLiteral, env *runtime.Environment) (runtime.Value, error) {
	first, err := i.Evaluate(expr.First, env)
	if err != nil {
		return nil, err
	}
	second, err := i.Evaluate(expr.Second, env)
	if err != nil {
		return nil, err
	}
	return runtime.TupleValue{First: first, Second: second}, nil
}

// evaluateProjection reports a non-tuple operand at the operand's span.
func (i *Interpreter) evaluateProjection(operand ast.Term, first bool, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.Evaluate(operand, env)
	if err != nil {
		return nil, err
	}
	tuple, ok := val.(runtime.TupleValue)
	if !ok {
		return nil, newArgumentError("not a tuple", operand.Span())
	}
	if first {
		return tuple.First, nil
	}
	return tuple.Second, nil
}
