package interpreter

import (
	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/runtime"
)

// evaluateBinaryExpression evaluates both operands before applying the
// operator; And and Or do not short-circuit.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.Evaluate(expr.Lhs, env)
	if err != nil {
		return nil, err
	}
	right, err := i.Evaluate(expr.Rhs, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(expr, left, right)
}

func applyBinaryOperator(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	switch expr.Op {
	case ast.OpAdd:
		if l, r, ok := integerOperands(left, right); ok {
			return runtime.IntegerValue{Val: l + r}, nil
		}
		return runtime.StringValue{Val: runtime.FormatValue(left) + runtime.FormatValue(right)}, nil
	case ast.OpDiv, ast.OpRem:
		if isZero(right) {
			return nil, newDivisionByZero(expr, left, right)
		}
		l, r, ok := integerOperands(left, right)
		if !ok {
			return nil, newInvalidBinaryOperation(expr, left, right)
		}
		if expr.Op == ast.OpDiv {
			return runtime.IntegerValue{Val: l / r}, nil
		}
		return runtime.IntegerValue{Val: l % r}, nil
	case ast.OpSub, ast.OpMul:
		l, r, ok := integerOperands(left, right)
		if !ok {
			return nil, newInvalidBinaryOperation(expr, left, right)
		}
		if expr.Op == ast.OpSub {
			return runtime.IntegerValue{Val: l - r}, nil
		}
		return runtime.IntegerValue{Val: l * r}, nil
	case ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		l, r, ok := integerOperands(left, right)
		if !ok {
			return nil, newInvalidBinaryOperation(expr, left, right)
		}
		return runtime.BoolValue{Val: compareIntegers(expr.Op, l, r)}, nil
	case ast.OpAnd, ast.OpOr:
		l, lok := left.(runtime.BoolValue)
		r, rok := right.(runtime.BoolValue)
		if !lok || !rok {
			return nil, newInvalidBinaryOperation(expr, left, right)
		}
		if expr.Op == ast.OpAnd {
			return runtime.BoolValue{Val: l.Val && r.Val}, nil
		}
		return runtime.BoolValue{Val: l.Val || r.Val}, nil
	case ast.OpEq, ast.OpNeq:
		if !isScalar(left) {
			return nil, newInvalidBinaryOperation(expr, left, right)
		}
		equal, comparable := runtime.ValuesEqual(left, right)
		if !comparable {
			return nil, newInvalidBinaryOperation(expr, left, right)
		}
		if expr.Op == ast.OpNeq {
			equal = !equal
		}
		return runtime.BoolValue{Val: equal}, nil
	default:
		return nil, newInvalidBinaryOperation(expr, left, right)
	}
}

func integerOperands(left, right runtime.Value) (int32, int32, bool) {
	l, lok := left.(runtime.IntegerValue)
	r, rok := right.(runtime.IntegerValue)
	if !lok || !rok {
		return 0, 0, false
	}
	return l.Val, r.Val, true
}

func isZero(val runtime.Value) bool {
	n, ok := val.(runtime.IntegerValue)
	return ok && n.Val == 0
}

// isScalar reports whether val may take part in == and !=.
func isScalar(val runtime.Value) bool {
	switch val.(type) {
	case runtime.IntegerValue, runtime.BoolValue, runtime.StringValue:
		return true
	default:
		return false
	}
}

func compareIntegers(op ast.BinaryOp, l, r int32) bool {
	switch op {
	case ast.OpLt:
		return l < r
	case ast.OpGt:
		return l > r
	case ast.OpLte:
		return l <= r
	default:
		return l >= r
	}
}
