package ast

// Literal helpers.

func Int(value int32) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

// Expression helpers.

func ID(name string) *Variable {
	return NewVariable(name)
}

func Param(name string) *Parameter {
	return NewParameter(name)
}

func Print(value Term) *PrintExpression {
	return NewPrintExpression(value)
}

func Bin(lhs Term, op BinaryOp, rhs Term) *BinaryExpression {
	return NewBinaryExpression(lhs, op, rhs)
}

func If(condition, then, otherwise Term) *IfExpression {
	return NewIfExpression(condition, then, otherwise)
}

func Let(name string, value, next Term) *LetExpression {
	return NewLetExpression(Param(name), value, next)
}

func Fn(params []string, body Term) *FunctionLiteral {
	out := make([]*Parameter, 0, len(params))
	for _, name := range params {
		out = append(out, Param(name))
	}
	return NewFunctionLiteral(out, body)
}

func Call(callee Term, args ...Term) *FunctionCall {
	return NewFunctionCall(callee, args)
}

func CallNamed(name string, args ...Term) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

func Tup(first, second Term) *TupleLiteral {
	return NewTupleLiteral(first, second)
}

func First(value Term) *FirstExpression {
	return NewFirstExpression(value)
}

func Second(value Term) *SecondExpression {
	return NewSecondExpression(value)
}
