package runtime

import (
	"fmt"
	"strconv"

	"rinha/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindBool
	KindString
	KindTuple
	KindClosure
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindTuple:
		return "tuple"
	case KindClosure:
		return "closure"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int32
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Tuples & closures
//-----------------------------------------------------------------------------

type TupleValue struct {
	First  Value
	Second Value
}

func (v TupleValue) Kind() Kind { return KindTuple }

// ClosureValue pairs an unevaluated function literal with the environment it
// captured when the literal was evaluated.
type ClosureValue struct {
	Function *ast.FunctionLiteral
	Env      *Environment
}

func (v *ClosureValue) Kind() Kind { return KindClosure }

// Arity returns the number of declared parameters.
func (v *ClosureValue) Arity() int {
	if v == nil || v.Function == nil {
		return 0
	}
	return len(v.Function.Parameters)
}

const closurePlaceholder = "<#closure>"

// FormatValue renders a value the way `print` writes it.
func FormatValue(val Value) string {
	switch v := val.(type) {
	case IntegerValue:
		return strconv.FormatInt(int64(v.Val), 10)
	case BoolValue:
		return strconv.FormatBool(v.Val)
	case StringValue:
		return v.Val
	case TupleValue:
		return "(" + FormatValue(v.First) + ", " + FormatValue(v.Second) + ")"
	case *ClosureValue:
		return closurePlaceholder
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}

// ValuesEqual compares two values structurally. The second result is false
// when the pair is not comparable: different variants, or any closure.
func ValuesEqual(left, right Value) (bool, bool) {
	switch l := left.(type) {
	case IntegerValue:
		r, ok := right.(IntegerValue)
		if !ok {
			return false, false
		}
		return l.Val == r.Val, true
	case BoolValue:
		r, ok := right.(BoolValue)
		if !ok {
			return false, false
		}
		return l.Val == r.Val, true
	case StringValue:
		r, ok := right.(StringValue)
		if !ok {
			return false, false
		}
		return l.Val == r.Val, true
	case TupleValue:
		r, ok := right.(TupleValue)
		if !ok {
			return false, false
		}
		first, ok := ValuesEqual(l.First, r.First)
		if !ok {
			return false, false
		}
		second, ok := ValuesEqual(l.Second, r.Second)
		if !ok {
			return false, false
		}
		return first && second, true
	default:
		return false, false
	}
}
