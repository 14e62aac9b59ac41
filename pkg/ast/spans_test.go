package ast

import (
	"reflect"
	"testing"
)

func TestParametersSpanCoversDeclaredParameters(t *testing.T) {
	fn := At(NewFunctionLiteral([]*Parameter{
		At(Param("a"), 4, 5),
		At(Param("b"), 7, 8),
		At(Param("c"), 10, 11),
	}, Int(1)), 0, 20)

	if got, want := fn.ParametersSpan(), (Span{Start: 4, End: 11}); got != want {
		t.Fatalf("parameters span mismatch: got %+v, want %+v", got, want)
	}
}

func TestParametersSpanWithoutParametersPointsAtKeyword(t *testing.T) {
	fn := At(Fn(nil, Int(1)), 12, 30)

	if got, want := fn.ParametersSpan(), (Span{Start: 12, End: 14}); got != want {
		t.Fatalf("parameters span mismatch: got %+v, want %+v", got, want)
	}
}

func TestSetSpanIgnoresNil(t *testing.T) {
	SetSpan(nil, Span{Start: 1, End: 2})

	node := Int(3)
	SetSpan(node, Span{Start: 1, End: 2, Filename: "a.rinha"})
	if got := node.Span(); got.Start != 1 || got.End != 2 || got.Filename != "a.rinha" {
		t.Fatalf("unexpected span %+v", got)
	}
}

func TestWalkVisitsInEvaluationOrder(t *testing.T) {
	program := Let("f",
		Fn([]string{"n"}, Bin(ID("n"), OpAdd, Int(1))),
		Print(Call(ID("f"), Tup(Int(1), Str("x")))),
	)

	var kinds []NodeType
	Walk(program, func(node Node) bool {
		kinds = append(kinds, node.NodeType())
		return true
	})

	expected := []NodeType{
		NodeLet, NodeParameter, NodeFunction, NodeParameter, NodeBinary, NodeVariable,
		NodeIntegerLiteral, NodePrint, NodeCall, NodeVariable, NodeTuple,
		NodeIntegerLiteral, NodeStringLiteral,
	}
	if !reflect.DeepEqual(kinds, expected) {
		t.Fatalf("walk order mismatch:\nexpected: %v\ngot: %v", expected, kinds)
	}
}

func TestWalkSkipsChildrenWhenVisitReturnsFalse(t *testing.T) {
	program := Tup(Fn([]string{"x"}, ID("x")), Int(2))

	count := 0
	Walk(program, func(node Node) bool {
		count++
		return node.NodeType() != NodeFunction
	})
	if count != 3 {
		t.Fatalf("expected 3 visited nodes, got %d", count)
	}
}

func TestOperatorSymbols(t *testing.T) {
	cases := map[BinaryOp]string{
		OpAdd: "+",
		OpRem: "%",
		OpNeq: "!=",
		OpGte: ">=",
		OpOr:  "||",
	}
	for op, want := range cases {
		if got := op.Symbol(); got != want {
			t.Fatalf("symbol for %s: expected %q, got %q", op, want, got)
		}
		if !op.IsValid() {
			t.Fatalf("expected %s to be valid", op)
		}
	}
	if BinaryOp("Pow").IsValid() {
		t.Fatalf("expected Pow to be rejected")
	}
}
