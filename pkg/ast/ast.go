package ast

import "fmt"

// NodeType mirrors the `kind` tag of the serialized Rinha tree.
type NodeType string

const (
	NodeIntegerLiteral NodeType = "Int"
	NodeStringLiteral  NodeType = "Str"
	NodeBooleanLiteral NodeType = "Bool"
	NodePrint          NodeType = "Print"
	NodeBinary         NodeType = "Binary"
	NodeIf             NodeType = "If"
	NodeLet            NodeType = "Let"
	NodeVariable       NodeType = "Var"
	NodeFunction       NodeType = "Function"
	NodeCall           NodeType = "Call"
	NodeTuple          NodeType = "Tuple"
	NodeFirst          NodeType = "First"
	NodeSecond         NodeType = "Second"
	NodeParameter      NodeType = "Parameter"
	NodeFile           NodeType = "File"
)

// Span is a half-open byte range [Start, End) into the original source text.
type Span struct {
	Start    int
	End      int
	Filename string
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s[%d..%d]", s.Filename, s.Start, s.End)
	}
	return fmt.Sprintf("[%d..%d]", s.Start, s.End)
}

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type     NodeType `json:"kind"`
	Location Span     `json:"location"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.Location }
func (nodeImpl) isNode()              {}

func (n *nodeImpl) setSpan(span Span) { n.Location = span }

// Term is any node that evaluates to a value.
type Term interface {
	Node
	termNode()
}

type termMarker struct{}

func (termMarker) termNode() {}

//-----------------------------------------------------------------------------
// Literals
//-----------------------------------------------------------------------------

type IntegerLiteral struct {
	nodeImpl
	termMarker

	Value int32
}

func NewIntegerLiteral(value int32) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	termMarker

	Value string
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	termMarker

	Value bool
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

type PrintExpression struct {
	nodeImpl
	termMarker

	Value Term
}

func NewPrintExpression(value Term) *PrintExpression {
	return &PrintExpression{nodeImpl: newNodeImpl(NodePrint), Value: value}
}

type BinaryExpression struct {
	nodeImpl
	termMarker

	Lhs Term
	Op  BinaryOp
	Rhs Term
}

func NewBinaryExpression(lhs Term, op BinaryOp, rhs Term) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinary), Lhs: lhs, Op: op, Rhs: rhs}
}

type IfExpression struct {
	nodeImpl
	termMarker

	Condition Term
	Then      Term
	Otherwise Term
}

func NewIfExpression(condition, then, otherwise Term) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Then: then, Otherwise: otherwise}
}

// LetExpression binds Name to Value and continues with Next.
type LetExpression struct {
	nodeImpl
	termMarker

	Name  *Parameter
	Value Term
	Next  Term
}

func NewLetExpression(name *Parameter, value, next Term) *LetExpression {
	return &LetExpression{nodeImpl: newNodeImpl(NodeLet), Name: name, Value: value, Next: next}
}

type Variable struct {
	nodeImpl
	termMarker

	Text string
}

func NewVariable(text string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Text: text}
}

// FunctionLiteral is an anonymous function; Value is its body.
type FunctionLiteral struct {
	nodeImpl
	termMarker

	Parameters []*Parameter
	Value      Term
}

func NewFunctionLiteral(params []*Parameter, body Term) *FunctionLiteral {
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunction), Parameters: params, Value: body}
}

// ParametersSpan covers the declared parameter list. A function without
// parameters reports a two byte span at its own start (the `fn` keyword).
func (f *FunctionLiteral) ParametersSpan() Span {
	loc := f.Span()
	if len(f.Parameters) == 0 {
		return Span{Start: loc.Start, End: loc.Start + 2, Filename: loc.Filename}
	}
	first := f.Parameters[0].Span()
	last := f.Parameters[len(f.Parameters)-1].Span()
	return Span{Start: first.Start, End: last.End, Filename: loc.Filename}
}

type FunctionCall struct {
	nodeImpl
	termMarker

	Callee    Term
	Arguments []Term
}

func NewFunctionCall(callee Term, args []Term) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Arguments: args}
}

type TupleLiteral struct {
	nodeImpl
	termMarker

	First  Term
	Second Term
}

func NewTupleLiteral(first, second Term) *TupleLiteral {
	return &TupleLiteral{nodeImpl: newNodeImpl(NodeTuple), First: first, Second: second}
}

type FirstExpression struct {
	nodeImpl
	termMarker

	Value Term
}

func NewFirstExpression(value Term) *FirstExpression {
	return &FirstExpression{nodeImpl: newNodeImpl(NodeFirst), Value: value}
}

type SecondExpression struct {
	nodeImpl
	termMarker

	Value Term
}

func NewSecondExpression(value Term) *SecondExpression {
	return &SecondExpression{nodeImpl: newNodeImpl(NodeSecond), Value: value}
}

//-----------------------------------------------------------------------------
// Non-term nodes
//-----------------------------------------------------------------------------

// Parameter is a span-carrying name used by let bindings and function parameters.
type Parameter struct {
	nodeImpl

	Text string
}

func NewParameter(text string) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Text: text}
}

// File is the root record produced by the parser.
type File struct {
	nodeImpl

	Name       string
	Expression Term
}

func NewFile(name string, expr Term) *File {
	return &File{nodeImpl: newNodeImpl(NodeFile), Name: name, Expression: expr}
}
