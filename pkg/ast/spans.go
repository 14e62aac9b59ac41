package ast

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// At is a convenience wrapper around SetSpan that returns the node.
func At[T Node](node T, start, end int) T {
	SetSpan(node, Span{Start: start, End: end})
	return node
}

// Children returns the direct child nodes of node in evaluation order.
func Children(node Node) []Node {
	switch n := node.(type) {
	case *File:
		return nonNil(n.Expression)
	case *PrintExpression:
		return nonNil(n.Value)
	case *BinaryExpression:
		return nonNil(n.Lhs, n.Rhs)
	case *IfExpression:
		return nonNil(n.Condition, n.Then, n.Otherwise)
	case *LetExpression:
		out := make([]Node, 0, 3)
		if n.Name != nil {
			out = append(out, n.Name)
		}
		return append(out, nonNil(n.Value, n.Next)...)
	case *FunctionLiteral:
		out := make([]Node, 0, len(n.Parameters)+1)
		for _, param := range n.Parameters {
			if param != nil {
				out = append(out, param)
			}
		}
		return append(out, nonNil(n.Value)...)
	case *FunctionCall:
		out := nonNil(n.Callee)
		for _, arg := range n.Arguments {
			out = append(out, nonNil(arg)...)
		}
		return out
	case *TupleLiteral:
		return nonNil(n.First, n.Second)
	case *FirstExpression:
		return nonNil(n.Value)
	case *SecondExpression:
		return nonNil(n.Value)
	default:
		return nil
	}
}

// Walk visits node and its descendants depth-first. Returning false from
// visit skips the children of the current node.
func Walk(node Node, visit func(Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, visit)
	}
}

func nonNil(terms ...Term) []Node {
	out := make([]Node, 0, len(terms))
	for _, term := range terms {
		if term != nil {
			out = append(out, term)
		}
	}
	return out
}
