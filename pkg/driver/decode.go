package driver

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"rinha/interpreter-go/pkg/ast"
)

// ErrTooDeep reports a tree nested deeper than the configured limit.
var ErrTooDeep = errors.New("tree nesting exceeds max depth")

// DecodeError describes a malformed node. Pointer is the dotted path from the
// root record to the offending node.
type DecodeError struct {
	Path    string
	Pointer string
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Pointer != "" {
		b.WriteString(" at ")
		b.WriteString(e.Pointer)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

type treeDecoder struct {
	path     string
	filename string
	maxDepth int
	nodes    int
}

func (d *treeDecoder) fail(pointer, format string, args ...any) error {
	return &DecodeError{Path: d.path, Pointer: pointer, Message: fmt.Sprintf(format, args...)}
}

// decodeFile accepts either a File record or a bare Term. A bare Term is
// wrapped in a File named after the input.
func (d *treeDecoder) decodeFile(raw any) (*ast.File, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, d.fail("", "expected an object, got %s", describeRaw(raw))
	}
	if _, tagged := node["kind"]; tagged {
		if kind, _ := node["kind"].(string); kind != string(ast.NodeFile) {
			expr, err := d.decodeTerm(node, "", 1)
			if err != nil {
				return nil, err
			}
			file := ast.NewFile(d.filename, expr)
			span := expr.Span()
			ast.SetSpan(file, ast.Span{Start: span.Start, End: span.End, Filename: d.filename})
			return file, nil
		}
	}

	name, _ := node["name"].(string)
	if name != "" && d.filename == "" {
		d.filename = name
	}
	if name == "" {
		name = d.filename
	}
	rawExpr, ok := node["expression"]
	if !ok {
		return nil, d.fail("", "missing field %q", "expression")
	}
	expr, err := d.decodeTerm(rawExpr, "expression", 1)
	if err != nil {
		return nil, err
	}
	file := ast.NewFile(name, expr)
	span, err := d.decodeLocation(node, "")
	if err != nil {
		return nil, err
	}
	ast.SetSpan(file, span)
	return file, nil
}

func (d *treeDecoder) decodeTerm(raw any, pointer string, depth int) (ast.Term, error) {
	if d.maxDepth > 0 && depth > d.maxDepth {
		return nil, &DecodeError{
			Path:    d.path,
			Pointer: pointer,
			Message: fmt.Sprintf("nesting deeper than %d", d.maxDepth),
			Err:     ErrTooDeep,
		}
	}
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, d.fail(pointer, "expected a term object, got %s", describeRaw(raw))
	}
	kind, ok := node["kind"].(string)
	if !ok {
		return nil, d.fail(pointer, "missing or non-string %q", "kind")
	}
	d.nodes++

	var term ast.Term
	var err error
	switch ast.NodeType(kind) {
	case ast.NodeIntegerLiteral, ast.NodeStringLiteral, ast.NodeBooleanLiteral:
		term, err = d.decodeLiteral(node, ast.NodeType(kind), pointer)
	case ast.NodePrint:
		var value ast.Term
		value, err = d.child(node, "value", pointer, depth)
		term = ast.NewPrintExpression(value)
	case ast.NodeFirst, ast.NodeSecond:
		var value ast.Term
		value, err = d.child(node, "value", pointer, depth)
		if ast.NodeType(kind) == ast.NodeFirst {
			term = ast.NewFirstExpression(value)
		} else {
			term = ast.NewSecondExpression(value)
		}
	case ast.NodeBinary:
		term, err = d.decodeBinary(node, pointer, depth)
	case ast.NodeIf:
		term, err = d.decodeIf(node, pointer, depth)
	case ast.NodeLet:
		term, err = d.decodeLet(node, pointer, depth)
	case ast.NodeVariable:
		text, ok := node["text"].(string)
		if !ok {
			return nil, d.fail(pointer, "Var requires string %q", "text")
		}
		term = ast.NewVariable(text)
	case ast.NodeFunction:
		term, err = d.decodeFunction(node, pointer, depth)
	case ast.NodeCall:
		term, err = d.decodeCall(node, pointer, depth)
	case ast.NodeTuple:
		var first, second ast.Term
		if first, err = d.child(node, "first", pointer, depth); err == nil {
			second, err = d.child(node, "second", pointer, depth)
		}
		term = ast.NewTupleLiteral(first, second)
	default:
		return nil, d.fail(pointer, "unknown term kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	span, err := d.decodeLocation(node, pointer)
	if err != nil {
		return nil, err
	}
	ast.SetSpan(term, span)
	return term, nil
}

func (d *treeDecoder) child(node map[string]any, field, pointer string, depth int) (ast.Term, error) {
	raw, ok := node[field]
	if !ok || raw == nil {
		return nil, d.fail(pointer, "missing field %q", field)
	}
	return d.decodeTerm(raw, joinPointer(pointer, field), depth+1)
}

func (d *treeDecoder) decodeLiteral(node map[string]any, kind ast.NodeType, pointer string) (ast.Term, error) {
	raw, ok := node["value"]
	if !ok {
		return nil, d.fail(pointer, "%s requires %q", kind, "value")
	}
	switch kind {
	case ast.NodeIntegerLiteral:
		n, ok := rawInteger(raw)
		if !ok {
			return nil, d.fail(pointer, "Int value must be an integer, got %s", describeRaw(raw))
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, d.fail(pointer, "Int value %d overflows 32 bits", n)
		}
		return ast.NewIntegerLiteral(int32(n)), nil
	case ast.NodeStringLiteral:
		s, ok := raw.(string)
		if !ok {
			return nil, d.fail(pointer, "Str value must be a string, got %s", describeRaw(raw))
		}
		return ast.NewStringLiteral(s), nil
	default:
		b, ok := raw.(bool)
		if !ok {
			return nil, d.fail(pointer, "Bool value must be a boolean, got %s", describeRaw(raw))
		}
		return ast.NewBooleanLiteral(b), nil
	}
}

func (d *treeDecoder) decodeBinary(node map[string]any, pointer string, depth int) (ast.Term, error) {
	opText, ok := node["op"].(string)
	if !ok {
		return nil, d.fail(pointer, "Binary requires string %q", "op")
	}
	op := ast.BinaryOp(opText)
	if !op.IsValid() {
		return nil, d.fail(joinPointer(pointer, "op"), "unknown operator %q", opText)
	}
	lhs, err := d.child(node, "lhs", pointer, depth)
	if err != nil {
		return nil, err
	}
	rhs, err := d.child(node, "rhs", pointer, depth)
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryExpression(lhs, op, rhs), nil
}

func (d *treeDecoder) decodeIf(node map[string]any, pointer string, depth int) (ast.Term, error) {
	cond, err := d.child(node, "condition", pointer, depth)
	if err != nil {
		return nil, err
	}
	then, err := d.child(node, "then", pointer, depth)
	if err != nil {
		return nil, err
	}
	otherwise, err := d.child(node, "otherwise", pointer, depth)
	if err != nil {
		return nil, err
	}
	return ast.NewIfExpression(cond, then, otherwise), nil
}

func (d *treeDecoder) decodeLet(node map[string]any, pointer string, depth int) (ast.Term, error) {
	name, err := d.decodeParameter(node["name"], joinPointer(pointer, "name"))
	if err != nil {
		return nil, err
	}
	value, err := d.child(node, "value", pointer, depth)
	if err != nil {
		return nil, err
	}
	next, err := d.child(node, "next", pointer, depth)
	if err != nil {
		return nil, err
	}
	return ast.NewLetExpression(name, value, next), nil
}

func (d *treeDecoder) decodeFunction(node map[string]any, pointer string, depth int) (ast.Term, error) {
	rawParams, ok := node["parameters"]
	if !ok {
		return nil, d.fail(pointer, "Function requires %q", "parameters")
	}
	list, ok := rawParams.([]any)
	if !ok && rawParams != nil {
		return nil, d.fail(pointer, "parameters must be a list, got %s", describeRaw(rawParams))
	}
	params := make([]*ast.Parameter, 0, len(list))
	for i, raw := range list {
		param, err := d.decodeParameter(raw, fmt.Sprintf("%s[%d]", joinPointer(pointer, "parameters"), i))
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	body, err := d.child(node, "value", pointer, depth)
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionLiteral(params, body), nil
}

func (d *treeDecoder) decodeCall(node map[string]any, pointer string, depth int) (ast.Term, error) {
	callee, err := d.child(node, "callee", pointer, depth)
	if err != nil {
		return nil, err
	}
	rawArgs := node["arguments"]
	list, ok := rawArgs.([]any)
	if !ok && rawArgs != nil {
		return nil, d.fail(pointer, "arguments must be a list, got %s", describeRaw(rawArgs))
	}
	args := make([]ast.Term, 0, len(list))
	for i, raw := range list {
		arg, err := d.decodeTerm(raw, fmt.Sprintf("%s[%d]", joinPointer(pointer, "arguments"), i), depth+1)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return ast.NewFunctionCall(callee, args), nil
}

func (d *treeDecoder) decodeParameter(raw any, pointer string) (*ast.Parameter, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, d.fail(pointer, "expected a parameter object, got %s", describeRaw(raw))
	}
	text, ok := node["text"].(string)
	if !ok || text == "" {
		return nil, d.fail(pointer, "parameter requires non-empty %q", "text")
	}
	param := ast.NewParameter(text)
	span, err := d.decodeLocation(node, pointer)
	if err != nil {
		return nil, err
	}
	ast.SetSpan(param, span)
	return param, nil
}

// decodeLocation reads the optional `location` record. Absent locations
// decode to an empty span at offset zero.
func (d *treeDecoder) decodeLocation(node map[string]any, pointer string) (ast.Span, error) {
	span := ast.Span{Filename: d.filename}
	raw, ok := node["location"]
	if !ok || raw == nil {
		return span, nil
	}
	loc, ok := raw.(map[string]any)
	if !ok {
		return span, d.fail(joinPointer(pointer, "location"), "expected an object, got %s", describeRaw(raw))
	}
	for _, field := range []string{"start", "end"} {
		n, ok := rawInteger(loc[field])
		if !ok || n < 0 || n > math.MaxInt32 {
			return span, d.fail(joinPointer(pointer, "location"), "%q must be a non-negative integer", field)
		}
		if field == "start" {
			span.Start = int(n)
		} else {
			span.End = int(n)
		}
	}
	if span.Start > span.End {
		return span, d.fail(joinPointer(pointer, "location"), "start %d is after end %d", span.Start, span.End)
	}
	if filename, ok := loc["filename"].(string); ok && filename != "" {
		span.Filename = filename
	}
	return span, nil
}

func joinPointer(pointer, field string) string {
	if pointer == "" {
		return field
	}
	return pointer + "." + field
}

// rawInteger accepts the integer shapes produced by encoding/json (with
// UseNumber) and yaml.v3.
func rawInteger(raw any) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

func describeRaw(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, int, int64, uint64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
