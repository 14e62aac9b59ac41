package ast

// BinaryOp names a binary operator using the serialized tree's spelling.
type BinaryOp string

const (
	OpAdd BinaryOp = "Add"
	OpSub BinaryOp = "Sub"
	OpMul BinaryOp = "Mul"
	OpDiv BinaryOp = "Div"
	OpRem BinaryOp = "Rem"
	OpEq  BinaryOp = "Eq"
	OpNeq BinaryOp = "Neq"
	OpLt  BinaryOp = "Lt"
	OpGt  BinaryOp = "Gt"
	OpLte BinaryOp = "Lte"
	OpGte BinaryOp = "Gte"
	OpAnd BinaryOp = "And"
	OpOr  BinaryOp = "Or"
)

var operatorSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpRem: "%",
	OpEq:  "==",
	OpNeq: "!=",
	OpLt:  "<",
	OpGt:  ">",
	OpLte: "<=",
	OpGte: ">=",
	OpAnd: "&&",
	OpOr:  "||",
}

// IsValid reports whether op is one of the known operators.
func (op BinaryOp) IsValid() bool {
	_, ok := operatorSymbols[op]
	return ok
}

// Symbol returns the surface syntax for op, or the raw name when unknown.
func (op BinaryOp) Symbol() string {
	if sym, ok := operatorSymbols[op]; ok {
		return sym
	}
	return string(op)
}
