// ast.go — the unresolved syntax tree produced by the parser.
//
// Expressions and statements are closed sum types: a sealed interface with a
// fixed set of variant structs, matched exhaustively with type switches
// downstream. Every node records the byte offset of its first token for
// diagnostics. Names are unbound at this stage; resolution replaces them with
// LocalIds (see rast.go).
package toylang

// BinaryOperator enumerates the binary operators the parser understands.
// EQUALS has a defined precedence but no type or evaluation rule; the type
// checker rejects it as unsupported.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpEquals
)

// Precedence returns the operator's binding strength for precedence climbing.
// All binary operators are left-associative.
func (op BinaryOperator) Precedence() int {
	switch op {
	case OpMul:
		return 3
	case OpAdd, OpSub:
		return 2
	case OpEquals:
		return 0
	default:
		return 0
	}
}

func (op BinaryOperator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpEquals:
		return "=="
	default:
		return "?"
	}
}

// UnaryOperator enumerates the prefix operators. Negate is parsed at primary
// level, so it binds tighter than any binary operator.
type UnaryOperator int

const (
	OpNegate UnaryOperator = iota
)

func (op UnaryOperator) String() string {
	if op == OpNegate {
		return "-"
	}
	return "?"
}

// binaryOperatorFor maps an operator token kind to its BinaryOperator.
func binaryOperatorFor(kind TokenKind) (BinaryOperator, bool) {
	switch kind {
	case PLUS:
		return OpAdd, true
	case MINUS:
		return OpSub, true
	case MULT:
		return OpMul, true
	case EQ:
		return OpEquals, true
	default:
		return 0, false
	}
}

// Identifier is a name occurrence with its source offset.
type Identifier struct {
	Offset int
	Name   string
}

// Expression is the closed set of expression nodes.
type Expression interface {
	exprNode()
	// Pos returns the byte offset of the node's first token.
	Pos() int
}

// IntegerConstant is an integer literal.
type IntegerConstant struct {
	Offset int
	Value  int64
}

// LocalName is an unresolved reference to a local by name.
type LocalName struct {
	Offset int
	Name   string
}

// UnaryOp applies a prefix operator to its operand.
type UnaryOp struct {
	Offset  int
	Op      UnaryOperator
	Operand Expression
}

// BinaryOp applies a binary operator; Offset is the offset of the left
// operand's first token.
type BinaryOp struct {
	Offset int
	Op     BinaryOperator
	LHS    Expression
	RHS    Expression
}

func (*IntegerConstant) exprNode() {}
func (*LocalName) exprNode()       {}
func (*UnaryOp) exprNode()         {}
func (*BinaryOp) exprNode()        {}

func (e *IntegerConstant) Pos() int { return e.Offset }
func (e *LocalName) Pos() int       { return e.Offset }
func (e *UnaryOp) Pos() int         { return e.Offset }
func (e *BinaryOp) Pos() int        { return e.Offset }

// Statement is the closed set of statement nodes.
type Statement interface {
	stmtNode()
	Pos() int
}

// DeclareVariable is `let [mut] NAME [: TYPE] = EXPR ;`.
// Mutable is carried through from the source but not enforced anywhere yet.
type DeclareVariable struct {
	Offset       int
	Name         Identifier
	Mutable      bool
	DeclaredType *Identifier // nil when no ': TYPE' annotation was written
	Value        Expression
}

// AssignLocal is `NAME = EXPR ;`.
type AssignLocal struct {
	Offset int
	Target Identifier
	Value  Expression
}

// Block is `{ STATEMENT* }`.
type Block struct {
	Offset int
	Inner  []Statement
}

func (*DeclareVariable) stmtNode() {}
func (*AssignLocal) stmtNode()     {}
func (*Block) stmtNode()           {}

func (s *DeclareVariable) Pos() int { return s.Offset }
func (s *AssignLocal) Pos() int     { return s.Offset }
func (s *Block) Pos() int           { return s.Offset }

// Program is a maximal statement sequence up to EOF.
type Program struct {
	Statements []Statement
}
