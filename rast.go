// rast.go — the Resolved AST and the records behind it.
//
// The RAST is the AST after name resolution: every name is replaced by a
// globally unique LocalId, every block carries the ScopeId it opened, and
// declarations have been lowered into plain assignments (there is no runtime
// "declare" step). Offsets survive the transformation unchanged.
//
// ScopeId, LocalId and UserTypeId are opaque handles into the resolution
// Context's tables; they are assigned monotonically and never reused.
// UserTypeId and the user-type arm of TypeRef are reserved for a future
// grammar with compound types; nothing produces them today.
package toylang

import "fmt"

// ScopeId identifies a node in the lexical scope tree.
type ScopeId int

// LocalId identifies a declared variable, uniquely within one resolution.
type LocalId int

// UserTypeId identifies a user-defined type. Reserved, currently unused.
type UserTypeId int

// PrimitiveType enumerates the built-in primitive types.
type PrimitiveType int

const (
	I32 PrimitiveType = iota
	Bool
)

func (p PrimitiveType) String() string {
	switch p {
	case I32:
		return "i32"
	case Bool:
		return "bool"
	default:
		return "?"
	}
}

// TypeRef refers to either a primitive or a user-defined type.
type TypeRef struct {
	User      UserTypeId
	Primitive PrimitiveType
	IsUser    bool
}

// PrimitiveRef builds a TypeRef for a primitive type.
func PrimitiveRef(p PrimitiveType) TypeRef {
	return TypeRef{Primitive: p}
}

// Equal reports structural equality. User types never compare equal here;
// there is no user-type unification yet.
func (t TypeRef) Equal(other TypeRef) bool {
	if t.IsUser || other.IsUser {
		return false
	}
	return t.Primitive == other.Primitive
}

func (t TypeRef) String() string {
	if t.IsUser {
		return fmt.Sprintf("user(%d)", t.User)
	}
	return t.Primitive.String()
}

// Local is a declared variable. Id and Scope never change after creation;
// Type starts as the declared annotation (or nil) and is fixed by the type
// checker at the first assignment.
type Local struct {
	Id    LocalId
	Scope ScopeId
	Name  string
	Type  *TypeRef
}

// Scope is a node in the lexical nesting tree. Every non-root scope has
// exactly one parent that already existed when the scope was created, so the
// tree cannot contain cycles.
type Scope struct {
	Id        ScopeId
	Parent    ScopeId
	HasParent bool
	Locals    []LocalId // declaration order; later entries shadow earlier ones
}

// RastExpression is the closed set of resolved expression nodes.
type RastExpression interface {
	rastExprNode()
	Pos() int
}

// RastInteger is an integer literal.
type RastInteger struct {
	Offset int
	Value  int64
}

// RastLocal is a resolved reference to a local.
type RastLocal struct {
	Offset int
	Local  LocalId
}

// RastUnaryOp applies a prefix operator.
type RastUnaryOp struct {
	Offset  int
	Op      UnaryOperator
	Operand RastExpression
}

// RastBinaryOp applies a binary operator.
type RastBinaryOp struct {
	Offset int
	Op     BinaryOperator
	LHS    RastExpression
	RHS    RastExpression
}

func (*RastInteger) rastExprNode()  {}
func (*RastLocal) rastExprNode()    {}
func (*RastUnaryOp) rastExprNode()  {}
func (*RastBinaryOp) rastExprNode() {}

func (e *RastInteger) Pos() int  { return e.Offset }
func (e *RastLocal) Pos() int    { return e.Offset }
func (e *RastUnaryOp) Pos() int  { return e.Offset }
func (e *RastBinaryOp) Pos() int { return e.Offset }

// RastStatement is the closed set of resolved statement nodes. Declarations
// do not appear: resolution lowers them into RastAssign.
type RastStatement interface {
	rastStmtNode()
	Pos() int
}

// RastAssign stores the value of an expression into a local.
type RastAssign struct {
	Offset int
	Local  LocalId
	Value  RastExpression
}

// RastBlock executes its inner statements inside the scope it opened.
type RastBlock struct {
	Offset int
	Scope  ScopeId
	Inner  []RastStatement
}

func (*RastAssign) rastStmtNode() {}
func (*RastBlock) rastStmtNode()  {}

func (s *RastAssign) Pos() int { return s.Offset }
func (s *RastBlock) Pos() int  { return s.Offset }

// RastProgram is the resolved top-level statement sequence.
type RastProgram struct {
	Root       ScopeId
	Statements []RastStatement
}
