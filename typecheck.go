// typecheck.go — static type checking over the RAST.
//
// The checker walks the resolved tree and mutates exactly one thing: each
// Local's Type field. Expression types are synthesized bottom-up:
//
//   - an integer literal is i32 (the only integer type)
//   - a local reference has the local's currently known type; a missing type
//     is the UntypedLocal internal-invariant error, unreachable for programs
//     whose declarations lowered into an initial assignment
//   - unary negate needs an i32 operand and yields i32
//   - '+', '-', '*' need i32 on both sides and yield i32
//   - '==' parses but has no typing rule; it fails as UnsupportedOperator
//
// Assignment fixes types: the first write to a local without a type adopts
// the value's type; every later write must equal the fixed type, otherwise
// NotAssignable. The first failure aborts the whole check.
package toylang

import "fmt"

// TypeErrorKind discriminates the checker's error cases.
type TypeErrorKind int

const (
	TypeNotAssignable TypeErrorKind = iota
	TypeInvalidUnaryOperand
	TypeInvalidBinaryOperands
	TypeUntypedLocal
	TypeUnsupportedOperator
)

func (k TypeErrorKind) String() string {
	switch k {
	case TypeNotAssignable:
		return "not assignable"
	case TypeInvalidUnaryOperand:
		return "invalid unary operand"
	case TypeInvalidBinaryOperands:
		return "invalid binary operands"
	case TypeUntypedLocal:
		return "untyped local"
	case TypeUnsupportedOperator:
		return "unsupported operator"
	default:
		return "type error"
	}
}

// TypeError is a structured type-check failure. Only the fields relevant to
// Kind are meaningful.
type TypeError struct {
	Kind   TypeErrorKind
	Offset int

	Target TypeRef        // NotAssignable: the local's fixed type
	Actual TypeRef        // NotAssignable / InvalidUnaryOperand: the value type
	Lhs    TypeRef        // InvalidBinaryOperands
	Rhs    TypeRef        // InvalidBinaryOperands
	Unary  UnaryOperator  // InvalidUnaryOperand
	Binary BinaryOperator // InvalidBinaryOperands / UnsupportedOperator
	Local  LocalId        // UntypedLocal
}

func (e *TypeError) Error() string {
	switch e.Kind {
	case TypeNotAssignable:
		return fmt.Sprintf("not assignable: %s to %s at byte %d", e.Actual, e.Target, e.Offset)
	case TypeInvalidUnaryOperand:
		return fmt.Sprintf("invalid operand for unary %s: %s at byte %d", e.Unary, e.Actual, e.Offset)
	case TypeInvalidBinaryOperands:
		return fmt.Sprintf("invalid operands for %s: %s and %s at byte %d", e.Binary, e.Lhs, e.Rhs, e.Offset)
	case TypeUntypedLocal:
		return fmt.Sprintf("untyped local %d at byte %d", e.Local, e.Offset)
	case TypeUnsupportedOperator:
		return fmt.Sprintf("unsupported operator %s at byte %d", e.Binary, e.Offset)
	default:
		return fmt.Sprintf("type error at byte %d", e.Offset)
	}
}

// Check type-checks a resolved program, fixing each local's type in ctx.
func Check(ctx *Context, program *RastProgram) error {
	for _, stmt := range program.Statements {
		if err := checkStatement(ctx, program.Root, stmt); err != nil {
			return err
		}
	}
	return nil
}

func checkStatement(ctx *Context, scope ScopeId, stmt RastStatement) error {
	switch s := stmt.(type) {
	case *RastAssign:
		valueType, err := typeOfExpression(ctx, scope, s.Value)
		if err != nil {
			return err
		}
		local := ctx.Local(s.Local)
		if local.Type == nil {
			fixed := valueType
			local.Type = &fixed
			return nil
		}
		if !local.Type.Equal(valueType) {
			return &TypeError{
				Kind:   TypeNotAssignable,
				Target: *local.Type,
				Actual: valueType,
				Offset: s.Offset,
			}
		}
		return nil

	case *RastBlock:
		for _, st := range s.Inner {
			if err := checkStatement(ctx, s.Scope, st); err != nil {
				return err
			}
		}
		return nil

	default:
		panic(fmt.Sprintf("typecheck: unhandled statement %T", stmt))
	}
}

func typeOfExpression(ctx *Context, scope ScopeId, expr RastExpression) (TypeRef, error) {
	switch e := expr.(type) {
	case *RastInteger:
		return PrimitiveRef(I32), nil

	case *RastLocal:
		local := ctx.Local(e.Local)
		if local.Type == nil {
			return TypeRef{}, &TypeError{Kind: TypeUntypedLocal, Local: e.Local, Offset: e.Offset}
		}
		return *local.Type, nil

	case *RastUnaryOp:
		operandType, err := typeOfExpression(ctx, scope, e.Operand)
		if err != nil {
			return TypeRef{}, err
		}
		if e.Op == OpNegate && operandType.Equal(PrimitiveRef(I32)) {
			return PrimitiveRef(I32), nil
		}
		return TypeRef{}, &TypeError{
			Kind:   TypeInvalidUnaryOperand,
			Unary:  e.Op,
			Actual: operandType,
			Offset: e.Offset,
		}

	case *RastBinaryOp:
		lhsType, err := typeOfExpression(ctx, scope, e.LHS)
		if err != nil {
			return TypeRef{}, err
		}
		rhsType, err := typeOfExpression(ctx, scope, e.RHS)
		if err != nil {
			return TypeRef{}, err
		}
		if e.Op == OpEquals {
			// Parsed with a precedence, deliberately without a typing rule.
			return TypeRef{}, &TypeError{Kind: TypeUnsupportedOperator, Binary: e.Op, Offset: e.Offset}
		}
		i32 := PrimitiveRef(I32)
		if lhsType.Equal(i32) && rhsType.Equal(i32) {
			return i32, nil
		}
		return TypeRef{}, &TypeError{
			Kind:   TypeInvalidBinaryOperands,
			Binary: e.Op,
			Lhs:    lhsType,
			Rhs:    rhsType,
			Offset: e.Offset,
		}

	default:
		panic(fmt.Sprintf("typecheck: unhandled expression %T", expr))
	}
}
