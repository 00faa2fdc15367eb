// interp.go — tree-walking evaluator over the type-checked RAST.
//
// The interpreter holds the resolution context and one runtime environment
// mapping LocalId → tagged Value. The environment is populated exclusively by
// executing assignments; declarations were lowered into assignments during
// resolution, so there is no runtime declare step.
//
// Type checking guarantees that every local is written before it is read and
// that operand tags match. If either guarantee is violated at runtime it is a
// defect in an earlier phase, not a user error, and the interpreter aborts
// with a panic instead of coercing.
package toylang

import (
	"fmt"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTI32 ValueTag = iota
	VTBool
)

// Value is the tagged runtime carrier. The tag determines which case of Data
// is valid: int32 for VTI32, bool for VTBool.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// I32Val builds an i32 value.
func I32Val(n int32) Value { return Value{Tag: VTI32, Data: n} }

// BoolVal builds a bool value.
func BoolVal(b bool) Value { return Value{Tag: VTBool, Data: b} }

func (v Value) String() string {
	switch v.Tag {
	case VTI32:
		return strconv.FormatInt(int64(v.Data.(int32)), 10)
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	default:
		return "<unknown>"
	}
}

// asI32 unwraps an i32 payload. A mismatched tag is a type-checker defect.
func asI32(v Value) int32 {
	if v.Tag != VTI32 {
		panic(fmt.Sprintf("interp: expected i32 value, got %s", v))
	}
	return v.Data.(int32)
}

// Interpreter executes a type-checked program. Locals is the runtime
// environment; it is created per evaluation and never shared.
type Interpreter struct {
	ctx    *Context
	Locals map[LocalId]Value
}

// NewInterpreter creates an interpreter over the given resolution context.
func NewInterpreter(ctx *Context) *Interpreter {
	return &Interpreter{ctx: ctx, Locals: make(map[LocalId]Value)}
}

// Context exposes the resolution context the program was checked against.
func (ip *Interpreter) Context() *Context {
	return ip.ctx
}

// LocalByName returns the value of the last declared local with the given
// source name. Handy for drivers that print results and for tests; shadowed
// locals are skipped in favor of the most recent declaration.
func (ip *Interpreter) LocalByName(name string) (Value, bool) {
	locals := ip.ctx.Locals()
	for i := len(locals) - 1; i >= 0; i-- {
		if locals[i].Name == name {
			v, ok := ip.Locals[locals[i].Id]
			return v, ok
		}
	}
	return Value{}, false
}

// Run executes the program's top-level statements in order.
func (ip *Interpreter) Run(program *RastProgram) {
	for _, stmt := range program.Statements {
		ip.execute(stmt)
	}
}

func (ip *Interpreter) execute(stmt RastStatement) {
	switch s := stmt.(type) {
	case *RastAssign:
		ip.Locals[s.Local] = ip.evaluate(s.Value)
	case *RastBlock:
		for _, st := range s.Inner {
			ip.execute(st)
		}
	default:
		panic(fmt.Sprintf("interp: unhandled statement %T", stmt))
	}
}

func (ip *Interpreter) evaluate(expr RastExpression) Value {
	switch e := expr.(type) {
	case *RastInteger:
		return I32Val(int32(e.Value))

	case *RastLocal:
		v, ok := ip.Locals[e.Local]
		if !ok {
			// Checking guarantees assignment precedes use.
			panic(fmt.Sprintf("interp: read of unassigned local %d", e.Local))
		}
		return v

	case *RastUnaryOp:
		operand := asI32(ip.evaluate(e.Operand))
		switch e.Op {
		case OpNegate:
			return I32Val(-operand)
		default:
			panic(fmt.Sprintf("interp: unhandled unary operator %s", e.Op))
		}

	case *RastBinaryOp:
		lhs := asI32(ip.evaluate(e.LHS))
		rhs := asI32(ip.evaluate(e.RHS))
		switch e.Op {
		case OpAdd:
			return I32Val(lhs + rhs)
		case OpSub:
			return I32Val(lhs - rhs)
		case OpMul:
			return I32Val(lhs * rhs)
		default:
			// '==' is rejected by the checker before execution.
			panic(fmt.Sprintf("interp: unhandled binary operator %s", e.Op))
		}

	default:
		panic(fmt.Sprintf("interp: unhandled expression %T", expr))
	}
}
