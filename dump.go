// dump.go — compact s-expression rendering of the AST and RAST.
//
// Used by the REPL's :ast/:rast toggles and by tests that want a readable
// shape assertion instead of deep struct equality. The rendering is stable
// and lossy on purpose: offsets are omitted.
package toylang

import (
	"fmt"
	"strings"
)

// DumpProgram renders a parsed program, one statement per line.
func DumpProgram(p *Program) string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = DumpStatement(s)
	}
	return strings.Join(parts, "\n")
}

// DumpStatement renders one AST statement.
func DumpStatement(stmt Statement) string {
	switch s := stmt.(type) {
	case *DeclareVariable:
		var b strings.Builder
		b.WriteString("(let ")
		if s.Mutable {
			b.WriteString("mut ")
		}
		b.WriteString(s.Name.Name)
		if s.DeclaredType != nil {
			b.WriteString(" : " + s.DeclaredType.Name)
		}
		b.WriteString(" " + DumpExpression(s.Value) + ")")
		return b.String()
	case *AssignLocal:
		return fmt.Sprintf("(assign %s %s)", s.Target.Name, DumpExpression(s.Value))
	case *Block:
		inner := make([]string, len(s.Inner))
		for i, st := range s.Inner {
			inner[i] = DumpStatement(st)
		}
		return "(block " + strings.Join(inner, " ") + ")"
	default:
		return fmt.Sprintf("(?%T)", stmt)
	}
}

// DumpExpression renders one AST expression.
func DumpExpression(expr Expression) string {
	switch e := expr.(type) {
	case *IntegerConstant:
		return fmt.Sprintf("(int %d)", e.Value)
	case *LocalName:
		return fmt.Sprintf("(name %s)", e.Name)
	case *UnaryOp:
		return fmt.Sprintf("(%s %s)", e.Op, DumpExpression(e.Operand))
	case *BinaryOp:
		return fmt.Sprintf("(%s %s %s)", e.Op, DumpExpression(e.LHS), DumpExpression(e.RHS))
	default:
		return fmt.Sprintf("(?%T)", expr)
	}
}

// DumpRastProgram renders a resolved program, one statement per line.
func DumpRastProgram(p *RastProgram) string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = DumpRastStatement(s)
	}
	return strings.Join(parts, "\n")
}

// DumpRastStatement renders one resolved statement.
func DumpRastStatement(stmt RastStatement) string {
	switch s := stmt.(type) {
	case *RastAssign:
		return fmt.Sprintf("(assign %%%d %s)", s.Local, DumpRastExpression(s.Value))
	case *RastBlock:
		inner := make([]string, len(s.Inner))
		for i, st := range s.Inner {
			inner[i] = DumpRastStatement(st)
		}
		return fmt.Sprintf("(block #%d %s)", s.Scope, strings.Join(inner, " "))
	default:
		return fmt.Sprintf("(?%T)", stmt)
	}
}

// DumpRastExpression renders one resolved expression.
func DumpRastExpression(expr RastExpression) string {
	switch e := expr.(type) {
	case *RastInteger:
		return fmt.Sprintf("(int %d)", e.Value)
	case *RastLocal:
		return fmt.Sprintf("%%%d", e.Local)
	case *RastUnaryOp:
		return fmt.Sprintf("(%s %s)", e.Op, DumpRastExpression(e.Operand))
	case *RastBinaryOp:
		return fmt.Sprintf("(%s %s %s)", e.Op, DumpRastExpression(e.LHS), DumpRastExpression(e.RHS))
	default:
		return fmt.Sprintf("(?%T)", expr)
	}
}
