// resolve.go — scope-based name resolution (AST → RAST).
//
// OVERVIEW
// --------
// Resolution is a single forward pass that threads one mutable Context
// through every call. The Context owns the scope and local tables and the
// monotonic id counters; nothing here is process-wide state, so independent
// resolutions never observe each other.
//
// Rules:
//   - A block statement opens one child scope of the enclosing scope before
//     its inner statements are resolved; the resolved block carries that
//     scope's id.
//   - A declaration allocates a fresh LocalId in the current scope, binds the
//     declared name for the rest of the scope (and its descendants), resolves
//     the declared type annotation if any, and lowers into a plain resolved
//     assignment. Re-declaring a name in the same scope is permitted; lookup
//     returns the nearest visible declaration, so the later one shadows the
//     earlier by lookup order alone.
//   - Name lookup walks from the current scope outward through parent links;
//     inside one scope the most recent declaration wins. A miss is an
//     UnknownLocal error, identically for assignment targets and expression
//     references.
//
// Errors are structured (*ResolveError): UnknownType for an unrecognized
// type annotation, UnknownLocal for an unresolvable name.
package toylang

import "fmt"

// ResolveErrorKind discriminates the resolver's error cases.
type ResolveErrorKind int

const (
	ResolveUnknownType ResolveErrorKind = iota
	ResolveUnknownLocal
)

func (k ResolveErrorKind) String() string {
	switch k {
	case ResolveUnknownType:
		return "unknown type"
	case ResolveUnknownLocal:
		return "unknown local"
	default:
		return "resolve error"
	}
}

// ResolveError is a structured resolution failure.
type ResolveError struct {
	Kind   ResolveErrorKind
	Name   string
	Offset int
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s %q at byte %d", e.Kind, e.Name, e.Offset)
}

// Context carries all resolution state for a single program run: the scope
// tree, the local table, and the monotonic id counters. Ids are never reused
// or deleted. The type checker later mutates Local.Type in place.
type Context struct {
	scopes map[ScopeId]*Scope
	locals map[LocalId]*Local

	nextScopeId    ScopeId
	nextLocalId    LocalId
	nextUserTypeId UserTypeId
}

// NewContext returns an empty resolution context.
func NewContext() *Context {
	return &Context{
		scopes: make(map[ScopeId]*Scope),
		locals: make(map[LocalId]*Local),
	}
}

// DeclareRootScope creates a scope with no parent.
func (ctx *Context) DeclareRootScope() ScopeId {
	return ctx.declareScope(0, false)
}

// DeclareScope creates a child scope of parent.
func (ctx *Context) DeclareScope(parent ScopeId) ScopeId {
	return ctx.declareScope(parent, true)
}

func (ctx *Context) declareScope(parent ScopeId, hasParent bool) ScopeId {
	id := ctx.nextScopeId
	ctx.nextScopeId++
	ctx.scopes[id] = &Scope{Id: id, Parent: parent, HasParent: hasParent}
	return id
}

// DeclareLocal allocates a fresh local in the given scope. initialType is the
// declared annotation, or nil when the type is left to inference.
func (ctx *Context) DeclareLocal(scope ScopeId, name string, initialType *TypeRef) LocalId {
	id := ctx.nextLocalId
	ctx.nextLocalId++
	ctx.locals[id] = &Local{Id: id, Scope: scope, Name: name, Type: initialType}
	ctx.scopes[scope].Locals = append(ctx.scopes[scope].Locals, id)
	return id
}

// Scope returns the scope record for id.
func (ctx *Context) Scope(id ScopeId) *Scope {
	return ctx.scopes[id]
}

// Local returns the local record for id.
func (ctx *Context) Local(id LocalId) *Local {
	return ctx.locals[id]
}

// Locals returns all locals in declaration order.
func (ctx *Context) Locals() []*Local {
	out := make([]*Local, 0, len(ctx.locals))
	for id := LocalId(0); int(id) < len(ctx.locals); id++ {
		out = append(out, ctx.locals[id])
	}
	return out
}

// ResolveNamedType maps a written type name to a TypeRef. Only the primitive
// names are known; there are no user-defined types yet.
func (ctx *Context) ResolveNamedType(name string) (TypeRef, bool) {
	switch name {
	case "i32":
		return PrimitiveRef(I32), true
	case "bool":
		return PrimitiveRef(Bool), true
	default:
		return TypeRef{}, false
	}
}

// ResolveNamedLocal finds the nearest visible local with the given name,
// starting in scope and walking outward through parent links. Within one
// scope the most recently declared local wins.
func (ctx *Context) ResolveNamedLocal(scope ScopeId, name string) (LocalId, bool) {
	for {
		s := ctx.scopes[scope]
		for i := len(s.Locals) - 1; i >= 0; i-- {
			if ctx.locals[s.Locals[i]].Name == name {
				return s.Locals[i], true
			}
		}
		if !s.HasParent {
			return 0, false
		}
		scope = s.Parent
	}
}

// Resolve transforms a parsed program into its RAST, returning the resolution
// context for the downstream phases.
func Resolve(program *Program) (*Context, *RastProgram, error) {
	ctx := NewContext()
	root := ctx.DeclareRootScope()

	statements := make([]RastStatement, 0, len(program.Statements))
	for _, stmt := range program.Statements {
		resolved, err := resolveStatement(ctx, root, stmt)
		if err != nil {
			return nil, nil, err
		}
		statements = append(statements, resolved)
	}
	return ctx, &RastProgram{Root: root, Statements: statements}, nil
}

func resolveStatement(ctx *Context, scope ScopeId, stmt Statement) (RastStatement, error) {
	switch s := stmt.(type) {
	case *DeclareVariable:
		var initialType *TypeRef
		if s.DeclaredType != nil {
			ref, ok := ctx.ResolveNamedType(s.DeclaredType.Name)
			if !ok {
				return nil, &ResolveError{
					Kind:   ResolveUnknownType,
					Name:   s.DeclaredType.Name,
					Offset: s.DeclaredType.Offset,
				}
			}
			initialType = &ref
		}
		// The local is declared before its initial value is resolved, so
		// `let x = x;` refers to the new x (or shadows an outer one).
		id := ctx.DeclareLocal(scope, s.Name.Name, initialType)
		value, err := resolveExpression(ctx, scope, s.Value)
		if err != nil {
			return nil, err
		}
		return &RastAssign{Offset: s.Offset, Local: id, Value: value}, nil

	case *AssignLocal:
		id, ok := ctx.ResolveNamedLocal(scope, s.Target.Name)
		if !ok {
			return nil, &ResolveError{
				Kind:   ResolveUnknownLocal,
				Name:   s.Target.Name,
				Offset: s.Target.Offset,
			}
		}
		value, err := resolveExpression(ctx, scope, s.Value)
		if err != nil {
			return nil, err
		}
		return &RastAssign{Offset: s.Offset, Local: id, Value: value}, nil

	case *Block:
		child := ctx.DeclareScope(scope)
		inner := make([]RastStatement, 0, len(s.Inner))
		for _, st := range s.Inner {
			resolved, err := resolveStatement(ctx, child, st)
			if err != nil {
				return nil, err
			}
			inner = append(inner, resolved)
		}
		return &RastBlock{Offset: s.Offset, Scope: child, Inner: inner}, nil

	default:
		panic(fmt.Sprintf("resolve: unhandled statement %T", stmt))
	}
}

func resolveExpression(ctx *Context, scope ScopeId, expr Expression) (RastExpression, error) {
	switch e := expr.(type) {
	case *IntegerConstant:
		return &RastInteger{Offset: e.Offset, Value: e.Value}, nil

	case *LocalName:
		id, ok := ctx.ResolveNamedLocal(scope, e.Name)
		if !ok {
			return nil, &ResolveError{
				Kind:   ResolveUnknownLocal,
				Name:   e.Name,
				Offset: e.Offset,
			}
		}
		return &RastLocal{Offset: e.Offset, Local: id}, nil

	case *UnaryOp:
		operand, err := resolveExpression(ctx, scope, e.Operand)
		if err != nil {
			return nil, err
		}
		return &RastUnaryOp{Offset: e.Offset, Op: e.Op, Operand: operand}, nil

	case *BinaryOp:
		lhs, err := resolveExpression(ctx, scope, e.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := resolveExpression(ctx, scope, e.RHS)
		if err != nil {
			return nil, err
		}
		return &RastBinaryOp{Offset: e.Offset, Op: e.Op, LHS: lhs, RHS: rhs}, nil

	default:
		panic(fmt.Sprintf("resolve: unhandled expression %T", expr))
	}
}
