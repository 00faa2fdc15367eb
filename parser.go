// parser.go — recursive-descent statements, precedence-climbing expressions.
//
// OVERVIEW
// --------
// The parser owns a TokenStream and produces the AST defined in ast.go.
//
// Statement grammar:
//
//	program   := statement* EOF
//	statement := 'let' 'mut'? ID (':' ID)? '=' expression ';'
//	           | ID '=' expression ';'
//	           | '{' statement* '}'
//
// Expression grammar (precedence climbing):
//
//	primary    := INTEGER | ID | '-' primary | '(' expression ')'
//	expression := primary (BINOP expression)*
//
// Binary operators fold left: after parsing one primary the parser keeps
// consuming operators whose precedence is at least the current minimum,
// parsing each right operand one level tighter than the operator itself.
// '*' binds at 3, '+'/'-' at 2, '==' at 0. Unary '-' is part of primary and
// therefore binds tighter than everything. '=' is statement-level only and
// never enters the expression grammar.
//
// ERRORS
// ------
// Every expected-token mismatch fails immediately with a structured
// *ParseError carrying the acceptable kind set, the actual kind, and the
// byte offset. There is no recovery or resynchronization; lexer errors
// propagate unchanged.
package toylang

import (
	"fmt"
	"strings"
)

// ParseError is a structured "unexpected token" failure.
type ParseError struct {
	Expected []TokenKind
	Actual   TokenKind
	Offset   int
}

func (e *ParseError) Error() string {
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = k.String()
	}
	return fmt.Sprintf("unexpected %s at byte %d (expected %s)",
		e.Actual, e.Offset, strings.Join(names, " or "))
}

// Parser consumes a TokenStream and builds a Program.
type Parser struct {
	lexer *TokenStream
}

// NewParser creates a parser over the given token stream.
func NewParser(lexer *TokenStream) *Parser {
	return &Parser{lexer: lexer}
}

// Parse is shorthand for lexing and parsing a complete source string.
func Parse(src string) (*Program, error) {
	return NewParser(NewTokenStream(src)).ParseProgram()
}

// ParseProgram parses a maximal statement sequence until EOF.
func (p *Parser) ParseProgram() (*Program, error) {
	var statements []Statement
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			break
		}
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return &Program{Statements: statements}, nil
}

// ParseStatement parses a single declaration, assignment, or block.
func (p *Parser) ParseStatement() (Statement, error) {
	tok, err := p.lexer.Peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case LET:
		return p.parseDeclaration()
	case LCURLY:
		return p.parseBlock()
	case ID:
		return p.parseAssignment()
	default:
		return nil, &ParseError{
			Expected: []TokenKind{LET, LCURLY, ID},
			Actual:   tok.Kind,
			Offset:   tok.Offset,
		}
	}
}

func (p *Parser) parseDeclaration() (Statement, error) {
	letTok, err := p.expect(LET)
	if err != nil {
		return nil, err
	}

	mutable := false
	if tok, err := p.lexer.Peek(); err != nil {
		return nil, err
	} else if tok.Kind == MUT {
		p.lexer.Take()
		mutable = true
	}

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	var declaredType *Identifier
	if tok, err := p.lexer.Peek(); err != nil {
		return nil, err
	} else if tok.Kind == COLON {
		p.lexer.Take()
		typeName, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		declaredType = &typeName
	}

	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}

	return &DeclareVariable{
		Offset:       letTok.Offset,
		Name:         name,
		Mutable:      mutable,
		DeclaredType: declaredType,
		Value:        value,
	}, nil
}

func (p *Parser) parseAssignment() (Statement, error) {
	target, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &AssignLocal{Offset: target.Offset, Target: target, Value: value}, nil
}

func (p *Parser) parseBlock() (Statement, error) {
	open, err := p.expect(LCURLY)
	if err != nil {
		return nil, err
	}

	var inner []Statement
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == RCURLY {
			p.lexer.Take()
			break
		}
		if tok.Kind == EOF {
			return nil, &ParseError{
				Expected: []TokenKind{LET, LCURLY, ID, RCURLY},
				Actual:   EOF,
				Offset:   tok.Offset,
			}
		}
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		inner = append(inner, stmt)
	}

	return &Block{Offset: open.Offset, Inner: inner}, nil
}

// parseExpression implements precedence climbing: parse one primary, then
// while the next token is a binary operator binding at least as tightly as
// minPrecedence, consume it and parse its right operand one level tighter,
// folding left into a BinaryOp node.
func (p *Parser) parseExpression(minPrecedence int) (Expression, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		op, ok := binaryOperatorFor(tok.Kind)
		if !ok || op.Precedence() < minPrecedence {
			return lhs, nil
		}
		p.lexer.Take()

		rhs, err := p.parseExpression(op.Precedence() + 1)
		if err != nil {
			return nil, err
		}
		lhs = &BinaryOp{Offset: lhs.Pos(), Op: op, LHS: lhs, RHS: rhs}
	}
}

func (p *Parser) parsePrimary() (Expression, error) {
	tok, err := p.lexer.Peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case INTEGER:
		p.lexer.Take()
		return &IntegerConstant{Offset: tok.Offset, Value: tok.Int}, nil
	case ID:
		p.lexer.Take()
		return &LocalName{Offset: tok.Offset, Name: tok.Lexeme}, nil
	case MINUS:
		p.lexer.Take()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Offset: tok.Offset, Op: OpNegate, Operand: operand}, nil
	case LROUND:
		p.lexer.Take()
		inner, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RROUND); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, &ParseError{
			Expected: []TokenKind{INTEGER, ID, MINUS, LROUND},
			Actual:   tok.Kind,
			Offset:   tok.Offset,
		}
	}
}

// expect consumes the next token and fails unless it has the wanted kind.
func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.lexer.Take()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, &ParseError{
			Expected: []TokenKind{kind},
			Actual:   tok.Kind,
			Offset:   tok.Offset,
		}
	}
	return tok, nil
}

func (p *Parser) expectIdentifier() (Identifier, error) {
	tok, err := p.expect(ID)
	if err != nil {
		return Identifier{}, err
	}
	return Identifier{Offset: tok.Offset, Name: tok.Lexeme}, nil
}
