package toylang

import (
	"errors"
	"reflect"
	"testing"
)

func parse(t *testing.T, src string) *Program {
	t.Helper()
	program, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return program
}

func parseOne(t *testing.T, src string) Statement {
	t.Helper()
	program := parse(t, src)
	if len(program.Statements) != 1 {
		t.Fatalf("statement count = %d, want 1", len(program.Statements))
	}
	return program.Statements[0]
}

func wantParseError(t *testing.T, src string, expected []TokenKind, actual TokenKind, offset int) {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("parsed %q without error", src)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *ParseError (%v)", err, err)
	}
	if !reflect.DeepEqual(pe.Expected, expected) || pe.Actual != actual || pe.Offset != offset {
		t.Fatalf("got %+v, want expected=%v actual=%v offset=%d", pe, expected, actual, offset)
	}
}

func Test_Parser_Declaration(t *testing.T) {
	stmt := parseOne(t, "let x = 10;")
	want := &DeclareVariable{
		Offset: 0,
		Name:   Identifier{Offset: 4, Name: "x"},
		Value:  &IntegerConstant{Offset: 8, Value: 10},
	}
	if !reflect.DeepEqual(stmt, want) {
		t.Fatalf("got %#v, want %#v", stmt, want)
	}
}

func Test_Parser_DeclarationWithTypeAnnotation(t *testing.T) {
	stmt := parseOne(t, "let x : i32 = 10;")
	want := &DeclareVariable{
		Offset:       0,
		Name:         Identifier{Offset: 4, Name: "x"},
		DeclaredType: &Identifier{Offset: 8, Name: "i32"},
		Value:        &IntegerConstant{Offset: 14, Value: 10},
	}
	if !reflect.DeepEqual(stmt, want) {
		t.Fatalf("got %#v, want %#v", stmt, want)
	}
}

func Test_Parser_MutDeclaration(t *testing.T) {
	stmt := parseOne(t, "let mut mutable_x = 0;")
	want := &DeclareVariable{
		Offset:  0,
		Name:    Identifier{Offset: 8, Name: "mutable_x"},
		Mutable: true,
		Value:   &IntegerConstant{Offset: 20, Value: 0},
	}
	if !reflect.DeepEqual(stmt, want) {
		t.Fatalf("got %#v, want %#v", stmt, want)
	}
}

func Test_Parser_Assignment(t *testing.T) {
	stmt := parseOne(t, "x = 1;")
	want := &AssignLocal{
		Offset: 0,
		Target: Identifier{Offset: 0, Name: "x"},
		Value:  &IntegerConstant{Offset: 4, Value: 1},
	}
	if !reflect.DeepEqual(stmt, want) {
		t.Fatalf("got %#v, want %#v", stmt, want)
	}
}

func Test_Parser_Block(t *testing.T) {
	stmt := parseOne(t, "{ let x = 0; }")
	want := &Block{
		Offset: 0,
		Inner: []Statement{
			&DeclareVariable{
				Offset: 2,
				Name:   Identifier{Offset: 6, Name: "x"},
				Value:  &IntegerConstant{Offset: 10, Value: 0},
			},
		},
	}
	if !reflect.DeepEqual(stmt, want) {
		t.Fatalf("got %#v, want %#v", stmt, want)
	}
}

func Test_Parser_EmptyAndNestedBlocks(t *testing.T) {
	program := parse(t, "{} { { let a = 1; } }")
	if len(program.Statements) != 2 {
		t.Fatalf("statement count = %d, want 2", len(program.Statements))
	}
	if got := DumpStatement(program.Statements[1]); got != "(block (block (let a (int 1))))" {
		t.Fatalf("nested block shape = %s", got)
	}
}

// Expression shapes via the s-expression dump: precedence and associativity
// are easier to read this way than through nested struct literals.
func Test_Parser_ExpressionShapes(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"let x = 2 + 3 * 4;", "(let x (+ (int 2) (* (int 3) (int 4))))"},
		{"let x = 10 - 3 - 2;", "(let x (- (- (int 10) (int 3)) (int 2)))"},
		{"let x = (2 + 3) * 4;", "(let x (* (+ (int 2) (int 3)) (int 4)))"},
		{"let x = -2 + 3;", "(let x (+ (- (int 2)) (int 3)))"},
		{"let x = -2 * 3;", "(let x (* (- (int 2)) (int 3)))"},
		{"let x = --2;", "(let x (- (- (int 2))))"},
		{"let x = -(2 + 3);", "(let x (- (+ (int 2) (int 3))))"},
		{"let x = a + b * c + d;", "(let x (+ (+ (name a) (* (name b) (name c))) (name d)))"},
		{"let x = 1 == 2 + 3;", "(let x (== (int 1) (+ (int 2) (int 3))))"},
		{"let x = ((7));", "(let x (int 7))"},
	}
	for _, tc := range cases {
		stmt := parseOne(t, tc.src)
		if got := DumpStatement(stmt); got != tc.want {
			t.Fatalf("%s\n  got:  %s\n  want: %s", tc.src, got, tc.want)
		}
	}
}

func Test_Parser_BinaryNodeCarriesFirstTokenOffset(t *testing.T) {
	stmt := parseOne(t, "let x = 10 + 3;")
	decl := stmt.(*DeclareVariable)
	if decl.Value.Pos() != 8 {
		t.Fatalf("binary node offset = %d, want 8", decl.Value.Pos())
	}
}

func Test_Parser_MissingSemicolon(t *testing.T) {
	wantParseError(t, "let x = 9", []TokenKind{SEMICOLON}, EOF, 9)
}

func Test_Parser_MissingCloseParen(t *testing.T) {
	wantParseError(t, "let x = (1 + 2;", []TokenKind{RROUND}, SEMICOLON, 14)
}

func Test_Parser_UnterminatedBlock(t *testing.T) {
	wantParseError(t, "{ let x = 1;", []TokenKind{LET, LCURLY, ID, RCURLY}, EOF, 12)
}

func Test_Parser_StatementCannotStartWithOperator(t *testing.T) {
	wantParseError(t, "* 2;", []TokenKind{LET, LCURLY, ID}, MULT, 0)
}

func Test_Parser_AssignIsNotAnExpression(t *testing.T) {
	// 'x = (y = 1);' must fail: '=' never appears inside expressions.
	wantParseError(t, "x = (y = 1);", []TokenKind{RROUND}, ASSIGN, 7)
}

func Test_Parser_MissingExpression(t *testing.T) {
	wantParseError(t, "let x = ;", []TokenKind{INTEGER, ID, MINUS, LROUND}, SEMICOLON, 8)
}

func Test_Parser_LexErrorPropagates(t *testing.T) {
	_, err := Parse("let x = 4 $ 2;")
	var le *LexError
	if !errors.As(err, &le) {
		t.Fatalf("error type = %T, want *LexError (%v)", err, err)
	}
	if le.Kind != LexUnknownToken || le.Offset != 10 {
		t.Fatalf("got %+v", le)
	}
}
