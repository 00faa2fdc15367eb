package toylang

import (
	"errors"
	"reflect"
	"testing"
)

func eval(t *testing.T, src string) *Interpreter {
	t.Helper()
	ip, err := Eval(src)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return ip
}

func wantLocal(t *testing.T, ip *Interpreter, name string, want int32) {
	t.Helper()
	v, ok := ip.LocalByName(name)
	if !ok {
		t.Fatalf("local %q has no value", name)
	}
	if v.Tag != VTI32 || v.Data.(int32) != want {
		t.Fatalf("%s = %s, want %d", name, v, want)
	}
}

func Test_Eval_Precedence(t *testing.T) {
	ip := eval(t, "let x = 2 + 3 * 4;")
	wantLocal(t, ip, "x", 14)
}

func Test_Eval_LeftAssociativity(t *testing.T) {
	ip := eval(t, "let x = 10 - 3 - 2;")
	wantLocal(t, ip, "x", 5)
}

func Test_Eval_ParensOverridePrecedence(t *testing.T) {
	ip := eval(t, "let x = (2 + 3) * 4;")
	wantLocal(t, ip, "x", 20)
}

func Test_Eval_UnaryBindsTighterThanBinary(t *testing.T) {
	ip := eval(t, "let x = -2 + 3;")
	wantLocal(t, ip, "x", 1)
}

func Test_Eval_UnaryChainsAndGroups(t *testing.T) {
	ip := eval(t, "let a = --5; let b = -(2 + 3) * 2;")
	wantLocal(t, ip, "a", 5)
	wantLocal(t, ip, "b", -10)
}

func Test_Eval_AssignmentOverwrites(t *testing.T) {
	ip := eval(t, "let mut x = 1; x = x + 10; x = x * x;")
	wantLocal(t, ip, "x", 121)
}

func Test_Eval_BlocksAndShadowing(t *testing.T) {
	ip := eval(t, "let x = 1; { let x = 2; x = x + 100; } x = x + 10;")
	// Outer x ends at 11; the shadow inside the block ends at 102.
	if v, ok := ip.Locals[LocalId(0)]; !ok || v.Data.(int32) != 11 {
		t.Fatalf("outer x = %v", v)
	}
	if v, ok := ip.Locals[LocalId(1)]; !ok || v.Data.(int32) != 102 {
		t.Fatalf("shadow x = %v", v)
	}
	// LocalByName prefers the most recent declaration.
	wantLocal(t, ip, "x", 102)
}

func Test_Eval_BlockReadsOuterLocal(t *testing.T) {
	ip := eval(t, "let a = 7; let b = 0; { b = a * 2; }")
	wantLocal(t, ip, "b", 14)
}

func Test_Eval_Determinism(t *testing.T) {
	src := "let x = 1; { let y = x + 2; x = y * 3; } let z = x - 4;"
	first := eval(t, src)
	second := eval(t, src)
	if !reflect.DeepEqual(first.Locals, second.Locals) {
		t.Fatalf("environments differ:\n%v\n%v", first.Locals, second.Locals)
	}
}

func Test_Eval_EmptyProgram(t *testing.T) {
	ip := eval(t, "")
	if len(ip.Locals) != 0 {
		t.Fatalf("empty program produced locals: %v", ip.Locals)
	}
	ip = eval(t, "   \n\t  ")
	if len(ip.Locals) != 0 {
		t.Fatalf("whitespace program produced locals: %v", ip.Locals)
	}
}

func Test_Eval_PhaseErrors(t *testing.T) {
	cases := []struct {
		src   string
		phase string
	}{
		{"let x = @;", "lex"},
		{"let x = 9", "parse"},
		{"y = 1;", "resolve"},
		{"let x = 1; let y : bool = x;", "type"},
	}
	for _, tc := range cases {
		_, err := Eval(tc.src)
		if err == nil {
			t.Fatalf("%q evaluated without error", tc.src)
		}
		if got := ErrorPhase(err); got != tc.phase {
			t.Fatalf("%q: phase = %s, want %s", tc.src, got, tc.phase)
		}
		if _, ok := ErrorOffset(err); !ok {
			t.Fatalf("%q: error %v carries no offset", tc.src, err)
		}
	}
}

func Test_Eval_TypeErrorPreventsExecution(t *testing.T) {
	_, err := Eval("let x = 1 == 2;")
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("error type = %T, want *TypeError", err)
	}
}

// Well-typed inputs never fail internally: a sweep of valid programs through
// the whole pipeline.
func Test_Eval_ValidPrograms(t *testing.T) {
	sources := []string{
		"let x = 0;",
		"let mut a = 1; a = -a;",
		"let a = 1; let b = a + a; let c = b * b - a;",
		"{ { { let deep = 1 + 2 * 3; } } }",
		"let a = 2; { let b = a + 1; { let c = b * a; } }",
		"let x : i32 = 2 * (3 + 4);",
	}
	for _, src := range sources {
		if _, err := Eval(src); err != nil {
			t.Fatalf("%q failed: %v", src, err)
		}
	}
}
