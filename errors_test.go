package toylang

import (
	"errors"
	"strings"
	"testing"
)

func Test_WrapError_ParseSnippet(t *testing.T) {
	src := "let x = 9"
	_, err := Eval(src)
	wrapped := WrapErrorWithSource(err, src)
	msg := wrapped.Error()
	if !strings.HasPrefix(msg, "PARSE ERROR at 1:10:") {
		t.Fatalf("header = %q", msg)
	}
	if !strings.Contains(msg, "   1 | let x = 9") {
		t.Fatalf("snippet missing source line:\n%s", msg)
	}
	caret := "     | " + strings.Repeat(" ", 9) + "^"
	if !strings.Contains(msg, caret) {
		t.Fatalf("caret misplaced:\n%s", msg)
	}
}

func Test_WrapError_MultilineContext(t *testing.T) {
	src := "let a = 1;\nb = 2;\nlet c = 3;"
	_, err := Eval(src)
	wrapped := WrapErrorWithName(err, "sample", src)
	msg := wrapped.Error()
	if !strings.HasPrefix(msg, "RESOLVE ERROR in sample at 2:1:") {
		t.Fatalf("header = %q", msg)
	}
	for _, line := range []string{"   1 | let a = 1;", "   2 | b = 2;", "   3 | let c = 3;"} {
		if !strings.Contains(msg, line) {
			t.Fatalf("missing context line %q:\n%s", line, msg)
		}
	}
}

func Test_WrapError_ForeignErrorUnchanged(t *testing.T) {
	plain := errors.New("boom")
	if got := WrapErrorWithSource(plain, "src"); got != plain {
		t.Fatalf("foreign error was rewritten: %v", got)
	}
}

func Test_WrapError_LexHeader(t *testing.T) {
	src := "@"
	_, err := Eval(src)
	msg := WrapErrorWithSource(err, src).Error()
	if !strings.HasPrefix(msg, "LEX ERROR at 1:1:") {
		t.Fatalf("header = %q", msg)
	}
}
