package lispy

import (
	"errors"
	"strings"
	"testing"
)

func Test_WrapError_snippet(t *testing.T) {
	src := "(define x\n  (1 . . 2))\n(println x)"
	_, err := NewInterp().ReadString(src)
	if err == nil {
		t.Fatal("want a syntax error")
	}

	wrapped := WrapErrorWithName(err, "test.lisp", src)
	msg := wrapped.Error()
	for _, want := range []string{
		"SYNTAX ERROR in test.lisp at 2:",
		"   2 |   (1 . . 2))",
		"^",
		"   3 | (println x)",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("snippet missing %q:\n%s", want, msg)
		}
	}
}

func Test_WrapError_clamps_out_of_range(t *testing.T) {
	se := &SyntaxError{Line: 99, Col: 99, Msg: "unclosed parenthesis"}
	msg := WrapErrorWithSource(se, "(a").Error()
	if !strings.Contains(msg, "unclosed parenthesis") {
		t.Fatalf("clamped snippet lost the message:\n%s", msg)
	}
}

func Test_WrapError_passes_through_other_errors(t *testing.T) {
	plain := errors.New("boom")
	if WrapErrorWithSource(plain, "src") != plain {
		t.Fatal("non-syntax errors must pass through unchanged")
	}

	_, evalErr := NewInterp().EvalString("missing")
	if WrapErrorWithSource(evalErr, "missing") != evalErr {
		t.Fatal("eval errors carry no position and must pass through")
	}
}
