package lispy

import (
	"fmt"
	"testing"
)

func Test_Printer_integer_round_trip(t *testing.T) {
	in := NewInterp()
	for _, n := range []int64{0, 1, -1, 7, 42, -42, 1000000} {
		text := fmt.Sprintf("%d", n)
		v := readOne(t, in, text)
		wantPrinted(t, v, text)
	}
}

func Test_Printer_dotted_and_nested(t *testing.T) {
	// Built by hand rather than read, to pin down tail handling.
	v := Cons(IntVal(1), IntVal(2))
	wantPrinted(t, v, "(1 . 2)")

	inner := Cons(IntVal(3), IntVal(4))
	v = Cons(Cons(IntVal(1), Cons(IntVal(2), Nil)), Cons(inner, Cons(Nil, Nil)))
	wantPrinted(t, v, "((1 2) (3 . 4) ())")
}

func Test_Printer_sentinels(t *testing.T) {
	wantPrinted(t, Nil, "()")
	wantPrinted(t, True, "t")
}

func Test_Printer_opaque_placeholders(t *testing.T) {
	wantPrinted(t, evalSrc(t, "+"), "<primitive>")
	wantPrinted(t, evalSrc(t, "(lambda (x) x)"), "<function>")
	wantPrinted(t, EnvVal(NewEnv(nil)), "<environment>")
}

func Test_Printer_rejects_reader_markers(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("printing a reader marker must be an internal error")
		}
		if _, ok := r.(*EvalError); !ok {
			t.Fatalf("want *EvalError panic, got %T: %v", r, r)
		}
	}()
	FormatValue(dotMarker)
}

func Test_Value_String_is_marker_safe(t *testing.T) {
	if s := dotMarker.String(); s != "<dot>" {
		t.Fatalf("dot marker debug form: %q", s)
	}
	if s := rparenMarker.String(); s != "<right-paren>" {
		t.Fatalf("right-paren marker debug form: %q", s)
	}
	if s := IntVal(5).String(); s != "5" {
		t.Fatalf("Value.String on int: %q", s)
	}
}
