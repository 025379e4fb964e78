package lispy

import (
	"io"
	"strings"
	"testing"
)

// readOne parses exactly one expression from src.
func readOne(t *testing.T, in *Interp, src string) Value {
	t.Helper()
	forms, err := in.ReadString(src)
	if err != nil {
		t.Fatalf("ReadString(%q): %v", src, err)
	}
	if len(forms) != 1 {
		t.Fatalf("ReadString(%q): want 1 form, got %d", src, len(forms))
	}
	return forms[0]
}

func readErr(t *testing.T, src string) error {
	t.Helper()
	_, err := NewInterp().ReadString(src)
	if err == nil {
		t.Fatalf("ReadString(%q): want error, got none", src)
	}
	return err
}

func Test_Reader_round_trips(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"0", "0"},
		{"42", "42"},
		{"-42", "-42"},
		{"007", "7"},
		{"foo", "foo"},
		{"foo-bar-2", "foo-bar-2"},
		{"+", "+"},
		{"=", "="},
		{"!bang", "!bang"},
		{"()", "()"},
		{"(1 2 3)", "(1 2 3)"},
		{"( 1\t2\r\n3 )", "(1 2 3)"},
		{"(1 . 2)", "(1 . 2)"},
		{"(1 2 . 3)", "(1 2 . 3)"},
		{"((1 2) (3 . 4) ())", "((1 2) (3 . 4) ())"},
		{"'a", "(quote a)"},
		{"'(a b c)", "(quote (a b c))"},
		{"''x", "(quote (quote x))"},
		{"(a ; trailing comment\n b)", "(a b)"},
		{"; leading comment\r\n5", "5"},
	}
	in := NewInterp()
	for _, c := range cases {
		wantPrinted(t, readOne(t, in, c.src), c.want)
	}
}

func Test_Reader_bare_minus_is_zero(t *testing.T) {
	// Compatibility quirk: '-' with no digits reads as the integer 0,
	// not as a symbol named "-".
	in := NewInterp()
	wantInt(t, readOne(t, in, "-"), 0)
	forms, err := in.ReadString("(- 5)")
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	wantPrinted(t, forms[0], "(0 5)")
}

func Test_Reader_multiple_forms(t *testing.T) {
	in := NewInterp()
	forms, err := in.ReadString("1 (2 3) x")
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if len(forms) != 3 {
		t.Fatalf("want 3 forms, got %d", len(forms))
	}
	wantPrinted(t, forms[1], "(2 3)")
}

func Test_Reader_eof_at_top_level(t *testing.T) {
	in := NewInterp()
	rd := NewReader(strings.NewReader("  ; just a comment\n"))
	if _, err := rd.Read(in); err != io.EOF {
		t.Fatalf("want io.EOF on exhausted input, got %v", err)
	}
}

func Test_Reader_syntax_errors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"(1 2", "unclosed parenthesis"},
		{"((1) (2)", "unclosed parenthesis"},
		{")", "stray parenthesis"},
		{". 1", "stray dot"},
		{"(. 1)", "stray dot"},
		{"(1 . 2 3)", "closed parenthesis expected after dot"},
		{"(1 .)", "malformed dotted list"},
		{"(1 . .)", "malformed dotted list"},
		{"[", "unknown character"},
		{"'", "quote must be followed by an expression"},
		{"(')", "quote must be followed by an expression"},
		{strings.Repeat("a", 201), "symbol name too long"},
	}
	for _, c := range cases {
		wantErrContains(t, readErr(t, c.src), c.want)
	}
}

func Test_Reader_symbol_max_length(t *testing.T) {
	in := NewInterp()
	name := strings.Repeat("a", 200)
	sym := readOne(t, in, name)
	if sym.Tag != VTSymbol || sym.Data.(*Symbol).Name != name {
		t.Fatalf("200-char symbol should parse, got %s", sym)
	}
}

func Test_Reader_incomplete_detection(t *testing.T) {
	_, err := NewInterp().ReadString("(define x\n  (list 1 2)")
	if !IsIncomplete(err) {
		t.Fatalf("unclosed list should report incomplete, got %v", err)
	}

	// An outright malformed program is not incomplete: no amount of
	// further input repairs it.
	_, err = NewInterp().ReadString("(1 . 2 3)")
	if IsIncomplete(err) {
		t.Fatalf("malformed dotted list must not count as incomplete: %v", err)
	}
	if IsIncomplete(nil) {
		t.Fatal("nil error reported incomplete")
	}
}

func Test_Reader_error_positions(t *testing.T) {
	_, err := NewInterp().ReadString("(a\n  [)")
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("want *SyntaxError, got %T: %v", err, err)
	}
	if se.Line != 2 || se.Col != 2 {
		t.Fatalf("want position 2:2 (0-based col), got %d:%d", se.Line, se.Col)
	}
}

func Test_Reader_comment_line_endings(t *testing.T) {
	in := NewInterp()
	// CR-only and CR/LF terminated comments both end at the line break.
	wantInt(t, readOne(t, in, "; cr only\r7"), 7)
	wantInt(t, readOne(t, in, "; crlf\r\n8"), 8)
}
