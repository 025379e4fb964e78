// reader.go
//
// The S-expression reader: converts a byte stream into Value graphs, one
// expression per Read call. The grammar is the only external protocol of
// the interpreter:
//
//	integers:  optional leading '-', one or more digits
//	symbols:   letter or one of +=!@#$%^&* first, then letters/digits/'-'
//	lists:     ( expr* ), ( expr+ . expr ), () for empty
//	quote:     'expr  ==  (quote expr)
//	comments:  ';' to end of line (LF or CR/LF)
//
// Reading blocks on the underlying source when more bytes are needed mid
// token; that is an accepted dependency, not an error. Positions are
// tracked as 1-based lines and 0-based columns (rendered 1-based by
// errors.go).
package lispy

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// symbolMaxLen bounds symbol names; longer names are a syntax error.
const symbolMaxLen = 200

// symbolStartExtra are the non-letter bytes that may begin a symbol.
const symbolStartExtra = "+=!@#$%^&*"

// SyntaxError is a reader diagnostic with a source position. Col is
// 0-based (errors.go renders it 1-based). Incomplete marks errors caused
// solely by end-of-input, so interactive drivers can prompt for more.
type SyntaxError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is a syntax error that more input could
// still repair (an unclosed list or a dangling quote). REPLs use this to
// keep reading continuation lines instead of reporting.
func IsIncomplete(err error) bool {
	se, ok := err.(*SyntaxError)
	return ok && se.Incomplete
}

// Reader scans S-expressions from a byte stream.
type Reader struct {
	br   *bufio.Reader
	line int // 1-based line of the next unread byte
	col  int // bytes consumed on the current line

	// position of the token currently being read, for diagnostics
	tokLine int
	tokCol  int
}

// NewReader wraps r in a buffered S-expression reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r), line: 1, tokLine: 1}
}

func (r *Reader) next() (byte, bool) {
	c, err := r.br.ReadByte()
	if err != nil {
		return 0, false
	}
	if c == '\n' {
		r.line++
		r.col = 0
	} else {
		r.col++
	}
	return c, true
}

func (r *Reader) peek() (byte, bool) {
	buf, err := r.br.Peek(1)
	if err != nil || len(buf) == 0 {
		return 0, false
	}
	return buf[0], true
}

func (r *Reader) errAt(msg string) *SyntaxError {
	return &SyntaxError{Line: r.tokLine, Col: r.tokCol, Msg: msg}
}

func (r *Reader) errIncomplete(msg string) *SyntaxError {
	e := r.errAt(msg)
	e.Incomplete = true
	return e
}

// Read scans the next expression. It returns io.EOF when the stream is
// exhausted at a fresh top level; end-of-input anywhere else is an
// unclosed-parenthesis error. The dot and right-paren markers it can
// return are consumed by list parsing and are stray anywhere else — the
// caller decides (see Interp.ReadString and Interp.Run).
func (r *Reader) Read(in *Interp) (Value, error) {
	for {
		c, ok := r.next()
		if !ok {
			return Value{}, io.EOF
		}
		r.tokLine = r.line
		r.tokCol = r.col - 1

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			continue
		case c == ';':
			r.skipLine()
			continue
		case c == '(':
			return r.readList(in)
		case c == ')':
			return rparenMarker, nil
		case c == '.':
			return dotMarker, nil
		case c == '\'':
			return r.readQuote(in)
		case isDigit(c):
			return IntVal(r.readNumber(int64(c - '0'))), nil
		case c == '-':
			// '-' always starts an integer; a bare '-' reads as 0
			// rather than a symbol. Kept for compatibility (DESIGN.md).
			return IntVal(-r.readNumber(0)), nil
		case isAlpha(c) || strings.IndexByte(symbolStartExtra, c) >= 0:
			return r.readSymbol(in, c)
		default:
			return Value{}, r.errAt(fmt.Sprintf("unknown character %q", c))
		}
	}
}

// skipLine consumes a ';' comment up to and including its line terminator,
// handling LF, CR, and CR/LF endings.
func (r *Reader) skipLine() {
	for {
		c, ok := r.next()
		if !ok || c == '\n' {
			return
		}
		if c == '\r' {
			if p, ok := r.peek(); ok && p == '\n' {
				r.next()
			}
			return
		}
	}
}

// readList parses the elements after '(' until the matching ')'. A dot
// after at least one element switches to reading exactly one tail
// expression, which must be immediately followed by ')'.
func (r *Reader) readList(in *Interp) (Value, error) {
	obj, err := r.readElement(in)
	if err != nil {
		return Value{}, err
	}
	if obj == dotMarker {
		return Value{}, r.errAt("stray dot")
	}
	if obj == rparenMarker {
		return Nil, nil
	}

	head := Cons(obj, Nil)
	tail := head.Data.(*Pair)
	for {
		obj, err := r.readElement(in)
		if err != nil {
			return Value{}, err
		}
		if obj == rparenMarker {
			return head, nil
		}
		if obj == dotMarker {
			rest, err := r.readElement(in)
			if err != nil {
				return Value{}, err
			}
			if isMarker(rest) {
				return Value{}, r.errAt("malformed dotted list")
			}
			tail.Rest = rest
			closing, err := r.readElement(in)
			if err != nil {
				return Value{}, err
			}
			if closing != rparenMarker {
				return Value{}, r.errAt("closed parenthesis expected after dot")
			}
			return head, nil
		}
		cell := Cons(obj, Nil)
		tail.Rest = cell
		tail = cell.Data.(*Pair)
	}
}

// readElement is Read with end-of-input inside a list promoted to an
// unclosed-parenthesis error.
func (r *Reader) readElement(in *Interp) (Value, error) {
	obj, err := r.Read(in)
	if err == io.EOF {
		return Value{}, r.errIncomplete("unclosed parenthesis")
	}
	return obj, err
}

// readQuote desugars 'E into (quote E).
func (r *Reader) readQuote(in *Interp) (Value, error) {
	expr, err := r.Read(in)
	if err == io.EOF {
		return Value{}, r.errIncomplete("quote must be followed by an expression")
	}
	if err != nil {
		return Value{}, err
	}
	if isMarker(expr) {
		return Value{}, r.errAt("quote must be followed by an expression")
	}
	quote := SymVal(in.Intern("quote"))
	return Cons(quote, Cons(expr, Nil)), nil
}

// readNumber consumes the maximal run of digits, accumulating onto val.
func (r *Reader) readNumber(val int64) int64 {
	for {
		c, ok := r.peek()
		if !ok || !isDigit(c) {
			return val
		}
		r.next()
		val = val*10 + int64(c-'0')
	}
}

// readSymbol consumes the maximal run of letters/digits/hyphens after the
// start byte c and interns the result.
func (r *Reader) readSymbol(in *Interp, c byte) (Value, error) {
	buf := make([]byte, 1, 16)
	buf[0] = c
	for {
		c, ok := r.peek()
		if !ok || !(isAlpha(c) || isDigit(c) || c == '-') {
			break
		}
		if len(buf) >= symbolMaxLen {
			return Value{}, r.errAt("symbol name too long")
		}
		r.next()
		buf = append(buf, c)
	}
	return SymVal(in.Intern(string(buf))), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
