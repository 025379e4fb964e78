// errors.go: user-facing error wrapping and caret-snippet rendering
//
// Turns reader diagnostics into readable snippets with a caret pointing at
// the offending column:
//
//	SYNTAX ERROR in prog.lisp at 3:5: stray dot
//
//	   2 | (define x
//	   3 |   (1 . . 2))
//	     |       ^
//	   4 | (println x)
//
// The snippet shows up to one line of context on each side and places the
// caret under the 1-based column. Evaluation errors carry no position and
// pass through unchanged. The renderer is independent of the engine; any
// caller holding the source text can use it.
package lispy

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource augments a *SyntaxError with a caret-annotated
// snippet of src. Other errors are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name ("stdin",
// a file path) included in the header.
func WrapErrorWithName(err error, srcName string, src string) error {
	se, ok := err.(*SyntaxError)
	if !ok {
		return err
	}
	// Reader cols are 0-based; render as 1-based.
	return fmt.Errorf("%s", snippet(src, "SYNTAX ERROR", srcName, se.Line, se.Col+1, se.Msg))
}

// snippet builds the header plus caret block. Coordinates are 1-based and
// clamped to the source bounds so out-of-range positions never crash the
// rendering.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
