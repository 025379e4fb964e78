// printer.go
//
// The canonical printer: FormatValue renders a Value graph back into the
// reader's textual form. Printing is lossy for natives and closures by
// design; they render as fixed placeholders and cannot be read back.
package lispy

import (
	"strconv"
	"strings"
)

// FormatValue returns the canonical text for v. Integers round-trip
// through the reader; so do symbols, lists, and dotted pairs. The
// reader-internal markers must never reach the printer — seeing one here
// is an internal-consistency failure surfaced at the Eval boundary.
func FormatValue(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.Tag {
	case VTInt:
		b.WriteString(strconv.FormatInt(v.Data.(int64), 10))

	case VTPair:
		b.WriteByte('(')
		p := v.Data.(*Pair)
		for {
			writeValue(b, p.First)
			if IsNil(p.Rest) {
				break
			}
			if p.Rest.Tag != VTPair {
				b.WriteString(" . ")
				writeValue(b, p.Rest)
				break
			}
			b.WriteByte(' ')
			p = p.Rest.Data.(*Pair)
		}
		b.WriteByte(')')

	case VTSymbol:
		b.WriteString(v.Data.(*Symbol).Name)

	case VTNative:
		b.WriteString("<primitive>")

	case VTClosure:
		b.WriteString("<function>")

	case VTEnv:
		b.WriteString("<environment>")

	case VTSentinel:
		switch v.Data {
		case nilSentinel:
			b.WriteString("()")
		case trueSentinel:
			b.WriteString("t")
		default:
			failf("reader marker escaped into the printer")
		}

	default:
		failf("unknown value tag %d", int(v.Tag))
	}
}
