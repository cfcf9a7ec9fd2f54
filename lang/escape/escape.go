// Package escape holds the character-escaping tables shared by several
// language adapters' QuoteString implementations, so each adapter only
// has to say which table it needs rather than re-walk runes itself.
package escape

import "strings"

// Basic escapes tab, newline, carriage return, the quote character itself,
// and backslash — the table every adapter in this tree needs as a floor.
func Basic(s string, quote rune) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case quote:
			b.WriteByte('\\')
			b.WriteRune(quote)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// WithControlCodes extends Basic with backspace and form-feed escapes, for
// languages whose string literal grammar recognizes \b and \f.
func WithControlCodes(s string, quote rune) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case quote:
			b.WriteByte('\\')
			b.WriteRune(quote)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
