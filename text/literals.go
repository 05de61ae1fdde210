package text

import (
	"strings"
)

// ParseLiteral consumes a PDF literal string starting at the opening
// parenthesis and returns its unescaped content plus the number of input
// bytes consumed (including both parentheses). Balanced unescaped
// parentheses inside the string are legal per the PDF spec and preserved.
func ParseLiteral(src string) (string, int) {
	var b strings.Builder
	depth := 0
	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '(':
			depth++
			if depth > 1 {
				b.WriteByte(c)
			}
			i++
		case ')':
			depth--
			if depth == 0 {
				return b.String(), i + 1
			}
			b.WriteByte(c)
			i++
		case '\\':
			if i+1 >= len(src) {
				return b.String(), i + 1
			}
			esc := src[i+1]
			switch esc {
			case 'n':
				b.WriteByte('\n')
				i += 2
			case 'r':
				b.WriteByte('\r')
				i += 2
			case 't':
				b.WriteByte('\t')
				i += 2
			case 'b':
				b.WriteByte('\b')
				i += 2
			case 'f':
				b.WriteByte('\f')
				i += 2
			case '(', ')', '\\':
				b.WriteByte(esc)
				i += 2
			case '\n':
				// Line continuation: the escaped newline vanishes.
				i += 2
			case '\r':
				i += 2
				if i < len(src) && src[i] == '\n' {
					i++
				}
			default:
				if esc >= '0' && esc <= '7' {
					val, n := parseOctal(src[i+1:])
					b.WriteByte(val)
					i += 1 + n
				} else {
					// Unknown escape: the backslash is dropped.
					b.WriteByte(esc)
					i += 2
				}
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), i
}

func parseOctal(src string) (byte, int) {
	val := 0
	i := 0
	for i < 3 && i < len(src) && src[i] >= '0' && src[i] <= '7' {
		val = val*8 + int(src[i]-'0')
		i++
	}
	return byte(val), i
}

// parseHex consumes a hex string starting at '<' and decodes byte pairs.
// An odd trailing digit is padded with zero, as the PDF spec requires.
func parseHex(src string) (string, int) {
	var b strings.Builder
	i := 1 // past '<'
	var hi int = -1
	for i < len(src) {
		c := src[i]
		if c == '>' {
			i++
			break
		}
		v := hexVal(c)
		if v < 0 {
			i++
			continue
		}
		if hi < 0 {
			hi = v
		} else {
			b.WriteByte(byte(hi*16 + v))
			hi = -1
		}
		i++
	}
	if hi >= 0 {
		b.WriteByte(byte(hi * 16))
	}
	return b.String(), i
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// Literals extracts the contents of every literal string in a content
// stream segment, with PDF escapes resolved and blank strings dropped.
// Used by the structured header/footer scan on the operand text between
// BDC and EMC.
func Literals(segment string) []string {
	var out []string
	i := 0
	for i < len(segment) {
		if segment[i] == '(' {
			lit, n := ParseLiteral(segment[i:])
			i += n
			if trimmed := strings.TrimSpace(lit); trimmed != "" {
				out = append(out, trimmed)
			}
			continue
		}
		if segment[i] == '\\' {
			i += 2
			continue
		}
		i++
	}
	return out
}
