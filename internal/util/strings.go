package util

import (
	"fmt"
	"strings"
)

// EscapeString escapes a byte string so that it can be printed as a quoted Yul string literal.
func EscapeString(s string) string {
	sb := strings.Builder{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if c >= 0x20 && c < 0x7f {
				sb.WriteByte(c)
			} else {
				sb.WriteString(fmt.Sprintf("\\x%02x", c))
			}
		}
	}
	return sb.String()
}
