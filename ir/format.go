package ir

import (
	"strconv"
	"strings"
)

// Format renders y on one line in a JSON-like notation, for logs and
// error messages.
func Format(y *Node) string {
	var b strings.Builder
	format(&b, y)
	return b.String()
}

func format(b *strings.Builder, y *Node) {
	if y == nil {
		b.WriteString("<nil>")
		return
	}
	switch y.Type {
	case NullType:
		b.WriteString("null")
	case BoolType:
		b.WriteString(strconv.FormatBool(y.Bool))
	case NumberType:
		b.WriteString(FormatNumber(y.Number))
	case StringType:
		b.WriteString(strconv.Quote(y.String))
	case ArrayType:
		b.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				b.WriteByte(',')
			}
			format(b, v)
		}
		b.WriteByte(']')
	case ObjectType:
		b.WriteByte('{')
		for i, f := range y.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(f))
			b.WriteByte(':')
			format(b, y.Values[i])
		}
		b.WriteByte('}')
	default:
		b.WriteString("<unknown>")
	}
}
