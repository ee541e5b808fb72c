package jsonx

import (
	"strings"
	"unicode/utf16"
)

// Structural characters pass through EscapeString unchanged.
const Structural = `{}[]",:`

const hexDigits = "0123456789abcdef"

// EscapeString rewrites every rune of s as a \uXXXX escape with lowercase hex,
// except the structural characters. Runes outside the BMP become a UTF-16
// surrogate pair. The result is the string content only, without quotes.
func EscapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 6)
	for _, r := range s {
		if strings.ContainsRune(Structural, r) {
			b.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			writeEscape(&b, hi)
			writeEscape(&b, lo)
			continue
		}
		writeEscape(&b, r)
	}
	return b.String()
}

func writeEscape(b *strings.Builder, r rune) {
	var buf [6]byte
	buf[0], buf[1] = '\\', 'u'
	for i := 5; i >= 2; i-- {
		buf[i] = hexDigits[r&0xF]
		r >>= 4
	}
	b.Write(buf[:])
}

// Escape returns a copy of v with EscapeString applied to every string value
// and every object key. Shape and order are preserved.
func Escape(v *Value) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case String:
		return &Value{Kind: String, Str: EscapeString(v.Str)}
	case Array:
		out := &Value{Kind: Array, Items: make([]*Value, len(v.Items))}
		for i, item := range v.Items {
			out.Items[i] = Escape(item)
		}
		return out
	case Object:
		out := &Value{Kind: Object, Members: make([]Member, len(v.Members))}
		for i, m := range v.Members {
			out.Members[i] = Member{Key: EscapeString(m.Key), Value: Escape(m.Value)}
		}
		return out
	}
	cp := *v
	return &cp
}
