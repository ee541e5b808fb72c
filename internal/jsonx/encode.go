package jsonx

import (
	"bytes"
	"strings"
)

// AppendCompact appends v to dst with no insignificant whitespace. String
// payloads and keys are written as-is, so escape sequences produced by
// Escape stay literal \uXXXX text. The only character rewritten is '"',
// which becomes \" to keep the string delimited.
func AppendCompact(dst []byte, v *Value) []byte {
	if v == nil {
		return append(dst, "null"...)
	}
	switch v.Kind {
	case Null:
		return append(dst, "null"...)
	case Bool:
		if v.Bool {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case Number:
		return append(dst, string(v.Number)...)
	case String:
		return appendString(dst, v.Str)
	case Array:
		dst = append(dst, '[')
		for i, item := range v.Items {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendCompact(dst, item)
		}
		return append(dst, ']')
	case Object:
		dst = append(dst, '{')
		for i, m := range v.Members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, m.Key)
			dst = append(dst, ':')
			dst = AppendCompact(dst, m.Value)
		}
		return append(dst, '}')
	}
	return dst
}

// MarshalCompact is AppendCompact into a fresh buffer.
func MarshalCompact(v *Value) []byte {
	return AppendCompact(nil, v)
}

func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	if strings.IndexByte(s, '"') < 0 {
		dst = append(dst, s...)
	} else {
		dst = append(dst, bytes.ReplaceAll([]byte(s), []byte(`"`), []byte(`\"`))...)
	}
	return append(dst, '"')
}
