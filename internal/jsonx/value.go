package jsonx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"
)

// Kind is the variant of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Value is a parsed JSON value. Objects keep members in source order and
// numbers keep their literal text. A repeated key keeps its first position
// and takes the last value.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  json.Number
	Str     string
	Items   []*Value
	Members []Member
}

// Parse decodes exactly one JSON value from data.
func Parse(data []byte) (*Value, error) {
	if err := checkSurrogates(data); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected %v after top-level value", tok)
	}
	return v, nil
}

func next(dec *json.Decoder) (json.Token, error) {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func parseValue(dec *json.Decoder) (*Value, error) {
	tok, err := next(dec)
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return &Value{Kind: String, Str: t}, nil
	case json.Number:
		return &Value{Kind: Number, Number: t}, nil
	case bool:
		return &Value{Kind: Bool, Bool: t}, nil
	case nil:
		return &Value{Kind: Null}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (*Value, error) {
	v := &Value{Kind: Object}
	seen := map[string]int{}
	for dec.More() {
		tok, err := next(dec)
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		child, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		if i, ok := seen[key]; ok {
			v.Members[i].Value = child
			continue
		}
		seen[key] = len(v.Members)
		v.Members = append(v.Members, Member{Key: key, Value: child})
	}
	if _, err := next(dec); err != nil {
		return nil, err
	}
	return v, nil
}

func parseArray(dec *json.Decoder) (*Value, error) {
	v := &Value{Kind: Array}
	for dec.More() {
		child, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		v.Items = append(v.Items, child)
	}
	if _, err := next(dec); err != nil {
		return nil, err
	}
	return v, nil
}

// checkSurrogates rejects string escapes that encode half of a UTF-16
// surrogate pair. encoding/json would silently turn them into U+FFFD.
func checkSurrogates(data []byte) error {
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if !inString {
			inString = c == '"'
			continue
		}
		if c == '"' {
			inString = false
			continue
		}
		if c != '\\' || i+1 >= len(data) {
			continue
		}
		if data[i+1] != 'u' {
			i++
			continue
		}
		r, ok := hex4(data, i+2)
		if !ok || !utf16.IsSurrogate(r) {
			i++
			continue
		}
		if r >= 0xDC00 {
			return fmt.Errorf("unpaired low surrogate U+%04X at offset %d", r, i)
		}
		lo, ok := rune(0), false
		if i+7 < len(data) && data[i+6] == '\\' && data[i+7] == 'u' {
			lo, ok = hex4(data, i+8)
		}
		if !ok || lo < 0xDC00 || lo > 0xDFFF {
			return fmt.Errorf("unpaired high surrogate U+%04X at offset %d", r, i)
		}
		i += 11
	}
	return nil
}

func hex4(data []byte, start int) (rune, bool) {
	if start+4 > len(data) {
		return 0, false
	}
	var r rune
	for _, c := range data[start : start+4] {
		switch {
		case '0' <= c && c <= '9':
			c -= '0'
		case 'a' <= c && c <= 'f':
			c = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			c = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(c)
	}
	return r, true
}
