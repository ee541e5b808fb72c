package jsonx

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ``},
		{in: "Go", want: `\u0047\u006f`},
		{in: "a:b", want: `\u0061:\u0062`},
		{in: `{}[]",:`, want: `{}[]",:`},
		{in: "\\", want: `\u005c`},
		{in: "\n", want: `\u000a`},
		{in: "é", want: `\u00e9`},
		{in: "君", want: `\u541b`},
		{in: "😀", want: `\ud83d\ude00`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeString(tt.in))
		})
	}
}

func TestEscapeString_LengthProperty(t *testing.T) {
	inputs := []string{
		"minecraft:pig",
		"query.is_baby ? 0.5 : 1.0",
		`{"nested": ["x", "y"]}`,
		"texture.default",
		"Ünïcödé ñame",
	}
	for _, s := range inputs {
		want := 0
		for _, r := range s {
			if strings.ContainsRune(Structural, r) {
				want++
			} else {
				want += 6
			}
		}
		got := EscapeString(s)
		assert.Len(t, got, want, "input %q", s)
		assert.Equal(t, strings.ToLower(got), got, "hex digits must be lowercase for %q", s)
	}
}

func TestEscapeString_DecodesBack(t *testing.T) {
	in := "minecraft:entity.pig/🐷"
	var out string
	// quote the escaped form so encoding/json can decode it
	require.NoError(t, json.Unmarshal([]byte(`"`+EscapeString(in)+`"`), &out))
	assert.Equal(t, in, out)
}

func TestEscape_PreservesShape(t *testing.T) {
	v, err := Parse([]byte(`{"b":[1,"x",true,null],"a":{"k":"v"},"b":2.50}`))
	require.NoError(t, err)

	e := Escape(v)
	require.Equal(t, Object, e.Kind)
	require.Len(t, e.Members, 3)
	assert.Equal(t, `\u0062`, e.Members[0].Key)
	assert.Equal(t, `\u0061`, e.Members[1].Key)
	assert.Equal(t, `\u0062`, e.Members[2].Key)

	arr := e.Members[0].Value
	require.Equal(t, Array, arr.Kind)
	require.Len(t, arr.Items, 4)
	assert.Equal(t, json.Number("1"), arr.Items[0].Number)
	assert.Equal(t, `\u0078`, arr.Items[1].Str)
	assert.True(t, arr.Items[2].Bool)
	assert.Equal(t, Null, arr.Items[3].Kind)

	assert.Equal(t, `\u0076`, e.Members[1].Value.Members[0].Value.Str)
	assert.Equal(t, json.Number("2.50"), e.Members[2].Value.Number)

	// the source tree is not modified
	assert.Equal(t, "b", v.Members[0].Key)
}
