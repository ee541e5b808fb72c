package jsonx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_KeepsOrderAndNumbers(t *testing.T) {
	v, err := Parse([]byte(`{"z":1e5,"a":-0.10,"m":[]}`))
	require.NoError(t, err)
	require.Equal(t, Object, v.Kind)

	keys := make([]string, 0, len(v.Members))
	for _, m := range v.Members {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
	assert.Equal(t, json.Number("1e5"), v.Members[0].Value.Number)
	assert.Equal(t, json.Number("-0.10"), v.Members[1].Value.Number)
	assert.Equal(t, Array, v.Members[2].Value.Kind)
	assert.Empty(t, v.Members[2].Value.Items)
}

func TestParse_Scalars(t *testing.T) {
	for in, kind := range map[string]Kind{
		`"s"`:   String,
		`12`:    Number,
		`false`: Bool,
		`null`:  Null,
	} {
		v, err := Parse([]byte(in))
		require.NoError(t, err, in)
		assert.Equal(t, kind, v.Kind, in)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{
		``,
		`{"a":`,
		`[1,2`,
		`{"a" 1}`,
		`{"a":1} {"b":2}`,
		`{"a":1,}`,
		`[1] x`,
	} {
		_, err := Parse([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "object", Object.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestParse_DuplicateKeysKeepFirstPositionLastValue(t *testing.T) {
	v, err := Parse([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)
	require.Len(t, v.Members, 2)
	assert.Equal(t, "a", v.Members[0].Key)
	assert.Equal(t, json.Number("3"), v.Members[0].Value.Number)
	assert.Equal(t, "b", v.Members[1].Key)
	assert.Equal(t, `{"a":3,"b":2}`, string(MarshalCompact(v)))
}

func TestParse_Surrogates(t *testing.T) {
	v, err := Parse([]byte(`"\ud83d\ude00"`))
	require.NoError(t, err)
	assert.Equal(t, "\U0001F600", v.Str)

	v, err = Parse([]byte(`"\\ud800"`))
	require.NoError(t, err, "escaped backslash is not an escape")
	assert.Equal(t, `\ud800`, v.Str)

	for _, in := range []string{
		`{"a":"\ud800"}`,
		`"\udc00"`,
		`"\ud800x"`,
		`"\ud800\u0041"`,
		`["ok", "\uDBFF"]`,
	} {
		_, err := Parse([]byte(in))
		assert.Error(t, err, "input %s", in)
	}
}
