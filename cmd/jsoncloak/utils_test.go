package jsoncloak

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickHelpers(t *testing.T) {
	env, local := "env", "local"
	assert.Equal(t, "cli", pickString("cli", &env, &local))
	assert.Equal(t, "env", pickString("", &env, &local))
	assert.Equal(t, "local", pickString("", nil, &local))
	assert.Equal(t, "", pickString("", nil, nil))

	two, three := 2, 3
	assert.Equal(t, 2, pickInt(0, nil, &two, &three))
	assert.Equal(t, 9, pickInt(9, &two))

	yes, no := true, false
	assert.True(t, pickBool(true, &no))
	assert.False(t, pickBool(false, &no, &yes), "first set layer wins, even when false")
	assert.True(t, pickBool(false, nil, &yes))

	assert.Equal(t, []string{"a"}, pickStrings(nil, []string{"a"}, []string{"b"}))
	assert.Equal(t, []string{}, pickStrings([]string{}, []string{"b"}))
	assert.Nil(t, pickStrings(nil, nil))
}
