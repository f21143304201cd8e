package gptfunc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySeeds(t *testing.T) {
	reg := NewConverterRegistry()
	for _, name := range []string{"string", "integer", "number", "boolean", "datetime", "enum", "array"} {
		conv, ok := reg.Resolve(name)
		assert.True(t, ok, name)
		assert.NotNil(t, conv, name)
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewConverterRegistry()
	err := reg.Register("string", StringConverter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConverterExists))
	assert.True(t, errors.Is(err, ErrLib))
}

func TestRegistryCustomType(t *testing.T) {
	reg := NewConverterRegistry()
	require.NoError(t, reg.Register("color", LiteralConverter{}))
	conv, ok := reg.Resolve("color")
	require.True(t, ok)
	assert.IsType(t, LiteralConverter{}, conv)
}

func TestRegistrySliceFallback(t *testing.T) {
	reg := NewConverterRegistry()
	conv, ok := reg.Resolve("[]integer")
	require.True(t, ok)
	assert.IsType(t, ArrayConverter{}, conv)

	_, ok = reg.Resolve("wibble")
	assert.False(t, ok)
}

func TestRegistryRejectsEmpty(t *testing.T) {
	reg := NewConverterRegistry()
	err := reg.Register("", StringConverter{})
	require.Error(t, err)
	err = reg.Register("x", nil)
	require.Error(t, err)
}
