package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDListValueScanRoundtrip(t *testing.T) {
	list := IDList{"u1", "u2", "u3"}

	v, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, "u1;u2;u3", v)

	var got IDList
	require.NoError(t, got.Scan(v))
	assert.Equal(t, list, got)
}

func TestIDListEmpty(t *testing.T) {
	var list IDList

	v, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)

	assert.Equal(t, IDList{}, Parse(""))

	var got IDList
	require.NoError(t, got.Scan(""))
	assert.Empty(t, got)
}

func TestIDListContainsWithout(t *testing.T) {
	list := IDList{"u1", "u2", "u3"}

	assert.True(t, list.Contains("u2"))
	assert.False(t, list.Contains("u4"))

	assert.Equal(t, IDList{"u1", "u3"}, list.Without("u2"))
	assert.Equal(t, list, list.Without("u4"))
	assert.Equal(t, IDList{"u1", "u2", "u3"}, list, "Without must not mutate the receiver")
}
