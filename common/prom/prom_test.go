package prom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	r, err := parseRange("6001-6003")
	require.NoError(t, err)
	assert.Equal(t, []int{6001, 6002, 6003}, r)

	r, err = parseRange("7000")
	require.NoError(t, err)
	assert.Equal(t, []int{7000}, r)

	r, err = parseRange("")
	require.NoError(t, err)
	assert.Empty(t, r)

	_, err = parseRange("10-1")
	assert.Error(t, err)

	_, err = parseRange("a-b")
	assert.Error(t, err)
}
