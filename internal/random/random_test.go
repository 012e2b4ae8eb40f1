package random

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64String(t *testing.T) {
	s, err := Base64String(32)
	require.NoError(t, err)
	assert.Len(t, s, 44)

	raw, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestURLStringIsCookieSafe(t *testing.T) {
	s, err := URLString(32)
	require.NoError(t, err)
	assert.NotContains(t, s, "=")
	assert.NotContains(t, s, "+")
	assert.NotContains(t, s, "/")
}

func TestBytesAreNotRepeated(t *testing.T) {
	a, err := Bytes(32)
	require.NoError(t, err)
	b, err := Bytes(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
