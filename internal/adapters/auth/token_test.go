package auth

import (
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenSource_New(t *testing.T) {
	ts := NewSessionTokenSource()

	token, err := ts.New()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 48, "token should decode to a UUID plus 32 random bytes")
}

func TestSessionTokenSource_New_unique(t *testing.T) {
	ts := NewSessionTokenSource()
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		token, err := ts.New()
		require.NoError(t, err)
		require.False(t, seen[token], "tokens must not repeat")
		seen[token] = true
	}
}

func TestSessionTokenSource_Digest(t *testing.T) {
	ts := NewSessionTokenSource()
	hexRe := regexp.MustCompile(`^[0-9a-f]{64}$`)

	d1 := ts.Digest("token-a")
	d2 := ts.Digest("token-a")
	d3 := ts.Digest("token-b")

	assert.Regexp(t, hexRe, d1)
	assert.Equal(t, d1, d2, "digest must be deterministic")
	assert.NotEqual(t, d1, d3)
}
