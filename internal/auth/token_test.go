package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInterviewToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := GenerateInterviewToken()
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		// URL-safe: usable in a query string without escaping
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "=")
		assert.False(t, strings.ContainsAny(token, " \t\n"))

		assert.False(t, seen[token], "duplicate token generated")
		seen[token] = true
	}
}

func TestGenerateTokenExpiry(t *testing.T) {
	expiry := GenerateTokenExpiry(48)

	assert.Equal(t, time.UTC, expiry.Location())
	assert.WithinDuration(t, time.Now().UTC().Add(48*time.Hour), expiry, time.Minute)
}

func TestIsTokenExpired(t *testing.T) {
	assert.True(t, IsTokenExpired(nil))

	past := time.Now().UTC().Add(-time.Minute)
	assert.True(t, IsTokenExpired(&past))

	future := time.Now().UTC().Add(time.Minute)
	assert.False(t, IsTokenExpired(&future))

	// naive timestamps read back from the database carry no zone; their wall
	// clock is UTC and must be compared as such
	futureWallClock := time.Now().UTC().Add(time.Hour)
	naive := time.Date(
		futureWallClock.Year(), futureWallClock.Month(), futureWallClock.Day(),
		futureWallClock.Hour(), futureWallClock.Minute(), futureWallClock.Second(),
		0, time.FixedZone("", 0))
	assert.False(t, IsTokenExpired(&naive))
}
