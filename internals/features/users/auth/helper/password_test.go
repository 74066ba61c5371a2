package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTemporaryPassword(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		pw, err := GenerateTemporaryPassword(TemporaryPasswordLength)
		require.NoError(t, err)
		assert.Len(t, pw, TemporaryPasswordLength)
		for _, r := range pw {
			assert.Contains(t, credentialAlphabet, string(r))
		}
		seen[pw] = struct{}{}
	}
	assert.Len(t, seen, 50)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NoError(t, CheckPasswordHash(hash, "correct horse"))
	assert.Error(t, CheckPasswordHash(hash, "battery staple"))
}
