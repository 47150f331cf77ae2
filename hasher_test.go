package securelogin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasherVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	salt := hasher.GenerateSalt()
	require.NotEmpty(t, salt)

	hash, err := hasher.Encrypt("hunter42", salt)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, hasher.Verify(hash, "hunter42", salt))
	assert.False(t, hasher.Verify(hash, "hunter43", salt))
}

func TestPasswordHasherSaltBindsHash(t *testing.T) {
	hasher := NewPasswordHasher()

	saltA := hasher.GenerateSalt()
	saltB := hasher.GenerateSalt()
	require.NotEqual(t, saltA, saltB)

	hash, err := hasher.Encrypt("hunter42", saltA)
	require.NoError(t, err)

	assert.False(t, hasher.Verify(hash, "hunter42", saltB))
}
