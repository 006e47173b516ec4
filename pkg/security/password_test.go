package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashProducesDifferentOutputPerCall(t *testing.T) {
	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("secret-password")
	require.NoError(t, err)
	second, err := hasher.Hash("secret-password")
	require.NoError(t, err)

	// Random salt: same input must never yield the same hash twice.
	assert.NotEqual(t, first, second)

	assert.NoError(t, hasher.Compare(first, "secret-password"))
	assert.NoError(t, hasher.Compare(second, "secret-password"))
}

func TestCompareRejectsWrongPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	assert.Error(t, hasher.Compare(hash, "wrong-password"))
	assert.Error(t, hasher.Compare(hash, ""))
}

func TestHashRejectsTooShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("ab")
	assert.Error(t, err)
}
