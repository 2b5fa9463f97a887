package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("p1")
	require.NoError(t, err)
	second, err := h.Hash("p1")
	require.NoError(t, err)

	assert.NotEqual(t, "p1", first)
	assert.NotEqual(t, first, second, "hashes must be salted per call")
	assert.True(t, h.Verify("p1", first))
	assert.True(t, h.Verify("p1", second))
	assert.False(t, h.Verify("p2", first))
	assert.False(t, h.Verify("p1", "not-a-hash"))
}

func TestNewHasherCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewHasher(0).Cost)
	assert.Equal(t, DefaultCost, NewHasher(99).Cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(bcrypt.MinCost).Cost)
}
