package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Cheap parameters keep the suite fast; the encoding path is identical.
func testHasher() *Argon2idHasher {
	return NewArgon2idHasherWithParams(Argon2Params{Time: 1, Memory: 1024, Threads: 1, SaltLen: 16, KeyLen: 32})
}

func TestArgon2idHash(t *testing.T) {
	hasher := testHasher()

	t.Run("produces PHC string", func(t *testing.T) {
		hash, err := hasher.Hash("password")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))
		assert.NotEqual(t, "password", hash)
	})

	t.Run("salted per call", func(t *testing.T) {
		h1, err := hasher.Hash("same")
		require.NoError(t, err)
		h2, err := hasher.Hash("same")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})
}

func TestArgon2idVerify(t *testing.T) {
	hasher := testHasher()
	hash, err := hasher.Hash("correct")
	require.NoError(t, err)

	ok, err := hasher.Verify("correct", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2idVerify_DefaultParamsRoundTrip(t *testing.T) {
	hasher := NewArgon2idHasher()
	hash, err := hasher.Hash("abcd")
	require.NoError(t, err)

	// A hasher with different params still verifies because params are encoded.
	ok, err := testHasher().Verify("abcd", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2idVerify_InvalidHashes(t *testing.T) {
	hasher := testHasher()
	cases := map[string]string{
		"not phc":         "not-a-valid-hash",
		"wrong algorithm": "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"bad version":     "$argon2id$vXX$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"bad params":      "$argon2id$v=19$m=x,t=1,p=4$c2FsdA$aGFzaA",
		"zero threads":    "$argon2id$v=19$m=1024,t=1,p=0$c2FsdA$aGFzaA",
		"bad salt":        "$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
		"bad key":         "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$!!!",
	}
	for name, hash := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := hasher.Verify("password", hash)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestArgon2idVerify_Bcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := testHasher().Verify("legacy", string(legacy))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = testHasher().Verify("other", string(legacy))
	require.NoError(t, err)
	assert.False(t, ok)
}
