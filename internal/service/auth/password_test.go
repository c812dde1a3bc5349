package auth

import (
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fastArgon2Params = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestSecretHashers(t *testing.T) {
	hashers := map[string]SecretHasher{
		"bcrypt":   NewBcryptHasher(bcrypt.MinCost),
		"argon2id": NewArgon2idHasher(fastArgon2Params),
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("segredo123")
			require.NoError(t, err)
			assert.NotEqual(t, "segredo123", hash)

			assert.NoError(t, h.Compare(hash, "segredo123"))
			assert.ErrorIs(t, h.Compare(hash, "outro"), ErrSecretMismatch)

			again, err := h.Hash("segredo123")
			require.NoError(t, err)
			assert.NotEqual(t, hash, again, "hashes are salted")
		})
	}
}

func TestSecretHashers_CorruptHash(t *testing.T) {
	err := NewBcryptHasher(bcrypt.MinCost).Compare("not-a-hash", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSecretMismatch)

	err = NewArgon2idHasher(nil).Compare("not-a-hash", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSecretMismatch)
}

func TestSecretHashers_MultibyteSecret(t *testing.T) {
	// 26 characters, 104 bytes: past the bcrypt input limit.
	secret := strings.Repeat("😀", 26)
	similar := strings.Repeat("😀", 25) + "😁"

	hashers := map[string]SecretHasher{
		"bcrypt":   NewBcryptHasher(bcrypt.MinCost),
		"argon2id": NewArgon2idHasher(fastArgon2Params),
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash(secret)
			require.NoError(t, err)

			assert.NoError(t, h.Compare(hash, secret))
			assert.ErrorIs(t, h.Compare(hash, similar), ErrSecretMismatch)
		})
	}
}
