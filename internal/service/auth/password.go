package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// SecretHasher hashes a plaintext secret and compares it with a stored hash.
type SecretHasher interface {
	// Hash returns an encoded hash of plain.
	Hash(plain string) (string, error)

	// Compare returns nil when plain matches hash, ErrSecretMismatch when it
	// does not, or another error when hash cannot be decoded.
	Compare(hash, plain string) error
}

// BcryptHasher implements SecretHasher using bcrypt. Used for user secrets.
// Secrets are reduced to a base64 SHA-256 digest first, since bcrypt rejects
// inputs over 72 bytes and a short multibyte secret can exceed that.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher; a cost of 0 selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements SecretHasher.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hash), nil
}

// Compare implements SecretHasher.
func (h *BcryptHasher) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrSecretMismatch
	}
	return err
}

// prehash returns the 44-byte base64 encoding of the SHA-256 digest of plain.
func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// Argon2idHasher implements SecretHasher using argon2id. Used for security
// answers.
type Argon2idHasher struct {
	params *argon2id.Params
}

// NewArgon2idHasher creates an Argon2idHasher; nil params selects
// argon2id.DefaultParams.
func NewArgon2idHasher(params *argon2id.Params) *Argon2idHasher {
	if params == nil {
		params = argon2id.DefaultParams
	}
	return &Argon2idHasher{params: params}
}

// Hash implements SecretHasher.
func (h *Argon2idHasher) Hash(plain string) (string, error) {
	hash, err := argon2id.CreateHash(plain, h.params)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return hash, nil
}

// Compare implements SecretHasher.
func (h *Argon2idHasher) Compare(hash, plain string) error {
	match, err := argon2id.ComparePasswordAndHash(plain, hash)
	if err != nil {
		return fmt.Errorf("failed to compare secret: %w", err)
	}
	if !match {
		return ErrSecretMismatch
	}
	return nil
}
