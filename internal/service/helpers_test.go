package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/service/auth"
	"github.com/RuanLopes1350/AnotaAi/internal/validation"
)

var fixedNow = time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)

const (
	ownerID   = "507f1f77bcf86cd799439011"
	missingID = "507f1f77bcf86cd799439099"
)

func newTestValidator() *validation.Validator {
	return validation.New(validation.WithClock(func() time.Time { return fixedNow }))
}

func fastHashers() (auth.SecretHasher, auth.SecretHasher) {
	return auth.NewBcryptHasher(bcrypt.MinCost), auth.NewArgon2idHasher(&argon2id.Params{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  8,
		KeyLength:   16,
	})
}

func requireValidation(t *testing.T, err error, fields ...string) *domain.ValidationError {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %T: %v", err, err)
	for _, f := range fields {
		require.True(t, ve.HasField(f), "missing field %q in %v", f, ve.Fields)
	}
	return ve
}

func requireNotFound(t *testing.T, err error) *domain.NotFoundError {
	t.Helper()
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf), "expected NotFoundError, got %T: %v", err, err)
	return nf
}
