package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// TestTokenService tests token issuance and validation
func TestTokenService(t *testing.T) {
	t.Run("IssueAndValidate", func(t *testing.T) {
		svc, err := NewTokenService(testSecret, time.Hour)
		require.NoError(t, err)

		token, expiresAt, err := svc.Issue(42)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		userID, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), userID)
	})

	t.Run("RejectsShortSecret", func(t *testing.T) {
		_, err := NewTokenService("short", time.Hour)
		require.Error(t, err)
	})

	t.Run("RejectsZeroTTL", func(t *testing.T) {
		_, err := NewTokenService(testSecret, 0)
		require.Error(t, err)
	})

	t.Run("RejectsTampered", func(t *testing.T) {
		svc, err := NewTokenService(testSecret, time.Hour)
		require.NoError(t, err)

		token, _, err := svc.Issue(42)
		require.NoError(t, err)

		_, err = svc.Validate(token + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("RejectsWrongSecret", func(t *testing.T) {
		svc, err := NewTokenService(testSecret, time.Hour)
		require.NoError(t, err)
		other, err := NewTokenService("fedcba9876543210fedcba9876543210", time.Hour)
		require.NoError(t, err)

		token, _, err := svc.Issue(42)
		require.NoError(t, err)

		_, err = other.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("RejectsExpired", func(t *testing.T) {
		svc, err := NewTokenService(testSecret, time.Nanosecond)
		require.NoError(t, err)

		token, _, err := svc.Issue(42)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		svc, err := NewTokenService(testSecret, time.Hour)
		require.NoError(t, err)

		_, err = svc.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

// TestPasswordHasher tests hashing and verification
func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	t.Run("HashAndVerify", func(t *testing.T) {
		hash, err := hasher.Hash("s3cret")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret", hash)

		require.NoError(t, hasher.Verify(hash, "s3cret"))
		assert.ErrorIs(t, hasher.Verify(hash, "wrong"), ErrPasswordMismatch)
	})

	t.Run("DistinctSalts", func(t *testing.T) {
		first, err := hasher.Hash("s3cret")
		require.NoError(t, err)
		second, err := hasher.Hash("s3cret")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("RejectsEmpty", func(t *testing.T) {
		_, err := hasher.Hash("")
		require.Error(t, err)
	})

	t.Run("RejectsOverlong", func(t *testing.T) {
		long := make([]byte, 80)
		for i := range long {
			long[i] = 'a'
		}
		_, err := hasher.Hash(string(long))
		require.Error(t, err)
	})
}
