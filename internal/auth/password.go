package auth

import (
	stderrors "errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/codemetry/codemetry/internal/errors"
)

// ErrPasswordMismatch is returned when a password does not match its hash
var ErrPasswordMismatch = stderrors.New("password does not match")

// bcrypt truncates silently past 72 bytes, so longer inputs are rejected
const maxPasswordLength = 72

// PasswordHasher hashes and verifies passwords. Cost is injectable so
// tests can use the bcrypt minimum instead of the production work factor.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the default bcrypt cost
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// NewPasswordHasherWithCost creates a hasher with an explicit cost
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash produces a self-contained bcrypt hash of the password
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.EmptyFieldError("password")
	}
	if len(password) > maxPasswordLength {
		return "", errors.InvalidFieldError("password", "longer than 72 bytes")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.WrapWithContext(err, "hash password")
	}
	return string(hashed), nil
}

// Verify checks a password against a stored hash
func (h *PasswordHasher) Verify(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if stderrors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return errors.WrapWithContext(err, "compare password hash")
	}
	return nil
}
