// Package cryptox implements one-way password hashing.
//
// Two algorithms are available behind the PasswordHasher interface:
// bcrypt (the default) and argon2id. Both embed a random per-call salt in
// the encoded output, so hashing the same secret twice yields different
// values that both verify.
//
// Secrets are limited to MaxSecretLength bytes for both algorithms. Hash
// rejects longer secrets and Verify reports them as a mismatch.
package cryptox

import (
	"errors"
	"fmt"
)

// MaxSecretLength is the largest accepted secret, in bytes.
const MaxSecretLength = 72

var (
	ErrEmptySecret      = errors.New("secret is empty")
	ErrSecretTooLong    = fmt.Errorf("secret exceeds %d bytes", MaxSecretLength)
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
)

// PasswordHasher hashes secrets and checks them against stored hashes.
type PasswordHasher interface {
	// Hash returns the encoded salted hash of secret.
	Hash(secret string) ([]byte, error)

	// Verify reports whether secret matches stored. It returns false for
	// any malformed stored value and never panics.
	Verify(secret string, stored []byte) bool
}

// Algorithm names accepted by NewPasswordHasher.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// NewPasswordHasher builds the hasher named by algorithm. bcryptCost is
// ignored for argon2id; zero means bcrypt.DefaultCost.
func NewPasswordHasher(algorithm string, bcryptCost int) (PasswordHasher, error) {
	switch algorithm {
	case AlgorithmBcrypt, "":
		return NewBcryptHasher(bcryptCost), nil
	case AlgorithmArgon2id:
		return NewArgon2Hasher(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

func checkSecret(secret string) error {
	if secret == "" {
		return ErrEmptySecret
	}
	if len(secret) > MaxSecretLength {
		return ErrSecretTooLong
	}
	return nil
}
