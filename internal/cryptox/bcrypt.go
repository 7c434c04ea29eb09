package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt hasher. Costs outside
// [bcrypt.MinCost, bcrypt.MaxCost] fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(secret string) ([]byte, error) {
	if err := checkSecret(secret); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt: %w", err)
	}
	return hash, nil
}

// Verify relies on bcrypt.CompareHashAndPassword, which compares in
// constant time and rejects malformed hashes with an error.
func (h *BcryptHasher) Verify(secret string, stored []byte) bool {
	if len(secret) > MaxSecretLength || len(stored) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(stored, []byte(secret)) == nil
}
