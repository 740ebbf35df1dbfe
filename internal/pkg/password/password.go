// Package password hashes and verifies agent passwords with bcrypt.
//
// Hashes are self-describing ("$2a$" / "$2b$" + cost + salt + digest), so
// hashes written by other bcrypt implementations verify unchanged and the
// cost can be raised without migrating stored rows.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt hashes without truncation.
const MaxPasswordBytes = 72

var (
	// ErrCostOutOfRange is returned by NewBcryptHasher for costs bcrypt rejects.
	ErrCostOutOfRange = fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	// ErrMalformedHash is returned by Cost for strings that are not bcrypt hashes.
	ErrMalformedHash = errors.New("malformed password hash")
)

// Hasher produces and checks password hashes.
type Hasher interface {
	// Hash returns a salted hash of plaintext. Every call uses a new salt.
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A malformed hash never matches.
	Verify(plaintext, hash string) bool
}

// BcryptHasher implements Hasher with golang.org/x/crypto/bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost. Zero selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: got %d", ErrCostOutOfRange, cost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Hash fails only when plaintext exceeds 72 bytes or the system random source
// is unavailable.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares in constant time over the final digest. bcrypt reads only
// the first MaxPasswordBytes bytes, so longer input never matches.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	if len(plaintext) > MaxPasswordBytes {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	return err == nil
}

// Cost returns the cost recorded in hash, for rehash decisions.
func Cost(hash string) (int, error) {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return 0, errors.Join(ErrMalformedHash, err)
	}
	return cost, nil
}
