package authz

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher is the one-way credential hashing contract. Verify must not leak
// timing information about the digest.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// BcryptHasher hashes credentials with bcrypt. All anonymous credentials go
// through this path uniformly; plaintext storage or comparison is a defect.
type BcryptHasher struct {
	// Cost overrides bcrypt.DefaultCost when positive. Tests lower it to
	// keep hashing fast.
	Cost int
}

func (h BcryptHasher) cost() int {
	if h.Cost > 0 {
		return h.Cost
	}
	return bcrypt.DefaultCost
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost())
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
