package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the work factor the seeded credentials were
// hashed with.
const DefaultBcryptCost = 10

// PasswordHasher hashes and verifies passwords. Abstracting it keeps the
// services testable without paying bcrypt cost in every test.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(password, hash string) bool
}

// BcryptHasher is the production PasswordHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost; values outside the
// bcrypt range fall back to DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches hash. The comparison is
// constant-time; a malformed hash simply reports false.
func (h *BcryptHasher) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
