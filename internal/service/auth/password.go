package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier checks a plaintext password against a stored hash.
// Hashing itself lives in the user store; verification is separate so
// handlers can be tested with a stub that never runs bcrypt.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword and a
	// non-nil error otherwise (mismatch or malformed hash).
	Compare(hashedPassword, password string) error
}

// BcryptVerifier is the production PasswordVerifier.
type BcryptVerifier struct{}

// NewBcryptVerifier returns a ready-to-use BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
