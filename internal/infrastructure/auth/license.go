package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptLicenseHasher is the one-way hash applied to license numbers at
// registration. The plaintext never leaves the registration path.
type BcryptLicenseHasher struct {
	Cost int
}

func NewBcryptLicenseHasher() *BcryptLicenseHasher {
	return &BcryptLicenseHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptLicenseHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.Cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}
