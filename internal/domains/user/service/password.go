package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher là one-way adaptive hash contract
// Interface cho phép stub trong tests (bcrypt chậm có chủ đích)
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher trả về hasher mặc định, cost 10
func NewBcryptHasher() PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Compare(hash, plain string) error {
	// Constant-time comparison
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
