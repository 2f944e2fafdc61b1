// File: internal/infrastructure/security/password_bcrypt.go
package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	CheckPasswordHash(password, hash string) (bool, error)
}

// bcryptPasswordService implements PasswordService using bcrypt.
type bcryptPasswordService struct {
	cost int
}

// NewBcryptPasswordService creates a PasswordService with the given cost;
// cost <= 0 selects the bcrypt default.
func NewBcryptPasswordService(cost int) PasswordService {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptPasswordService{cost: cost}
}

func (s *bcryptPasswordService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *bcryptPasswordService) CheckPasswordHash(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare password hash: %w", err)
	}
	return true, nil
}
