package utils

import (
	"errors"
	"fmt"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor for stored credentials.
const passwordCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password for storage. Passwords bcrypt cannot hash
// (longer than 72 bytes) are reported as validation errors.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most 72 bytes", apperrors.ErrValidation)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
