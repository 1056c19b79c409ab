package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is the bcrypt work factor applied to every password.
// Fixed at 10 to stay compatible with hashes produced by earlier deployments.
const passwordHashCost = 10

// HashPassword computes a randomly salted bcrypt hash of the given plaintext
// password.
//
// The output is non-deterministic: hashing the same password twice yields
// different strings, so hashes must only be checked via VerifyPassword,
// never compared for equality.
//
// Safe for concurrent use; the only shared state is the CPU.
//
// Returns an error if the plaintext is empty or exceeds bcrypt's 72-byte
// input limit.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password cannot be hashed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the given
// bcrypt hash.
//
// The comparison is performed by bcrypt itself and is safe against timing
// attacks. A malformed or empty hash never panics and never matches; it
// simply yields false.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
