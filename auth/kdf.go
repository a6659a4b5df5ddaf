package auth

import (
	"crypto/rand"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for the identity passphrase.
const (
	Memory      = 64 * 1024 // 64 MB
	Iterations  = 3
	Parallelism = 2
	SaltLength  = 16
	KeyLength   = 32
)

// DeriveKey stretches a passphrase into a 32 byte cipher key.
func DeriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, Iterations, Memory, Parallelism, KeyLength)
}

func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}
