package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"plainchat/errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// NewKey returns a fresh base64 encoded 256-bit symmetric key, used for
// pairwise and channel keys alike.
func NewKey() (string, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

func DecodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrKeyUnavailable, err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", errors.ErrKeyUnavailable, chacha20poly1305.KeySize, len(key))
	}
	return key, nil
}

// Seal encrypts plaintext with ChaCha20-Poly1305. The output is nonce || ciphertext.
func Seal(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. Any failure, including a truncated input, is ErrDecrypt.
func Open(key, data []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDecrypt, err)
	}
	if len(data) < aead.NonceSize()+aead.Overhead() {
		return nil, errors.ErrDecrypt
	}
	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.ErrDecrypt
	}
	return plaintext, nil
}

// SealWithKey and OpenWithKey take base64 keys as stored in the peers and channels tables.
func SealWithKey(encodedKey string, plaintext []byte) ([]byte, error) {
	key, err := DecodeKey(encodedKey)
	if err != nil {
		return nil, err
	}
	return Seal(key, plaintext)
}

func OpenWithKey(encodedKey string, data []byte) ([]byte, error) {
	key, err := DecodeKey(encodedKey)
	if err != nil {
		return nil, err
	}
	return Open(key, data)
}
