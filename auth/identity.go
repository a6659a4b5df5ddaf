package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"plainchat/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Identity is the long-lived signing identity of this device.
type Identity struct {
	DeviceID   string
	Name       string
	PublicKey  ed25519.PublicKey
	privateKey ed25519.PrivateKey
}

// identityFile is the on-disk form. The private key seed is sealed with a
// key derived from the node passphrase.
type identityFile struct {
	DeviceID   string `json:"device_id"`
	Name       string `json:"name"`
	PublicKey  string `json:"public_key"`
	Salt       string `json:"salt"`
	SealedSeed string `json:"sealed_seed"`
}

func NewIdentity(name string) (*Identity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Identity{DeviceID: uuid.NewString(), Name: name, PublicKey: pub, privateKey: priv}, nil
}

// LoadOrCreateIdentity reads the identity at path, creating and persisting a new one when absent.
func LoadOrCreateIdentity(path, name, passphrase string) (*Identity, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		id, err := NewIdentity(name)
		if err != nil {
			return nil, err
		}
		if err := id.Save(path, passphrase); err != nil {
			return nil, err
		}
		return id, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading identity: %w", err)
	}

	var f identityFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding identity: %w", err)
	}
	salt, err := base64.StdEncoding.DecodeString(f.Salt)
	if err != nil {
		return nil, fmt.Errorf("decoding identity salt: %w", err)
	}
	sealed, err := base64.StdEncoding.DecodeString(f.SealedSeed)
	if err != nil {
		return nil, fmt.Errorf("decoding identity seed: %w", err)
	}
	seed, err := Open(DeriveKey(passphrase, salt), sealed)
	if err != nil {
		return nil, errors.ErrWrongPassphrase
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: bad seed length %d", errors.ErrInvalidPayload, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Identity{
		DeviceID:   f.DeviceID,
		Name:       lo.CoalesceOrEmpty(f.Name, name),
		PublicKey:  priv.Public().(ed25519.PublicKey),
		privateKey: priv,
	}, nil
}

func (i *Identity) Save(path, passphrase string) error {
	salt, err := NewSalt()
	if err != nil {
		return err
	}
	sealed, err := Seal(DeriveKey(passphrase, salt), i.privateKey.Seed())
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(identityFile{
		DeviceID:   i.DeviceID,
		Name:       i.Name,
		PublicKey:  i.EncodedPublicKey(),
		Salt:       base64.StdEncoding.EncodeToString(salt),
		SealedSeed: base64.StdEncoding.EncodeToString(sealed),
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func (i *Identity) EncodedPublicKey() string {
	return base64.StdEncoding.EncodeToString(i.PublicKey)
}

// Sign returns the base64 Ed25519 signature of message.
func (i *Identity) Sign(message []byte) string {
	return base64.StdEncoding.EncodeToString(ed25519.Sign(i.privateKey, message))
}

// Verify checks a base64 signature against a base64 public key.
func Verify(encodedPublicKey string, message []byte, encodedSignature string) error {
	pub, err := base64.StdEncoding.DecodeString(encodedPublicKey)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return errors.ErrPublicKeyMissing
	}
	sig, err := base64.StdEncoding.DecodeString(encodedSignature)
	if err != nil {
		return errors.ErrBadSignature
	}
	if !ed25519.Verify(pub, message, sig) {
		return errors.ErrBadSignature
	}
	return nil
}
