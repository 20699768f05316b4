// Package crypto seals stored collections with AES-256-GCM.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keySize = 32

var hkdfInfo = []byte("corecrew data encryption v1")

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Service seals values under a key derived from DATA_ENCRYPTION_KEY. The
// label passed to Seal is authenticated, so a value only opens under the
// label it was sealed with. A nil or empty-key Service passes data through.
type Service struct {
	aead cipher.AEAD
}

// New accepts a 32 byte key in hex or base64, or any other non-empty string
// as a passphrase stretched with HKDF-SHA256.
func New(secret string) (*Service, error) {
	if secret == "" {
		return &Service{}, nil
	}
	key, err := keyFrom(secret)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm: %w", err)
	}
	return &Service{aead: aead}, nil
}

func (s *Service) Configured() bool {
	return s != nil && s.aead != nil
}

// Seal returns nonce || ciphertext.
func (s *Service) Seal(plain []byte, label string) ([]byte, error) {
	if !s.Configured() || len(plain) == 0 {
		return plain, nil
	}
	out := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plain)+s.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, out); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	return s.aead.Seal(out, out, plain, []byte(label)), nil
}

func (s *Service) Open(sealed []byte, label string) ([]byte, error) {
	if !s.Configured() || len(sealed) == 0 {
		return sealed, nil
	}
	n := s.aead.NonceSize()
	if len(sealed) < n+s.aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}
	plain, err := s.aead.Open(nil, sealed[:n], sealed[n:], []byte(label))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", label, err)
	}
	return plain, nil
}

func keyFrom(secret string) ([]byte, error) {
	if len(secret) == hex.EncodedLen(keySize) {
		if key, err := hex.DecodeString(secret); err == nil {
			return key, nil
		}
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding} {
		if key, err := enc.DecodeString(secret); err == nil && len(key) == keySize {
			return key, nil
		}
	}
	if len(secret) == keySize {
		return []byte(secret), nil
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, hkdfInfo), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}
