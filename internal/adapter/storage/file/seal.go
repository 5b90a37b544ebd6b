package file

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters for deriving the sealing key from the secret.
const (
	kdfTime    = 1
	kdfMemory  = 64 * 1024
	kdfThreads = 4
	kdfKeyLen  = 32
	saltLen    = 16
)

var errSealTooShort = errors.New("sealed blob too short")

// sealer encrypts session blobs at rest with AES-GCM. The key is derived
// per blob from the secret and a random salt, so the same session never
// seals to the same bytes twice.
type sealer struct {
	secret []byte
}

func newSealer(secret []byte) *sealer {
	return &sealer{secret: secret}
}

func (s *sealer) gcm(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(s.secret, salt, kdfTime, kdfMemory, kdfThreads, kdfKeyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// seal returns salt || nonce || ciphertext.
func (s *sealer) seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}

	gcm, err := s.gcm(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("read nonce: %w", err)
	}

	blob := make([]byte, 0, saltLen+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	return gcm.Seal(blob, nonce, plaintext, nil), nil
}

func (s *sealer) open(blob []byte) ([]byte, error) {
	if len(blob) < saltLen {
		return nil, errSealTooShort
	}
	salt, rest := blob[:saltLen], blob[saltLen:]

	gcm, err := s.gcm(salt)
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, errSealTooShort
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("open sealed blob: %w", err)
	}
	return plaintext, nil
}
