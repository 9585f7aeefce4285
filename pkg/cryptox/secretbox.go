package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// MasterKeyEnv holds key material when no master key file is configured.
const MasterKeyEnv = "VOUCH_MASTER_KEY"

var ErrCiphertextTooShort = errors.New("cryptox: ciphertext too short")

var (
	masterMu   sync.Mutex
	masterKey  []byte
	masterPath string
)

// SetMasterKeyPath points the sealer at a key file. Must be called before
// the first Seal/Open.
func SetMasterKeyPath(path string) {
	masterMu.Lock()
	defer masterMu.Unlock()
	masterPath = path
	masterKey = nil
}

// ResetMasterKey forgets the loaded key so the next call reloads it.
func ResetMasterKey() {
	masterMu.Lock()
	defer masterMu.Unlock()
	masterKey = nil
}

// getMasterKey derives the AES-256 key from the key file, then the
// environment, and finally from random bytes (dev only, not durable).
func getMasterKey() ([]byte, error) {
	masterMu.Lock()
	defer masterMu.Unlock()

	if masterKey != nil {
		return masterKey, nil
	}

	var material []byte
	switch {
	case masterPath != "":
		data, err := os.ReadFile(masterPath)
		if err != nil {
			return nil, fmt.Errorf("cryptox: read master key: %w", err)
		}
		material = data
	case os.Getenv(MasterKeyEnv) != "":
		material = []byte(os.Getenv(MasterKeyEnv))
	default:
		material = make([]byte, 32)
		if _, err := rand.Read(material); err != nil {
			return nil, fmt.Errorf("cryptox: generate master key: %w", err)
		}
	}

	sum := sha256.Sum256(material)
	masterKey = sum[:]
	return masterKey, nil
}

func masterAEAD() (cipher.AEAD, error) {
	key, err := getMasterKey()
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with AES-256-GCM under the master key.
// Output layout: nonce || ciphertext || tag.
func Seal(plaintext []byte) ([]byte, error) {
	aead, err := masterAEAD()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func Open(sealed []byte) ([]byte, error) {
	aead, err := masterAEAD()
	if err != nil {
		return nil, err
	}

	n := aead.NonceSize()
	if len(sealed) < n+aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}

	plaintext, err := aead.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: open: %w", err)
	}
	return plaintext, nil
}
