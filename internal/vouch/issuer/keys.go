package issuer

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/vouch/pkg/cryptox"
)

var ErrNoIssuerKey = errors.New("issuer: no issuer key configured (set ISSUER_PRIVATE_KEY or create the keypair file)")

// keypairFile is the on-disk format: a 64 byte ed25519 secret key as a
// JSON number array, optionally with its base58 public key.
type keypairFile struct {
	PublicKey string `json:"publicKey,omitempty"`
	SecretKey []int  `json:"secretKey"`
}

// LoadIssuerKey resolves the issuer signing key. envValue is the base64
// secret from ISSUER_PRIVATE_KEY and wins over path. When neither is
// available and generate is set, a new key is written to path.
func LoadIssuerKey(envValue, path string, generate bool) (ed25519.PrivateKey, error) {
	if envValue != "" {
		raw, err := base64.StdEncoding.DecodeString(envValue)
		if err != nil {
			return nil, fmt.Errorf("issuer: decode ISSUER_PRIVATE_KEY: %w", err)
		}
		return keyFromSecret(raw)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			return parseKeypairFile(data)
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("issuer: read keypair: %w", err)
		}
	}

	if !generate || path == "" {
		return nil, ErrNoIssuerKey
	}
	return generateKeypairFile(path)
}

func parseKeypairFile(data []byte) (ed25519.PrivateKey, error) {
	var kf keypairFile
	if err := json.Unmarshal(data, &kf); err == nil && len(kf.SecretKey) > 0 {
		return keyFromInts(kf.SecretKey)
	}

	// Bare array form: [12, 34, ...]
	var arr []int
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, fmt.Errorf("issuer: keypair file is neither an object nor a byte array: %w", err)
	}
	return keyFromInts(arr)
}

func keyFromInts(values []int) (ed25519.PrivateKey, error) {
	raw := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("issuer: keypair byte %d out of range", i)
		}
		raw[i] = byte(v)
	}
	return keyFromSecret(raw)
}

func keyFromSecret(raw []byte) (ed25519.PrivateKey, error) {
	w, err := cryptox.WalletFromSecret(raw)
	if err != nil {
		return nil, fmt.Errorf("issuer: %w", err)
	}
	return w.Secret, nil
}

func generateKeypairFile(path string) (ed25519.PrivateKey, error) {
	w, err := cryptox.GenerateWallet()
	if err != nil {
		return nil, err
	}

	kf := keypairFile{PublicKey: w.Address, SecretKey: make([]int, len(w.Secret))}
	for i, b := range w.Secret {
		kf.SecretKey[i] = int(b)
	}
	data, err := json.Marshal(kf)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("issuer: create key dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("issuer: write keypair: %w", err)
	}
	return w.Secret, nil
}
