package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/vouch/pkg/cryptox"
)

// KeyManager bundles the session signing key with its verifier and the
// published key set.
type KeyManager struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet
}

// KeyManagerOptions configures NewKeyManager.
type KeyManagerOptions struct {
	Issuer   string
	Audience []string

	// KeyPath is a PKCS8 PEM Ed25519 key. It is generated on first start
	// when missing. Empty means an in-memory key that dies with the process.
	KeyPath string
}

// NewKeyManager loads or creates the signing key.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}

	pemKey, err := loadOrGenerateKey(opts.KeyPath)
	if err != nil {
		return nil, err
	}

	priv, err := cryptox.ParseEd25519Key(pemKey)
	if err != nil {
		return nil, err
	}

	// Deriving the kid from the public key keeps it stable across restarts.
	kid := "vouch-" + cryptox.FingerprintToken(string(priv.Public().(ed25519.PublicKey)))[:16]
	signer, err := NewSignerEdDSAFromKey(kid, priv)
	if err != nil {
		return nil, err
	}

	keys := NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: add signer: %w", err)
	}

	return &KeyManager{
		Signer:   signer,
		Verifier: NewVerifierEdDSA(keys, opts.Issuer, opts.Audience),
		KeySet:   keys,
	}, nil
}

func (km *KeyManager) IsReady() bool {
	return km != nil && km.KeySet.IsReady()
}

func loadOrGenerateKey(path string) ([]byte, error) {
	if path == "" {
		return cryptox.GenerateEd25519Key()
	}

	path = filepath.Clean(path)
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("jwtx: read signing key: %w", err)
	}

	data, err = cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("jwtx: create key dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("jwtx: write signing key: %w", err)
	}
	return data, nil
}
