package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

var ErrInvalidWalletAddress = errors.New("cryptox: invalid wallet address")

// Wallet is an ed25519 keypair whose public key, base58 encoded, is the
// on-ledger address.
type Wallet struct {
	Address string
	Secret  ed25519.PrivateKey
}

// GenerateWallet creates a fresh keypair.
func GenerateWallet() (Wallet, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Wallet{}, fmt.Errorf("cryptox: generate wallet: %w", err)
	}
	return Wallet{Address: base58.Encode(pub), Secret: priv}, nil
}

// WalletFromSecret rebuilds a wallet from a 64 byte ed25519 secret key.
func WalletFromSecret(secret []byte) (Wallet, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return Wallet{}, fmt.Errorf("cryptox: wallet secret must be %d bytes, got %d", ed25519.PrivateKeySize, len(secret))
	}
	priv := ed25519.PrivateKey(append([]byte(nil), secret...))
	pub := priv.Public().(ed25519.PublicKey)
	return Wallet{Address: base58.Encode(pub), Secret: priv}, nil
}

// ValidateWalletAddress accepts base58 strings that decode to a 32 byte key.
func ValidateWalletAddress(address string) error {
	if strings.TrimSpace(address) != address || address == "" {
		return ErrInvalidWalletAddress
	}
	raw, err := base58.Decode(address)
	if err != nil || len(raw) != ed25519.PublicKeySize {
		return ErrInvalidWalletAddress
	}
	return nil
}

// WalletPublicKey decodes a wallet address into its ed25519 public key.
func WalletPublicKey(address string) (ed25519.PublicKey, error) {
	if err := ValidateWalletAddress(address); err != nil {
		return nil, err
	}
	raw, _ := base58.Decode(address)
	return ed25519.PublicKey(raw), nil
}
