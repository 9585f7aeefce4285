// Package issuer contains the token minting backends.
//
// A mint is not idempotent: every successful MintAndTransfer call produces a
// new token, so callers must never retry one automatically. The local backend
// keeps an in-process ledger signed with the issuer key; the remote backend
// forwards to an HTTP minting service.
package issuer

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
)

var (
	ErrInvalidDestination = errors.New("issuer: invalid destination wallet")
	ErrTokenNotFound      = errors.New("issuer: token not found")
	ErrBackend            = errors.New("issuer: backend error")
)

// Issuer mints one token and transfers it to dest.
type Issuer interface {
	MintAndTransfer(ctx context.Context, dest string, md domain.TokenMetadata) (string, error)
}

// Token is the immutable record of a minted token.
type Token struct {
	Address   string `json:"address"`
	Owner     string `json:"owner"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	URI       string `json:"uri"`
	Creator   string `json:"creator"`
	Mutable   bool   `json:"mutable"`
	MintedAt  string `json:"minted_at"`
	Signature []byte `json:"signature,omitempty"`
}
