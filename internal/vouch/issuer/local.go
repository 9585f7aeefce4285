package issuer

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/pkg/cryptox"
	"github.com/aussiebroadwan/vouch/pkg/slogx"
	"github.com/mr-tron/base58"
)

// LocalIssuer mints into an in-process ledger. Each token gets a fresh
// ed25519 mint address and a record signed by the issuer key.
type LocalIssuer struct {
	Key      ed25519.PrivateKey
	Metadata MetadataStore
	Image    string
	Now      func() time.Time

	mu     sync.RWMutex
	ledger map[string]Token
}

func NewLocalIssuer(key ed25519.PrivateKey, store MetadataStore) *LocalIssuer {
	if store == nil {
		store = NewMemoryMetadataStore()
	}
	return &LocalIssuer{
		Key:      key,
		Metadata: store,
		Now:      time.Now,
		ledger:   make(map[string]Token),
	}
}

// Address is the issuer's public address, recorded as each token's creator.
func (l *LocalIssuer) Address() string {
	return base58.Encode(l.Key.Public().(ed25519.PublicKey))
}

func (l *LocalIssuer) MintAndTransfer(ctx context.Context, dest string, md domain.TokenMetadata) (string, error) {
	if err := cryptox.ValidateWalletAddress(dest); err != nil {
		return "", ErrInvalidDestination
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	mint, err := cryptox.GenerateWallet()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}

	uri, err := l.Metadata.Put(ctx, mint.Address+".json", NewDocument(md, l.Image))
	if err != nil {
		return "", fmt.Errorf("%w: upload metadata: %v", ErrBackend, err)
	}

	tok := Token{
		Address:  mint.Address,
		Owner:    dest,
		Name:     LedgerName(md),
		Symbol:   domain.TokenSymbol,
		URI:      uri,
		Creator:  l.Address(),
		Mutable:  false,
		MintedAt: l.Now().UTC().Format(time.RFC3339),
	}
	payload, err := signingPayload(tok)
	if err != nil {
		return "", err
	}
	tok.Signature = ed25519.Sign(l.Key, payload)

	l.mu.Lock()
	if l.ledger == nil {
		l.ledger = make(map[string]Token)
	}
	l.ledger[tok.Address] = tok
	l.mu.Unlock()

	slogx.FromContext(ctx).Info("token minted",
		slog.String("token_address", tok.Address),
		slog.String("owner", dest),
		slog.String("uri", uri),
	)
	return tok.Address, nil
}

// Lookup returns the ledger record for address.
func (l *LocalIssuer) Lookup(address string) (Token, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tok, ok := l.ledger[address]
	if !ok {
		return Token{}, ErrTokenNotFound
	}
	return tok, nil
}

// Count reports how many tokens have been minted.
func (l *LocalIssuer) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.ledger)
}

// VerifyToken checks tok's signature against the creator address it names.
func VerifyToken(tok Token) bool {
	pub, err := cryptox.WalletPublicKey(tok.Creator)
	if err != nil {
		return false
	}
	payload, err := signingPayload(tok)
	if err != nil {
		return false
	}
	return ed25519.Verify(pub, payload, tok.Signature)
}

func signingPayload(tok Token) ([]byte, error) {
	tok.Signature = nil
	return json.Marshal(tok)
}
