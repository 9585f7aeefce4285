package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/pkg/cryptox"
	"github.com/aussiebroadwan/vouch/pkg/httpx"
	"github.com/aussiebroadwan/vouch/pkg/idx"
)

// RemoteIssuer calls an HTTP minting service:
//
//	POST {BaseURL}/v1/mint  {"destination": "...", "ledger_name": "...", "metadata": {...}}
//	201 {"token_address": "..."}
//
// Each call carries the context's idempotency key (see WithIdempotencyKey),
// or a fresh one when the caller set none, so a resend of the same mint
// cannot mint twice.
type RemoteIssuer struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type idempotencyKey struct{}

// WithIdempotencyKey attaches the key sent with mint calls made under ctx.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey{}, key)
}

// IdempotencyKey returns the key set by WithIdempotencyKey, or "".
func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyKey{}).(string)
	return key
}

func NewRemoteIssuer(baseURL, apiKey string) *RemoteIssuer {
	return &RemoteIssuer{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type MintRequest struct {
	Destination string   `json:"destination"`
	LedgerName  string   `json:"ledger_name"`
	Metadata    Document `json:"metadata"`
}

type MintResponse struct {
	TokenAddress string `json:"token_address"`
}

func (r *RemoteIssuer) MintAndTransfer(ctx context.Context, dest string, md domain.TokenMetadata) (string, error) {
	if err := cryptox.ValidateWalletAddress(dest); err != nil {
		return "", ErrInvalidDestination
	}

	body, err := json.Marshal(MintRequest{
		Destination: dest,
		LedgerName:  LedgerName(md),
		Metadata:    NewDocument(md, ""),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/v1/mint", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	key := IdempotencyKey(ctx)
	if key == "" {
		key = idx.New().String()
	}
	req.Header.Set("Idempotency-Key", key)
	if r.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackend, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrBackend, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var eb httpx.ErrorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
			return "", fmt.Errorf("%w: %s: %s", ErrBackend, eb.Error, eb.ErrorDescription)
		}
		return "", fmt.Errorf("%w: unexpected status %d", ErrBackend, resp.StatusCode)
	}

	var out MintResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrBackend, err)
	}
	if out.TokenAddress == "" {
		return "", fmt.Errorf("%w: empty token address", ErrBackend)
	}
	return out.TokenAddress, nil
}
