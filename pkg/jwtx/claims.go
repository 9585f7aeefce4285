package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a login session token stays valid.
const DefaultSessionTTL = time.Hour

// Claims carried by vouch session tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID
	SID string `json:"sid,omitempty"`

	// Permission scopes, e.g. "requests:write"
	Scopes []string `json:"scopes,omitempty"`

	// Authentication methods reference: "pwd", "otp", "mfa"
	AMR []string `json:"amr,omitempty"`

	// Account kind: "seeker" or "employer"
	Kind string `json:"kind,omitempty"`

	// Handle of a seeker account
	Handle string `json:"handle,omitempty"`

	// Organization an employer account represents
	Organization string `json:"org,omitempty"`
}

// SessionClaimsParams describes the subject of a new session token.
type SessionClaimsParams struct {
	Subject      string
	SessionID    string
	Kind         string
	Handle       string
	Organization string
	Scopes       []string
	AMR          []string
	Issuer       string
	Audience     []string
	TTL          time.Duration
	Now          time.Time
}

// NewSessionClaims builds claims for a freshly authenticated session.
func NewSessionClaims(p SessionClaimsParams) Claims {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := p.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.Subject,
			Audience:  jwt.ClaimStrings(p.Audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:          p.SessionID,
		Scopes:       p.Scopes,
		AMR:          p.AMR,
		Kind:         p.Kind,
		Handle:       p.Handle,
		Organization: p.Organization,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasScope reports whether scope was granted.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// ValidateIssuer checks the issuer when expected is non-empty.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks that at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry checks exp and nbf against now, allowing leeway for clock skew.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
