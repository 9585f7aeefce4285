package jwtx_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/vouch/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *jwtx.KeyManager {
	t.Helper()
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "vouch"})
	require.NoError(t, err)
	return km
}

func TestSignAndVerify(t *testing.T) {
	km := newManager(t)
	require.True(t, km.IsReady())
	require.Equal(t, "EdDSA", km.Signer.Alg())

	claims := jwtx.NewSessionClaims(jwtx.SessionClaimsParams{
		Subject: "acc-1",
		Kind:    "seeker",
		Handle:  "alice",
		Scopes:  []string{"requests:write"},
		Issuer:  "vouch",
	})

	tok, err := km.Signer.Sign(claims)
	require.NoError(t, err)

	got, err := km.Verifier.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "acc-1", got.Subject)
	require.Equal(t, "seeker", got.Kind)
	require.Equal(t, "alice", got.Handle)
	require.Equal(t, []string{"requests:write"}, got.Scopes)
}

func TestVerifyRejects(t *testing.T) {
	km := newManager(t)
	other := newManager(t)

	good := jwtx.NewSessionClaims(jwtx.SessionClaimsParams{Subject: "a", Issuer: "vouch"})

	t.Run("foreign key", func(t *testing.T) {
		tok, err := other.Signer.Sign(good)
		require.NoError(t, err)
		_, err = km.Verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := jwtx.NewSessionClaims(jwtx.SessionClaimsParams{Subject: "a", Issuer: "evil"})
		tok, err := km.Signer.Sign(c)
		require.NoError(t, err)
		_, err = km.Verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		c := jwtx.NewSessionClaims(jwtx.SessionClaimsParams{
			Subject: "a",
			Issuer:  "vouch",
			TTL:     time.Minute,
			Now:     time.Now().Add(-time.Hour),
		})
		tok, err := km.Signer.Sign(c)
		require.NoError(t, err)
		_, err = km.Verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("tampered", func(t *testing.T) {
		tok, err := km.Signer.Sign(good)
		require.NoError(t, err)
		last := tok[len(tok)-1]
		repl := byte('A')
		if last == 'A' {
			repl = 'B'
		}
		_, err = km.Verifier.Verify(tok[:len(tok)-1] + string(repl))
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := km.Verifier.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestKeyManagerPersistsKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "signing.pem")

	first, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "vouch", KeyPath: path})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "vouch", KeyPath: path})
	require.NoError(t, err)
	require.Equal(t, first.Signer.KID(), second.Signer.KID())

	tok, err := first.Signer.Sign(jwtx.NewSessionClaims(jwtx.SessionClaimsParams{Subject: "a", Issuer: "vouch"}))
	require.NoError(t, err)
	_, err = second.Verifier.Verify(tok)
	require.NoError(t, err)
}

func TestKeyManagerRequiresIssuer(t *testing.T) {
	_, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{})
	require.Error(t, err)
}
