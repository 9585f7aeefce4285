package cryptox_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/aussiebroadwan/vouch/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestEd25519RoundTrip(t *testing.T) {
	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	require.Contains(t, string(pemBytes), "BEGIN PRIVATE KEY")

	priv, err := cryptox.ParseEd25519Key(pemBytes)
	require.NoError(t, err)
	require.Len(t, priv, ed25519.PrivateKeySize)

	again, err := cryptox.MarshalEd25519Key(priv)
	require.NoError(t, err)
	require.Equal(t, pemBytes, again)
}

func TestParseEd25519KeyRejectsGarbage(t *testing.T) {
	_, err := cryptox.ParseEd25519Key([]byte("not pem"))
	require.Error(t, err)
}
