package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/vouch/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	t.Setenv(cryptox.MasterKeyEnv, "test-master-key")
	cryptox.SetMasterKeyPath("")
	t.Cleanup(cryptox.ResetMasterKey)

	sealed, err := cryptox.Seal([]byte("wallet secret"))
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "wallet secret")

	plain, err := cryptox.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, "wallet secret", string(plain))

	// Nonces differ per call.
	again, err := cryptox.Seal([]byte("wallet secret"))
	require.NoError(t, err)
	require.NotEqual(t, sealed, again)
}

func TestOpenTampered(t *testing.T) {
	t.Setenv(cryptox.MasterKeyEnv, "test-master-key")
	cryptox.SetMasterKeyPath("")
	t.Cleanup(cryptox.ResetMasterKey)

	sealed, err := cryptox.Seal([]byte("data"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = cryptox.Open(sealed)
	require.Error(t, err)

	_, err = cryptox.Open([]byte{1, 2})
	require.ErrorIs(t, err, cryptox.ErrCiphertextTooShort)
}

func TestMasterKeyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	require.NoError(t, os.WriteFile(path, []byte("file key"), 0o600))

	cryptox.SetMasterKeyPath(path)
	t.Cleanup(func() { cryptox.SetMasterKeyPath("") })

	sealed, err := cryptox.Seal([]byte("x"))
	require.NoError(t, err)

	// A different key cannot open it.
	t.Setenv(cryptox.MasterKeyEnv, "other")
	cryptox.SetMasterKeyPath("")
	_, err = cryptox.Open(sealed)
	require.Error(t, err)

	cryptox.SetMasterKeyPath(path)
	plain, err := cryptox.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, "x", string(plain))
}
