package cryptox_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/aussiebroadwan/vouch/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateWallet(t *testing.T) {
	w, err := cryptox.GenerateWallet()
	require.NoError(t, err)
	require.NoError(t, cryptox.ValidateWalletAddress(w.Address))

	rebuilt, err := cryptox.WalletFromSecret(w.Secret)
	require.NoError(t, err)
	require.Equal(t, w.Address, rebuilt.Address)

	pub, err := cryptox.WalletPublicKey(w.Address)
	require.NoError(t, err)
	require.Equal(t, w.Secret.Public().(ed25519.PublicKey), pub)
}

func TestValidateWalletAddress(t *testing.T) {
	tests := []struct {
		name string
		addr string
		ok   bool
	}{
		{"system program", "11111111111111111111111111111111", true},
		{"empty", "", false},
		{"padded", " 11111111111111111111111111111111", false},
		{"bad alphabet", "0OIl1111111111111111111111111111", false},
		{"too short", "1111", false},
		{"hex", "deadbeef", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cryptox.ValidateWalletAddress(tt.addr)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, cryptox.ErrInvalidWalletAddress)
			}
		})
	}
}
