package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/app"
	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/aussiebroadwan/vouch/pkg/idx"
	"github.com/aussiebroadwan/vouch/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseIntentResolve(t *testing.T) {
	opts, err := parseIntentResolve([]string{"--id", "i1", "--state", "Minted", "--token", "TOK123"})
	require.NoError(t, err)
	require.Equal(t, "i1", opts.id)
	require.Equal(t, domain.MintMinted, opts.state)
	require.Equal(t, "TOK123", opts.token)

	_, err = parseIntentResolve([]string{"--id", "i1"})
	require.Error(t, err)

	_, err = parseIntentResolve([]string{"--bogus"})
	require.Error(t, err)
}

// seedStaleIntent leaves a pending request held by a stale intent.
func seedStaleIntent(t *testing.T, cfg app.Config) (domain.CredentialRequest, domain.MintIntent) {
	t.Helper()
	ctx := context.Background()
	app.ConfigureSecrets(cfg, slogx.Discard())

	db, err := app.OpenStore(cfg, slogx.Discard())
	require.NoError(t, err)
	defer db.Close()

	_, err = (&service.EmployerService{Store: db}).Create(ctx, service.EmployerInput{
		Email:            "hr@acme.test",
		Password:         "a long enough password",
		OrganizationName: "Acme",
	})
	require.NoError(t, err)

	userID, err := (&service.AccountService{Store: db}).CreateAccount(ctx, "dev@example.test", "a long enough password",
		service.ProfileInput{Name: "Dev", Handle: "dev"})
	require.NoError(t, err)

	req, err := (&service.CredentialService{Store: db}).Submit(ctx, service.SubmitInput{
		UserID:           userID,
		OrganizationName: "Acme",
		RoleTitle:        "Engineer",
		StartDate:        time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	user, err := db.Users().GetUserByID(ctx, userID)
	require.NoError(t, err)

	now := time.Now().UTC()
	intent := domain.MintIntent{
		ID:          idx.New().String(),
		RequestID:   req.ID,
		Destination: user.WalletAddress,
		Metadata:    domain.NewTokenMetadata(req, "Acme"),
		State:       domain.MintStale,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.MintIntents().CreateIntent(ctx, intent))
	return req, intent
}

func TestIntentResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("minted", func(t *testing.T) {
		cfg := testConfig(t)
		req, intent := seedStaleIntent(t, cfg)

		var out bytes.Buffer
		err := intentResolve(cfg, []string{"--id", intent.ID, "--state", "minted", "--token", "TOK123"}, &out)
		require.NoError(t, err)
		require.Contains(t, out.String(), "resolved as minted")

		db, err := app.OpenStore(cfg, slogx.Discard())
		require.NoError(t, err)
		defer db.Close()

		stored, err := db.CredentialRequests().GetRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, stored.Status)
		require.Equal(t, "TOK123", *stored.TokenAddress)
	})

	t.Run("failed", func(t *testing.T) {
		cfg := testConfig(t)
		req, intent := seedStaleIntent(t, cfg)

		var out bytes.Buffer
		require.NoError(t, intentResolve(cfg, []string{"--id", intent.ID, "--state", "failed"}, &out))

		db, err := app.OpenStore(cfg, slogx.Discard())
		require.NoError(t, err)
		defer db.Close()

		got, err := db.MintIntents().GetIntent(ctx, intent.ID)
		require.NoError(t, err)
		require.Equal(t, domain.MintFailed, got.State)

		stored, err := db.CredentialRequests().GetRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, stored.Status)

		// Settled intents are not resolved twice.
		err = intentResolve(cfg, []string{"--id", intent.ID, "--state", "failed"}, &out)
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("minted needs a token", func(t *testing.T) {
		cfg := testConfig(t)
		_, intent := seedStaleIntent(t, cfg)

		err := intentResolve(cfg, []string{"--id", intent.ID, "--state", "minted"}, &bytes.Buffer{})
		require.ErrorIs(t, err, service.ErrValidation)
	})
}
