package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/vouch/internal/vouch/issuer"
	"github.com/aussiebroadwan/vouch/internal/vouch/service"
)

// newTokenIssuer selects the mint backend.
//
// The local backend signs tokens with the issuer key and keeps them in an
// in-process ledger; the remote backend forwards to a mint service.
func newTokenIssuer(ctx context.Context, cfg Config, logger *slog.Logger) (service.TokenIssuer, error) {
	if cfg.MintBackend == "remote" {
		logger.Info("using remote mint backend", "endpoint", cfg.MintEndpoint)
		return issuer.NewRemoteIssuer(cfg.MintEndpoint, cfg.MintAPIKey), nil
	}

	key, err := issuer.LoadIssuerKey(cfg.IssuerKey, cfg.IssuerKeyFile, cfg.IsDev())
	if err != nil {
		return nil, fmt.Errorf("failed to load issuer key: %w", err)
	}

	md, err := newMetadataStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	local := issuer.NewLocalIssuer(key, md)
	local.Image = cfg.MetadataImage
	logger.Info("using local mint backend",
		"issuer_address", local.Address(),
		"metadata_store", cfg.MetadataStore,
	)
	return local, nil
}

func newMetadataStore(ctx context.Context, cfg Config) (issuer.MetadataStore, error) {
	if cfg.MetadataStore != "s3" {
		return issuer.NewMemoryMetadataStore(), nil
	}

	s, err := issuer.NewS3MetadataStore(ctx, issuer.S3Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metadata store: %w", err)
	}
	return s, nil
}
