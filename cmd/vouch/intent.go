package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/aussiebroadwan/vouch/internal/vouch/app"
	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/service"
)

type intentResolveOptions struct {
	id    string
	state domain.MintState
	token string
}

func parseIntentResolve(args []string) (intentResolveOptions, error) {
	var (
		opts  intentResolveOptions
		state string
	)

	fs := flag.NewFlagSet("intent resolve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.id, "id", "", "mint intent ID")
	fs.StringVar(&state, "state", "", "failed or minted")
	fs.StringVar(&opts.token, "token", "", "token address, when minted")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if strings.TrimSpace(opts.id) == "" || strings.TrimSpace(state) == "" {
		return opts, errors.New("--id and --state are required")
	}
	opts.state = domain.MintState(strings.ToLower(strings.TrimSpace(state)))
	return opts, nil
}

// intentResolve settles a mint intent whose outcome was unknown, once an
// operator has checked the ledger.
func intentResolve(cfg app.Config, args []string, stdout io.Writer) error {
	opts, err := parseIntentResolve(args)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg)

	db, err := app.OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	rec := service.NewReconcileService(db, logger, nil, 0, 0)
	intent, err := rec.Resolve(context.Background(), service.Resolution{
		IntentID:     opts.id,
		State:        opts.state,
		TokenAddress: opts.token,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "intent %s for request %s resolved as %s\n", intent.ID, intent.RequestID, intent.State)
	return nil
}
