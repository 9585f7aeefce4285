package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/metrics"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
)

// ReconcileService periodically flags mint intents that have been in flight
// too long. It never retries a mint: a stale intent means the outcome is
// unknown and needs a human to check the ledger and call Resolve.
type ReconcileService struct {
	Store      store.Store
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Interval   time.Duration
	StaleAfter time.Duration
	Now        func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewReconcileService defaults interval to 5m and staleAfter to 10m.
func NewReconcileService(s store.Store, logger *slog.Logger, m *metrics.Metrics, interval, staleAfter time.Duration) *ReconcileService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}
	return &ReconcileService{
		Store:      s,
		Logger:     logger,
		Metrics:    m,
		Interval:   interval,
		StaleAfter: staleAfter,
		Now:        time.Now,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop is called.
func (s *ReconcileService) Start() {
	go s.run()
	s.Logger.Info("reconcile service started", "interval", s.Interval, "stale_after", s.StaleAfter)
}

// Stop blocks until an in-progress pass has finished.
func (s *ReconcileService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("reconcile service stopped")
}

func (s *ReconcileService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.pass()

	for {
		select {
		case <-ticker.C:
			s.pass()
		case <-s.stopCh:
			return
		}
	}
}

func (s *ReconcileService) pass() {
	if _, err := s.RunOnce(context.Background()); err != nil {
		s.Logger.Error("reconcile pass failed", "error", err)
	}
}

// RunOnce marks stale intents and refreshes the unsettled gauge. It returns
// the intents it marked.
func (s *ReconcileService) RunOnce(ctx context.Context) ([]domain.MintIntent, error) {
	now := s.Now().UTC()
	marked, err := s.Store.MintIntents().MarkStaleIntents(ctx, now.Add(-s.StaleAfter), now)
	if err != nil {
		return nil, err
	}
	for _, in := range marked {
		s.Logger.Error("mint outcome unknown",
			slog.String("anomaly", "mint_stale"),
			slog.String("intent_id", in.ID),
			slog.String("request_id", in.RequestID),
			slog.String("destination", in.Destination),
			slog.Time("reserved_at", in.CreatedAt),
		)
	}

	n, err := s.Store.MintIntents().CountIntentsByState(ctx, domain.MintUnrecorded, domain.MintStale)
	if err != nil {
		return marked, err
	}
	s.Metrics.SetUnsettled(n)
	if len(marked) > 0 || n > 0 {
		s.Logger.Warn("mint intents await reconciliation", "newly_stale", len(marked), "unsettled", n)
	}
	return marked, nil
}

// ResolvedReason is the failure reason recorded by Resolve.
const ResolvedReason = "resolved by operator"

// Resolution is an operator's verdict on an in-flight or stale intent.
type Resolution struct {
	IntentID string
	// State is MintFailed (no token exists) or MintMinted.
	State domain.MintState
	// TokenAddress is required for MintMinted.
	TokenAddress string
}

// Resolve settles an intent after an operator has checked the ledger.
// MintFailed frees the request for another approval. MintMinted records
// the token and approves the request.
func (s *ReconcileService) Resolve(ctx context.Context, r Resolution) (domain.MintIntent, error) {
	r.IntentID = strings.TrimSpace(r.IntentID)
	r.TokenAddress = strings.TrimSpace(r.TokenAddress)

	switch {
	case r.IntentID == "":
		return domain.MintIntent{}, invalid("intent_id", "required")
	case r.State != domain.MintFailed && r.State != domain.MintMinted:
		return domain.MintIntent{}, invalid("state", "must be failed or minted")
	case r.State == domain.MintMinted && r.TokenAddress == "":
		return domain.MintIntent{}, invalid("token_address", "required when the token was minted")
	case r.State == domain.MintFailed && r.TokenAddress != "":
		return domain.MintIntent{}, invalid("token_address", "not allowed when the mint failed")
	}

	intent, err := s.Store.MintIntents().GetIntent(ctx, r.IntentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.MintIntent{}, invalid("intent_id", "unknown mint intent")
		}
		return domain.MintIntent{}, persistence("load mint intent", err)
	}
	if intent.State != domain.MintInFlight && intent.State != domain.MintStale {
		return domain.MintIntent{}, invalid("intent_id", "already settled as "+string(intent.State))
	}

	now := s.Now().UTC()
	outcome := store.MintOutcome{IntentID: intent.ID, State: r.State, UpdatedAt: now}
	if r.State == domain.MintMinted {
		outcome.TokenAddress = &r.TokenAddress
	} else {
		reason := ResolvedReason
		outcome.FailureReason = &reason
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if r.State == domain.MintMinted {
			n, err := tx.CredentialRequests().TransitionFromPending(ctx, store.Transition{
				RequestID:    intent.RequestID,
				Status:       domain.StatusApproved,
				TokenAddress: &r.TokenAddress,
				UpdatedAt:    now,
			})
			if err != nil {
				return persistence("record approval", err)
			}
			if n == 0 {
				return notPending(intent.RequestID)
			}
		}
		if err := tx.MintIntents().ResolveIntent(ctx, outcome); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return invalid("intent_id", "settled concurrently")
			}
			return persistence("resolve mint intent", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidState) || errors.Is(err, ErrPersistence) {
			return domain.MintIntent{}, err
		}
		return domain.MintIntent{}, persistence("resolve mint intent", err)
	}

	if r.State == domain.MintMinted {
		s.Metrics.IncTransition(string(domain.StatusApproved))
	}
	s.Logger.Warn("mint intent resolved by operator",
		slog.String("intent_id", intent.ID),
		slog.String("request_id", intent.RequestID),
		slog.String("previous_state", string(intent.State)),
		slog.String("state", string(r.State)),
		slog.String("token_address", r.TokenAddress),
	)

	if n, err := s.Store.MintIntents().CountIntentsByState(ctx, domain.MintUnrecorded, domain.MintStale); err == nil {
		s.Metrics.SetUnsettled(n)
	}

	intent.State = r.State
	intent.TokenAddress = outcome.TokenAddress
	intent.FailureReason = outcome.FailureReason
	intent.UpdatedAt = now
	return intent, nil
}
