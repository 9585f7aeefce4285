package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/issuer"
	"github.com/aussiebroadwan/vouch/internal/vouch/metrics"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/pkg/cryptox"
	"github.com/aussiebroadwan/vouch/pkg/idx"
	"github.com/aussiebroadwan/vouch/pkg/slogx"
)

const (
	maxNameLength      = 200
	maxProofLinkLength = 2048

	// DefaultMintTimeout bounds a single issuer call.
	DefaultMintTimeout = 30 * time.Second
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . TokenIssuer

// TokenIssuer mints a token for dest. Calls are never retried here; ctx
// carries the mint intent ID as its idempotency key (issuer.IdempotencyKey).
type TokenIssuer interface {
	MintAndTransfer(ctx context.Context, dest string, md domain.TokenMetadata) (string, error)
}

// CredentialService owns the credential request lifecycle.
//
// A request leaves pending exactly once. Approve reserves a mint intent
// before calling the issuer, so concurrent approvals of one request reach
// the issuer at most once; the conditional status update is still the
// authority on which transition happened.
type CredentialService struct {
	Store       store.Store
	Issuer      TokenIssuer
	Metrics     *metrics.Metrics
	MintTimeout time.Duration
	Now         func() time.Time
}

type SubmitInput struct {
	UserID           string
	OrganizationName string
	RoleTitle        string
	StartDate        time.Time
	EndDate          *time.Time
	ProofLink        *string
}

func (s *CredentialService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Submit records a new pending request for in.UserID.
func (s *CredentialService) Submit(ctx context.Context, in SubmitInput) (domain.CredentialRequest, error) {
	org := strings.TrimSpace(in.OrganizationName)
	role := strings.TrimSpace(in.RoleTitle)

	switch {
	case strings.TrimSpace(in.UserID) == "":
		return domain.CredentialRequest{}, invalid("user_id", "required")
	case org == "":
		return domain.CredentialRequest{}, invalid("organization_name", "required")
	case len(org) > maxNameLength:
		return domain.CredentialRequest{}, invalid("organization_name", "too long")
	case role == "":
		return domain.CredentialRequest{}, invalid("role_title", "required")
	case len(role) > maxNameLength:
		return domain.CredentialRequest{}, invalid("role_title", "too long")
	case in.StartDate.IsZero():
		return domain.CredentialRequest{}, invalid("start_date", "required")
	}

	start := domain.Date(in.StartDate)
	var end *time.Time
	if in.EndDate != nil {
		e := domain.Date(*in.EndDate)
		if e.Before(start) {
			return domain.CredentialRequest{}, invalid("end_date", "must not be before start_date")
		}
		end = &e
	}

	proof, err := normalizeProofLink(in.ProofLink)
	if err != nil {
		return domain.CredentialRequest{}, err
	}

	if _, err := s.Store.Users().GetUserByID(ctx, in.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CredentialRequest{}, invalid("user_id", "no profile for this account")
		}
		return domain.CredentialRequest{}, persistence("load user", err)
	}

	// Organization names are the only link between requests and employers.
	if _, err := s.Store.Employers().GetEmployerByOrganization(ctx, org); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CredentialRequest{}, invalid("organization_name", "unknown organization")
		}
		return domain.CredentialRequest{}, persistence("load employer", err)
	}

	now := s.now()
	req := domain.CredentialRequest{
		ID:               idx.New().String(),
		UserID:           in.UserID,
		OrganizationName: org,
		RoleTitle:        role,
		StartDate:        start,
		EndDate:          end,
		ProofLink:        proof,
		Status:           domain.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Store.CredentialRequests().CreateRequest(ctx, req); err != nil {
		return domain.CredentialRequest{}, persistence("create request", err)
	}

	s.Metrics.IncSubmitted()
	slogx.FromContext(ctx).Info("credential request submitted",
		slog.String("request_id", req.ID),
		slog.String("organization", org),
	)
	return req, nil
}

func normalizeProofLink(link *string) (*string, error) {
	if link == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*link)
	if v == "" {
		return nil, nil
	}
	if len(v) > maxProofLinkLength {
		return nil, invalid("proof_link", "too long")
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, invalid("proof_link", "must be an http or https URL")
	}
	return &v, nil
}

// ListPendingForOrganization returns the organization's pending requests,
// newest first.
func (s *CredentialService) ListPendingForOrganization(ctx context.Context, organization string) ([]domain.CredentialRequest, error) {
	reqs, err := s.Store.CredentialRequests().ListPendingByOrganization(ctx, organization)
	return reqs, persistence("list pending requests", err)
}

// ListApprovedForUser returns approved requests by start date, latest first.
func (s *CredentialService) ListApprovedForUser(ctx context.Context, userID string) ([]domain.CredentialRequest, error) {
	reqs, err := s.Store.CredentialRequests().ListApprovedByUser(ctx, userID)
	return reqs, persistence("list approved requests", err)
}

// ListForUser returns every request the user submitted, newest first.
func (s *CredentialService) ListForUser(ctx context.Context, userID string) ([]domain.CredentialRequest, error) {
	reqs, err := s.Store.CredentialRequests().ListByUser(ctx, userID)
	return reqs, persistence("list requests", err)
}

// Get returns one request.
func (s *CredentialService) Get(ctx context.Context, requestID string) (domain.CredentialRequest, error) {
	req, err := s.Store.CredentialRequests().GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CredentialRequest{}, notFound(requestID)
		}
		return domain.CredentialRequest{}, persistence("load request", err)
	}
	return req, nil
}

func (s *CredentialService) loadPending(ctx context.Context, requestID string) (domain.CredentialRequest, error) {
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return domain.CredentialRequest{}, err
	}
	if !req.Status.Valid() || req.Status.Terminal() {
		return domain.CredentialRequest{}, notPending(requestID)
	}
	return req, nil
}

// withTx runs fn in a store transaction. Errors that are not already
// service errors are reported as a PersistenceError for op.
func (s *CredentialService) withTx(ctx context.Context, op string, fn func(tx store.Tx) error) error {
	err := s.Store.WithTx(ctx, fn)
	if err == nil || errors.Is(err, ErrInvalidState) || errors.Is(err, ErrPersistence) {
		return err
	}
	return persistence(op, err)
}

// Approve mints a token for the request and marks it approved.
//
// The issuer is called at most once per call and never retried. If it fails
// the request stays pending. If the outcome is unknown (timeout) the intent
// is left stale and blocks the request until an operator resolves it. If the
// mint succeeds but the request is no longer pending, the token exists
// without a record: that is logged as "minted token not recorded" and
// surfaced as InvalidStateError.
func (s *CredentialService) Approve(ctx context.Context, requestID, dest string, md domain.TokenMetadata) (domain.CredentialRequest, error) {
	l := slogx.FromContext(ctx).With(slog.String("request_id", requestID))

	req, err := s.loadPending(ctx, requestID)
	if err != nil {
		return domain.CredentialRequest{}, err
	}

	if err := cryptox.ValidateWalletAddress(dest); err != nil {
		return domain.CredentialRequest{}, invalid("destination_wallet_address", "not a wallet address")
	}

	now := s.now()
	intent := domain.MintIntent{
		ID:          idx.New().String(),
		RequestID:   requestID,
		Destination: dest,
		Metadata:    md,
		State:       domain.MintInFlight,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = s.withTx(ctx, "reserve mint", func(tx store.Tx) error {
		// Re-asserting pending takes the request row lock, so a concurrent
		// Reject either commits first or sees this intent.
		n, err := tx.CredentialRequests().TransitionFromPending(ctx, store.Transition{
			RequestID: requestID,
			Status:    domain.StatusPending,
			UpdatedAt: req.UpdatedAt,
		})
		if err != nil {
			return persistence("reserve mint", err)
		}
		if n == 0 {
			return notPending(requestID)
		}
		if err := tx.MintIntents().CreateIntent(ctx, intent); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				l.Info("approve refused: another mint holds the request")
				return notPending(requestID)
			}
			return persistence("reserve mint", err)
		}
		return nil
	})
	if err != nil {
		return domain.CredentialRequest{}, err
	}

	// From here on the caller going away must not abandon the mint or its
	// record.
	ctx = context.WithoutCancel(ctx)

	tokenAddress, err := s.mint(ctx, intent.ID, dest, md)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			s.markUnknown(ctx, l, intent, "timeout")
		case errors.Is(err, context.Canceled):
			s.markUnknown(ctx, l, intent, "canceled")
		default:
			reason := err.Error()
			s.settle(ctx, intent.ID, domain.MintFailed, nil, &reason)
			l.Warn("mint failed; request left pending", slog.String("reason", reason))
		}
		return domain.CredentialRequest{}, &MintError{RequestID: requestID, Cause: err}
	}

	updatedAt := s.now()
	n, err := s.Store.CredentialRequests().TransitionFromPending(ctx, store.Transition{
		RequestID:    requestID,
		Status:       domain.StatusApproved,
		TokenAddress: &tokenAddress,
		UpdatedAt:    updatedAt,
	})
	if err != nil || n == 0 {
		s.settle(ctx, intent.ID, domain.MintUnrecorded, &tokenAddress, nil)
		s.Metrics.IncAnomaly(metrics.OutcomeUnrecorded)
		l.Error("minted token not recorded",
			slog.String("anomaly", "mint_unrecorded"),
			slog.String("token_address", tokenAddress),
			slog.String("destination", dest),
			slog.Any("error", err),
		)
		if err != nil {
			return domain.CredentialRequest{}, persistence("record approval", err)
		}
		return domain.CredentialRequest{}, notPending(requestID)
	}

	s.settle(ctx, intent.ID, domain.MintMinted, &tokenAddress, nil)
	s.Metrics.IncTransition(string(domain.StatusApproved))
	l.Info("credential request approved", slog.String("token_address", tokenAddress))

	req.Status = domain.StatusApproved
	req.TokenAddress = &tokenAddress
	req.UpdatedAt = updatedAt
	return req, nil
}

// mint calls the issuer under the mint timeout with intentID as the
// idempotency key.
func (s *CredentialService) mint(ctx context.Context, intentID, dest string, md domain.TokenMetadata) (string, error) {
	timeout := s.MintTimeout
	if timeout <= 0 {
		timeout = DefaultMintTimeout
	}
	mctx, cancel := context.WithTimeout(issuer.WithIdempotencyKey(ctx, intentID), timeout)
	defer cancel()

	start := time.Now()
	addr, err := s.Issuer.MintAndTransfer(mctx, dest, md)
	elapsed := time.Since(start)

	switch {
	case err == nil && addr == "":
		err = errors.New("issuer returned an empty token address")
		s.Metrics.ObserveMint(metrics.OutcomeFailed, elapsed)
	case err == nil:
		s.Metrics.ObserveMint(metrics.OutcomeMinted, elapsed)
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(mctx.Err(), context.DeadlineExceeded):
		err = errors.Join(context.DeadlineExceeded, err)
		s.Metrics.ObserveMint(metrics.OutcomeTimeout, elapsed)
	default:
		s.Metrics.ObserveMint(metrics.OutcomeFailed, elapsed)
	}
	return addr, err
}

// markUnknown leaves the intent stale: the token may or may not exist, so
// the request stays blocked until an operator checks the ledger.
func (s *CredentialService) markUnknown(ctx context.Context, l *slog.Logger, intent domain.MintIntent, reason string) {
	s.settle(ctx, intent.ID, domain.MintStale, nil, &reason)
	s.Metrics.IncAnomaly(metrics.OutcomeUnknown)
	l.Error("mint outcome unknown",
		slog.String("anomaly", "mint_unknown"),
		slog.String("intent_id", intent.ID),
		slog.String("destination", intent.Destination),
		slog.String("reason", reason),
	)
}

// settle records an intent outcome. A failure here is logged, not returned:
// the request row already reflects what happened. An intent left in flight
// is later marked stale and resolved with "vouch intent resolve".
func (s *CredentialService) settle(ctx context.Context, intentID string, state domain.MintState, tokenAddress, reason *string) {
	err := s.Store.MintIntents().UpdateIntentOutcome(context.WithoutCancel(ctx), store.MintOutcome{
		IntentID:      intentID,
		State:         state,
		TokenAddress:  tokenAddress,
		FailureReason: reason,
		UpdatedAt:     s.now(),
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to record mint intent outcome",
			slog.String("intent_id", intentID),
			slog.String("state", string(state)),
			slog.Any("error", err),
		)
	}
}

// Reject marks a pending request rejected. No token is minted.
func (s *CredentialService) Reject(ctx context.Context, requestID string) (domain.CredentialRequest, error) {
	req, err := s.loadPending(ctx, requestID)
	if err != nil {
		return domain.CredentialRequest{}, err
	}

	updatedAt := s.now()
	err = s.withTx(ctx, "record rejection", func(tx store.Tx) error {
		n, err := tx.CredentialRequests().TransitionFromPending(ctx, store.Transition{
			RequestID: requestID,
			Status:    domain.StatusRejected,
			UpdatedAt: updatedAt,
		})
		if err != nil {
			return persistence("record rejection", err)
		}
		if n == 0 {
			return notPending(requestID)
		}

		// A mint in flight (or of unknown outcome) owns the request. The
		// row lock taken above makes a concurrent reservation wait for us.
		intents, err := tx.MintIntents().ListIntentsByRequest(ctx, requestID)
		if err != nil {
			return persistence("list mint intents", err)
		}
		for _, in := range intents {
			if in.State.Blocking() {
				return notPending(requestID)
			}
		}
		return nil
	})
	if err != nil {
		return domain.CredentialRequest{}, err
	}

	s.Metrics.IncTransition(string(domain.StatusRejected))
	slogx.FromContext(ctx).Info("credential request rejected", slog.String("request_id", requestID))

	req.Status = domain.StatusRejected
	req.UpdatedAt = updatedAt
	return req, nil
}

// ApproveAs approves on behalf of an employer session. The destination is
// the owner's wallet and the metadata is derived from the request.
func (s *CredentialService) ApproveAs(ctx context.Context, sess domain.Session, requestID string) (domain.CredentialRequest, error) {
	req, err := s.authorizeReview(ctx, sess, requestID)
	if err != nil {
		return domain.CredentialRequest{}, err
	}

	owner, err := s.Store.Users().GetUserByID(ctx, req.UserID)
	if err != nil {
		return domain.CredentialRequest{}, persistence("load request owner", err)
	}

	return s.Approve(ctx, requestID, owner.WalletAddress, domain.NewTokenMetadata(req, sess.Organization))
}

// RejectAs rejects on behalf of an employer session.
func (s *CredentialService) RejectAs(ctx context.Context, sess domain.Session, requestID string) (domain.CredentialRequest, error) {
	if _, err := s.authorizeReview(ctx, sess, requestID); err != nil {
		return domain.CredentialRequest{}, err
	}
	return s.Reject(ctx, requestID)
}

// authorizeReview checks that sess is the employer the request names.
func (s *CredentialService) authorizeReview(ctx context.Context, sess domain.Session, requestID string) (domain.CredentialRequest, error) {
	if !sess.IsEmployer() || sess.Organization == "" {
		return domain.CredentialRequest{}, ErrForbidden
	}
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return domain.CredentialRequest{}, err
	}
	if req.OrganizationName != sess.Organization {
		slogx.FromContext(ctx).Warn("review attempted by another organization",
			slog.String("request_id", requestID),
			slog.String("organization", sess.Organization),
		)
		return domain.CredentialRequest{}, ErrForbidden
	}
	return req, nil
}
