package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/issuer"
	"github.com/aussiebroadwan/vouch/internal/vouch/metrics"
	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/aussiebroadwan/vouch/internal/vouch/service/mocks"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/pkg/idx"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	store    store.Store
	issuer   *mocks.MockTokenIssuer
	metrics  *metrics.Metrics
	svc      *service.CredentialService
	seeker   domain.User
	employer domain.Employer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	s := newStore(t)
	m := metrics.New(prometheus.NewRegistry())
	iss := mocks.NewMockTokenIssuer(ctrl)

	return &fixture{
		store:   s,
		issuer:  iss,
		metrics: m,
		svc: &service.CredentialService{
			Store:       s,
			Issuer:      iss,
			Metrics:     m,
			MintTimeout: time.Second,
		},
		seeker:   seedSeeker(t, s),
		employer: seedEmployer(t, s, "Acme"),
	}
}

func (f *fixture) submit(t *testing.T) domain.CredentialRequest {
	t.Helper()
	req, err := f.svc.Submit(context.Background(), service.SubmitInput{
		UserID:           f.seeker.ID,
		OrganizationName: "Acme",
		RoleTitle:        "Engineer",
		StartDate:        date(2021, time.January, 1),
	})
	require.NoError(t, err)
	return req
}

func (f *fixture) approve(ctx context.Context, id string) (domain.CredentialRequest, error) {
	req, err := f.svc.Get(ctx, id)
	if err != nil {
		return f.svc.Approve(ctx, id, f.seeker.WalletAddress, domain.TokenMetadata{})
	}
	return f.svc.Approve(ctx, id, f.seeker.WalletAddress, domain.NewTokenMetadata(req, "Acme"))
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request", func(t *testing.T) {
		f := newFixture(t)
		link := " https://example.com/offer.pdf "
		end := date(2022, time.June, 30)

		req, err := f.svc.Submit(ctx, service.SubmitInput{
			UserID:           f.seeker.ID,
			OrganizationName: " Acme ",
			RoleTitle:        "Engineer",
			StartDate:        date(2021, time.January, 1),
			EndDate:          &end,
			ProofLink:        &link,
		})
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, req.Status)
		require.Nil(t, req.TokenAddress)
		require.Equal(t, "Acme", req.OrganizationName)
		require.Equal(t, "https://example.com/offer.pdf", *req.ProofLink)

		stored, err := f.store.CredentialRequests().GetRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, stored.Status)
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RequestsSubmitted))
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture(t)
		bad := "ftp://example.com"
		before := date(2020, time.January, 1)

		tests := []struct {
			name  string
			in    service.SubmitInput
			field string
		}{
			{"missing org", service.SubmitInput{UserID: f.seeker.ID, RoleTitle: "Eng", StartDate: date(2021, 1, 1)}, "organization_name"},
			{"missing role", service.SubmitInput{UserID: f.seeker.ID, OrganizationName: "Acme", StartDate: date(2021, 1, 1)}, "role_title"},
			{"missing start", service.SubmitInput{UserID: f.seeker.ID, OrganizationName: "Acme", RoleTitle: "Eng"}, "start_date"},
			{"end before start", service.SubmitInput{UserID: f.seeker.ID, OrganizationName: "Acme", RoleTitle: "Eng", StartDate: date(2021, 1, 1), EndDate: &before}, "end_date"},
			{"bad proof link", service.SubmitInput{UserID: f.seeker.ID, OrganizationName: "Acme", RoleTitle: "Eng", StartDate: date(2021, 1, 1), ProofLink: &bad}, "proof_link"},
			{"unknown org", service.SubmitInput{UserID: f.seeker.ID, OrganizationName: "Globex", RoleTitle: "Eng", StartDate: date(2021, 1, 1)}, "organization_name"},
			{"unknown user", service.SubmitInput{UserID: idx.New().String(), OrganizationName: "Acme", RoleTitle: "Eng", StartDate: date(2021, 1, 1)}, "user_id"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.svc.Submit(ctx, tt.in)
				require.ErrorIs(t, err, service.ErrValidation)

				var verr *service.ValidationError
				require.ErrorAs(t, err, &verr)
				require.Equal(t, tt.field, verr.Field)
			})
		}

		reqs, err := f.svc.ListForUser(ctx, f.seeker.ID)
		require.NoError(t, err)
		require.Empty(t, reqs)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("mints once and records the token", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)

		f.issuer.EXPECT().
			MintAndTransfer(gomock.Any(), f.seeker.WalletAddress, domain.NewTokenMetadata(req, "Acme")).
			Return("TOK123", nil).
			Times(1)

		approved, err := f.approve(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, approved.Status)
		require.Equal(t, "TOK123", *approved.TokenAddress)

		list, err := f.svc.ListApprovedForUser(ctx, f.seeker.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "TOK123", *list[0].TokenAddress)

		// The second approval never reaches the issuer.
		_, err = f.approve(ctx, req.ID)
		require.ErrorIs(t, err, service.ErrInvalidState)
		require.ErrorIs(t, err, service.ErrRequestNotPending)

		intents, err := f.store.MintIntents().ListIntentsByRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Len(t, intents, 1)
		require.Equal(t, domain.MintMinted, intents[0].State)
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MintAttempts.WithLabelValues(metrics.OutcomeMinted)))
	})

	t.Run("unknown request never calls the issuer", func(t *testing.T) {
		f := newFixture(t)
		f.issuer.EXPECT().MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.Approve(ctx, idx.New().String(), f.seeker.WalletAddress, domain.TokenMetadata{})
		require.ErrorIs(t, err, service.ErrInvalidState)
		require.ErrorIs(t, err, service.ErrRequestNotFound)
		require.False(t, errors.Is(err, service.ErrRequestNotPending))

		// The request is looked up before the destination is checked.
		_, err = f.svc.Approve(ctx, idx.New().String(), "not-a-wallet", domain.TokenMetadata{})
		require.ErrorIs(t, err, service.ErrRequestNotFound)
		require.False(t, errors.Is(err, service.ErrValidation))
	})

	t.Run("invalid destination", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)
		f.issuer.EXPECT().MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.Approve(ctx, req.ID, "not-a-wallet", domain.TokenMetadata{})
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("mint failure keeps the request pending", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)

		f.issuer.EXPECT().
			MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("ledger unavailable"))

		_, err := f.approve(ctx, req.ID)
		require.ErrorIs(t, err, service.ErrMint)

		var merr *service.MintError
		require.ErrorAs(t, err, &merr)
		require.Contains(t, merr.Error(), "ledger unavailable")

		stored, err := f.store.CredentialRequests().GetRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, stored.Status)
		require.Nil(t, stored.TokenAddress)

		intents, err := f.store.MintIntents().ListIntentsByRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Len(t, intents, 1)
		require.Equal(t, domain.MintFailed, intents[0].State)
		require.Equal(t, "ledger unavailable", *intents[0].FailureReason)

		// A later approval may try again.
		f.issuer.EXPECT().MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Return("TOK456", nil)
		approved, err := f.approve(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, "TOK456", *approved.TokenAddress)
	})

	t.Run("empty token address is a mint failure", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)
		f.issuer.EXPECT().MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil)

		_, err := f.approve(ctx, req.ID)
		require.ErrorIs(t, err, service.ErrMint)

		stored, err := f.store.CredentialRequests().GetRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, stored.Status)
	})

	t.Run("timeout leaves the outcome unknown and blocks retries", func(t *testing.T) {
		f := newFixture(t)
		f.svc.MintTimeout = 20 * time.Millisecond
		req := f.submit(t)
		lctx, logs := captureLogs(ctx)

		f.issuer.EXPECT().
			MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string, _ domain.TokenMetadata) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			}).
			Times(1)

		_, err := f.approve(lctx, req.ID)
		require.ErrorIs(t, err, service.ErrMint)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		out := logs.String()
		require.Contains(t, out, `"msg":"mint outcome unknown"`)
		require.Contains(t, out, `"anomaly":"mint_unknown"`)

		intents, err := f.store.MintIntents().ListIntentsByRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Len(t, intents, 1)
		require.Equal(t, domain.MintStale, intents[0].State)
		require.Equal(t, "timeout", *intents[0].FailureReason)
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MintAttempts.WithLabelValues(metrics.OutcomeTimeout)))
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MintAnomalies.WithLabelValues(metrics.OutcomeUnknown)))

		stored, err := f.store.CredentialRequests().GetRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, stored.Status)

		// The first token may exist, so neither decision may proceed.
		_, err = f.approve(ctx, req.ID)
		require.ErrorIs(t, err, service.ErrRequestNotPending)
		_, err = f.svc.Reject(ctx, req.ID)
		require.ErrorIs(t, err, service.ErrRequestNotPending)
	})

	t.Run("issuer cancellation leaves the outcome unknown", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)

		f.issuer.EXPECT().
			MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", context.Canceled).
			Times(1)

		_, err := f.approve(ctx, req.ID)
		require.ErrorIs(t, err, service.ErrMint)
		require.ErrorIs(t, err, context.Canceled)

		intents, err := f.store.MintIntents().ListIntentsByRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Len(t, intents, 1)
		require.Equal(t, domain.MintStale, intents[0].State)
		require.Equal(t, "canceled", *intents[0].FailureReason)

		_, err = f.approve(ctx, req.ID)
		require.ErrorIs(t, err, service.ErrRequestNotPending)
	})

	t.Run("caller going away does not abandon the mint", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()

		f.issuer.EXPECT().
			MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(mctx context.Context, _ string, _ domain.TokenMetadata) (string, error) {
				cancel()
				select {
				case <-mctx.Done():
					return "", mctx.Err()
				case <-time.After(20 * time.Millisecond):
				}
				return "TOK123", nil
			}).
			Times(1)

		approved, err := f.approve(cctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, approved.Status)
		require.Equal(t, "TOK123", *approved.TokenAddress)

		intents, err := f.store.MintIntents().ListIntentsByRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Len(t, intents, 1)
		require.Equal(t, domain.MintMinted, intents[0].State)
	})

	t.Run("intent id is the idempotency key", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)

		var key string
		f.issuer.EXPECT().
			MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string, _ domain.TokenMetadata) (string, error) {
				key = issuer.IdempotencyKey(ctx)
				return "TOK123", nil
			})

		_, err := f.approve(ctx, req.ID)
		require.NoError(t, err)

		intents, err := f.store.MintIntents().ListIntentsByRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Len(t, intents, 1)
		require.Equal(t, intents[0].ID, key)
	})

	t.Run("concurrent approvals mint exactly once", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)

		f.issuer.EXPECT().
			MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, domain.TokenMetadata) (string, error) {
				time.Sleep(50 * time.Millisecond)
				return "TOK123", nil
			}).
			Times(1)

		const n = 2
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			errs []error
		)
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.approve(ctx, req.ID)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}()
		}
		wg.Wait()

		var ok, refused int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, service.ErrInvalidState):
				refused++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		require.Equal(t, 1, ok)
		require.Equal(t, 1, refused)

		stored, err := f.store.CredentialRequests().GetRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, stored.Status)
		require.Equal(t, "TOK123", *stored.TokenAddress)
	})

	t.Run("minted but not recorded", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)
		lctx, logs := captureLogs(ctx)

		// The request leaves pending while the issuer is working.
		f.issuer.EXPECT().
			MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string, _ domain.TokenMetadata) (string, error) {
				n, err := f.store.CredentialRequests().TransitionFromPending(ctx, store.Transition{
					RequestID: req.ID,
					Status:    domain.StatusRejected,
					UpdatedAt: time.Now().UTC(),
				})
				require.NoError(t, err)
				require.EqualValues(t, 1, n)
				return "TOK999", nil
			})

		_, err := f.approve(lctx, req.ID)
		require.ErrorIs(t, err, service.ErrRequestNotPending)

		out := logs.String()
		require.Contains(t, out, `"msg":"minted token not recorded"`)
		require.Contains(t, out, `"anomaly":"mint_unrecorded"`)
		require.Contains(t, out, `"token_address":"TOK999"`)

		intents, err := f.store.MintIntents().ListIntentsByRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Len(t, intents, 1)
		require.Equal(t, domain.MintUnrecorded, intents[0].State)
		require.Equal(t, "TOK999", *intents[0].TokenAddress)
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MintAnomalies.WithLabelValues(metrics.OutcomeUnrecorded)))

		stored, err := f.store.CredentialRequests().GetRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusRejected, stored.Status)
		require.Nil(t, stored.TokenAddress)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("approve then reject", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)
		f.issuer.EXPECT().MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Return("TOK123", nil)

		_, err := f.approve(ctx, req.ID)
		require.NoError(t, err)

		_, err = f.svc.Reject(ctx, req.ID)
		require.ErrorIs(t, err, service.ErrRequestNotPending)

		stored, err := f.store.CredentialRequests().GetRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, stored.Status)
		require.Equal(t, "TOK123", *stored.TokenAddress)
	})

	t.Run("reject then approve", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)
		f.issuer.EXPECT().MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		rejected, err := f.svc.Reject(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusRejected, rejected.Status)
		require.Nil(t, rejected.TokenAddress)

		_, err = f.approve(ctx, req.ID)
		require.ErrorIs(t, err, service.ErrRequestNotPending)

		_, err = f.svc.Reject(ctx, req.ID)
		require.ErrorIs(t, err, service.ErrRequestNotPending)
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RequestTransitions.WithLabelValues("rejected")))
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Reject(ctx, "missing")
		require.ErrorIs(t, err, service.ErrRequestNotFound)
	})

	t.Run("blocked while a mint is in flight", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)

		now := time.Now().UTC()
		require.NoError(t, f.store.MintIntents().CreateIntent(ctx, domain.MintIntent{
			ID:          idx.New().String(),
			RequestID:   req.ID,
			Destination: f.seeker.WalletAddress,
			State:       domain.MintInFlight,
			CreatedAt:   now,
			UpdatedAt:   now,
		}))

		_, err := f.svc.Reject(ctx, req.ID)
		require.ErrorIs(t, err, service.ErrRequestNotPending)

		stored, err := f.store.CredentialRequests().GetRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, stored.Status)
	})

	t.Run("racing an approval never strands a token", func(t *testing.T) {
		for range 5 {
			f := newFixture(t)
			req := f.submit(t)

			f.issuer.EXPECT().
				MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(context.Context, string, domain.TokenMetadata) (string, error) {
					time.Sleep(10 * time.Millisecond)
					return "TOK123", nil
				}).
				MaxTimes(1)

			var (
				wg                    sync.WaitGroup
				approveErr, rejectErr error
			)
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, approveErr = f.approve(ctx, req.ID)
			}()
			go func() {
				defer wg.Done()
				_, rejectErr = f.svc.Reject(ctx, req.ID)
			}()
			wg.Wait()

			require.True(t, (approveErr == nil) != (rejectErr == nil), "approve=%v reject=%v", approveErr, rejectErr)
			require.Zero(t, testutil.ToFloat64(f.metrics.MintAnomalies.WithLabelValues(metrics.OutcomeUnrecorded)))

			stored, err := f.store.CredentialRequests().GetRequest(ctx, req.ID)
			require.NoError(t, err)
			intents, err := f.store.MintIntents().ListIntentsByRequest(ctx, req.ID)
			require.NoError(t, err)
			if rejectErr == nil {
				require.Equal(t, domain.StatusRejected, stored.Status)
				require.Empty(t, intents)
			} else {
				require.Equal(t, domain.StatusApproved, stored.Status)
				require.Len(t, intents, 1)
				require.Equal(t, domain.MintMinted, intents[0].State)
			}
		}
	})
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var ids []string
	starts := []time.Time{date(2019, 3, 1), date(2022, 1, 1), date(2020, 7, 1), date(2021, 5, 1)}
	for _, start := range starts {
		req, err := f.svc.Submit(ctx, service.SubmitInput{
			UserID:           f.seeker.ID,
			OrganizationName: "Acme",
			RoleTitle:        gofakeit.JobTitle(),
			StartDate:        start,
		})
		require.NoError(t, err)
		ids = append(ids, req.ID)
	}

	f.issuer.EXPECT().MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Return("TOK-A", nil)
	_, err := f.approve(ctx, ids[0])
	require.NoError(t, err)
	f.issuer.EXPECT().MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Return("TOK-B", nil)
	_, err = f.approve(ctx, ids[2])
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, ids[1])
	require.NoError(t, err)

	t.Run("approved only, latest start first", func(t *testing.T) {
		list, err := f.svc.ListApprovedForUser(ctx, f.seeker.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, ids[2], list[0].ID)
		require.Equal(t, ids[0], list[1].ID)
		for _, r := range list {
			require.Equal(t, domain.StatusApproved, r.Status)
		}
	})

	t.Run("pending for organization", func(t *testing.T) {
		list, err := f.svc.ListPendingForOrganization(ctx, "Acme")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, ids[3], list[0].ID)

		list, err = f.svc.ListPendingForOrganization(ctx, "Globex")
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("all for user, newest first", func(t *testing.T) {
		list, err := f.svc.ListForUser(ctx, f.seeker.ID)
		require.NoError(t, err)
		require.Len(t, list, 4)
		require.Equal(t, ids[3], list[0].ID)
		require.Equal(t, ids[0], list[3].ID)
	})
}

func TestReviewAuthorization(t *testing.T) {
	ctx := context.Background()

	t.Run("matching employer approves into the owner's wallet", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)

		f.issuer.EXPECT().
			MintAndTransfer(gomock.Any(), f.seeker.WalletAddress, domain.NewTokenMetadata(req, "Acme")).
			Return("TOK123", nil)

		approved, err := f.svc.ApproveAs(ctx, employerSession(f.employer), req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, approved.Status)
	})

	t.Run("other organization is forbidden", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)
		other := seedEmployer(t, f.store, "Globex")
		f.issuer.EXPECT().MintAndTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.ApproveAs(ctx, employerSession(other), req.ID)
		require.ErrorIs(t, err, service.ErrForbidden)

		_, err = f.svc.RejectAs(ctx, employerSession(other), req.ID)
		require.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("seekers cannot review", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)

		sess := domain.Session{AccountID: f.seeker.ID, Kind: domain.KindSeeker, Organization: "Acme"}
		_, err := f.svc.RejectAs(ctx, sess, req.ID)
		require.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("reject as matching employer", func(t *testing.T) {
		f := newFixture(t)
		req := f.submit(t)

		rejected, err := f.svc.RejectAs(ctx, employerSession(f.employer), req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusRejected, rejected.Status)
	})
}
