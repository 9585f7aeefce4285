package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewFromDB(db), mock
}

func q(query string) string { return regexp.QuoteMeta(query) }

func TestAccountsRepo(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(q(createAccountQuery)).
			WithArgs("a1", "a@example.com", "hash", "seeker", now, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Accounts().CreateAccount(context.Background(), domain.Account{
			ID: "a1", Email: "a@example.com", PasswordHash: "hash", Kind: domain.KindSeeker, CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(q(createAccountQuery)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_lower"})

		err := s.Accounts().CreateAccount(context.Background(), domain.Account{ID: "a1", Kind: domain.KindSeeker})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		s, mock := newMockStore(t)
		boom := errors.New("db down")
		mock.ExpectExec(q(createAccountQuery)).WillReturnError(boom)

		err := s.Accounts().CreateAccount(context.Background(), domain.Account{ID: "a1"})
		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("get by email", func(t *testing.T) {
		s, mock := newMockStore(t)
		rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "kind", "mfa_secret", "mfa_enabled_at", "created_at", "updated_at"}).
			AddRow("a1", "a@example.com", "hash", "employer", "SECRET", now, now, now)
		mock.ExpectQuery(q(getAccountByEmailQuery)).WithArgs("A@example.com").WillReturnRows(rows)

		a, err := s.Accounts().GetAccountByEmail(context.Background(), "A@example.com")
		require.NoError(t, err)
		require.Equal(t, domain.KindEmployer, a.Kind)
		require.Equal(t, "SECRET", *a.MFASecret)
		require.True(t, a.MFAEnabled())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(q(getAccountByIDQuery)).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := s.Accounts().GetAccountByID(context.Background(), "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("enable without secret", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(q(enableMFAQuery)).WithArgs(now, "a1").WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, s.Accounts().EnableMFA(context.Background(), "a1", now), store.ErrNotFound)
	})
}

func TestRequestsRepo(t *testing.T) {
	cols := []string{"id", "user_id", "organization_name", "role_title", "start_date", "end_date", "proof_link",
		"status", "token_address", "created_at", "updated_at"}
	start := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("pending list", func(t *testing.T) {
		s, mock := newMockStore(t)
		rows := sqlmock.NewRows(cols).
			AddRow("r2", "u1", "Acme", "Engineer", start, nil, nil, "pending", nil, now.Add(time.Minute), now).
			AddRow("r1", "u1", "Acme", "Analyst", start, start.AddDate(1, 0, 0), "https://x.test", "pending", nil, now, now)
		mock.ExpectQuery(q(listPendingByOrgQuery)).WithArgs("Acme").WillReturnRows(rows)

		list, err := s.CredentialRequests().ListPendingByOrganization(context.Background(), "Acme")
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "r2", list[0].ID)
		require.Nil(t, list[0].EndDate)
		require.True(t, list[0].Ongoing())
		require.Equal(t, "https://x.test", *list[1].ProofLink)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(q(listApprovedByUserQuery)).WithArgs("u1").WillReturnRows(sqlmock.NewRows(cols))

		list, err := s.CredentialRequests().ListApprovedByUser(context.Background(), "u1")
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("transition reports matched rows", func(t *testing.T) {
		s, mock := newMockStore(t)
		tok := "TOK123"
		mock.ExpectExec(q(transitionFromPendingQuery)).
			WithArgs("approved", sql.NullString{String: tok, Valid: true}, now, "r1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q(transitionFromPendingQuery)).
			WithArgs("rejected", sql.NullString{}, now, "r1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		n, err := s.CredentialRequests().TransitionFromPending(context.Background(), store.Transition{
			RequestID: "r1", Status: domain.StatusApproved, TokenAddress: &tok, UpdatedAt: now,
		})
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		n, err = s.CredentialRequests().TransitionFromPending(context.Background(), store.Transition{
			RequestID: "r1", Status: domain.StatusRejected, UpdatedAt: now,
		})
		require.NoError(t, err)
		require.EqualValues(t, 0, n)
	})
}

func TestMintIntentsRepo(t *testing.T) {
	cols := []string{"id", "request_id", "destination", "metadata", "state", "token_address", "failure_reason", "created_at", "updated_at"}
	md := []byte(`{"company":"Acme","role":"Engineer","start_date":"2022-03-01","end_date":"Present","verified_by":"Acme"}`)

	t.Run("live intent conflict", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(q(createIntentQuery)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "mint_intents_one_live_per_request"})

		err := s.MintIntents().CreateIntent(context.Background(), domain.MintIntent{ID: "i1", RequestID: "r1", State: domain.MintInFlight})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("mark stale", func(t *testing.T) {
		s, mock := newMockStore(t)
		cutoff := now.Add(-10 * time.Minute)
		rows := sqlmock.NewRows(cols).AddRow("i1", "r1", "wallet", md, "stale", nil, nil, cutoff.Add(-time.Minute), now)
		mock.ExpectQuery(q(markStaleIntentsQuery)).WithArgs(now, cutoff).WillReturnRows(rows)

		marked, err := s.MintIntents().MarkStaleIntents(context.Background(), cutoff, now)
		require.NoError(t, err)
		require.Len(t, marked, 1)
		require.Equal(t, domain.MintStale, marked[0].State)
		require.Equal(t, "Acme", marked[0].Metadata.Company)
	})

	t.Run("count", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(q(countIntentsByStatePrefix+"$1, $2)")).
			WithArgs("unrecorded", "stale").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

		n, err := s.MintIntents().CountIntentsByState(context.Background(), domain.MintUnrecorded, domain.MintStale)
		require.NoError(t, err)
		require.EqualValues(t, 3, n)

		n, err = s.MintIntents().CountIntentsByState(context.Background())
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("outcome on settled intent", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(q(updateIntentOutcomeQuery)).WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.MintIntents().UpdateIntentOutcome(context.Background(), store.MintOutcome{
			IntentID: "i1", State: domain.MintMinted, UpdatedAt: now,
		})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("resolve", func(t *testing.T) {
		s, mock := newMockStore(t)
		token := "TOK123"
		mock.ExpectExec(q(resolveIntentQuery)).
			WithArgs("minted", token, nil, now, "i1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q(resolveIntentQuery)).WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.MintIntents().ResolveIntent(context.Background(), store.MintOutcome{
			IntentID: "i1", State: domain.MintMinted, TokenAddress: &token, UpdatedAt: now,
		})
		require.NoError(t, err)

		err = s.MintIntents().ResolveIntent(context.Background(), store.MintOutcome{
			IntentID: "i1", State: domain.MintFailed, UpdatedAt: now,
		})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("corrupt metadata", func(t *testing.T) {
		s, mock := newMockStore(t)
		rows := sqlmock.NewRows(cols).AddRow("i1", "r1", "wallet", []byte("{"), "in_flight", nil, nil, now, now)
		mock.ExpectQuery(q(getIntentQuery)).WithArgs("i1").WillReturnRows(rows)

		_, err := s.MintIntents().GetIntent(context.Background(), "i1")
		require.Error(t, err)
	})
}

func TestWithTx(t *testing.T) {
	t.Run("commits", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec(q(createEmployerQuery)).WithArgs("e1", "Acme", now).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := s.WithTx(context.Background(), func(tx store.Tx) error {
			return tx.Employers().CreateEmployer(context.Background(), domain.Employer{ID: "e1", OrganizationName: "Acme", CreatedAt: now})
		})
		require.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := s.WithTx(context.Background(), func(store.Tx) error { return boom })
		require.ErrorIs(t, err, boom)
	})

	t.Run("no nesting", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := s.WithTx(context.Background(), func(tx store.Tx) error {
			return tx.WithTx(context.Background(), func(store.Tx) error { return nil })
		})
		require.ErrorIs(t, err, sql.ErrTxDone)
	})
}
