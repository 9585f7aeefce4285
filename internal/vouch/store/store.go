package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so that a Tx exposes the same
// surface and nested transactions cannot be opened by accident.
type Store interface {
	Accounts() Accounts
	Users() Users
	Employers() Employers
	CredentialRequests() CredentialRequests
	MintIntents() MintIntents

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	// fn must only use the Tx it is given.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount returns ErrAlreadyExists when the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// SetMFASecret stores a pending TOTP secret without enabling it.
	SetMFASecret(ctx context.Context, id, secret string, now time.Time) error
	EnableMFA(ctx context.Context, id string, now time.Time) error
	// DisableMFA clears both the secret and the enabled timestamp.
	DisableMFA(ctx context.Context, id string, now time.Time) error
}

type Users interface {
	// CreateUser returns ErrAlreadyExists on a duplicate handle or wallet.
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByHandle(ctx context.Context, handle string) (domain.User, error)
}

type Employers interface {
	// CreateEmployer returns ErrAlreadyExists when the organization is taken.
	CreateEmployer(ctx context.Context, e domain.Employer) error
	GetEmployerByID(ctx context.Context, id string) (domain.Employer, error)
	GetEmployerByOrganization(ctx context.Context, organization string) (domain.Employer, error)
	// ListEmployers is ordered by organization name.
	ListEmployers(ctx context.Context) ([]domain.Employer, error)
}

// Transition is a conditional status change applied only while the
// request is still pending.
type Transition struct {
	RequestID    string
	Status       domain.RequestStatus
	TokenAddress *string
	UpdatedAt    time.Time
}

type CredentialRequests interface {
	CreateRequest(ctx context.Context, r domain.CredentialRequest) error
	GetRequest(ctx context.Context, id string) (domain.CredentialRequest, error)

	// ListPendingByOrganization is newest first.
	ListPendingByOrganization(ctx context.Context, organization string) ([]domain.CredentialRequest, error)
	// ListApprovedByUser is ordered by start date, latest first.
	ListApprovedByUser(ctx context.Context, userID string) ([]domain.CredentialRequest, error)
	// ListByUser returns every status, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.CredentialRequest, error)

	// TransitionFromPending updates the request only if its status is still
	// pending and returns the number of rows changed (0 or 1).
	TransitionFromPending(ctx context.Context, t Transition) (int64, error)
}

// MintOutcome records how a mint intent ended.
type MintOutcome struct {
	IntentID      string
	State         domain.MintState
	TokenAddress  *string
	FailureReason *string
	UpdatedAt     time.Time
}

type MintIntents interface {
	// CreateIntent returns ErrAlreadyExists when the request already has an
	// intent in a blocking state.
	CreateIntent(ctx context.Context, i domain.MintIntent) error
	GetIntent(ctx context.Context, id string) (domain.MintIntent, error)
	// ListIntentsByRequest is oldest first.
	ListIntentsByRequest(ctx context.Context, requestID string) ([]domain.MintIntent, error)
	// UpdateIntentOutcome only moves intents that are still in flight.
	UpdateIntentOutcome(ctx context.Context, o MintOutcome) error
	// ResolveIntent settles an intent that is in flight or stale. It is the
	// operator path for mints whose outcome was unknown.
	ResolveIntent(ctx context.Context, o MintOutcome) error
	// MarkStaleIntents moves in-flight intents created before cutoff to
	// stale and returns them.
	MarkStaleIntents(ctx context.Context, cutoff, now time.Time) ([]domain.MintIntent, error)
	// CountIntentsByState counts intents in any of states.
	CountIntentsByState(ctx context.Context, states ...domain.MintState) (int64, error)
}
