package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/internal/vouch/store/drivers/sqlite/gen"
)

type txStore struct {
	tx *sql.Tx
	q  *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx, q: gen.New(tx)}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer Store owns the database handle.
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }
func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Accounts() store.Accounts                     { return &accountsRepo{q: t.q} }
func (t *txStore) Users() store.Users                           { return &usersRepo{q: t.q} }
func (t *txStore) Employers() store.Employers                   { return &employersRepo{q: t.q} }
func (t *txStore) CredentialRequests() store.CredentialRequests { return &requestsRepo{q: t.q} }
func (t *txStore) MintIntents() store.MintIntents               { return &mintIntentsRepo{q: t.q} }

// ApplyMigrations is a no-op inside a transaction.
func (t *txStore) ApplyMigrations() error { return nil }
