package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
)

const (
	accountColumns = `id, email, password_hash, kind, mfa_secret, mfa_enabled_at, created_at, updated_at`

	createAccountQuery = `INSERT INTO accounts (id, email, password_hash, kind, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	getAccountByIDQuery = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	getAccountByEmailQuery = `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`

	setMFASecretQuery = `UPDATE accounts SET mfa_secret = $1, mfa_enabled_at = NULL, updated_at = $2 WHERE id = $3`

	enableMFAQuery = `UPDATE accounts SET mfa_enabled_at = $1, updated_at = $1
WHERE id = $2 AND mfa_secret IS NOT NULL`

	disableMFAQuery = `UPDATE accounts SET mfa_secret = NULL, mfa_enabled_at = NULL, updated_at = $1 WHERE id = $2`
)

type accountsRepo struct {
	db DBTX
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, createAccountQuery,
		a.ID, a.Email, a.PasswordHash, string(a.Kind), a.CreatedAt.UTC(), a.UpdatedAt.UTC())
	return mapConflict(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx, getAccountByIDQuery, id))
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx, getAccountByEmailQuery, email))
}

func (r *accountsRepo) SetMFASecret(ctx context.Context, id, secret string, now time.Time) error {
	return rowsOrNotFound(r.db.ExecContext(ctx, setMFASecretQuery, secret, now.UTC(), id))
}

func (r *accountsRepo) EnableMFA(ctx context.Context, id string, now time.Time) error {
	return rowsOrNotFound(r.db.ExecContext(ctx, enableMFAQuery, now.UTC(), id))
}

func (r *accountsRepo) DisableMFA(ctx context.Context, id string, now time.Time) error {
	return rowsOrNotFound(r.db.ExecContext(ctx, disableMFAQuery, now.UTC(), id))
}

func scanAccount(row scanner) (domain.Account, error) {
	var (
		a         domain.Account
		kind      string
		secret    sql.NullString
		enabledAt sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &kind, &secret, &enabledAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.Kind = domain.AccountKind(kind)
	a.MFASecret = stringPtr(secret)
	a.MFAEnabledAt = timePtr(enabledAt)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}
