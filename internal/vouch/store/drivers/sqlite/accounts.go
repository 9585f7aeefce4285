package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/internal/vouch/store/drivers/sqlite/gen"
)

type accountsRepo struct {
	q *gen.Queries
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	return mapConflict(r.q.CreateAccount(ctx, gen.CreateAccountParams{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Kind:         string(a.Kind),
		CreatedAt:    utc(a.CreatedAt),
		UpdatedAt:    utc(a.UpdatedAt),
	}))
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row, err := r.q.GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) SetMFASecret(ctx context.Context, id, secret string, now time.Time) error {
	n, err := r.q.SetAccountMFASecret(ctx, gen.SetAccountMFASecretParams{
		MfaSecret: sql.NullString{String: secret, Valid: true},
		UpdatedAt: utc(now),
		ID:        id,
	})
	return rowsOrNotFound(n, err)
}

func (r *accountsRepo) EnableMFA(ctx context.Context, id string, now time.Time) error {
	n, err := r.q.EnableAccountMFA(ctx, gen.EnableAccountMFAParams{
		MfaEnabledAt: sql.NullTime{Time: utc(now), Valid: true},
		UpdatedAt:    utc(now),
		ID:           id,
	})
	return rowsOrNotFound(n, err)
}

func (r *accountsRepo) DisableMFA(ctx context.Context, id string, now time.Time) error {
	n, err := r.q.DisableAccountMFA(ctx, gen.DisableAccountMFAParams{UpdatedAt: utc(now), ID: id})
	return rowsOrNotFound(n, err)
}

func rowsOrNotFound(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
