package postgres

import (
	"context"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
)

const (
	userColumns = `id, name, handle, email, wallet_address, wallet_secret_encrypted, created_at, updated_at`

	createUserQuery = `INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	getUserByIDQuery     = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getUserByHandleQuery = `SELECT ` + userColumns + ` FROM users WHERE handle = $1`
)

type usersRepo struct {
	db DBTX
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, createUserQuery,
		u.ID, u.Name, u.Handle, u.Email, u.WalletAddress, u.WalletSecretEncrypted,
		u.CreatedAt.UTC(), u.UpdatedAt.UTC())
	return mapConflict(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByIDQuery, id))
}

func (r *usersRepo) GetUserByHandle(ctx context.Context, handle string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByHandleQuery, handle))
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Handle, &u.Email, &u.WalletAddress, &u.WalletSecretEncrypted,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
