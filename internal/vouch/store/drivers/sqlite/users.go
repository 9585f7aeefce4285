package sqlite

import (
	"context"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	return mapConflict(r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:                    u.ID,
		Name:                  u.Name,
		Handle:                u.Handle,
		Email:                 u.Email,
		WalletAddress:         u.WalletAddress,
		WalletSecretEncrypted: u.WalletSecretEncrypted,
		CreatedAt:             utc(u.CreatedAt),
		UpdatedAt:             utc(u.UpdatedAt),
	}))
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByHandle(ctx context.Context, handle string) (domain.User, error) {
	row, err := r.q.GetUserByHandle(ctx, handle)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}
