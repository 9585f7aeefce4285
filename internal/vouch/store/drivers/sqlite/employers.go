package sqlite

import (
	"context"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store/drivers/sqlite/gen"
)

type employersRepo struct {
	q *gen.Queries
}

func (r *employersRepo) CreateEmployer(ctx context.Context, e domain.Employer) error {
	return mapConflict(r.q.CreateEmployer(ctx, gen.CreateEmployerParams{
		ID:               e.ID,
		OrganizationName: e.OrganizationName,
		CreatedAt:        utc(e.CreatedAt),
	}))
}

func (r *employersRepo) GetEmployerByID(ctx context.Context, id string) (domain.Employer, error) {
	row, err := r.q.GetEmployerByID(ctx, id)
	if err != nil {
		return domain.Employer{}, mapNotFound(err)
	}
	return mapEmployer(row), nil
}

func (r *employersRepo) GetEmployerByOrganization(ctx context.Context, organization string) (domain.Employer, error) {
	row, err := r.q.GetEmployerByOrganization(ctx, organization)
	if err != nil {
		return domain.Employer{}, mapNotFound(err)
	}
	return mapEmployer(row), nil
}

func (r *employersRepo) ListEmployers(ctx context.Context) ([]domain.Employer, error) {
	rows, err := r.q.ListEmployers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Employer, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapEmployer(row))
	}
	return out, nil
}
