package postgres

import (
	"context"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
)

const (
	createEmployerQuery = `INSERT INTO employers (id, organization_name, created_at) VALUES ($1, $2, $3)`

	getEmployerByIDQuery  = `SELECT id, organization_name, created_at FROM employers WHERE id = $1`
	getEmployerByOrgQuery = `SELECT id, organization_name, created_at FROM employers WHERE organization_name = $1`
	listEmployersQuery    = `SELECT id, organization_name, created_at FROM employers ORDER BY organization_name`
)

type employersRepo struct {
	db DBTX
}

func (r *employersRepo) CreateEmployer(ctx context.Context, e domain.Employer) error {
	_, err := r.db.ExecContext(ctx, createEmployerQuery, e.ID, e.OrganizationName, e.CreatedAt.UTC())
	return mapConflict(err)
}

func (r *employersRepo) GetEmployerByID(ctx context.Context, id string) (domain.Employer, error) {
	return scanEmployer(r.db.QueryRowContext(ctx, getEmployerByIDQuery, id))
}

func (r *employersRepo) GetEmployerByOrganization(ctx context.Context, organization string) (domain.Employer, error) {
	return scanEmployer(r.db.QueryRowContext(ctx, getEmployerByOrgQuery, organization))
}

func (r *employersRepo) ListEmployers(ctx context.Context) ([]domain.Employer, error) {
	rows, err := r.db.QueryContext(ctx, listEmployersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Employer{}
	for rows.Next() {
		e, err := scanEmployer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEmployer(row scanner) (domain.Employer, error) {
	var e domain.Employer
	if err := row.Scan(&e.ID, &e.OrganizationName, &e.CreatedAt); err != nil {
		return domain.Employer{}, mapNotFound(err)
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}
