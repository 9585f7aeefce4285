package postgres

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
)

const (
	requestColumns = `id, user_id, organization_name, role_title, start_date, end_date, proof_link,
       status, token_address, created_at, updated_at`

	createRequestQuery = `INSERT INTO credential_requests (
    id, user_id, organization_name, role_title, start_date, end_date, proof_link,
    status, token_address, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', NULL, $8, $9)`

	getRequestQuery = `SELECT ` + requestColumns + ` FROM credential_requests WHERE id = $1`

	listPendingByOrgQuery = `SELECT ` + requestColumns + ` FROM credential_requests
WHERE organization_name = $1 AND status = 'pending'
ORDER BY created_at DESC, id DESC`

	listApprovedByUserQuery = `SELECT ` + requestColumns + ` FROM credential_requests
WHERE user_id = $1 AND status = 'approved'
ORDER BY start_date DESC, id DESC`

	listByUserQuery = `SELECT ` + requestColumns + ` FROM credential_requests
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`

	transitionFromPendingQuery = `UPDATE credential_requests
SET status = $1, token_address = $2, updated_at = $3
WHERE id = $4 AND status = 'pending'`
)

type requestsRepo struct {
	db DBTX
}

func (r *requestsRepo) CreateRequest(ctx context.Context, req domain.CredentialRequest) error {
	_, err := r.db.ExecContext(ctx, createRequestQuery,
		req.ID, req.UserID, req.OrganizationName, req.RoleTitle,
		domain.Date(req.StartDate), nullTime(req.EndDate), nullString(req.ProofLink),
		req.CreatedAt.UTC(), req.UpdatedAt.UTC())
	return mapConflict(err)
}

func (r *requestsRepo) GetRequest(ctx context.Context, id string) (domain.CredentialRequest, error) {
	return scanRequest(r.db.QueryRowContext(ctx, getRequestQuery, id))
}

func (r *requestsRepo) ListPendingByOrganization(ctx context.Context, organization string) ([]domain.CredentialRequest, error) {
	return r.list(ctx, listPendingByOrgQuery, organization)
}

func (r *requestsRepo) ListApprovedByUser(ctx context.Context, userID string) ([]domain.CredentialRequest, error) {
	return r.list(ctx, listApprovedByUserQuery, userID)
}

func (r *requestsRepo) ListByUser(ctx context.Context, userID string) ([]domain.CredentialRequest, error) {
	return r.list(ctx, listByUserQuery, userID)
}

func (r *requestsRepo) TransitionFromPending(ctx context.Context, t store.Transition) (int64, error) {
	res, err := r.db.ExecContext(ctx, transitionFromPendingQuery,
		string(t.Status), nullString(t.TokenAddress), t.UpdatedAt.UTC(), t.RequestID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *requestsRepo) list(ctx context.Context, query, arg string) ([]domain.CredentialRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.CredentialRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanRequest(row scanner) (domain.CredentialRequest, error) {
	var (
		req       domain.CredentialRequest
		end       sql.NullTime
		proof     sql.NullString
		status    string
		tokenAddr sql.NullString
	)
	err := row.Scan(&req.ID, &req.UserID, &req.OrganizationName, &req.RoleTitle,
		&req.StartDate, &end, &proof, &status, &tokenAddr, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return domain.CredentialRequest{}, mapNotFound(err)
	}
	req.StartDate = domain.Date(req.StartDate)
	req.EndDate = timePtr(end)
	req.ProofLink = stringPtr(proof)
	req.Status = domain.RequestStatus(status)
	req.TokenAddress = stringPtr(tokenAddr)
	req.CreatedAt = req.CreatedAt.UTC()
	req.UpdatedAt = req.UpdatedAt.UTC()
	return req, nil
}
