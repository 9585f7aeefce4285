package sqlite

import (
	"context"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/internal/vouch/store/drivers/sqlite/gen"
)

type requestsRepo struct {
	q *gen.Queries
}

func (r *requestsRepo) CreateRequest(ctx context.Context, req domain.CredentialRequest) error {
	return mapConflict(r.q.CreateCredentialRequest(ctx, gen.CreateCredentialRequestParams{
		ID:               req.ID,
		UserID:           req.UserID,
		OrganizationName: req.OrganizationName,
		RoleTitle:        req.RoleTitle,
		StartDate:        domain.Date(req.StartDate),
		EndDate:          mapOptionalTime(req.EndDate),
		ProofLink:        mapOptionalString(req.ProofLink),
		CreatedAt:        utc(req.CreatedAt),
		UpdatedAt:        utc(req.UpdatedAt),
	}))
}

func (r *requestsRepo) GetRequest(ctx context.Context, id string) (domain.CredentialRequest, error) {
	row, err := r.q.GetCredentialRequest(ctx, id)
	if err != nil {
		return domain.CredentialRequest{}, mapNotFound(err)
	}
	return mapRequest(row), nil
}

func (r *requestsRepo) ListPendingByOrganization(ctx context.Context, organization string) ([]domain.CredentialRequest, error) {
	rows, err := r.q.ListPendingRequestsByOrganization(ctx, organization)
	if err != nil {
		return nil, err
	}
	return mapRequests(rows), nil
}

func (r *requestsRepo) ListApprovedByUser(ctx context.Context, userID string) ([]domain.CredentialRequest, error) {
	rows, err := r.q.ListApprovedRequestsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapRequests(rows), nil
}

func (r *requestsRepo) ListByUser(ctx context.Context, userID string) ([]domain.CredentialRequest, error) {
	rows, err := r.q.ListRequestsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapRequests(rows), nil
}

func (r *requestsRepo) TransitionFromPending(ctx context.Context, t store.Transition) (int64, error) {
	return r.q.TransitionRequestFromPending(ctx, gen.TransitionRequestFromPendingParams{
		Status:       string(t.Status),
		TokenAddress: mapOptionalString(t.TokenAddress),
		UpdatedAt:    utc(t.UpdatedAt),
		ID:           t.RequestID,
	})
}
