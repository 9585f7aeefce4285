package http

import (
	"net/http"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/aussiebroadwan/vouch/pkg/httpx"
	"github.com/aussiebroadwan/vouch/pkg/vouchsdk"
)

func toRequest(r domain.CredentialRequest) vouchsdk.CredentialRequest {
	out := vouchsdk.CredentialRequest{
		ID:               r.ID,
		UserID:           r.UserID,
		OrganizationName: r.OrganizationName,
		RoleTitle:        r.RoleTitle,
		StartDate:        domain.FormatDate(r.StartDate),
		ProofLink:        r.ProofLink,
		Status:           string(r.Status),
		TokenAddress:     r.TokenAddress,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.EndDate != nil {
		end := domain.FormatDate(*r.EndDate)
		out.EndDate = &end
	}
	return out
}

func toRequests(rs []domain.CredentialRequest) []vouchsdk.CredentialRequest {
	out := make([]vouchsdk.CredentialRequest, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRequest(r))
	}
	return out
}

func toSession(s domain.Session) vouchsdk.SessionResponse {
	return vouchsdk.SessionResponse{
		SessionID:    s.ID,
		AccountID:    s.AccountID,
		Kind:         string(s.Kind),
		Handle:       s.Handle,
		Organization: s.Organization,
		Scopes:       s.Scopes,
		AMR:          s.AMR,
		IssuedAt:     s.IssuedAt,
		ExpiresAt:    s.ExpiresAt,
	}
}

// sessionFrom rebuilds the caller's session from the verified claims that
// AuthnMiddleware stored on the request.
func sessionFrom(r *http.Request) (domain.Session, bool) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok || claims.Subject == "" {
		return domain.Session{}, false
	}
	return service.SessionFromClaims(claims), true
}
