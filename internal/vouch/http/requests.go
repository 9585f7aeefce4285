package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/aussiebroadwan/vouch/pkg/httpx"
	"github.com/aussiebroadwan/vouch/pkg/vouchsdk"
)

// RequestsHandler serves the credential request lifecycle.
type RequestsHandler struct {
	CredentialService *service.CredentialService
}

// HandleSubmit handles POST /v1/requests
//
//	@Summary		Submit a credential request
//	@Description	Files a pending work-history claim for the calling seeker. The organization must be a known employer.
//	@Tags			Requests
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vouchsdk.SubmitRequest	true	"Claim"
//	@Success		201		{object}	vouchsdk.CredentialRequest
//	@Failure		400		{object}	httpx.ErrorBody	"Validation failed"
//	@Failure		401		{object}	httpx.ErrorBody	"Invalid or missing token"
//	@Failure		403		{object}	httpx.ErrorBody	"Missing requests:write scope"
//	@Failure		503		{object}	httpx.ErrorBody	"Storage unavailable"
//	@Router			/v1/requests [post]
func (h *RequestsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		vouchsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req vouchsdk.SubmitRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		vouchsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	in := service.SubmitInput{
		UserID:           sess.AccountID,
		OrganizationName: req.OrganizationName,
		RoleTitle:        req.RoleTitle,
		ProofLink:        req.ProofLink,
	}
	if strings.TrimSpace(req.StartDate) != "" {
		start, err := domain.ParseDate(req.StartDate)
		if err != nil {
			vouchsdk.ErrValidation.WithDescription("start_date: want YYYY-MM-DD").WriteError(w)
			return
		}
		in.StartDate = start
	}
	if req.EndDate != nil && strings.TrimSpace(*req.EndDate) != "" {
		end, err := domain.ParseDate(*req.EndDate)
		if err != nil {
			vouchsdk.ErrValidation.WithDescription("end_date: want YYYY-MM-DD").WriteError(w)
			return
		}
		in.EndDate = &end
	}

	created, err := h.CredentialService.Submit(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toRequest(created))
}

// HandleList handles GET /v1/requests
//
//	@Summary		List my requests
//	@Description	Every request the caller submitted, newest first.
//	@Tags			Requests
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	vouchsdk.RequestListResponse
//	@Failure		401	{object}	httpx.ErrorBody	"Invalid or missing token"
//	@Router			/v1/requests [get]
func (h *RequestsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		vouchsdk.ErrInvalidToken.WriteError(w)
		return
	}

	reqs, err := h.CredentialService.ListForUser(r.Context(), sess.AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vouchsdk.RequestListResponse{Requests: toRequests(reqs)})
}

// HandleListPending handles GET /v1/organization/requests
//
//	@Summary		Pending requests for my organization
//	@Description	The employer's review queue, newest first.
//	@Tags			Review
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	vouchsdk.RequestListResponse
//	@Failure		401	{object}	httpx.ErrorBody	"Invalid or missing token"
//	@Failure		403	{object}	httpx.ErrorBody	"Not an employer"
//	@Router			/v1/organization/requests [get]
func (h *RequestsHandler) HandleListPending(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		vouchsdk.ErrInvalidToken.WriteError(w)
		return
	}
	if !sess.IsEmployer() || sess.Organization == "" {
		vouchsdk.ErrForbidden.WithDescription("only employers have a review queue").WriteError(w)
		return
	}

	reqs, err := h.CredentialService.ListPendingForOrganization(r.Context(), sess.Organization)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vouchsdk.RequestListResponse{Requests: toRequests(reqs)})
}

// HandleApprove handles POST /v1/requests/{id}/approve
//
//	@Summary		Approve a request
//	@Description	Mints the credential token to the seeker's wallet, then marks the request approved. A mint failure leaves the request pending.
//	@Tags			Review
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Request id"
//	@Success		200	{object}	vouchsdk.CredentialRequest
//	@Failure		403	{object}	httpx.ErrorBody	"Request belongs to another organization"
//	@Failure		404	{object}	httpx.ErrorBody	"Unknown request"
//	@Failure		409	{object}	httpx.ErrorBody	"Request is not pending"
//	@Failure		502	{object}	httpx.ErrorBody	"Mint failed"
//	@Failure		503	{object}	httpx.ErrorBody	"Storage unavailable"
//	@Router			/v1/requests/{id}/approve [post]
func (h *RequestsHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.CredentialService.ApproveAs)
}

// HandleReject handles POST /v1/requests/{id}/reject
//
//	@Summary		Reject a request
//	@Tags			Review
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Request id"
//	@Success		200	{object}	vouchsdk.CredentialRequest
//	@Failure		403	{object}	httpx.ErrorBody	"Request belongs to another organization"
//	@Failure		404	{object}	httpx.ErrorBody	"Unknown request"
//	@Failure		409	{object}	httpx.ErrorBody	"Request is not pending"
//	@Router			/v1/requests/{id}/reject [post]
func (h *RequestsHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.CredentialService.RejectAs)
}

type reviewFunc func(ctx context.Context, sess domain.Session, requestID string) (domain.CredentialRequest, error)

func (h *RequestsHandler) review(w http.ResponseWriter, r *http.Request, fn reviewFunc) {
	sess, ok := sessionFrom(r)
	if !ok {
		vouchsdk.ErrInvalidToken.WriteError(w)
		return
	}

	updated, err := fn(r.Context(), sess, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRequest(updated))
}
