package http

import (
	"net/http"

	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/aussiebroadwan/vouch/pkg/httpx"
	"github.com/aussiebroadwan/vouch/pkg/vouchsdk"
)

type OrganizationsHandler struct {
	EmployerService *service.EmployerService
}

// ServeHTTP handles GET /v1/organizations
//
//	@Summary		List organizations
//	@Description	Names of every organization that can verify requests, sorted.
//	@Tags			Employers
//	@Produce		json
//	@Success		200	{object}	vouchsdk.OrganizationsResponse
//	@Failure		503	{object}	httpx.ErrorBody	"Storage unavailable"
//	@Router			/v1/organizations [get]
func (h *OrganizationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.EmployerService.ListOrganizations(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vouchsdk.OrganizationsResponse{Organizations: orgs})
}

type ProvisionEmployerHandler struct {
	EmployerService *service.EmployerService
}

// ServeHTTP handles POST /v1/employers
//
//	@Summary		Provision an employer
//	@Description	Creates an employer account for one organization. Needs the X-Provisioning-Token header; the endpoint is disabled when the server has no token configured.
//	@Tags			Employers
//	@Accept			json
//	@Produce		json
//	@Param			X-Provisioning-Token	header		string								true	"Provisioning token"
//	@Param			request					body		vouchsdk.ProvisionEmployerRequest	true	"Employer"
//	@Success		201						{object}	vouchsdk.EmployerResponse
//	@Failure		400						{object}	httpx.ErrorBody	"Invalid input or organization taken"
//	@Failure		401						{object}	httpx.ErrorBody	"Wrong provisioning token"
//	@Failure		404						{object}	httpx.ErrorBody	"Provisioning disabled"
//	@Router			/v1/employers [post]
func (h *ProvisionEmployerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req vouchsdk.ProvisionEmployerRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		vouchsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	emp, err := h.EmployerService.Provision(r.Context(), r.Header.Get(vouchsdk.ProvisioningHeader), service.EmployerInput{
		Email:            req.Email,
		Password:         req.Password,
		OrganizationName: req.OrganizationName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, vouchsdk.EmployerResponse{
		ID:               emp.ID,
		OrganizationName: emp.OrganizationName,
		CreatedAt:        emp.CreatedAt,
	})
}
