package http

import (
	"net/http"

	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/aussiebroadwan/vouch/pkg/httpx"
	"github.com/aussiebroadwan/vouch/pkg/vouchsdk"
)

type ProfileHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP handles GET /v1/profiles/{handle}
//
//	@Summary		Public profile
//	@Description	A seeker's name, wallet and approved credentials, latest start date first.
//	@Tags			Profiles
//	@Produce		json
//	@Param			handle	path		string	true	"Profile handle"
//	@Success		200		{object}	vouchsdk.ProfileResponse
//	@Failure		404		{object}	httpx.ErrorBody	"Unknown handle"
//	@Router			/v1/profiles/{handle} [get]
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProfileService.PublicProfile(r.Context(), r.PathValue("handle"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, vouchsdk.ProfileResponse{
		Name:          p.Name,
		Handle:        p.Handle,
		WalletAddress: p.WalletAddress,
		Credentials:   toRequests(p.Credentials),
	})
}
