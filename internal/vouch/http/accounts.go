package http

import (
	"net/http"

	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/aussiebroadwan/vouch/pkg/httpx"
	"github.com/aussiebroadwan/vouch/pkg/vouchsdk"
)

type SignupHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP handles POST /v1/accounts
//
//	@Summary		Create a job seeker account
//	@Description	Creates the account, its public profile and a wallet in one step.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vouchsdk.SignupRequest	true	"Account details"
//	@Success		201		{object}	vouchsdk.SignupResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Invalid input, or email or handle taken"
//	@Failure		503		{object}	httpx.ErrorBody	"Storage unavailable"
//	@Router			/v1/accounts [post]
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req vouchsdk.SignupRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		vouchsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	id, err := h.AccountService.CreateAccount(r.Context(), req.Email, req.Password, service.ProfileInput{
		Name:   req.Name,
		Handle: req.Handle,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, vouchsdk.SignupResponse{AccountID: id})
}

type LoginHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP handles POST /v1/sessions
//
//	@Summary		Log in
//	@Description	Authenticates with email and password, plus a TOTP code once MFA is enabled.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vouchsdk.LoginRequest	true	"Credentials"
//	@Success		201		{object}	vouchsdk.SessionResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Malformed request"
//	@Failure		401		{object}	httpx.ErrorBody	"invalid_credentials, mfa_required or invalid_otp"
//	@Router			/v1/sessions [post]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req vouchsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		vouchsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	issued, err := h.AccountService.Authenticate(r.Context(), req.Email, req.Password, req.OTPCode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := toSession(issued.Session)
	resp.Token = issued.Token
	resp.TokenType = "Bearer"
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// CurrentSessionHandler handles GET /v1/session
//
//	@Summary		Current session
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	vouchsdk.SessionResponse
//	@Failure		401	{object}	httpx.ErrorBody	"Invalid or missing token"
//	@Router			/v1/session [get]
func CurrentSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		vouchsdk.ErrInvalidToken.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSession(sess))
}
