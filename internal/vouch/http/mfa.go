package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/aussiebroadwan/vouch/pkg/httpx"
	"github.com/aussiebroadwan/vouch/pkg/slogx"
	"github.com/aussiebroadwan/vouch/pkg/vouchsdk"
)

// MFAHandler handles the TOTP endpoints.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Start TOTP enrollment
//	@Description	Generates a TOTP secret. MFA stays off until a code is verified.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	vouchsdk.TOTPEnrollResponse
//	@Failure		400	{object}	httpx.ErrorBody	"MFA already enabled"
//	@Failure		401	{object}	httpx.ErrorBody	"Invalid or missing token"
//	@Router			/v1/mfa/totp/enroll [post]
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	accountID := httpx.AccountID(r.Context())
	if accountID == "" {
		vouchsdk.ErrInvalidToken.WriteError(w)
		return
	}

	enrollment, err := h.MFAService.EnrollTOTP(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, vouchsdk.TOTPEnrollResponse{
		Secret:  enrollment.Secret,
		URL:     enrollment.URL,
		Issuer:  enrollment.Issuer,
		Account: enrollment.Account,
	})
}

// HandleVerify handles POST /v1/mfa/totp/verify
//
//	@Summary		Verify a TOTP code and enable MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	vouchsdk.TOTPCodeRequest	true	"TOTP code"
//	@Success		204
//	@Failure		400	{object}	httpx.ErrorBody	"Not enrolled or already enabled"
//	@Failure		401	{object}	httpx.ErrorBody	"Invalid code or token"
//	@Router			/v1/mfa/totp/verify [post]
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	h.withCode(w, r, h.MFAService.VerifyTOTP)
}

// HandleRemove handles DELETE /v1/mfa/totp
//
//	@Summary		Disable TOTP
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	vouchsdk.TOTPCodeRequest	true	"Current TOTP code"
//	@Success		204
//	@Failure		400	{object}	httpx.ErrorBody	"MFA not enabled"
//	@Failure		401	{object}	httpx.ErrorBody	"Invalid code or token"
//	@Router			/v1/mfa/totp [delete]
func (h *MFAHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	h.withCode(w, r, h.MFAService.DisableTOTP)
}

func (h *MFAHandler) withCode(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, accountID, code string) error) {
	accountID := httpx.AccountID(r.Context())
	if accountID == "" {
		vouchsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req vouchsdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse request", "err", err)
		vouchsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := fn(r.Context(), accountID, req.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
