package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/aussiebroadwan/vouch/pkg/slogx"
	"github.com/aussiebroadwan/vouch/pkg/vouchsdk"
)

const maxBodyBytes = 64 << 10

// apiError maps a service error to its response.
func apiError(err error) *vouchsdk.APIError {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return vouchsdk.ErrValidation.WithDescription(verr.Field + ": " + verr.Reason)
	case errors.Is(err, service.ErrRequestNotFound):
		return vouchsdk.ErrNotFound.WithDescription("credential request not found")
	case errors.Is(err, service.ErrRequestNotPending):
		return vouchsdk.ErrNotPending
	case errors.Is(err, service.ErrForbidden):
		return vouchsdk.ErrForbidden
	case errors.Is(err, service.ErrMint):
		return vouchsdk.ErrMintFailed
	case errors.Is(err, service.ErrPersistence):
		return vouchsdk.ErrUnavailable
	case errors.Is(err, service.ErrInvalidCredentials):
		return vouchsdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrMFARequired):
		return vouchsdk.ErrMFARequired
	case errors.Is(err, service.ErrInvalidOTP):
		return vouchsdk.ErrInvalidOTP
	case errors.Is(err, service.ErrProfileNotFound):
		return vouchsdk.ErrNotFound.WithDescription("profile not found")
	case errors.Is(err, service.ErrMFAAlreadyEnabled):
		return vouchsdk.ErrMFAAlreadyEnabled
	case errors.Is(err, service.ErrMFANotEnabled):
		return vouchsdk.ErrMFANotEnabled
	case errors.Is(err, service.ErrMFANotEnrolled):
		return vouchsdk.ErrMFANotEnrolled
	case errors.Is(err, service.ErrProvisioningDisabled):
		return vouchsdk.ErrProvisioningDisabled
	case errors.Is(err, service.ErrProvisioningDenied):
		return vouchsdk.ErrInvalidToken.WithDescription("invalid provisioning token")
	}
	return nil
}

// writeServiceError writes the mapped response. Unmapped errors are
// logged and become 500s; 5xx mapped errors are logged as warnings.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	e := apiError(err)
	if e == nil {
		log.Error("unhandled error", slog.Any("error", err))
		vouchsdk.ErrServerError.WriteError(w)
		return
	}
	if e.StatusCode >= http.StatusInternalServerError {
		log.Warn("request failed", slog.String("code", e.Code), slog.Any("error", err))
	}
	e.WriteError(w)
}
