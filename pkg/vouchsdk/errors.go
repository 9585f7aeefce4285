package vouchsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/vouch/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeValidation           = "validation_failed"
	ErrorCodeInvalidCredentials   = "invalid_credentials"
	ErrorCodeMFARequired          = "mfa_required"
	ErrorCodeInvalidOTP           = "invalid_otp"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeInsufficientScope    = "insufficient_scope"
	ErrorCodeForbidden            = "forbidden"
	ErrorCodeNotFound             = "not_found"
	ErrorCodeNotPending           = "not_pending"
	ErrorCodeMintFailed           = "mint_failed"
	ErrorCodeUnavailable          = "service_unavailable"
	ErrorCodeServerError          = "server_error"
	ErrorCodeMFAAlreadyEnabled    = "mfa_already_enabled"
	ErrorCodeMFANotEnabled        = "mfa_not_enabled"
	ErrorCodeMFANotEnrolled       = "mfa_not_enrolled"
	ErrorCodeProvisioningDisabled = "provisioning_disabled"
	ErrorCodeRateLimited          = "rate_limit_exceeded"
)

// APIError is an error response. Handlers write the predefined values;
// the client parses responses back into them.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *APIError with the same Code, so a parsed response
// satisfies errors.Is(err, ErrNotPending) whatever its description.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes e as the response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(httpx.ErrorBody{Error: e.Code, ErrorDescription: e.Description})
}

// WithDescription copies e with a more specific description.
func (e *APIError) WithDescription(desc string) *APIError {
	c := *e
	c.Description = desc
	return &c
}

func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Description: description}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request body is malformed",
	}

	// ErrValidation carries the failing field in its description.
	ErrValidation = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "validation failed",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	// ErrMFARequired means the account has TOTP enabled and no otp_code was sent.
	ErrMFARequired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeMFARequired,
		Description: "a one-time code is required for this account",
	}

	ErrInvalidOTP = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidOTP,
		Description: "invalid one-time code",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the session token is missing, invalid or expired",
	}

	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "only the named organization may review this request",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "not found",
	}

	// ErrNotPending is returned when a request was already approved or
	// rejected, or another approval is minting it right now.
	ErrNotPending = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeNotPending,
		Description: "the request is no longer pending",
	}

	// ErrMintFailed leaves the request pending; approving again is safe.
	ErrMintFailed = &APIError{
		StatusCode:  http.StatusBadGateway,
		Code:        ErrorCodeMintFailed,
		Description: "the token could not be minted",
	}

	ErrUnavailable = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeUnavailable,
		Description: "storage is unavailable, try again later",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	ErrMFAAlreadyEnabled = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeMFAAlreadyEnabled,
		Description: "MFA is already enabled for this account",
	}

	ErrMFANotEnabled = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeMFANotEnabled,
		Description: "MFA is not enabled for this account",
	}

	ErrMFANotEnrolled = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeMFANotEnrolled,
		Description: "start TOTP enrollment first",
	}

	ErrProvisioningDisabled = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeProvisioningDisabled,
		Description: "employer provisioning is not enabled",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp httpx.ErrorBody
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
