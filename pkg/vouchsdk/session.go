package vouchsdk

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"time"
)

// Session is a logged-in caller. Tokens are not refreshed: log in again
// once ExpiresAt passes.
type Session struct {
	client *Client
	info   SessionResponse
}

func newSession(c *Client, info SessionResponse) *Session {
	return &Session{client: c, info: info}
}

// NewSession wraps a token obtained elsewhere.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, info: SessionResponse{Token: token}}
}

func (s *Session) Token() string        { return s.info.Token }
func (s *Session) AccountID() string    { return s.info.AccountID }
func (s *Session) Organization() string { return s.info.Organization }
func (s *Session) ExpiresAt() time.Time { return s.info.ExpiresAt }

// HasScope reports whether the login response granted scope.
func (s *Session) HasScope(scope string) bool {
	return slices.Contains(s.info.Scopes, scope)
}

func (s *Session) do(ctx context.Context, method, path string, body, out any, want int) error {
	return s.client.do(ctx, method, path, s.info.Token, nil, body, out, want)
}

// Current fetches the session as the server sees it.
func (s *Session) Current(ctx context.Context) (*SessionResponse, error) {
	var out SessionResponse
	if err := s.do(ctx, http.MethodGet, "/v1/session", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitRequest files a new pending credential request. Seekers only.
func (s *Session) SubmitRequest(ctx context.Context, req SubmitRequest) (*CredentialRequest, error) {
	var out CredentialRequest
	if err := s.do(ctx, http.MethodPost, "/v1/requests", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRequests returns the seeker's own requests, newest first.
func (s *Session) ListRequests(ctx context.Context) ([]CredentialRequest, error) {
	var out RequestListResponse
	if err := s.do(ctx, http.MethodGet, "/v1/requests", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

// ListPendingRequests returns the employer's pending queue, newest first.
func (s *Session) ListPendingRequests(ctx context.Context) ([]CredentialRequest, error) {
	var out RequestListResponse
	if err := s.do(ctx, http.MethodGet, "/v1/organization/requests", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

// ApproveRequest mints the credential token and approves the request.
// ErrMintFailed leaves the request pending.
func (s *Session) ApproveRequest(ctx context.Context, id string) (*CredentialRequest, error) {
	var out CredentialRequest
	if err := s.do(ctx, http.MethodPost, "/v1/requests/"+url.PathEscape(id)+"/approve", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RejectRequest(ctx context.Context, id string) (*CredentialRequest, error) {
	var out CredentialRequest
	if err := s.do(ctx, http.MethodPost, "/v1/requests/"+url.PathEscape(id)+"/reject", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnrollTOTP starts enrollment. MFA is enabled by VerifyTOTP.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := s.do(ctx, http.MethodPost, "/v1/mfa/totp/enroll", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) VerifyTOTP(ctx context.Context, code string) error {
	return s.do(ctx, http.MethodPost, "/v1/mfa/totp/verify", TOTPCodeRequest{Code: code}, nil, http.StatusNoContent)
}

func (s *Session) DisableTOTP(ctx context.Context, code string) error {
	return s.do(ctx, http.MethodDelete, "/v1/mfa/totp", TOTPCodeRequest{Code: code}, nil, http.StatusNoContent)
}
