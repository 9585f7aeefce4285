package vouchsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/vouch/pkg/vouchsdk"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vouchsdk.ErrNotPending.WithDescription("request 01H is approved").WriteError(w)
	}))
	defer srv.Close()

	s := vouchsdk.NewClient(srv.URL).NewSession("tok")
	_, err := s.ApproveRequest(context.Background(), "01H")
	require.ErrorIs(t, err, vouchsdk.ErrNotPending)
	require.False(t, errors.Is(err, vouchsdk.ErrMintFailed))

	var apiErr *vouchsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	require.Equal(t, "request 01H is approved", apiErr.Description)

	// The shared value is untouched.
	require.Equal(t, "the request is no longer pending", vouchsdk.ErrNotPending.Description)
}

func TestNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := vouchsdk.NewClient(srv.URL).ListOrganizations(context.Background())
	var apiErr *vouchsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, vouchsdk.ErrorCodeServerError, apiErr.Code)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestLoginAndSessionRequests(t *testing.T) {
	var gotAuth, gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/sessions", func(w http.ResponseWriter, r *http.Request) {
		var req vouchsdk.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email != "hr@acme.test" || req.OTPCode != "123456" {
			vouchsdk.ErrInvalidRequest.WriteError(w)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(vouchsdk.SessionResponse{
			Token:        "tok-1",
			AccountID:    "acct-1",
			Kind:         "employer",
			Organization: "Acme",
			Scopes:       []string{"requests:review"},
		})
	})
	mux.HandleFunc("POST /v1/requests/{id}/reject", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.PathValue("id")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(vouchsdk.CredentialRequest{ID: gotPath, Status: vouchsdk.StatusRejected})
	})
	mux.HandleFunc("POST /v1/mfa/totp/verify", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	s, err := vouchsdk.NewClient(srv.URL+"/").Login(ctx, "hr@acme.test", "pw", "123456")
	require.NoError(t, err)
	require.Equal(t, "tok-1", s.Token())
	require.Equal(t, "Acme", s.Organization())
	require.True(t, s.HasScope("requests:review"))
	require.False(t, s.HasScope("requests:write"))

	out, err := s.RejectRequest(ctx, "req-9")
	require.NoError(t, err)
	require.Equal(t, vouchsdk.StatusRejected, out.Status)
	require.Equal(t, "Bearer tok-1", gotAuth)
	require.Equal(t, "req-9", gotPath)

	require.NoError(t, s.VerifyTOTP(ctx, "654321"))
}

func TestProvisionEmployerSendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(vouchsdk.ProvisioningHeader) != "s3cret" {
			vouchsdk.ErrInvalidToken.WriteError(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(vouchsdk.EmployerResponse{ID: "e1", OrganizationName: "Acme"})
	}))
	defer srv.Close()

	c := vouchsdk.NewClient(srv.URL)
	ctx := context.Background()

	emp, err := c.ProvisionEmployer(ctx, "s3cret", vouchsdk.ProvisionEmployerRequest{OrganizationName: "Acme"})
	require.NoError(t, err)
	require.Equal(t, "Acme", emp.OrganizationName)

	_, err = c.ProvisionEmployer(ctx, "wrong", vouchsdk.ProvisionEmployerRequest{OrganizationName: "Acme"})
	require.ErrorIs(t, err, vouchsdk.ErrInvalidToken)
}
