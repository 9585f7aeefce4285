//go:build e2e

package vouch_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/vouch/pkg/vouchsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	client := vouchsdk.NewClient(setupVouchContainer(t, nil))

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.Equal(t, "ok", health.Checks.Database)

	jwks, err := client.GetJWKS(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, jwks.Keys)
}

func TestCredentialLifecycle(t *testing.T) {
	client := vouchsdk.NewClient(setupVouchContainer(t, nil))

	acme := provisionEmployer(t, client, "Acme Corp")
	initech := provisionEmployer(t, client, "Initech")
	seeker := signupSeeker(t, client)

	orgs, err := client.ListOrganizations(t.Context())
	require.NoError(t, err)
	require.Equal(t, []string{"Acme Corp", "Initech"}, orgs)

	end := "2023-03-31"
	first, err := seeker.Session.SubmitRequest(t.Context(), vouchsdk.SubmitRequest{
		OrganizationName: "Acme Corp",
		RoleTitle:        "Backend Engineer",
		StartDate:        "2020-05-01",
		EndDate:          &end,
	})
	require.NoError(t, err)

	second, err := seeker.Session.SubmitRequest(t.Context(), vouchsdk.SubmitRequest{
		OrganizationName: "Initech",
		RoleTitle:        "TPS Reporter",
		StartDate:        "2023-04-01",
	})
	require.NoError(t, err)

	// Each employer only sees its own queue.
	pending, err := acme.Session.ListPendingRequests(t.Context())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, first.ID, pending[0].ID)

	_, err = initech.Session.ApproveRequest(t.Context(), first.ID)
	require.ErrorIs(t, err, vouchsdk.ErrForbidden)

	approved, err := acme.Session.ApproveRequest(t.Context(), first.ID)
	require.NoError(t, err)
	require.Equal(t, vouchsdk.StatusApproved, approved.Status)
	require.NotNil(t, approved.TokenAddress)

	_, err = acme.Session.ApproveRequest(t.Context(), first.ID)
	require.ErrorIs(t, err, vouchsdk.ErrNotPending)

	rejected, err := initech.Session.RejectRequest(t.Context(), second.ID)
	require.NoError(t, err)
	require.Equal(t, vouchsdk.StatusRejected, rejected.Status)
	require.Nil(t, rejected.TokenAddress)

	profile, err := client.GetProfile(t.Context(), seeker.Handle)
	require.NoError(t, err)
	require.Len(t, profile.Credentials, 1)
	require.Equal(t, *approved.TokenAddress, *profile.Credentials[0].TokenAddress)
	require.Equal(t, "2023-03-31", *profile.Credentials[0].EndDate)

	mine, err := seeker.Session.ListRequests(t.Context())
	require.NoError(t, err)
	require.Len(t, mine, 2)
}

func TestEmployerTOTP(t *testing.T) {
	client := vouchsdk.NewClient(setupVouchContainer(t, nil))
	employer := provisionEmployer(t, client, "Globex")

	enroll, err := employer.Session.EnrollTOTP(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, enroll.Secret)

	code, err := totp.GenerateCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, employer.Session.VerifyTOTP(t.Context(), code))

	_, err = client.Login(t.Context(), employer.Email, employer.Password, "")
	require.ErrorIs(t, err, vouchsdk.ErrMFARequired)

	_, err = client.Login(t.Context(), employer.Email, employer.Password, "000000")
	require.ErrorIs(t, err, vouchsdk.ErrInvalidOTP)

	code, err = totp.GenerateCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	s, err := client.Login(t.Context(), employer.Email, employer.Password, code)
	require.NoError(t, err)

	current, err := s.Current(t.Context())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"pwd", "otp"}, current.AMR)
}

func TestProvisioningDisabledWithoutToken(t *testing.T) {
	client := vouchsdk.NewClient(setupVouchContainer(t, map[string]string{"VOUCH_PROVISIONING_TOKEN": ""}))

	_, err := client.ProvisionEmployer(t.Context(), "anything", vouchsdk.ProvisionEmployerRequest{
		Email:            "hr@example.com",
		Password:         testPassword,
		OrganizationName: "Example",
	})
	require.ErrorIs(t, err, vouchsdk.ErrProvisioningDisabled)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	baseURL := setupVouchContainer(t, nil)

	resp, err := http.Post(baseURL+"/v1/requests", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
}
