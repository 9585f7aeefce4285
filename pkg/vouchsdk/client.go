package vouchsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ProvisioningHeader carries the provisioning token on POST /v1/employers.
const ProvisioningHeader = "X-Provisioning-Token"

// Client talks to the anonymous endpoints and opens Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Signup creates a seeker account and returns its id.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	var out SignupResponse
	if err := c.do(ctx, http.MethodPost, "/v1/accounts", "", nil, req, &out, http.StatusCreated); err != nil {
		return "", err
	}
	return out.AccountID, nil
}

// Login authenticates and returns a Session. otpCode may be empty for
// accounts without TOTP.
func (c *Client) Login(ctx context.Context, email, password, otpCode string) (*Session, error) {
	var out SessionResponse
	err := c.do(ctx, http.MethodPost, "/v1/sessions", "", nil, LoginRequest{
		Email:    email,
		Password: password,
		OTPCode:  otpCode,
	}, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return newSession(c, out), nil
}

// ListOrganizations returns every known employer organization name.
func (c *Client) ListOrganizations(ctx context.Context) ([]string, error) {
	var out OrganizationsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/organizations", "", nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Organizations, nil
}

// ProvisionEmployer creates an employer account. The server must have a
// provisioning token configured.
func (c *Client) ProvisionEmployer(ctx context.Context, token string, req ProvisionEmployerRequest) (*EmployerResponse, error) {
	var out EmployerResponse
	headers := map[string]string{ProvisioningHeader: token}
	if err := c.do(ctx, http.MethodPost, "/v1/employers", "", headers, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile returns the public profile for handle.
func (c *Client) GetProfile(ctx context.Context, handle string) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/v1/profiles/"+url.PathEscape(handle), "", nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	var out JWKSResponse
	if err := c.do(ctx, http.MethodGet, "/.well-known/jwks.json", "", nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", "", nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", "", nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends body as JSON (when non-nil) and decodes the response into out
// (when non-nil). Any status other than want becomes an *APIError.
func (c *Client) do(
	ctx context.Context,
	method, path, token string,
	headers map[string]string,
	body, out any,
	want int,
) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return decodeJSON(resp, out, want)
}

func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		if err := parseErrorResponse(resp, bodyBytes); err != nil {
			return err
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if target == nil || len(bodyBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
