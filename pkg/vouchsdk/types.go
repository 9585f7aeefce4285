package vouchsdk

import (
	"time"

	"github.com/aussiebroadwan/vouch/pkg/jwtx"
)

// ============================================================================
// Accounts and sessions
// ============================================================================

// SignupRequest creates a job seeker account with its public profile.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	// Handle is lowercase letters, digits, _ and -, 3 to 32 characters.
	Handle string `json:"handle"`
}

type SignupResponse struct {
	AccountID string `json:"account_id"`
}

// LoginRequest authenticates an account. OTPCode is required once TOTP is enabled.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTPCode  string `json:"otp_code,omitempty"`
}

// SessionResponse describes the caller's session. Token is only present on login.
type SessionResponse struct {
	Token        string    `json:"token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	SessionID    string    `json:"session_id"`
	AccountID    string    `json:"account_id"`
	Kind         string    `json:"kind"`
	Handle       string    `json:"handle,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Scopes       []string  `json:"scopes"`
	AMR          []string  `json:"amr"`
	IssuedAt     time.Time `json:"issued_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ============================================================================
// Employers
// ============================================================================

type OrganizationsResponse struct {
	Organizations []string `json:"organizations"`
}

// ProvisionEmployerRequest needs the X-Provisioning-Token header.
type ProvisionEmployerRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationName string `json:"organization_name"`
}

type EmployerResponse struct {
	ID               string    `json:"id"`
	OrganizationName string    `json:"organization_name"`
	CreatedAt        time.Time `json:"created_at"`
}

// ============================================================================
// Credential requests
// ============================================================================

// Dates are YYYY-MM-DD.
type SubmitRequest struct {
	OrganizationName string  `json:"organization_name"`
	RoleTitle        string  `json:"role_title"`
	StartDate        string  `json:"start_date"`
	EndDate          *string `json:"end_date,omitempty"`
	ProofLink        *string `json:"proof_link,omitempty"`
}

// Request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// CredentialRequest is a work-history claim. TokenAddress is set once approved.
type CredentialRequest struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	OrganizationName string    `json:"organization_name"`
	RoleTitle        string    `json:"role_title"`
	StartDate        string    `json:"start_date"`
	EndDate          *string   `json:"end_date"`
	ProofLink        *string   `json:"proof_link"`
	Status           string    `json:"status"`
	TokenAddress     *string   `json:"token_address"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RequestListResponse struct {
	Requests []CredentialRequest `json:"requests"`
}

// ProfileResponse is a seeker's public page: approved credentials only,
// latest start first.
type ProfileResponse struct {
	Name          string              `json:"name"`
	Handle        string              `json:"handle"`
	WalletAddress string              `json:"wallet_address"`
	Credentials   []CredentialRequest `json:"credentials"`
}

// ============================================================================
// MFA
// ============================================================================

type TOTPEnrollResponse struct {
	Secret  string `json:"secret"`
	URL     string `json:"url"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

// TOTPCodeRequest confirms enrollment or removal.
type TOTPCodeRequest struct {
	Code string `json:"code"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Operations
// ============================================================================

// HealthResponse is served by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse holds the keys that verify session tokens.
type JWKSResponse jwtx.JWKS
