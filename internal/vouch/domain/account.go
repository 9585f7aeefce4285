package domain

import "time"

// AccountKind separates job seekers from employer reviewers.
type AccountKind string

const (
	KindSeeker   AccountKind = "seeker"
	KindEmployer AccountKind = "employer"
)

func (k AccountKind) Valid() bool {
	return k == KindSeeker || k == KindEmployer
}

// Scopes granted to session tokens.
const (
	ScopeRequestsWrite  = "requests:write"
	ScopeRequestsRead   = "requests:read"
	ScopeRequestsReview = "requests:review"
	ScopeProfileRead    = "profile:read"
)

// ScopesFor returns the scopes a session of kind carries.
func ScopesFor(kind AccountKind) []string {
	switch kind {
	case KindSeeker:
		return []string{ScopeRequestsWrite, ScopeRequestsRead, ScopeProfileRead}
	case KindEmployer:
		return []string{ScopeRequestsReview, ScopeProfileRead}
	default:
		return nil
	}
}

// Account is the login identity shared by seekers and employers.
type Account struct {
	ID           string
	Email        string
	PasswordHash string // argon2id PHC string
	Kind         AccountKind
	MFASecret    *string    // base32 TOTP secret, set during enrollment
	MFAEnabledAt *time.Time // set once enrollment is verified
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Account) MFAEnabled() bool {
	return a.MFAEnabledAt != nil
}

// MFAEnrollment is returned when TOTP enrollment starts.
type MFAEnrollment struct {
	Secret  string
	URL     string // otpauth:// URL for QR codes
	Issuer  string
	Account string
}
