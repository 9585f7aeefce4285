package domain

import (
	"fmt"
	"time"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CredentialRequest is a seeker's claim of employment awaiting review.
// TokenAddress is set iff Status is approved.
type CredentialRequest struct {
	ID               string
	UserID           string
	OrganizationName string
	RoleTitle        string
	StartDate        time.Time
	EndDate          *time.Time // nil while ongoing
	ProofLink        *string
	Status           RequestStatus
	TokenAddress     *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r CredentialRequest) Ongoing() bool {
	return r.EndDate == nil
}

// DateLayout is the wire and storage format for start and end dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// Date truncates t to UTC midnight of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
