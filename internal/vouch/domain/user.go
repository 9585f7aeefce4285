package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	HandleMinLength = 3
	HandleMaxLength = 32
)

var handlePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidHandle reports whether h is lowercase alphanumeric plus _ and -,
// between HandleMinLength and HandleMaxLength characters.
func ValidHandle(h string) bool {
	if len(h) < HandleMinLength || len(h) > HandleMaxLength {
		return false
	}
	return handlePattern.MatchString(h)
}

// NormalizeHandle lowercases and trims user input before validation.
func NormalizeHandle(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// User is a job seeker's profile. ID equals the owning account ID.
// Handle and WalletAddress never change after creation.
type User struct {
	ID                    string
	Name                  string
	Handle                string
	Email                 string
	WalletAddress         string
	WalletSecretEncrypted []byte
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Profile is the public view of a User.
func (u User) Profile() Profile {
	return Profile{
		UserID:        u.ID,
		Name:          u.Name,
		Handle:        u.Handle,
		WalletAddress: u.WalletAddress,
	}
}

type Profile struct {
	UserID        string
	Name          string
	Handle        string
	WalletAddress string
}

// PublicProfile is a profile with its approved credentials, newest start first.
type PublicProfile struct {
	Profile
	Credentials []CredentialRequest
}
