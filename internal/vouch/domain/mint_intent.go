package domain

import "time"

// MintState tracks one attempt to mint a token for a request.
type MintState string

const (
	// MintInFlight: reserved, issuer call in progress.
	MintInFlight MintState = "in_flight"
	// MintMinted: issuer succeeded and the request was approved.
	MintMinted MintState = "minted"
	// MintFailed: issuer reported an error. The request stays pending.
	MintFailed MintState = "failed"
	// MintUnrecorded: issuer succeeded but the request was no longer pending.
	MintUnrecorded MintState = "unrecorded"
	// MintStale: in flight for too long; the outcome is unknown.
	MintStale MintState = "stale"
)

// Blocking reports whether an intent in this state prevents another mint
// for the same request.
func (s MintState) Blocking() bool {
	return s != MintFailed
}

// MintIntent is written before calling the issuer so that every mint is
// accounted for, even when the request update that follows it fails.
type MintIntent struct {
	ID            string
	RequestID     string
	Destination   string
	Metadata      TokenMetadata
	State         MintState
	TokenAddress  *string
	FailureReason *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
