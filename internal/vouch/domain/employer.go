package domain

import "time"

// Employer is a reviewer account bound to one organization. Requests refer
// to it by OrganizationName, not by ID.
type Employer struct {
	ID               string
	OrganizationName string
	CreatedAt        time.Time
}
