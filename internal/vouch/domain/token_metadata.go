package domain

import "fmt"

const (
	TokenSymbol    = "VOUCH"
	EndDateOngoing = "Present"
)

// TokenMetadata describes the attestation minted for an approved request.
type TokenMetadata struct {
	Company    string `json:"company"`
	Role       string `json:"role"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	VerifiedBy string `json:"verified_by"`
}

// NewTokenMetadata derives metadata from a request and the approving
// organization. Ongoing roles end "Present".
func NewTokenMetadata(req CredentialRequest, verifiedBy string) TokenMetadata {
	end := EndDateOngoing
	if req.EndDate != nil {
		end = FormatDate(*req.EndDate)
	}
	return TokenMetadata{
		Company:    req.OrganizationName,
		Role:       req.RoleTitle,
		StartDate:  FormatDate(req.StartDate),
		EndDate:    end,
		VerifiedBy: verifiedBy,
	}
}

// Name is the token's display name, "{company} - {role}".
func (m TokenMetadata) Name() string {
	return fmt.Sprintf("%s - %s", m.Company, m.Role)
}

// Description is "Verified by {verifier}".
func (m TokenMetadata) Description() string {
	return "Verified by " + m.VerifiedBy
}

// Attribute is one trait of the token metadata document.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Attributes lists the minimal trait set every issuer must preserve.
func (m TokenMetadata) Attributes() []Attribute {
	return []Attribute{
		{TraitType: "Company", Value: m.Company},
		{TraitType: "Role", Value: m.Role},
		{TraitType: "Start", Value: m.StartDate},
		{TraitType: "End", Value: m.EndDate},
		{TraitType: "Verified By", Value: m.VerifiedBy},
	}
}
