package issuer

import (
	"fmt"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
)

// DefaultImage is shown by wallets that render token images.
const DefaultImage = "https://via.placeholder.com/400x400.png?text=Vouch"

// Document is the off-ledger metadata a token's URI points at.
type Document struct {
	Name        string             `json:"name"`
	Symbol      string             `json:"symbol"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	Attributes  []domain.Attribute `json:"attributes"`
}

func NewDocument(md domain.TokenMetadata, image string) Document {
	if image == "" {
		image = DefaultImage
	}
	return Document{
		Name:        md.Name(),
		Symbol:      domain.TokenSymbol,
		Description: md.Description(),
		Image:       image,
		Attributes:  md.Attributes(),
	}
}

// LedgerName is the short on-ledger token name.
func LedgerName(md domain.TokenMetadata) string {
	return fmt.Sprintf("Vouch: %s", md.Company)
}
