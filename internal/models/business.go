package models

import (
	"time"

	"github.com/google/uuid"
)

// Business is a storefront owner. Connected businesses form a marketplace
// grouping whose products are listed together under the primary slug.
type Business struct {
	ID                        uuid.UUID   `json:"id"`
	Slug                      string      `json:"slug"`
	Name                      string      `json:"name"`
	Active                    bool        `json:"active"`
	OnboardingCompleted       bool        `json:"onboardingCompleted"`
	Language                  string      `json:"language"`
	ConnectedBusinessIDs      []uuid.UUID `json:"connectedBusinessIds,omitempty"`
	HideProductsWithoutPhotos bool        `json:"hideProductsWithoutPhotos"`
	CreatedAt                 time.Time   `json:"created_at"`
	UpdatedAt                 time.Time   `json:"updated_at"`
}

// ScopeIDs returns the business ids whose products are visible on this
// storefront: the business itself plus any connected businesses.
func (b *Business) ScopeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.ConnectedBusinessIDs)+1)
	ids = append(ids, b.ID)
	ids = append(ids, b.ConnectedBusinessIDs...)

	return ids
}

// StorefrontProfile is the public shape of a business returned to the
// storefront; internal flags are not exposed.
type StorefrontProfile struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

func (b *Business) Profile() *StorefrontProfile {
	return &StorefrontProfile{
		Slug:     b.Slug,
		Name:     b.Name,
		Language: b.Language,
	}
}
