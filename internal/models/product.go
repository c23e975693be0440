package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID              uuid.UUID   `json:"id"`
	BusinessID      uuid.UUID   `json:"business_id"`
	CategoryID      *uuid.UUID  `json:"category_id,omitempty"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	DescriptionAL   string      `json:"description_al"`
	DescriptionEN   string      `json:"description_en"`
	Images          []string    `json:"images"`
	Price           float64     `json:"price"`
	OriginalPrice   *float64    `json:"original_price,omitempty"`
	SaleStart       *time.Time  `json:"sale_start,omitempty"`
	SaleEnd         *time.Time  `json:"sale_end,omitempty"`
	SKU             string      `json:"sku"`
	Stock           int         `json:"stock"`
	TrackInventory  bool        `json:"track_inventory"`
	CollectionIDs   []uuid.UUID `json:"collection_ids,omitempty"`
	GroupIDs        []uuid.UUID `json:"group_ids,omitempty"`
	BrandID         *uuid.UUID  `json:"brand_id,omitempty"`
	Featured        bool        `json:"featured"`
	MetaTitle       string      `json:"meta_title"`
	MetaDescription string      `json:"meta_description"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Variants        []Variant   `json:"variants"`
	Modifiers       []Modifier  `json:"modifiers"`
}

// Variant is exclusively owned by its product and carries its own sale
// window, independent of the parent's.
type Variant struct {
	ID            uuid.UUID  `json:"id"`
	ProductID     uuid.UUID  `json:"product_id"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	OriginalPrice *float64   `json:"original_price,omitempty"`
	SaleStart     *time.Time `json:"sale_start,omitempty"`
	SaleEnd       *time.Time `json:"sale_end,omitempty"`
	Stock         int        `json:"stock"`
	SKU           string     `json:"sku"`
}

// Modifier is an add-on option; it is never stock-tracked.
type Modifier struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Required  bool      `json:"required"`
}

// Purchasable reports whether the product can currently be ordered.
// When inventory is tracked and variants exist, variant stock is
// authoritative and the parent's own stock field is ignored.
func (p *Product) Purchasable() bool {
	if !p.TrackInventory {
		return true
	}

	if len(p.Variants) > 0 {
		for _, v := range p.Variants {
			if v.Stock > 0 {
				return true
			}
		}

		return false
	}

	return p.Stock > 0
}
