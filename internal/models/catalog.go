package models

import (
	"time"

	"github.com/google/uuid"
)

// Sort keys accepted by the storefront listing.
const (
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortStockDesc = "stock-desc"
)

// CatalogParams are the parsed storefront listing query parameters.
type CatalogParams struct {
	CategoryIDs   []uuid.UUID
	Search        string
	Page          int `validate:"gte=1"`
	Limit         int `validate:"gte=1"`
	PriceMin      *float64
	PriceMax      *float64
	CollectionIDs []uuid.UUID
	GroupIDs      []uuid.UUID
	BrandIDs      []uuid.UUID
	SortBy        string `validate:"omitempty,oneof=name-asc name-desc price-asc price-desc stock-desc"`
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// StorefrontProduct is the outbound listing shape: pricing resolved
// against the sale window, descriptions sanitized.
type StorefrontProduct struct {
	ID              uuid.UUID            `json:"id"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	DescriptionAL   string               `json:"descriptionAl"`
	DescriptionEN   string               `json:"descriptionEn"`
	Images          []string             `json:"images"`
	Price           float64              `json:"price"`
	OriginalPrice   *float64             `json:"originalPrice,omitempty"`
	SKU             string               `json:"sku"`
	Stock           int                  `json:"stock"`
	TrackInventory  bool                 `json:"trackInventory"`
	CategoryID      *uuid.UUID           `json:"categoryId,omitempty"`
	BrandID         *uuid.UUID           `json:"brandId,omitempty"`
	Featured        bool                 `json:"featured"`
	MetaTitle       string               `json:"metaTitle,omitempty"`
	MetaDescription string               `json:"metaDescription,omitempty"`
	Variants        []StorefrontVariant  `json:"variants"`
	Modifiers       []StorefrontModifier `json:"modifiers"`
}

type StorefrontVariant struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"originalPrice,omitempty"`
	Stock         int       `json:"stock"`
	SKU           string    `json:"sku"`
}

type StorefrontModifier struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Required bool      `json:"required"`
}

type CatalogResponse struct {
	Products   []*StorefrontProduct `json:"products"`
	Pagination Pagination           `json:"pagination"`
}

// SystemEvent is the audit record emitted on storefront failures.
type SystemEvent struct {
	ID         uuid.UUID  `json:"id"`
	Kind       string     `json:"kind"`
	Slug       string     `json:"slug"`
	BusinessID *uuid.UUID `json:"business_id,omitempty"`
	Message    string     `json:"message"`
	IP         string     `json:"ip"`
	UserAgent  string     `json:"user_agent"`
	Referrer   string     `json:"referrer"`
	CreatedAt  time.Time  `json:"created_at"`
}

const (
	EventKindStoreNotFound   = "store_not_found"
	EventKindStorefrontError = "storefront_error"
)
