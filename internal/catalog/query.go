package catalog

import (
	"fmt"
	"strings"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// minListedPrice is the global listing floor: free or unset prices are
// never shown, and explicit lower bounds below it are raised to it.
const minListedPrice = 0.01

// Scope is the storefront resolution the predicate is built against.
type Scope struct {
	BusinessIDs               []uuid.UUID
	HideProductsWithoutPhotos bool
}

// Query is a compiled storefront listing predicate over the products
// table (alias p), ready for the repository to embed in its SELECT and
// COUNT statements.
type Query struct {
	Where   string
	Args    []any
	OrderBy string
	Limit   int
	Offset  int
}

// Compile assembles the complete predicate and ordering key from the
// parsed parameters, the resolved business scope, the expanded category
// filter and the search term variants.
func Compile(params *models.CatalogParams, scope Scope, categoryIDs []uuid.UUID, searchVariants []string) *Query {
	var (
		conds []string
		args  []any
	)

	next := func(arg any) string {
		args = append(args, arg)

		return fmt.Sprintf("$%d", len(args))
	}

	conds = append(conds, fmt.Sprintf("p.business_id = ANY(%s)", next(pq.Array(scope.BusinessIDs))))
	conds = append(conds, "p.active = TRUE")
	conds = append(conds, fmt.Sprintf("p.price > %s", next(0.0)))

	if scope.HideProductsWithoutPhotos {
		conds = append(conds, "cardinality(p.images) > 0")
	}

	if len(categoryIDs) > 0 {
		conds = append(conds, fmt.Sprintf("p.category_id = ANY(%s)", next(pq.Array(categoryIDs))))
	}

	if params.PriceMin != nil || params.PriceMax != nil {
		lower := minListedPrice
		if params.PriceMin != nil && *params.PriceMin > lower {
			lower = *params.PriceMin
		}

		conds = append(conds, fmt.Sprintf("p.price >= %s", next(lower)))

		if params.PriceMax != nil {
			conds = append(conds, fmt.Sprintf("p.price <= %s", next(*params.PriceMax)))
		}
	}

	if len(params.CollectionIDs) > 0 {
		conds = append(conds, fmt.Sprintf("p.collection_ids && %s", next(pq.Array(params.CollectionIDs))))
	}

	if len(params.GroupIDs) > 0 {
		conds = append(conds, fmt.Sprintf("p.group_ids && %s", next(pq.Array(params.GroupIDs))))
	}

	if len(params.BrandIDs) > 0 {
		conds = append(conds, fmt.Sprintf("p.brand_id = ANY(%s)", next(pq.Array(params.BrandIDs))))
	}

	// Always applied: untracked inventory is always visible, tracked
	// inventory needs top-level stock. Variant-level stock cannot be
	// filtered here and is re-checked after the fetch.
	conds = append(conds, "(p.track_inventory = FALSE OR p.stock > 0)")

	// The search OR-group is one more conjunct, so a search match can
	// never override the stock gate above.
	if len(searchVariants) > 0 {
		var matches []string

		for _, variant := range searchVariants {
			pattern := next("%" + variant + "%")
			matches = append(matches,
				fmt.Sprintf("p.name ILIKE %s", pattern),
				fmt.Sprintf("p.description ILIKE %s", pattern),
				fmt.Sprintf("p.description_al ILIKE %s", pattern),
				fmt.Sprintf("p.description_en ILIKE %s", pattern),
			)
		}

		conds = append(conds, "("+strings.Join(matches, " OR ")+")")
	}

	return &Query{
		Where:   strings.Join(conds, " AND "),
		Args:    args,
		OrderBy: orderBy(params.SortBy),
		Limit:   params.Limit,
		Offset:  (params.Page - 1) * params.Limit,
	}
}

func orderBy(sortBy string) string {
	switch sortBy {
	case models.SortNameAsc:
		return "p.name ASC, p.id"
	case models.SortNameDesc:
		return "p.name DESC, p.id"
	case models.SortPriceAsc:
		return "p.price ASC, p.id"
	case models.SortPriceDesc:
		return "p.price DESC, p.id"
	default:
		return "p.stock DESC, p.id"
	}
}
