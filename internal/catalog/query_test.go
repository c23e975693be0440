package catalog_test

import (
	"testing"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/catalog"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func baseParams() *models.CatalogParams {
	return &models.CatalogParams{
		Page:   1,
		Limit:  50,
		SortBy: models.SortStockDesc,
	}
}

func baseScope() catalog.Scope {
	return catalog.Scope{BusinessIDs: []uuid.UUID{uuid.New()}}
}

func TestCompile(t *testing.T) {

	t.Run("Base predicate always carries scope, active, price floor and stock gate", func(t *testing.T) {
		q := catalog.Compile(baseParams(), baseScope(), nil, nil)

		assert.Contains(t, q.Where, "p.business_id = ANY($1)")
		assert.Contains(t, q.Where, "p.active = TRUE")
		assert.Contains(t, q.Where, "p.price > $2")
		assert.Contains(t, q.Where, "(p.track_inventory = FALSE OR p.stock > 0)")
		assert.Equal(t, "p.stock DESC, p.id", q.OrderBy)
		assert.Equal(t, 50, q.Limit)
		assert.Equal(t, 0, q.Offset)
		assert.Len(t, q.Args, 2)
	})

	t.Run("Photo gate only when the business hides photoless products", func(t *testing.T) {
		scope := baseScope()

		q := catalog.Compile(baseParams(), scope, nil, nil)
		assert.NotContains(t, q.Where, "cardinality")

		scope.HideProductsWithoutPhotos = true

		q = catalog.Compile(baseParams(), scope, nil, nil)
		assert.Contains(t, q.Where, "cardinality(p.images) > 0")
	})

	t.Run("Category gate uses the expanded id list", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New()}

		q := catalog.Compile(baseParams(), baseScope(), ids, nil)

		assert.Contains(t, q.Where, "p.category_id = ANY($3)")
	})

	t.Run("Inclusive lower price bound", func(t *testing.T) {
		params := baseParams()
		minPrice := 10.0
		params.PriceMin = &minPrice

		q := catalog.Compile(params, baseScope(), nil, nil)

		assert.Contains(t, q.Where, "p.price >= $3")
		assert.Contains(t, q.Args, 10.0)
	})

	t.Run("Lower bound floored at 0.01", func(t *testing.T) {
		params := baseParams()
		minPrice := 0.001
		params.PriceMin = &minPrice

		q := catalog.Compile(params, baseScope(), nil, nil)

		assert.Contains(t, q.Args, 0.01)
		assert.NotContains(t, q.Args, 0.001)
	})

	t.Run("Upper bound alone still enforces the floor", func(t *testing.T) {
		params := baseParams()
		maxPrice := 25.0
		params.PriceMax = &maxPrice

		q := catalog.Compile(params, baseScope(), nil, nil)

		assert.Contains(t, q.Where, "p.price >= $3")
		assert.Contains(t, q.Where, "p.price <= $4")
		assert.Contains(t, q.Args, 0.01)
		assert.Contains(t, q.Args, 25.0)
	})

	t.Run("Membership gates applied only when non-empty", func(t *testing.T) {
		q := catalog.Compile(baseParams(), baseScope(), nil, nil)

		assert.NotContains(t, q.Where, "collection_ids")
		assert.NotContains(t, q.Where, "group_ids")
		assert.NotContains(t, q.Where, "brand_id")

		params := baseParams()
		params.CollectionIDs = []uuid.UUID{uuid.New()}
		params.GroupIDs = []uuid.UUID{uuid.New()}
		params.BrandIDs = []uuid.UUID{uuid.New()}

		q = catalog.Compile(params, baseScope(), nil, nil)

		assert.Contains(t, q.Where, "p.collection_ids && ")
		assert.Contains(t, q.Where, "p.group_ids && ")
		assert.Contains(t, q.Where, "p.brand_id = ANY(")
	})

	t.Run("Search group spans all description fields per variant", func(t *testing.T) {
		q := catalog.Compile(baseParams(), baseScope(), nil, []string{"Pjate", "Pjatë"})

		assert.Contains(t, q.Where, "p.name ILIKE")
		assert.Contains(t, q.Where, "p.description ILIKE")
		assert.Contains(t, q.Where, "p.description_al ILIKE")
		assert.Contains(t, q.Where, "p.description_en ILIKE")
		assert.Contains(t, q.Args, "%Pjate%")
		assert.Contains(t, q.Args, "%Pjatë%")
	})

	t.Run("Search is AND-combined with the stock gate", func(t *testing.T) {
		q := catalog.Compile(baseParams(), baseScope(), nil, []string{"uje"})

		// the stock disjunction must survive as its own conjunct
		assert.Contains(t, q.Where, "(p.track_inventory = FALSE OR p.stock > 0) AND (")
	})

	t.Run("Sort key mapping with stock-desc default", func(t *testing.T) {
		cases := map[string]string{
			models.SortNameAsc:   "p.name ASC, p.id",
			models.SortNameDesc:  "p.name DESC, p.id",
			models.SortPriceAsc:  "p.price ASC, p.id",
			models.SortPriceDesc: "p.price DESC, p.id",
			models.SortStockDesc: "p.stock DESC, p.id",
			"bogus":              "p.stock DESC, p.id",
			"":                   "p.stock DESC, p.id",
		}

		for sortBy, want := range cases {
			params := baseParams()
			params.SortBy = sortBy

			q := catalog.Compile(params, baseScope(), nil, nil)

			assert.Equal(t, want, q.OrderBy, "sortBy=%q", sortBy)
		}
	})

	t.Run("Offset derived from page and limit", func(t *testing.T) {
		params := baseParams()
		params.Page = 3
		params.Limit = 20

		q := catalog.Compile(params, baseScope(), nil, nil)

		assert.Equal(t, 40, q.Offset)
		assert.Equal(t, 20, q.Limit)
	})
}
