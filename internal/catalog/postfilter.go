package catalog

import (
	"math"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
)

// FilterInStock drops products whose trackable stock is exhausted. The
// query already constrains top-level stock, but variant stock can only
// be judged once the rows are in memory.
func FilterInStock(products []*models.Product) []*models.Product {
	kept := make([]*models.Product, 0, len(products))

	for _, p := range products {
		if p.Purchasable() {
			kept = append(kept, p)
		}
	}

	return kept
}

// EstimateTotal corrects the store's unfiltered count for rows dropped
// by FilterInStock. The store count does not see the variant-stock
// re-check, so it can overcount.
//
// Three tiers, first match wins:
//  1. page 1, non-empty fetch, everything dropped: the catalog is
//     effectively empty.
//  2. page 1, fewer kept than the limit: page 1 observed the entire
//     result set, the kept count is exact.
//  3. otherwise scale the store count by this page's keep ratio. This
//     is a statistical estimate and can drift between pages when stock
//     changes; that is accepted behavior, not something to correct here.
func EstimateTotal(page, limit, fetched, kept, storeTotal int) int {
	if page == 1 && fetched > 0 && kept == 0 {
		return 0
	}

	if page == 1 && kept < limit {
		return kept
	}

	if fetched == 0 {
		return storeTotal
	}

	ratio := float64(kept) / float64(fetched)

	return int(math.Round(float64(storeTotal) * ratio))
}

// BuildPagination derives the response envelope from the corrected
// total. hasMore requires both a full post-filtered page and an
// estimated total beyond what this page exhausts.
func BuildPagination(page, limit, kept, total int) models.Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}

	return models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    kept == limit && total > page*limit,
	}
}
