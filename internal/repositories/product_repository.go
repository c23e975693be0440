package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/catalog"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

type ProductRepository interface {
	// ListStorefront fetches one page of candidate rows plus the
	// unfiltered matching count for a compiled storefront query. The
	// count does not reflect the variant-stock re-check applied later.
	ListStorefront(ctx context.Context, q *catalog.Query) ([]*models.Product, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `p.id, p.business_id, p.category_id, p.name, p.description,
		p.description_al, p.description_en, p.images, p.price, p.original_price,
		p.sale_start, p.sale_end, p.sku, p.stock, p.track_inventory,
		p.collection_ids, p.group_ids, p.brand_id, p.featured,
		p.meta_title, p.meta_description, p.created_at, p.updated_at`

func (r *productRepository) ListStorefront(ctx context.Context, q *catalog.Query) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var (
		products []*models.Product
		total    int
	)

	// Page fetch and count run concurrently; they share the predicate
	// but not the arg slice, since the page query appends LIMIT/OFFSET.
	g, gCtx := errgroup.WithContext(dbCtx)

	g.Go(func() error {
		var err error

		products, err = r.fetchPage(gCtx, q)

		return err
	})

	g.Go(func() error {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM products p WHERE %s`, q.Where)

		if err := r.DB.QueryRowContext(gCtx, countQuery, q.Args...).Scan(&total); err != nil {
			return fmt.Errorf("counting storefront products: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	if err := r.hydrateChildren(dbCtx, products); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) fetchPage(ctx context.Context, q *catalog.Query) ([]*models.Product, error) {
	args := make([]any, len(q.Args), len(q.Args)+2)
	copy(args, q.Args)
	args = append(args, q.Limit, q.Offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		productColumns, q.Where, q.OrderBy, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying storefront products: %w", err)
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func scanProduct(rows *sql.Rows) (*models.Product, error) {
	product := &models.Product{}

	var (
		categoryID    uuid.NullUUID
		originalPrice sql.NullFloat64
		saleStart     sql.NullTime
		saleEnd       sql.NullTime
		brandID       uuid.NullUUID
	)

	err := rows.Scan(
		&product.ID,
		&product.BusinessID,
		&categoryID,
		&product.Name,
		&product.Description,
		&product.DescriptionAL,
		&product.DescriptionEN,
		pq.Array(&product.Images),
		&product.Price,
		&originalPrice,
		&saleStart,
		&saleEnd,
		&product.SKU,
		&product.Stock,
		&product.TrackInventory,
		pq.Array(&product.CollectionIDs),
		pq.Array(&product.GroupIDs),
		&brandID,
		&product.Featured,
		&product.MetaTitle,
		&product.MetaDescription,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning storefront product: %w", err)
	}

	if categoryID.Valid {
		product.CategoryID = &categoryID.UUID
	}

	if originalPrice.Valid {
		product.OriginalPrice = &originalPrice.Float64
	}

	if saleStart.Valid {
		product.SaleStart = &saleStart.Time
	}

	if saleEnd.Valid {
		product.SaleEnd = &saleEnd.Time
	}

	if brandID.Valid {
		product.BrandID = &brandID.UUID
	}

	return product, nil
}

// hydrateChildren loads variants and modifiers for the fetched page in
// two grouped queries.
func (r *productRepository) hydrateChildren(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(products))
	byID := make(map[uuid.UUID]*models.Product, len(products))

	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Variants = []models.Variant{}
		p.Modifiers = []models.Modifier{}
	}

	variantQuery := `
		SELECT id, product_id, name, price, original_price, sale_start, sale_end, stock, sku
		FROM product_variants
		WHERE product_id = ANY($1)
		ORDER BY name`

	rows, err := r.DB.QueryContext(ctx, variantQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("querying product variants: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var (
			variant       models.Variant
			originalPrice sql.NullFloat64
			saleStart     sql.NullTime
			saleEnd       sql.NullTime
		)

		err := rows.Scan(
			&variant.ID,
			&variant.ProductID,
			&variant.Name,
			&variant.Price,
			&originalPrice,
			&saleStart,
			&saleEnd,
			&variant.Stock,
			&variant.SKU,
		)
		if err != nil {
			return fmt.Errorf("scanning product variant: %w", err)
		}

		if originalPrice.Valid {
			variant.OriginalPrice = &originalPrice.Float64
		}

		if saleStart.Valid {
			variant.SaleStart = &saleStart.Time
		}

		if saleEnd.Valid {
			variant.SaleEnd = &saleEnd.Time
		}

		if parent, ok := byID[variant.ProductID]; ok {
			parent.Variants = append(parent.Variants, variant)
		}
	}

	if err := rows.Err(); err != nil {
		return err
	}

	modifierQuery := `
		SELECT id, product_id, name, price, required
		FROM product_modifiers
		WHERE product_id = ANY($1)
		ORDER BY name`

	modRows, err := r.DB.QueryContext(ctx, modifierQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("querying product modifiers: %w", err)
	}

	defer modRows.Close()

	for modRows.Next() {
		var modifier models.Modifier

		err := modRows.Scan(
			&modifier.ID,
			&modifier.ProductID,
			&modifier.Name,
			&modifier.Price,
			&modifier.Required,
		)
		if err != nil {
			return fmt.Errorf("scanning product modifier: %w", err)
		}

		if parent, ok := byID[modifier.ProductID]; ok {
			parent.Modifiers = append(parent.Modifiers, modifier)
		}
	}

	return modRows.Err()
}
