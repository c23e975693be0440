package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/api/middleware"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/cache"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/catalog"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/config"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/errors"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/metrics"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
	repository "github.com/SnapFood-Technologies/waveorder-catalog/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"
)

type CatalogService interface {
	GetStore(ctx context.Context, slug string) (*models.StorefrontProfile, error)
	ListProducts(ctx context.Context, slug string, params *models.CatalogParams) (*models.CatalogResponse, error)
}

type catalogService struct {
	businessRepo  repository.BusinessRepository
	categoryRepo  repository.CategoryRepository
	productRepo   repository.ProductRepository
	cache         cache.Cache
	businessTTL   time.Duration
	expander      *catalog.Expander
	sanitizer     *bluemonday.Policy
	fallbackSlugs map[string]struct{}
	now           func() time.Time
}

func NewCatalogService(businessRepo repository.BusinessRepository, categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, c cache.Cache, cfg *config.Config) CatalogService {
	fallbackSlugs := make(map[string]struct{}, len(cfg.Catalog.DescriptionFallbackSlugs))
	for _, slug := range cfg.Catalog.DescriptionFallbackSlugs {
		fallbackSlugs[slug] = struct{}{}
	}

	return &catalogService{
		businessRepo:  businessRepo,
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		cache:         c,
		businessTTL:   cfg.Cache.BusinessTTL,
		expander:      catalog.NewExpander(cfg.Catalog.DefaultSearchLocale),
		sanitizer:     bluemonday.StrictPolicy(),
		fallbackSlugs: fallbackSlugs,
		now:           time.Now,
	}
}

func (s *catalogService) GetStore(ctx context.Context, slug string) (*models.StorefrontProfile, error) {

	business, err := s.resolveBusiness(ctx, slug)
	if err != nil {
		return nil, err
	}

	return business.Profile(), nil
}

func (s *catalogService) ListProducts(ctx context.Context, slug string, params *models.CatalogParams) (*models.CatalogResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	business, err := s.resolveBusiness(ctx, slug)
	if err != nil {
		return nil, err
	}

	scope := catalog.Scope{
		BusinessIDs:               business.ScopeIDs(),
		HideProductsWithoutPhotos: business.HideProductsWithoutPhotos,
	}

	categoryIDs := s.expandCategories(ctx, params.CategoryIDs, scope.BusinessIDs)
	searchVariants := s.expander.Expand(business.Language, params.Search)

	query := catalog.Compile(params, scope, categoryIDs, searchVariants)

	fetched, storeTotal, err := s.productRepo.ListStorefront(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	kept := catalog.FilterInStock(fetched)

	if dropped := len(fetched) - len(kept); dropped > 0 {
		metrics.ObserveDroppedProducts(dropped)
		logger.Debug("Dropped variant-exhausted products from page",
			slog.Int("dropped", dropped), slog.String("slug", slug))
	}

	now := s.now()
	products := make([]*models.StorefrontProduct, 0, len(kept))

	for _, p := range kept {
		products = append(products, s.toStorefrontProduct(p, slug, now))
	}

	total := catalog.EstimateTotal(params.Page, params.Limit, len(fetched), len(kept), storeTotal)

	return &models.CatalogResponse{
		Products:   products,
		Pagination: catalog.BuildPagination(params.Page, params.Limit, len(kept), total),
	}, nil
}

// resolveBusiness maps a storefront slug to an active, fully onboarded
// business, consulting the cache first.
func (s *catalogService) resolveBusiness(ctx context.Context, slug string) (*models.Business, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.BusinessKeyPrefix, slug)

	var cached models.Business

	if s.cache != nil {
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("Business cache lookup failed", slog.String("slug", slug), slog.Any("error", err))
		} else if found {
			return &cached, nil
		}
	}

	business, err := s.businessRepo.GetBySlug(ctx, slug)
	if err != nil {
		if err == repository.ErrBusinessNotFound {
			return nil, errors.NotFoundError("Store not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to resolve store").WithError(err)
	}

	if !business.Active || !business.OnboardingCompleted {
		return nil, errors.NotFoundError("Store not found")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, business, s.businessTTL); err != nil {
			logger.Warn("Business cache write failed", slog.String("slug", slug), slog.Any("error", err))
		}
	}

	return business, nil
}

// expandCategories widens each requested category to itself plus its
// active children, concurrently across ids. The expansion is best
// effort: any failure falls back to the unexpanded list so a degraded
// category filter never fails the whole request.
func (s *catalogService) expandCategories(ctx context.Context, categoryIDs, businessIDs []uuid.UUID) []uuid.UUID {
	if len(categoryIDs) == 0 {
		return nil
	}

	logger := middleware.LoggerFromContext(ctx)

	results := make([][]uuid.UUID, len(categoryIDs))
	g, gCtx := errgroup.WithContext(ctx)

	for i, id := range categoryIDs {
		g.Go(func() error {
			var children []uuid.UUID

			inner, innerCtx := errgroup.WithContext(gCtx)

			// existence lookup runs alongside the children fetch; an
			// id that fails to resolve is still passed through
			// unexpanded rather than dropped
			inner.Go(func() error {
				_, err := s.categoryRepo.GetActive(innerCtx, id, businessIDs)
				if err != nil && err != repository.ErrCategoryNotFound {
					return err
				}

				return nil
			})

			inner.Go(func() error {
				var err error

				children, err = s.categoryRepo.ListActiveChildIDs(innerCtx, id, businessIDs)

				return err
			})

			if err := inner.Wait(); err != nil {
				return err
			}

			results[i] = append([]uuid.UUID{id}, children...)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Warn("Category expansion failed, using unexpanded filter", slog.Any("error", err))

		return categoryIDs
	}

	seen := make(map[uuid.UUID]struct{})

	var expanded []uuid.UUID

	for _, ids := range results {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}

			seen[id] = struct{}{}
			expanded = append(expanded, id)
		}
	}

	return expanded
}

func (s *catalogService) toStorefrontProduct(p *models.Product, slug string, now time.Time) *models.StorefrontProduct {
	price, originalPrice := catalog.EffectivePrice(p.Price, p.OriginalPrice, p.SaleStart, p.SaleEnd, now)

	description := s.sanitizer.Sanitize(p.Description)
	descriptionAL := s.sanitizer.Sanitize(p.DescriptionAL)
	descriptionEN := s.sanitizer.Sanitize(p.DescriptionEN)

	if _, ok := s.fallbackSlugs[slug]; ok {
		if descriptionAL == "" {
			descriptionAL = description
		}

		if descriptionEN == "" {
			descriptionEN = description
		}
	}

	variants := make([]models.StorefrontVariant, 0, len(p.Variants))

	for _, v := range p.Variants {
		// variant sale windows are independent of the parent's
		vPrice, vOriginal := catalog.EffectivePrice(v.Price, v.OriginalPrice, v.SaleStart, v.SaleEnd, now)

		variants = append(variants, models.StorefrontVariant{
			ID:            v.ID,
			Name:          v.Name,
			Price:         vPrice,
			OriginalPrice: vOriginal,
			Stock:         v.Stock,
			SKU:           v.SKU,
		})
	}

	modifiers := make([]models.StorefrontModifier, 0, len(p.Modifiers))

	for _, m := range p.Modifiers {
		modifiers = append(modifiers, models.StorefrontModifier{
			ID:       m.ID,
			Name:     m.Name,
			Price:    m.Price,
			Required: m.Required,
		})
	}

	return &models.StorefrontProduct{
		ID:              p.ID,
		Name:            p.Name,
		Description:     description,
		DescriptionAL:   descriptionAL,
		DescriptionEN:   descriptionEN,
		Images:          p.Images,
		Price:           price,
		OriginalPrice:   originalPrice,
		SKU:             p.SKU,
		Stock:           p.Stock,
		TrackInventory:  p.TrackInventory,
		CategoryID:      p.CategoryID,
		BrandID:         p.BrandID,
		Featured:        p.Featured,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		Variants:        variants,
		Modifiers:       modifiers,
	}
}
