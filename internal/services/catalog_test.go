package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/catalog"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/config"
	appErrors "github.com/SnapFood-Technologies/waveorder-catalog/internal/errors"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
	repository "github.com/SnapFood-Technologies/waveorder-catalog/internal/repositories"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/repositories/mocks"
	service "github.com/SnapFood-Technologies/waveorder-catalog/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{
			DefaultPageSize:     50,
			MaxPageSize:         100,
			DefaultSearchLocale: "sq",
		},
	}
}

func newService(t *testing.T) (service.CatalogService, *mocks.BusinessRepository, *mocks.CategoryRepository, *mocks.ProductRepository) {
	t.Helper()

	businessRepo := new(mocks.BusinessRepository)
	categoryRepo := new(mocks.CategoryRepository)
	productRepo := new(mocks.ProductRepository)

	svc := service.NewCatalogService(businessRepo, categoryRepo, productRepo, nil, testConfig())

	return svc, businessRepo, categoryRepo, productRepo
}

func activeBusiness(slug string) *models.Business {
	return &models.Business{
		ID:                  uuid.New(),
		Slug:                slug,
		Name:                "Test Store",
		Active:              true,
		OnboardingCompleted: true,
		Language:            "sq",
	}
}

func listParams() *models.CatalogParams {
	return &models.CatalogParams{Page: 1, Limit: 50, SortBy: models.SortStockDesc}
}

func TestGetStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Active Business", func(t *testing.T) {
		// Arrange
		svc, businessRepo, _, _ := newService(t)
		business := activeBusiness("tirana-grill")

		businessRepo.On("GetBySlug", mock.Anything, "tirana-grill").Return(business, nil).Once()

		// Act
		profile, err := svc.GetStore(ctx, "tirana-grill")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "tirana-grill", profile.Slug)
		assert.Equal(t, "Test Store", profile.Name)
		businessRepo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Slug", func(t *testing.T) {
		// Arrange
		svc, businessRepo, _, _ := newService(t)

		businessRepo.On("GetBySlug", mock.Anything, "ghost").Return(nil, repository.ErrBusinessNotFound).Once()

		// Act
		profile, err := svc.GetStore(ctx, "ghost")

		// Assert
		require.Error(t, err)
		assert.Nil(t, profile)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Store not found", appErr.Message)
		businessRepo.AssertExpectations(t)
	})

	t.Run("Failure - Inactive Business Reads As Not Found", func(t *testing.T) {
		// Arrange
		svc, businessRepo, _, _ := newService(t)
		business := activeBusiness("paused-store")
		business.Active = false

		businessRepo.On("GetBySlug", mock.Anything, "paused-store").Return(business, nil).Once()

		// Act
		_, err := svc.GetStore(ctx, "paused-store")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Onboarding Incomplete Reads As Not Found", func(t *testing.T) {
		// Arrange
		svc, businessRepo, _, _ := newService(t)
		business := activeBusiness("half-setup")
		business.OnboardingCompleted = false

		businessRepo.On("GetBySlug", mock.Anything, "half-setup").Return(business, nil).Once()

		// Act
		_, err := svc.GetStore(ctx, "half-setup")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Plain Page", func(t *testing.T) {
		// Arrange
		svc, businessRepo, _, productRepo := newService(t)
		business := activeBusiness("tirana-grill")

		products := []*models.Product{
			{ID: uuid.New(), Name: "Byrek", Price: 3.5, TrackInventory: false},
			{ID: uuid.New(), Name: "Tavë Kosi", Price: 8, TrackInventory: true, Stock: 4},
		}

		businessRepo.On("GetBySlug", mock.Anything, "tirana-grill").Return(business, nil).Once()
		productRepo.On("ListStorefront", mock.Anything, mock.AnythingOfType("*catalog.Query")).Return(products, 2, nil).Once()

		// Act
		result, err := svc.ListProducts(ctx, "tirana-grill", listParams())

		// Assert
		require.NoError(t, err)
		assert.Len(t, result.Products, 2)
		assert.Equal(t, 2, result.Pagination.Total)
		assert.Equal(t, 1, result.Pagination.TotalPages)
		assert.False(t, result.Pagination.HasMore)
		businessRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("Success - Variant-Exhausted Products Dropped And Total Corrected", func(t *testing.T) {
		// Arrange
		svc, businessRepo, _, productRepo := newService(t)
		business := activeBusiness("tirana-grill")

		products := []*models.Product{
			{ID: uuid.New(), Name: "Kept", Price: 5, TrackInventory: true, Stock: 0,
				Variants: []models.Variant{{Name: "L", Stock: 2, Price: 5}}},
			{ID: uuid.New(), Name: "Dropped", Price: 5, TrackInventory: true, Stock: 3,
				Variants: []models.Variant{{Name: "S", Stock: 0, Price: 5}}},
		}

		businessRepo.On("GetBySlug", mock.Anything, "tirana-grill").Return(business, nil).Once()
		productRepo.On("ListStorefront", mock.Anything, mock.Anything).Return(products, 2, nil).Once()

		// Act
		result, err := svc.ListProducts(ctx, "tirana-grill", listParams())

		// Assert
		require.NoError(t, err)
		require.Len(t, result.Products, 1)
		assert.Equal(t, "Kept", result.Products[0].Name)
		// page 1 observed everything, so the kept count is the exact total
		assert.Equal(t, 1, result.Pagination.Total)
	})

	t.Run("Success - Search Term Expanded Into Query", func(t *testing.T) {
		// Arrange
		svc, businessRepo, _, productRepo := newService(t)
		business := activeBusiness("tirana-grill")
		params := listParams()
		params.Search = "Pjate"

		businessRepo.On("GetBySlug", mock.Anything, "tirana-grill").Return(business, nil).Once()
		productRepo.On("ListStorefront", mock.Anything, mock.MatchedBy(func(q *catalog.Query) bool {
			hasDiacritic := false
			for _, arg := range q.Args {
				if s, ok := arg.(string); ok && s == "%Pjatë%" {
					hasDiacritic = true
				}
			}

			return strings.Contains(q.Where, "ILIKE") && hasDiacritic
		})).Return([]*models.Product{}, 0, nil).Once()

		// Act
		_, err := svc.ListProducts(ctx, "tirana-grill", params)

		// Assert
		require.NoError(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("Success - Parent Category Expanded To Children", func(t *testing.T) {
		// Arrange
		svc, businessRepo, categoryRepo, productRepo := newService(t)
		business := activeBusiness("tirana-grill")
		parentID := uuid.New()
		children := []uuid.UUID{uuid.New(), uuid.New()}
		params := listParams()
		params.CategoryIDs = []uuid.UUID{parentID}

		businessRepo.On("GetBySlug", mock.Anything, "tirana-grill").Return(business, nil).Once()
		categoryRepo.On("GetActive", mock.Anything, parentID, mock.Anything).Return(&models.Category{ID: parentID, Active: true}, nil).Once()
		categoryRepo.On("ListActiveChildIDs", mock.Anything, parentID, mock.Anything).Return(children, nil).Once()
		productRepo.On("ListStorefront", mock.Anything, mock.MatchedBy(func(q *catalog.Query) bool {
			return strings.Contains(q.Where, "p.category_id = ANY(")
		})).Return([]*models.Product{}, 0, nil).Once()

		// Act
		_, err := svc.ListProducts(ctx, "tirana-grill", params)

		// Assert
		require.NoError(t, err)
		categoryRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("Success - Leaf Category Passes Through Unexpanded", func(t *testing.T) {
		// Arrange
		svc, businessRepo, categoryRepo, productRepo := newService(t)
		business := activeBusiness("tirana-grill")
		leafID := uuid.New()
		params := listParams()
		params.CategoryIDs = []uuid.UUID{leafID}

		businessRepo.On("GetBySlug", mock.Anything, "tirana-grill").Return(business, nil).Once()
		categoryRepo.On("GetActive", mock.Anything, leafID, mock.Anything).Return(nil, repository.ErrCategoryNotFound).Once()
		categoryRepo.On("ListActiveChildIDs", mock.Anything, leafID, mock.Anything).Return([]uuid.UUID{}, nil).Once()
		productRepo.On("ListStorefront", mock.Anything, mock.MatchedBy(func(q *catalog.Query) bool {
			return strings.Contains(q.Where, "p.category_id = ANY(")
		})).Return([]*models.Product{}, 0, nil).Once()

		// Act
		_, err := svc.ListProducts(ctx, "tirana-grill", params)

		// Assert
		require.NoError(t, err)
		categoryRepo.AssertExpectations(t)
	})

	t.Run("Success - Category Expansion Failure Falls Back To Unexpanded", func(t *testing.T) {
		// Arrange
		svc, businessRepo, categoryRepo, productRepo := newService(t)
		business := activeBusiness("tirana-grill")
		categoryID := uuid.New()
		params := listParams()
		params.CategoryIDs = []uuid.UUID{categoryID}

		businessRepo.On("GetBySlug", mock.Anything, "tirana-grill").Return(business, nil).Once()
		categoryRepo.On("GetActive", mock.Anything, categoryID, mock.Anything).Return(nil, errors.New("connection reset")).Once()
		categoryRepo.On("ListActiveChildIDs", mock.Anything, categoryID, mock.Anything).Return(nil, errors.New("connection reset")).Maybe()
		productRepo.On("ListStorefront", mock.Anything, mock.MatchedBy(func(q *catalog.Query) bool {
			return strings.Contains(q.Where, "p.category_id = ANY(")
		})).Return([]*models.Product{}, 0, nil).Once()

		// Act
		_, err := svc.ListProducts(ctx, "tirana-grill", params)

		// Assert
		require.NoError(t, err, "a degraded category filter must not fail the request")
		productRepo.AssertExpectations(t)
	})

	t.Run("Failure - Product Fetch Error", func(t *testing.T) {
		// Arrange
		svc, businessRepo, _, productRepo := newService(t)
		business := activeBusiness("tirana-grill")

		businessRepo.On("GetBySlug", mock.Anything, "tirana-grill").Return(business, nil).Once()
		productRepo.On("ListStorefront", mock.Anything, mock.Anything).Return(nil, 0, errors.New("query timeout")).Once()

		// Act
		result, err := svc.ListProducts(ctx, "tirana-grill", listParams())

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})

	t.Run("Success - Variant Pricing Resolved Independently", func(t *testing.T) {
		// Arrange
		svc, businessRepo, _, productRepo := newService(t)
		business := activeBusiness("tirana-grill")

		variantOriginal := 12.0
		products := []*models.Product{
			{
				ID: uuid.New(), Name: "Sale Variant", Price: 5, TrackInventory: false,
				Variants: []models.Variant{
					{Name: "L", Price: 9, OriginalPrice: &variantOriginal, Stock: 1},
				},
			},
		}

		businessRepo.On("GetBySlug", mock.Anything, "tirana-grill").Return(business, nil).Once()
		productRepo.On("ListStorefront", mock.Anything, mock.Anything).Return(products, 1, nil).Once()

		// Act
		result, err := svc.ListProducts(ctx, "tirana-grill", listParams())

		// Assert
		require.NoError(t, err)
		require.Len(t, result.Products, 1)
		require.Len(t, result.Products[0].Variants, 1)

		variant := result.Products[0].Variants[0]
		// no sale window configured, original higher: sale price shown with strike-through
		assert.Equal(t, 9.0, variant.Price)
		require.NotNil(t, variant.OriginalPrice)
		assert.Equal(t, 12.0, *variant.OriginalPrice)
	})

	t.Run("Success - Outbound Descriptions Sanitized", func(t *testing.T) {
		// Arrange
		svc, businessRepo, _, productRepo := newService(t)
		business := activeBusiness("tirana-grill")

		products := []*models.Product{
			{ID: uuid.New(), Name: "Byrek", Price: 3.5, Description: "<script>alert(1)</script>Flaky pastry"},
		}

		businessRepo.On("GetBySlug", mock.Anything, "tirana-grill").Return(business, nil).Once()
		productRepo.On("ListStorefront", mock.Anything, mock.Anything).Return(products, 1, nil).Once()

		// Act
		result, err := svc.ListProducts(ctx, "tirana-grill", listParams())

		// Assert
		require.NoError(t, err)
		require.Len(t, result.Products, 1)
		assert.Equal(t, "Flaky pastry", result.Products[0].Description)
	})
}
