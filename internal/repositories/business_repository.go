package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrBusinessNotFound is returned when a slug does not resolve.
var ErrBusinessNotFound = errors.New("business not found")

type BusinessRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Business, error)
}

type businessRepository struct {
	DB *sql.DB
}

func NewBusinessRepo(db *sql.DB) BusinessRepository {
	return &businessRepository{DB: db}
}

func (r *businessRepository) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	business := &models.Business{}

	query := `
		SELECT id, slug, name, active, onboarding_completed, language,
		       connected_business_ids, hide_products_without_photos,
		       created_at, updated_at
		FROM businesses
		WHERE slug = $1`

	var connected []uuid.UUID

	err := r.DB.QueryRowContext(dbCtx, query, slug).Scan(
		&business.ID,
		&business.Slug,
		&business.Name,
		&business.Active,
		&business.OnboardingCompleted,
		&business.Language,
		pq.Array(&connected),
		&business.HideProductsWithoutPhotos,
		&business.CreatedAt,
		&business.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}

		return nil, fmt.Errorf("querying business by slug: %w", err)
	}

	business.ConnectedBusinessIDs = connected

	return business, nil
}
