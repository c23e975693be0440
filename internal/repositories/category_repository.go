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

// ErrCategoryNotFound is returned when an id does not resolve within
// the requested business scope.
var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository interface {
	GetActive(ctx context.Context, id uuid.UUID, businessIDs []uuid.UUID) (*models.Category, error)
	ListActiveChildIDs(ctx context.Context, parentID uuid.UUID, businessIDs []uuid.UUID) ([]uuid.UUID, error)
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) GetActive(ctx context.Context, id uuid.UUID, businessIDs []uuid.UUID) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}

	query := `
		SELECT id, business_id, parent_id, name, active, created_at, updated_at
		FROM categories
		WHERE id = $1 AND business_id = ANY($2) AND active = TRUE`

	var parentID uuid.NullUUID

	err := r.DB.QueryRowContext(dbCtx, query, id, pq.Array(businessIDs)).Scan(
		&category.ID,
		&category.BusinessID,
		&parentID,
		&category.Name,
		&category.Active,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}

		return nil, fmt.Errorf("querying category: %w", err)
	}

	if parentID.Valid {
		category.ParentID = &parentID.UUID
	}

	return category, nil
}

func (r *categoryRepository) ListActiveChildIDs(ctx context.Context, parentID uuid.UUID, businessIDs []uuid.UUID) ([]uuid.UUID, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id
		FROM categories
		WHERE parent_id = $1 AND id <> $1 AND business_id = ANY($2) AND active = TRUE`

	rows, err := r.DB.QueryContext(dbCtx, query, parentID, pq.Array(businessIDs))
	if err != nil {
		return nil, fmt.Errorf("querying child categories: %w", err)
	}

	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var id uuid.UUID

		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning child category id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
