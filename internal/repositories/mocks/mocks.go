// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/catalog"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type BusinessRepository struct {
	mock.Mock
}

func (m *BusinessRepository) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	args := m.Called(ctx, slug)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Business), args.Error(1)
}

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) GetActive(ctx context.Context, id uuid.UUID, businessIDs []uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id, businessIDs)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *CategoryRepository) ListActiveChildIDs(ctx context.Context, parentID uuid.UUID, businessIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, parentID, businessIDs)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) ListStorefront(ctx context.Context, q *catalog.Query) ([]*models.Product, int, error) {
	args := m.Called(ctx, q)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) InsertEvent(ctx context.Context, event *models.SystemEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}
