// Package mocks provides testify mocks for the service interfaces.
package mocks

import (
	"context"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
	"github.com/stretchr/testify/mock"
)

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) GetStore(ctx context.Context, slug string) (*models.StorefrontProfile, error) {
	args := m.Called(ctx, slug)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.StorefrontProfile), args.Error(1)
}

func (m *CatalogService) ListProducts(ctx context.Context, slug string, params *models.CatalogParams) (*models.CatalogResponse, error) {
	args := m.Called(ctx, slug, params)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CatalogResponse), args.Error(1)
}

type EventLogger struct {
	mock.Mock
}

func (m *EventLogger) Log(ctx context.Context, event *models.SystemEvent) {
	m.Called(ctx, event)
}
