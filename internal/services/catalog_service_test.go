package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"artshop/internal/models"
	"artshop/internal/repositories"
)

type MockArtworkRepository struct {
	mock.Mock
}

func (m *MockArtworkRepository) GetAll(ctx context.Context) ([]models.Artwork, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Artwork), args.Error(1)
}

func (m *MockArtworkRepository) GetFeatured(ctx context.Context) ([]models.Artwork, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Artwork), args.Error(1)
}

func (m *MockArtworkRepository) GetForSale(ctx context.Context) ([]models.Artwork, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Artwork), args.Error(1)
}

func (m *MockArtworkRepository) GetByID(ctx context.Context, id uint) (*models.Artwork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artwork), args.Error(1)
}

func (m *MockArtworkRepository) Create(ctx context.Context, artwork *models.Artwork) error {
	return m.Called(ctx, artwork).Error(0)
}

func (m *MockArtworkRepository) UpdateDisplayOrder(ctx context.Context, id uint, displayOrder int) error {
	return m.Called(ctx, id, displayOrder).Error(0)
}

func TestCatalogService_ReadsDegrade(t *testing.T) {
	artworks := new(MockArtworkRepository)
	svc := NewCatalogService(artworks, nil, nil)
	ctx := context.Background()
	down := errors.New("connection refused")

	artworks.On("GetAll", mock.Anything).Return(nil, down)
	artworks.On("GetFeatured", mock.Anything).Return([]models.Artwork(nil), nil)
	artworks.On("GetForSale", mock.Anything).Return([]models.Artwork{{ID: 1, Title: "Sea"}}, nil)
	artworks.On("GetByID", mock.Anything, uint(7)).Return(nil, down)
	artworks.On("GetByID", mock.Anything, uint(8)).Return(nil, repositories.ErrNotFound)

	all := svc.GetAllArtworks(ctx)
	assert.NotNil(t, all)
	assert.Empty(t, all)
	assert.NotNil(t, svc.GetFeaturedArtworks(ctx))
	assert.Len(t, svc.GetShopArtworks(ctx), 1)
	assert.Nil(t, svc.GetArtwork(ctx, 7))
	assert.Nil(t, svc.GetArtwork(ctx, 8))
}

func TestCatalogService_UpdateArtworkOrder(t *testing.T) {
	artworks := new(MockArtworkRepository)
	svc := NewCatalogService(artworks, nil, nil)
	ctx := context.Background()

	artworks.On("UpdateDisplayOrder", mock.Anything, uint(1), 3).Return(nil).Once()
	artworks.On("UpdateDisplayOrder", mock.Anything, uint(2), 0).Return(repositories.ErrNotFound).Once()
	artworks.On("UpdateDisplayOrder", mock.Anything, uint(3), 0).Return(errors.New("disk full")).Once()

	assert.NoError(t, svc.UpdateArtworkOrder(ctx, 1, 3))
	assert.ErrorIs(t, svc.UpdateArtworkOrder(ctx, 2, 0), ErrNotFound)
	assert.ErrorContains(t, svc.UpdateArtworkOrder(ctx, 3, 0), "disk full")
	artworks.AssertExpectations(t)
}
