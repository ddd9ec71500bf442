package repositories

import (
	"context"

	"artshop/internal/models"
)

// ArtworkRepository defines the interface for original artwork data access.
type ArtworkRepository interface {
	// GetAll orders by display order, then creation time.
	GetAll(ctx context.Context) ([]models.Artwork, error)
	GetFeatured(ctx context.Context) ([]models.Artwork, error)
	GetForSale(ctx context.Context) ([]models.Artwork, error)
	GetByID(ctx context.Context, id uint) (*models.Artwork, error)
	Create(ctx context.Context, artwork *models.Artwork) error
	UpdateDisplayOrder(ctx context.Context, id uint, displayOrder int) error
}

// PrintRepository defines the interface for print data access.
type PrintRepository interface {
	// GetAvailable returns only prints marked available.
	GetAvailable(ctx context.Context) ([]models.Print, error)
	GetByID(ctx context.Context, id uint) (*models.Print, error)
	Create(ctx context.Context, p *models.Print) error
}

// ArtistRepository reads and writes the single artist profile row.
type ArtistRepository interface {
	// GetInfo returns ErrNotFound when no profile has been saved.
	GetInfo(ctx context.Context) (*models.ArtistInfo, error)
	SaveInfo(ctx context.Context, info *models.ArtistInfo) error
}
