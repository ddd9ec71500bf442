package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"artshop/internal/models"
	"artshop/internal/repositories"
)

// CatalogService serves artworks, prints and the artist profile. Reads never
// fail: a datastore error is logged and reported as empty.
type CatalogService struct {
	artworks repositories.ArtworkRepository
	prints   repositories.PrintRepository
	artist   repositories.ArtistRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(artworks repositories.ArtworkRepository, prints repositories.PrintRepository, artist repositories.ArtistRepository) *CatalogService {
	return &CatalogService{
		artworks: artworks,
		prints:   prints,
		artist:   artist,
	}
}

func (s *CatalogService) GetAllArtworks(ctx context.Context) []models.Artwork {
	return listOrEmpty(s.artworks.GetAll(ctx))
}

func (s *CatalogService) GetFeaturedArtworks(ctx context.Context) []models.Artwork {
	return listOrEmpty(s.artworks.GetFeatured(ctx))
}

// GetShopArtworks lists originals marked for sale.
func (s *CatalogService) GetShopArtworks(ctx context.Context) []models.Artwork {
	return listOrEmpty(s.artworks.GetForSale(ctx))
}

// GetArtwork returns nil when the artwork does not exist.
func (s *CatalogService) GetArtwork(ctx context.Context, id uint) *models.Artwork {
	return oneOrNil(s.artworks.GetByID(ctx, id))
}

// UpdateArtworkOrder moves an artwork within the gallery.
func (s *CatalogService) UpdateArtworkOrder(ctx context.Context, id uint, displayOrder int) error {
	if err := s.artworks.UpdateDisplayOrder(ctx, id, displayOrder); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("artwork %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to reorder artwork: %w", err)
	}
	return nil
}

// GetPrints lists prints currently available.
func (s *CatalogService) GetPrints(ctx context.Context) []models.Print {
	return listOrEmpty(s.prints.GetAvailable(ctx))
}

func (s *CatalogService) GetPrint(ctx context.Context, id uint) *models.Print {
	return oneOrNil(s.prints.GetByID(ctx, id))
}

// GetArtistInfo returns nil until a profile has been saved.
func (s *CatalogService) GetArtistInfo(ctx context.Context) *models.ArtistInfo {
	return oneOrNil(s.artist.GetInfo(ctx))
}

func listOrEmpty[T any](items []T, err error) []T {
	if err != nil {
		log.Printf("[Catalog] Read failed, returning empty list: %v", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func oneOrNil[T any](item *T, err error) *T {
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("[Catalog] Read failed, returning nothing: %v", err)
		}
		return nil
	}
	return item
}
