package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"artshop/internal/models"
)

// GORMArtworkRepository is a GORM implementation of ArtworkRepository.
type GORMArtworkRepository struct {
	db *gorm.DB
}

// NewGORMArtworkRepository creates a new instance of GORMArtworkRepository.
func NewGORMArtworkRepository(db *gorm.DB) *GORMArtworkRepository {
	return &GORMArtworkRepository{db: db}
}

func (r *GORMArtworkRepository) GetAll(ctx context.Context) ([]models.Artwork, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *GORMArtworkRepository) GetFeatured(ctx context.Context) ([]models.Artwork, error) {
	return r.find(r.db.WithContext(ctx).Where("featured = ?", true))
}

func (r *GORMArtworkRepository) GetForSale(ctx context.Context) ([]models.Artwork, error) {
	return r.find(r.db.WithContext(ctx).Where("for_sale = ?", true))
}

func (r *GORMArtworkRepository) find(q *gorm.DB) ([]models.Artwork, error) {
	var artworks []models.Artwork
	if err := q.Order("display_order").Order("created_at").Order("id").Find(&artworks).Error; err != nil {
		return nil, fmt.Errorf("failed to get artworks: %w", err)
	}
	return artworks, nil
}

func (r *GORMArtworkRepository) GetByID(ctx context.Context, id uint) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := r.db.WithContext(ctx).First(&artwork, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("artwork %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get artwork %d: %w", id, err)
	}
	return &artwork, nil
}

func (r *GORMArtworkRepository) Create(ctx context.Context, artwork *models.Artwork) error {
	if err := r.db.WithContext(ctx).Create(artwork).Error; err != nil {
		return fmt.Errorf("failed to create artwork: %w", err)
	}
	return nil
}

func (r *GORMArtworkRepository) UpdateDisplayOrder(ctx context.Context, id uint, displayOrder int) error {
	res := r.db.WithContext(ctx).Model(&models.Artwork{}).Where("id = ?", id).Update("display_order", displayOrder)
	if res.Error != nil {
		return fmt.Errorf("failed to update artwork %d display order: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// GORMPrintRepository is a GORM implementation of PrintRepository.
type GORMPrintRepository struct {
	db *gorm.DB
}

// NewGORMPrintRepository creates a new instance of GORMPrintRepository.
func NewGORMPrintRepository(db *gorm.DB) *GORMPrintRepository {
	return &GORMPrintRepository{db: db}
}

func (r *GORMPrintRepository) GetAvailable(ctx context.Context) ([]models.Print, error) {
	var prints []models.Print
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("display_order").Order("created_at").Order("id").
		Find(&prints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get prints: %w", err)
	}
	return prints, nil
}

func (r *GORMPrintRepository) GetByID(ctx context.Context, id uint) (*models.Print, error) {
	var p models.Print
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("print %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get print %d: %w", id, err)
	}
	return &p, nil
}

func (r *GORMPrintRepository) Create(ctx context.Context, p *models.Print) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create print: %w", err)
	}
	return nil
}

// GORMArtistRepository is a GORM implementation of ArtistRepository.
type GORMArtistRepository struct {
	db *gorm.DB
}

// NewGORMArtistRepository creates a new instance of GORMArtistRepository.
func NewGORMArtistRepository(db *gorm.DB) *GORMArtistRepository {
	return &GORMArtistRepository{db: db}
}

func (r *GORMArtistRepository) GetInfo(ctx context.Context) (*models.ArtistInfo, error) {
	var info models.ArtistInfo
	if err := r.db.WithContext(ctx).Order("id").First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("artist info: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get artist info: %w", err)
	}
	return &info, nil
}

// SaveInfo updates the existing profile row, or inserts the first one.
func (r *GORMArtistRepository) SaveInfo(ctx context.Context, info *models.ArtistInfo) error {
	existing, err := r.GetInfo(ctx)
	switch {
	case err == nil:
		info.ID = existing.ID
	case errors.Is(err, ErrNotFound):
		info.ID = 0
	default:
		return err
	}
	if err := r.db.WithContext(ctx).Save(info).Error; err != nil {
		return fmt.Errorf("failed to save artist info: %w", err)
	}
	return nil
}
