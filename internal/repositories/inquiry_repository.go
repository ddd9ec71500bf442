package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"artshop/internal/models"
)

// InquiryRepository defines the interface for inquiry data access.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	// GetAll returns inquiries oldest first.
	GetAll(ctx context.Context) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus) error
}

// GORMInquiryRepository is a GORM implementation of InquiryRepository.
type GORMInquiryRepository struct {
	db *gorm.DB
}

// NewGORMInquiryRepository creates a new instance of GORMInquiryRepository.
func NewGORMInquiryRepository(db *gorm.DB) *GORMInquiryRepository {
	return &GORMInquiryRepository{db: db}
}

func (r *GORMInquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	if inquiry.Status == "" {
		inquiry.Status = models.InquiryStatusNew
	}
	if err := r.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

func (r *GORMInquiryRepository) GetAll(ctx context.Context) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	if err := r.db.WithContext(ctx).Order("created_at").Order("id").Find(&inquiries).Error; err != nil {
		return nil, fmt.Errorf("failed to get inquiries: %w", err)
	}
	return inquiries, nil
}

func (r *GORMInquiryRepository) UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.Inquiry{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update inquiry %d status: %w", id, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var inquiry models.Inquiry
	if err := db.Select("id").First(&inquiry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("inquiry %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to check inquiry %d: %w", id, err)
	}
	return nil
}
