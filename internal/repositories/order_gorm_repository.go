package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"artshop/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create inserts the order in a single statement. A clash on order_ref is
// reported as ErrDuplicateOrderRef so the caller can pick a new reference.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create order %s: %w", order.OrderRef, ErrDuplicateOrderRef)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetAll retrieves all orders, newest first.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateStatus sets the status unconditionally. Setting the current status
// again succeeds; only a missing order is an error.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order %d status: %w", id, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when the value is unchanged.
	var count int64
	if err := db.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check order %d: %w", id, err)
	}
	if count == 0 {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return nil
}
