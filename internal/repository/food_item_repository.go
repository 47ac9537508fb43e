package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"foodinventory/internal/model"
)

// FoodItemRepository defines food item persistence operations.
// Lookups and updates of a missing id return gorm.ErrRecordNotFound.
type FoodItemRepository interface {
	Create(ctx context.Context, item *model.FoodItem) error
	List(ctx context.Context) ([]model.FoodItem, error)
	FindByID(ctx context.Context, id uint) (*model.FoodItem, error)
	Update(ctx context.Context, id uint, changes model.FoodItemChanges) (*model.FoodItem, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Ping(ctx context.Context) error
}

type foodItemRepository struct {
	db *gorm.DB
}

// NewFoodItemRepository builds a GORM-backed repository.
func NewFoodItemRepository(db *gorm.DB) FoodItemRepository {
	return &foodItemRepository{db: db}
}

// Create inserts a new food item; ID and timestamps are filled in on success.
func (r *foodItemRepository) Create(ctx context.Context, item *model.FoodItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// List returns every food item ordered by id.
func (r *foodItemRepository) List(ctx context.Context) ([]model.FoodItem, error) {
	items := make([]model.FoodItem, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID finds a food item by ID.
func (r *foodItemRepository) FindByID(ctx context.Context, id uint) (*model.FoodItem, error) {
	var item model.FoodItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies the set fields of changes to a single row and returns the
// merged row. The lookup, write and re-read share one transaction.
func (r *foodItemRepository) Update(ctx context.Context, id uint, changes model.FoodItemChanges) (*model.FoodItem, error) {
	if changes.Empty() {
		return nil, errors.New("no columns to update")
	}

	var item model.FoodItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.FoodItem{}).
			Where("id = ?", id).
			Updates(changes.Columns()).Error; err != nil {
			return fmt.Errorf("update columns: %w", err)
		}
		return tx.First(&item, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a food item permanently and reports whether a row was removed.
func (r *foodItemRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.FoodItem{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Ping checks that the underlying connection pool can reach the database.
func (r *foodItemRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
