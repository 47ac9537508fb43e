package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"foodinventory/internal/model"
)

// memoryFoodItemRepository keeps food items in process memory. It mirrors the
// column constraints of the SQL table so it can stand in for it in development
// and tests. The id counter only moves forward, so ids are never reissued.
type memoryFoodItemRepository struct {
	mu     sync.RWMutex
	items  map[uint]model.FoodItem
	lastID uint
	now    func() time.Time
}

// NewMemoryFoodItemRepository creates an empty in-memory repository.
func NewMemoryFoodItemRepository() FoodItemRepository {
	return &memoryFoodItemRepository{
		items: make(map[uint]model.FoodItem),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryFoodItemRepository) Create(ctx context.Context, item *model.FoodItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkColumns(*item); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	now := r.now()
	item.ID = r.lastID
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = *item
	return nil
}

func (r *memoryFoodItemRepository) List(ctx context.Context) ([]model.FoodItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.FoodItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *memoryFoodItemRepository) FindByID(ctx context.Context, id uint) (*model.FoodItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memoryFoodItemRepository) Update(ctx context.Context, id uint, changes model.FoodItemChanges) (*model.FoodItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if changes.Empty() {
		return nil, errors.New("no columns to update")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	changes.Apply(&item)
	if err := checkColumns(item); err != nil {
		return nil, err
	}
	if now := r.now(); now.After(item.UpdatedAt) {
		item.UpdatedAt = now
	}
	r.items[id] = item
	return &item, nil
}

func (r *memoryFoodItemRepository) Delete(ctx context.Context, id uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *memoryFoodItemRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// checkColumns enforces the not-null constraints of the food_items table.
func checkColumns(item model.FoodItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return errors.New("column name cannot be empty")
	}
	if strings.TrimSpace(item.Description) == "" {
		return errors.New("column description cannot be empty")
	}
	return nil
}
