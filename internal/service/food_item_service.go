package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"foodinventory/internal/cache"
	apperrors "foodinventory/internal/errors"
	"foodinventory/internal/model"
	"foodinventory/internal/repository"
)

const defaultItemCacheTTL = 5 * time.Minute

// FoodItemService exposes the food item CRUD contract independent of transport.
type FoodItemService interface {
	ListItems(ctx context.Context) ([]model.FoodItem, error)
	GetItem(ctx context.Context, id uint) (*model.FoodItem, error)
	CreateItem(ctx context.Context, input FoodItemInput) (*model.FoodItem, error)
	UpdateItem(ctx context.Context, id uint, input FoodItemInput) (*model.FoodItem, error)
	DeleteItem(ctx context.Context, id uint) (bool, error)
	CheckStorage(ctx context.Context) error
}

type foodItemService struct {
	repo     repository.FoodItemRepository
	cache    *cache.Client
	cacheTTL time.Duration
	validate *validator.Validate
}

// NewFoodItemService builds a FoodItemService with repository and cache.
// cache may be nil, in which case every read goes to the repository.
func NewFoodItemService(repo repository.FoodItemRepository, cache *cache.Client, cacheTTL time.Duration) FoodItemService {
	if cacheTTL <= 0 {
		cacheTTL = defaultItemCacheTTL
	}
	return &foodItemService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		validate: newValidator(),
	}
}

// cachedFoodItem is the cache entry for one id. A deleted entry marks an id
// whose row is gone, so a read that started before the delete cannot put the
// row back.
type cachedFoodItem struct {
	Item    *model.FoodItem `json:"item,omitempty"`
	Deleted bool            `json:"deleted,omitempty"`
}

func (s *foodItemService) cacheKey(id uint) string {
	return fmt.Sprintf("food_item:%d", id)
}

func decodeCached(data []byte) (cachedFoodItem, bool) {
	var entry cachedFoodItem
	if data == nil || json.Unmarshal(data, &entry) != nil {
		return cachedFoodItem{}, false
	}
	return entry, true
}

func encodeCached(entry cachedFoodItem) ([]byte, bool) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, false
	}
	return data, true
}

// fillCache stores a row read from the repository unless any entry is
// already present; writers always win over readers.
func (s *foodItemService) fillCache(ctx context.Context, id uint, item *model.FoodItem) {
	s.cache.Swap(ctx, s.cacheKey(id), s.cacheTTL, func(current []byte) ([]byte, bool) {
		if current != nil {
			return nil, false
		}
		return encodeCached(cachedFoodItem{Item: item})
	})
}

// storeCache writes a freshly updated row unless the id was deleted or a
// newer version is already cached.
func (s *foodItemService) storeCache(ctx context.Context, id uint, item *model.FoodItem) {
	s.cache.Swap(ctx, s.cacheKey(id), s.cacheTTL, func(current []byte) ([]byte, bool) {
		if entry, ok := decodeCached(current); ok {
			if entry.Deleted {
				return nil, false
			}
			if entry.Item != nil && entry.Item.UpdatedAt.After(item.UpdatedAt) {
				return nil, false
			}
		}
		return encodeCached(cachedFoodItem{Item: item})
	})
}

// evictCache drops a cached row but keeps a deleted marker.
func (s *foodItemService) evictCache(ctx context.Context, id uint) {
	s.cache.Swap(ctx, s.cacheKey(id), s.cacheTTL, func(current []byte) ([]byte, bool) {
		if current == nil {
			return nil, false
		}
		if entry, ok := decodeCached(current); ok && entry.Deleted {
			return nil, false
		}
		return nil, true
	})
}

// ListItems returns every food item ordered by id. An empty table yields an
// empty, non-nil slice.
func (s *foodItemService) ListItems(ctx context.Context) ([]model.FoodItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "list", Err: err}
	}
	if items == nil {
		items = []model.FoodItem{}
	}
	return items, nil
}

// GetItem retrieves a food item by ID with caching.
func (s *foodItemService) GetItem(ctx context.Context, id uint) (*model.FoodItem, error) {
	if entry, ok := decodeCached(s.cache.Get(ctx, s.cacheKey(id))); ok {
		if entry.Deleted {
			return nil, apperrors.ErrFoodItemNotFound
		}
		if entry.Item != nil {
			return entry.Item, nil
		}
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFoodItemNotFound
		}
		return nil, &apperrors.PersistenceError{Op: "get", ID: id, Err: err}
	}

	s.fillCache(ctx, id, item)
	return item, nil
}

// CreateItem validates a complete input and stores it as a new food item.
func (s *foodItemService) CreateItem(ctx context.Context, input FoodItemInput) (*model.FoodItem, error) {
	if missing := input.missingFields(); len(missing) > 0 {
		return nil, &apperrors.ValidationError{Message: "missing required fields", Fields: missing}
	}
	if err := checkValues(s.validate, input); err != nil {
		return nil, err
	}

	item := &model.FoodItem{
		Name:        *input.Name,
		Description: *input.Description,
		Price:       *input.Price,
		Quantity:    *input.Quantity,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, &apperrors.PersistenceError{Op: "create", Err: err}
	}
	return item, nil
}

// UpdateItem replaces the supplied fields of an existing food item.
func (s *foodItemService) UpdateItem(ctx context.Context, id uint, input FoodItemInput) (*model.FoodItem, error) {
	changes := input.Changes()
	if changes.Empty() {
		return nil, apperrors.NewValidationError("at least one of name, description, price, quantity is required")
	}
	if err := checkValues(s.validate, input); err != nil {
		return nil, err
	}

	item, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFoodItemNotFound
		}
		// the row may or may not have changed
		s.evictCache(ctx, id)
		return nil, &apperrors.PersistenceError{Op: "update", ID: id, Err: err}
	}

	s.storeCache(ctx, id, item)
	return item, nil
}

// DeleteItem removes a food item and reports whether it existed.
func (s *foodItemService) DeleteItem(ctx context.Context, id uint) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.evictCache(ctx, id)
		return false, &apperrors.PersistenceError{Op: "delete", ID: id, Err: err}
	}
	// ids that were never issued get no marker; they may still be created
	if removed {
		s.cache.SetJSON(ctx, s.cacheKey(id), cachedFoodItem{Deleted: true}, s.cacheTTL)
	}
	return removed, nil
}

// CheckStorage reports whether the storage backend is reachable.
func (s *foodItemService) CheckStorage(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return &apperrors.PersistenceError{Op: "ping", Err: err}
	}
	return nil
}
