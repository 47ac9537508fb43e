package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodinventory/internal/model"
)

func newSoup() *model.FoodItem {
	return &model.FoodItem{
		Name:        "Soup",
		Description: "Hot",
		Price:       decimal.RequireFromString("4.5"),
		Quantity:    10,
	}
}

func TestMemoryRepository_CreateAssignsIDsAndTimestamps(t *testing.T) {
	repo := NewMemoryFoodItemRepository()
	ctx := context.Background()

	first := newSoup()
	second := newSoup()
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestMemoryRepository_CreateRejectsEmptyColumns(t *testing.T) {
	repo := NewMemoryFoodItemRepository()

	err := repo.Create(context.Background(), &model.FoodItem{Name: "Soup"})

	assert.Error(t, err)
	items, _ := repo.List(context.Background())
	assert.Empty(t, items)
}

func TestMemoryRepository_ListOrderedAndEmpty(t *testing.T) {
	repo := NewMemoryFoodItemRepository()
	ctx := context.Background()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newSoup()))
	}
	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, uint(i+1), item.ID)
	}
}

func TestMemoryRepository_UpdatePartial(t *testing.T) {
	repo := NewMemoryFoodItemRepository().(*memoryFoodItemRepository)
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return start }

	item := newSoup()
	require.NoError(t, repo.Create(ctx, item))

	repo.now = func() time.Time { return start.Add(time.Minute) }
	quantity := 5
	updated, err := repo.Update(ctx, item.ID, model.FoodItemChanges{Quantity: &quantity})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "Soup", updated.Name)
	assert.Equal(t, "Hot", updated.Description)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("4.5")))
	assert.Equal(t, start, updated.CreatedAt)
	assert.Equal(t, start.Add(time.Minute), updated.UpdatedAt)
}

func TestMemoryRepository_UpdateNeverMovesUpdatedAtBackwards(t *testing.T) {
	repo := NewMemoryFoodItemRepository().(*memoryFoodItemRepository)
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return start }

	item := newSoup()
	require.NoError(t, repo.Create(ctx, item))

	repo.now = func() time.Time { return start.Add(-time.Hour) }
	name := "Stew"
	updated, err := repo.Update(ctx, item.ID, model.FoodItemChanges{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, start, updated.UpdatedAt)
}

func TestMemoryRepository_UpdateMissing(t *testing.T) {
	repo := NewMemoryFoodItemRepository()
	quantity := 1

	updated, err := repo.Update(context.Background(), 42, model.FoodItemChanges{Quantity: &quantity})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemoryRepository_DeleteNeverReusesID(t *testing.T) {
	repo := NewMemoryFoodItemRepository()
	ctx := context.Background()

	item := newSoup()
	require.NoError(t, repo.Create(ctx, item))

	removed, err := repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	next := newSoup()
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, item.ID+1, next.ID)
}

func TestMemoryRepository_FindByIDReturnsCopy(t *testing.T) {
	repo := NewMemoryFoodItemRepository()
	ctx := context.Background()

	item := newSoup()
	require.NoError(t, repo.Create(ctx, item))

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	found.Name = "mutated"

	again, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", again.Name)
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	repo := NewMemoryFoodItemRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Create(ctx, newSoup()), context.Canceled)
	assert.ErrorIs(t, repo.Ping(ctx), context.Canceled)
}
