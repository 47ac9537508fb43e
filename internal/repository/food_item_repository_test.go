package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"foodinventory/internal/model"
)

var foodItemColumns = []string{"id", "name", "description", "price", "quantity", "created_at", "updated_at"}

func newMockRepository(t *testing.T) (FoodItemRepository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewFoodItemRepository(gormDB), mock
}

func TestFoodItemRepository_Create(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("INSERT INTO `food_items`").
		WillReturnResult(sqlmock.NewResult(7, 1))

	item := newSoup()
	err := repo.Create(context.Background(), item)

	require.NoError(t, err)
	assert.Equal(t, uint(7), item.ID)
	assert.False(t, item.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodItemRepository_CreateError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("INSERT INTO `food_items`").
		WillReturnError(errors.New("Error 1048 (23000): Column 'name' cannot be null"))

	err := repo.Create(context.Background(), newSoup())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodItemRepository_List(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `food_items` ORDER BY id asc").
		WillReturnRows(sqlmock.NewRows(foodItemColumns).
			AddRow(1, "Soup", "Hot", "4.50", 10, now, now).
			AddRow(2, "Bread", "Rye", "9.99", 3, now, now))

	items, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Soup", items[0].Name)
	assert.True(t, items[1].Price.Equal(decimal.RequireFromString("9.99")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodItemRepository_ListEmpty(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("SELECT \\* FROM `food_items`").
		WillReturnRows(sqlmock.NewRows(foodItemColumns))

	items, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestFoodItemRepository_FindByID(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `food_items` WHERE `food_items`.`id` = \\?").
		WillReturnRows(sqlmock.NewRows(foodItemColumns).AddRow(3, "Soup", "Hot", "4.50", 10, now, now))

	item, err := repo.FindByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, uint(3), item.ID)
	assert.Equal(t, "4.5", item.Price.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodItemRepository_FindByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("SELECT \\* FROM `food_items`").
		WillReturnRows(sqlmock.NewRows(foodItemColumns))

	item, err := repo.FindByID(context.Background(), 99)

	assert.Nil(t, item)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFoodItemRepository_Update(t *testing.T) {
	repo, mock := newMockRepository(t)
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	updatedAt := created.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `food_items`").
		WillReturnRows(sqlmock.NewRows(foodItemColumns).AddRow(1, "Soup", "Hot", "4.50", 10, created, created))
	mock.ExpectExec("UPDATE `food_items` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `food_items`").
		WillReturnRows(sqlmock.NewRows(foodItemColumns).AddRow(1, "Soup", "Hot", "4.50", 5, created, updatedAt))
	mock.ExpectCommit()

	quantity := 5
	item, err := repo.Update(context.Background(), 1, model.FoodItemChanges{Quantity: &quantity})

	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, "Soup", item.Name)
	assert.Equal(t, updatedAt, item.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodItemRepository_UpdateNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `food_items`").
		WillReturnRows(sqlmock.NewRows(foodItemColumns))
	mock.ExpectRollback()

	quantity := 5
	item, err := repo.Update(context.Background(), 42, model.FoodItemChanges{Quantity: &quantity})

	assert.Nil(t, item)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodItemRepository_UpdateWithoutChanges(t *testing.T) {
	repo, mock := newMockRepository(t)

	item, err := repo.Update(context.Background(), 1, model.FoodItemChanges{})

	assert.Nil(t, item)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodItemRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "row removed", affected: 1, want: true},
		{name: "no such row", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectExec("DELETE FROM `food_items`").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			removed, err := repo.Delete(context.Background(), 1)

			require.NoError(t, err)
			assert.Equal(t, tt.want, removed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFoodItemRepository_DeleteError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("DELETE FROM `food_items`").
		WillReturnError(errors.New("connection reset"))

	removed, err := repo.Delete(context.Background(), 1)

	assert.False(t, removed)
	assert.Error(t, err)
}
