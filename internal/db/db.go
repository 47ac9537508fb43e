package db

import (
	"fmt"

	"gorm.io/gorm"

	"foodinventory/internal/model"
)

// Open connects to the database selected by driver ("mysql" or "postgres").
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "mysql":
		return NewMySQL(dsn)
	case "postgres":
		return NewPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate creates or updates the food_items table. When reset is set the
// table is dropped first, which also restarts the id sequence, so ids of
// items deleted before the reset are issued again.
func Migrate(gormDB *gorm.DB, reset bool) error {
	if reset {
		if err := gormDB.Migrator().DropTable(&model.FoodItem{}); err != nil {
			return fmt.Errorf("drop food_items: %w", err)
		}
	}
	if err := gormDB.AutoMigrate(&model.FoodItem{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
