package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FoodItem represents a single stocked food product.
type FoodItem struct {
	ID          uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName pins the table name used by every storage driver.
func (FoodItem) TableName() string {
	return "food_items"
}

// FoodItemChanges holds the subset of business fields an update replaces.
// Nil fields are left untouched.
type FoodItemChanges struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
}

// Empty reports whether no field is set.
func (c FoodItemChanges) Empty() bool {
	return c.Name == nil && c.Description == nil && c.Price == nil && c.Quantity == nil
}

// Columns maps the set fields to their column names.
func (c FoodItemChanges) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 4)
	if c.Name != nil {
		cols["name"] = *c.Name
	}
	if c.Description != nil {
		cols["description"] = *c.Description
	}
	if c.Price != nil {
		cols["price"] = *c.Price
	}
	if c.Quantity != nil {
		cols["quantity"] = *c.Quantity
	}
	return cols
}

// Apply copies the set fields onto item.
func (c FoodItemChanges) Apply(item *FoodItem) {
	if c.Name != nil {
		item.Name = *c.Name
	}
	if c.Description != nil {
		item.Description = *c.Description
	}
	if c.Price != nil {
		item.Price = *c.Price
	}
	if c.Quantity != nil {
		item.Quantity = *c.Quantity
	}
}
