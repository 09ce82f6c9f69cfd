package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MenuCategory struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// MenuItem is a dish on the menu. Orders copy its fields at placement time,
// so later edits never change historical orders.
type MenuItem struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Description string          `json:"description,omitempty"`
	Recipe      string          `json:"recipe,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewMenuItem validates and builds a menu item. Price must not be negative.
func NewMenuItem(name string, price decimal.Decimal, categoryID uuid.UUID) (MenuItem, error) {
	if name == "" {
		return MenuItem{}, fmt.Errorf("%w: menu item name is required", ErrValidation)
	}
	if price.IsNegative() {
		return MenuItem{}, fmt.Errorf("%w: menu item price must not be negative", ErrValidation)
	}
	return MenuItem{
		ID:         uuid.New(),
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}, nil
}
