package models

import (
	"github.com/shopspring/decimal"
)

// Item is the model for the 'items' collection
type Item struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	CategoryID  string          `json:"categoryId" db:"category_id"`
	Price       decimal.Decimal `json:"price" db:"price"`
	InStock     float64         `json:"inStock" db:"in_stock"`
	Image       Image           `json:"image" db:"-"`

	// Resolved reference, only set by the detail view.
	Category *Category `json:"category,omitempty" db:"-"`
}

// URL is the canonical detail-page path of the item.
func (i *Item) URL() string {
	return "/items/" + i.ID
}

// ItemInput holds the raw form values of an item submission.
type ItemInput struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Price       string `form:"price"`
	InStock     string `form:"inStock"`
}
