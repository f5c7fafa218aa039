// Package store is the data access layer for categories and items.
package store

import (
	"context"
	"errors"

	"github.com/01moynul/inventory-golang/internal/models"
)

// ErrNotFound is returned when a record with the requested id does not exist.
// Ids that are malformed for the backend are reported the same way.
var ErrNotFound = errors.New("record not found")

// Store is implemented by every persistence backend. List methods return
// records ordered by name ascending. Deleting a missing id is not an error.
type Store interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id string) error
	CountCategories(ctx context.Context) (int64, error)

	ListItems(ctx context.Context) ([]models.Item, error)
	ListItemsByCategory(ctx context.Context, categoryID string) ([]models.Item, error)
	GetItem(ctx context.Context, id string) (*models.Item, error)
	CreateItem(ctx context.Context, i *models.Item) error
	UpdateItem(ctx context.Context, i *models.Item) error
	DeleteItem(ctx context.Context, id string) error
	CountItems(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
