package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/inventory-golang/internal/models"
)

// runStoreContract exercises the behaviour every backend must share.
func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("Empty store counts zero", func(t *testing.T) {
		n, err := s.CountCategories(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		n, err = s.CountItems(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("Categories round trip and sort by name", func(t *testing.T) {
		nuts := &models.Category{Name: "Nuts", Description: "Fasteners"}
		bolts := &models.Category{Name: "Bolts", Description: "Threaded"}
		require.NoError(t, s.CreateCategory(ctx, nuts))
		require.NoError(t, s.CreateCategory(ctx, bolts))
		require.NotEmpty(t, nuts.ID)
		assert.NotEqual(t, nuts.ID, bolts.ID)

		got, err := s.GetCategory(ctx, nuts.ID)
		require.NoError(t, err)
		assert.Equal(t, "Fasteners", got.Description)

		list, err := s.ListCategories(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(list), 2)
		for i := 1; i < len(list); i++ {
			assert.LessOrEqual(t, list[i-1].Name, list[i].Name)
		}

		nuts.Description = "Hex nuts"
		require.NoError(t, s.UpdateCategory(ctx, nuts))
		got, err = s.GetCategory(ctx, nuts.ID)
		require.NoError(t, err)
		assert.Equal(t, nuts.ID, got.ID)
		assert.Equal(t, "Hex nuts", got.Description)

		count, err := s.CountCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		require.NoError(t, s.DeleteCategory(ctx, bolts.ID))
		_, err = s.GetCategory(ctx, bolts.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, s.DeleteCategory(ctx, bolts.ID))
	})

	t.Run("Missing and malformed ids are not found", func(t *testing.T) {
		_, err := s.GetCategory(ctx, "does-not-exist")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetItem(ctx, "does-not-exist")
		assert.ErrorIs(t, err, ErrNotFound)
		err = s.UpdateCategory(ctx, &models.Category{ID: "does-not-exist", Name: "abc", Description: "abc"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Items round trip and filter by category", func(t *testing.T) {
		tools := &models.Category{Name: "Tools", Description: "Hand tools"}
		other := &models.Category{Name: "Other", Description: "Everything else"}
		require.NoError(t, s.CreateCategory(ctx, tools))
		require.NoError(t, s.CreateCategory(ctx, other))

		wrench := &models.Item{
			Name: "Wrench", Description: "13mm", CategoryID: tools.ID,
			Price: decimal.RequireFromString("12.5"), InStock: 4,
			Image: models.Image{Filename: "a.png", Path: "/images/uploads/a.png", ContentType: "image/png", Size: 10},
		}
		hammer := &models.Item{
			Name: "Hammer", Description: "Claw", CategoryID: tools.ID,
			Price: decimal.RequireFromString("20"), InStock: 1,
			Image: models.Image{Filename: "b.png", Path: "/images/uploads/b.png"},
		}
		glue := &models.Item{
			Name: "Glue", Description: "Wood glue", CategoryID: other.ID,
			Price: decimal.RequireFromString("3.99"), InStock: 9,
			Image: models.Image{Filename: "c.png", Path: "/images/uploads/c.png"},
		}
		for _, i := range []*models.Item{wrench, hammer, glue} {
			require.NoError(t, s.CreateItem(ctx, i))
		}

		got, err := s.GetItem(ctx, wrench.ID)
		require.NoError(t, err)
		assert.Equal(t, "Wrench", got.Name)
		assert.Equal(t, tools.ID, got.CategoryID)
		assert.True(t, got.Price.Equal(decimal.RequireFromString("12.5")))
		assert.Equal(t, 4.0, got.InStock)
		assert.Equal(t, "/images/uploads/a.png", got.Image.Path)

		inTools, err := s.ListItemsByCategory(ctx, tools.ID)
		require.NoError(t, err)
		require.Len(t, inTools, 2)
		assert.Equal(t, "Hammer", inTools[0].Name)
		assert.Equal(t, "Wrench", inTools[1].Name)

		wrench.InStock = 0
		require.NoError(t, s.UpdateItem(ctx, wrench))
		got, err = s.GetItem(ctx, wrench.ID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.InStock)
		assert.Equal(t, wrench.ID, got.ID)

		count, err := s.CountItems(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		require.NoError(t, s.DeleteItem(ctx, hammer.ID))
		inTools, err = s.ListItemsByCategory(ctx, tools.ID)
		require.NoError(t, err)
		assert.Len(t, inTools, 1)

		empty, err := s.ListItemsByCategory(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}
