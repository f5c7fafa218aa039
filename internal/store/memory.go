package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/01moynul/inventory-golang/internal/models"
)

// Memory is an in-process Store. Records are copied in and out so callers
// never share state with the store.
type Memory struct {
	mu         sync.RWMutex
	categories map[string]models.Category
	items      map[string]models.Item
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		categories: make(map[string]models.Category),
		items:      make(map[string]models.Item),
	}
}

func (m *Memory) ListCategories(_ context.Context) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetCategory(_ context.Context, id string) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) CreateCategory(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = uuid.NewString()
	m.categories[c.ID] = *c
	return nil
}

func (m *Memory) UpdateCategory(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[c.ID]; !ok {
		return ErrNotFound
	}
	m.categories[c.ID] = *c
	return nil
}

func (m *Memory) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.categories, id)
	return nil
}

func (m *Memory) ListItems(_ context.Context) ([]models.Item, error) {
	return m.filterItems(func(models.Item) bool { return true }), nil
}

func (m *Memory) ListItemsByCategory(_ context.Context, categoryID string) ([]models.Item, error) {
	return m.filterItems(func(i models.Item) bool { return i.CategoryID == categoryID }), nil
}

func (m *Memory) filterItems(keep func(models.Item) bool) []models.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Item, 0)
	for _, i := range m.items {
		if keep(i) {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

func (m *Memory) GetItem(_ context.Context, id string) (*models.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &i, nil
}

func (m *Memory) CreateItem(_ context.Context, i *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i.ID = uuid.NewString()
	stored := *i
	stored.Category = nil
	m.items[i.ID] = stored
	return nil
}

func (m *Memory) UpdateItem(_ context.Context, i *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[i.ID]; !ok {
		return ErrNotFound
	}
	stored := *i
	stored.Category = nil
	m.items[i.ID] = stored
	return nil
}

func (m *Memory) DeleteItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, id)
	return nil
}

func (m *Memory) CountCategories(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.categories)), nil
}

func (m *Memory) CountItems(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.items)), nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close(context.Context) error { return nil }
