package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/01moynul/inventory-golang/internal/models"
)

// MySQL stores categories and items in two relational tables. Item images
// are kept as a JSON column.
type MySQL struct {
	DB *sql.DB
}

// NewMySQL wraps an open connection pool.
func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{DB: db}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		category_id BIGINT NOT NULL,
		price DECIMAL(19,4) NOT NULL,
		in_stock DOUBLE NOT NULL,
		image JSON NOT NULL,
		INDEX idx_items_category (category_id)
	)`,
}

// EnsureSchema creates the tables if they do not exist yet.
func (s *MySQL) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// --- Categories ---

func (s *MySQL) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT id, name, description FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		var id int64
		if err := rows.Scan(&id, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		c.ID = strconv.FormatInt(id, 10)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *MySQL) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	c := models.Category{ID: id}
	err := s.DB.QueryRowContext(ctx, "SELECT name, description FROM categories WHERE id = ?", n).
		Scan(&c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MySQL) CreateCategory(ctx context.Context, c *models.Category) error {
	res, err := s.DB.ExecContext(ctx, "INSERT INTO categories (name, description) VALUES (?, ?)", c.Name, c.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = strconv.FormatInt(id, 10)
	return nil
}

func (s *MySQL) UpdateCategory(ctx context.Context, c *models.Category) error {
	n, ok := parseID(c.ID)
	if !ok {
		return ErrNotFound
	}
	if err := s.exists(ctx, "categories", n); err != nil {
		return err
	}
	_, err := s.DB.ExecContext(ctx, "UPDATE categories SET name = ?, description = ? WHERE id = ?", c.Name, c.Description, n)
	return err
}

func (s *MySQL) DeleteCategory(ctx context.Context, id string) error {
	n, ok := parseID(id)
	if !ok {
		return nil
	}
	_, err := s.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", n)
	return err
}

// exists is used before updates because MySQL reports zero affected rows
// for an update that changes nothing.
func (s *MySQL) exists(ctx context.Context, table string, id int64) error {
	var one int
	err := s.DB.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// --- Items ---

const itemColumns = "id, name, description, category_id, price, in_stock, image"

func (s *MySQL) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.queryItems(ctx, "SELECT "+itemColumns+" FROM items ORDER BY name ASC")
}

func (s *MySQL) ListItemsByCategory(ctx context.Context, categoryID string) ([]models.Item, error) {
	n, ok := parseID(categoryID)
	if !ok {
		return []models.Item{}, nil
	}
	return s.queryItems(ctx, "SELECT "+itemColumns+" FROM items WHERE category_id = ? ORDER BY name ASC", n)
}

func (s *MySQL) queryItems(ctx context.Context, query string, args ...interface{}) ([]models.Item, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	var id, categoryID int64
	var dbImage []byte

	if err := row.Scan(&id, &item.Name, &item.Description, &categoryID, &item.Price, &item.InStock, &dbImage); err != nil {
		return nil, err
	}
	item.ID = strconv.FormatInt(id, 10)
	item.CategoryID = strconv.FormatInt(categoryID, 10)

	if len(dbImage) > 0 {
		if err := json.Unmarshal(dbImage, &item.Image); err != nil {
			return nil, fmt.Errorf("decode image of item %d: %w", id, err)
		}
	}
	return &item, nil
}

func (s *MySQL) GetItem(ctx context.Context, id string) (*models.Item, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	row := s.DB.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM items WHERE id = ?", n)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return item, err
}

func (s *MySQL) CreateItem(ctx context.Context, i *models.Item) error {
	categoryID, ok := parseID(i.CategoryID)
	if !ok {
		return fmt.Errorf("item category %q: %w", i.CategoryID, ErrNotFound)
	}
	imageJSON, err := json.Marshal(i.Image)
	if err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO items (name, description, category_id, price, in_stock, image) VALUES (?, ?, ?, ?, ?, ?)",
		i.Name, i.Description, categoryID, i.Price, i.InStock, string(imageJSON),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	i.ID = strconv.FormatInt(id, 10)
	return nil
}

func (s *MySQL) UpdateItem(ctx context.Context, i *models.Item) error {
	n, ok := parseID(i.ID)
	if !ok {
		return ErrNotFound
	}
	categoryID, ok := parseID(i.CategoryID)
	if !ok {
		return fmt.Errorf("item category %q: %w", i.CategoryID, ErrNotFound)
	}
	if err := s.exists(ctx, "items", n); err != nil {
		return err
	}
	imageJSON, err := json.Marshal(i.Image)
	if err != nil {
		return err
	}

	_, err = s.DB.ExecContext(ctx,
		"UPDATE items SET name = ?, description = ?, category_id = ?, price = ?, in_stock = ?, image = ? WHERE id = ?",
		i.Name, i.Description, categoryID, i.Price, i.InStock, string(imageJSON), n,
	)
	return err
}

func (s *MySQL) DeleteItem(ctx context.Context, id string) error {
	n, ok := parseID(id)
	if !ok {
		return nil
	}
	_, err := s.DB.ExecContext(ctx, "DELETE FROM items WHERE id = ?", n)
	return err
}

func (s *MySQL) CountCategories(ctx context.Context) (int64, error) {
	return s.count(ctx, "categories")
}

func (s *MySQL) CountItems(ctx context.Context) (int64, error) {
	return s.count(ctx, "items")
}

func (s *MySQL) count(ctx context.Context, table string) (int64, error) {
	var n int64
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

func (s *MySQL) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *MySQL) Close(context.Context) error {
	return s.DB.Close()
}
