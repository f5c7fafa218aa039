package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/01moynul/inventory-golang/internal/models"
)

const (
	categoriesCollection = "categories"
	itemsCollection      = "items"
)

// --- Documents ---

type categoryDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
}

type itemDoc struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Category    primitive.ObjectID   `bson:"category"`
	Price       primitive.Decimal128 `bson:"price"`
	InStock     float64              `bson:"inStock"`
	Image       models.Image         `bson:"image"`
}

// Mongo stores categories and items as documents in two collections.
type Mongo struct {
	db         *mongo.Database
	categories *mongo.Collection
	items      *mongo.Collection
}

// NewMongo wraps an open database handle. Close disconnects its client.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		db:         db,
		categories: db.Collection(categoriesCollection),
		items:      db.Collection(itemsCollection),
	}
}

// EnsureIndexes creates the indexes backing the name-ordered lists and the
// items-by-category lookup. It is safe to call on every start.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	byName := mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}}
	if _, err := m.categories.Indexes().CreateOne(ctx, byName); err != nil {
		return fmt.Errorf("create categories index: %w", err)
	}
	_, err := m.items.Indexes().CreateMany(ctx, []mongo.IndexModel{
		byName,
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create items indexes: %w", err)
	}
	return nil
}

func sortByName() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
}

// --- Categories ---

func (m *Mongo) ListCategories(ctx context.Context) ([]models.Category, error) {
	cur, err := m.categories.Find(ctx, bson.D{}, sortByName())
	if err != nil {
		return nil, err
	}

	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (m *Mongo) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc categoryDoc
	if err := m.categories.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	c := doc.model()
	return &c, nil
}

func (m *Mongo) CreateCategory(ctx context.Context, c *models.Category) error {
	doc := categoryDoc{ID: primitive.NewObjectID(), Name: c.Name, Description: c.Description}
	if _, err := m.categories.InsertOne(ctx, doc); err != nil {
		return err
	}
	c.ID = doc.ID.Hex()
	return nil
}

func (m *Mongo) UpdateCategory(ctx context.Context, c *models.Category) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return ErrNotFound
	}

	doc := categoryDoc{ID: oid, Name: c.Name, Description: c.Description}
	res, err := m.categories.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteCategory(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = m.categories.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// --- Items ---

func (m *Mongo) ListItems(ctx context.Context) ([]models.Item, error) {
	return m.findItems(ctx, bson.D{})
}

func (m *Mongo) ListItemsByCategory(ctx context.Context, categoryID string) ([]models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return []models.Item{}, nil
	}
	return m.findItems(ctx, bson.M{"category": oid})
}

func (m *Mongo) findItems(ctx context.Context, filter interface{}) ([]models.Item, error) {
	cur, err := m.items.Find(ctx, filter, sortByName())
	if err != nil {
		return nil, err
	}

	var docs []itemDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.Item, 0, len(docs))
	for _, d := range docs {
		item, err := d.model()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *Mongo) GetItem(ctx context.Context, id string) (*models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc itemDoc
	if err := m.items.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	item, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (m *Mongo) CreateItem(ctx context.Context, i *models.Item) error {
	doc, err := newItemDoc(primitive.NewObjectID(), i)
	if err != nil {
		return err
	}
	if _, err := m.items.InsertOne(ctx, doc); err != nil {
		return err
	}
	i.ID = doc.ID.Hex()
	return nil
}

func (m *Mongo) UpdateItem(ctx context.Context, i *models.Item) error {
	oid, err := primitive.ObjectIDFromHex(i.ID)
	if err != nil {
		return ErrNotFound
	}

	doc, err := newItemDoc(oid, i)
	if err != nil {
		return err
	}
	res, err := m.items.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteItem(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = m.items.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (m *Mongo) CountCategories(ctx context.Context) (int64, error) {
	return m.categories.CountDocuments(ctx, bson.D{})
}

func (m *Mongo) CountItems(ctx context.Context) (int64, error) {
	return m.items.CountDocuments(ctx, bson.D{})
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.db.Client().Disconnect(ctx)
}

// --- Conversion helpers ---

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (d categoryDoc) model() models.Category {
	return models.Category{ID: d.ID.Hex(), Name: d.Name, Description: d.Description}
}

func newItemDoc(id primitive.ObjectID, i *models.Item) (itemDoc, error) {
	catID, err := primitive.ObjectIDFromHex(i.CategoryID)
	if err != nil {
		return itemDoc{}, fmt.Errorf("item category %q: %w", i.CategoryID, err)
	}
	price, err := primitive.ParseDecimal128(i.Price.String())
	if err != nil {
		return itemDoc{}, fmt.Errorf("item price %s: %w", i.Price, err)
	}
	return itemDoc{
		ID:          id,
		Name:        i.Name,
		Description: i.Description,
		Category:    catID,
		Price:       price,
		InStock:     i.InStock,
		Image:       i.Image,
	}, nil
}

func (d itemDoc) model() (models.Item, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return models.Item{}, fmt.Errorf("decode price of item %s: %w", d.ID.Hex(), err)
	}
	return models.Item{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		CategoryID:  d.Category.Hex(),
		Price:       price,
		InStock:     d.InStock,
		Image:       d.Image,
	}, nil
}
