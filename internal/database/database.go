package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/01moynul/inventory-golang/internal/config"
	"github.com/01moynul/inventory-golang/internal/store"
)

const connectTimeout = 10 * time.Second

// OpenStore connects to the configured backend and returns a ready Store.
// The caller owns the store and must Close it on shutdown.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		db, err := OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		s := store.NewMongo(db)
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		return s, nil

	case config.DriverMySQL:
		db, err := OpenDBWithDSN(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		s := store.NewMySQL(db)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return s, nil

	case config.DriverMemory:
		log.Println("Using in-memory store; data is lost on restart")
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// OpenMongo connects a client to uri and returns a handle on the named database.
func OpenMongo(ctx context.Context, uri, name string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	// Ping the server to verify the connection.
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		log.Printf("Error connecting to mongodb: %v", err)
		return nil, err
	}

	log.Printf("MongoDB connection established (database %q)", name)
	return client.Database(name), nil
}

// OpenDBWithDSN creates and configures a MySQL connection pool for dsn.
func OpenDBWithDSN(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Ping the database to verify the connection.
	err = db.Ping()
	if err != nil {
		log.Printf("Error connecting to database with DSN: %v", err)
		db.Close()
		return nil, err
	}

	log.Println("Database connection pool established successfully")
	return db, nil
}
