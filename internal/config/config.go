// Package config builds the application configuration from the process
// environment (optionally seeded from a .env file).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported DB_DRIVER values.
const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Supported IMAGE_STORE values.
const (
	ImageStoreLocal = "local"
	ImageStoreS3    = "s3"
)

const defaultMongoURI = "mongodb://127.0.0.1/inventory-db"

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Images    ImageConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
}

// Development reports whether error details may be shown to clients.
func (s ServerConfig) Development() bool {
	return s.Env == "development"
}

type DatabaseConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	MySQLDSN      string
}

type ImageConfig struct {
	Store          string
	UploadDir      string
	PublicPath     string
	MaxUploadBytes int64
	S3             S3Config
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

// LoadEnvFile reads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) (bool, error) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// New returns a viper instance with every default registered and automatic
// environment lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("MONGODB_URI", defaultMongoURI)
	v.SetDefault("MONGODB_DATABASE", "")
	v.SetDefault("DB_DSN_PRIMARY", "root@tcp(127.0.0.1:3306)/inventory?parseTime=true")

	v.SetDefault("IMAGE_STORE", ImageStoreLocal)
	v.SetDefault("UPLOAD_DIR", "public/images/uploads")
	v.SetDefault("UPLOAD_PUBLIC_PATH", "/images/uploads")
	v.SetDefault("MAX_UPLOAD_BYTES", 5<<20)
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_PATH_STYLE", false)

	v.SetDefault("RATE_LIMIT_MAX", 20)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	return v
}

// Load reads the configuration out of v and checks it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            ":" + v.GetString("PORT"),
			Env:             v.GetString("APP_ENV"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(v.GetString("DB_DRIVER")),
			MongoURI:      v.GetString("MONGODB_URI"),
			MongoDatabase: v.GetString("MONGODB_DATABASE"),
			MySQLDSN:      v.GetString("DB_DSN_PRIMARY"),
		},
		Images: ImageConfig{
			Store:          strings.ToLower(v.GetString("IMAGE_STORE")),
			UploadDir:      v.GetString("UPLOAD_DIR"),
			PublicPath:     v.GetString("UPLOAD_PUBLIC_PATH"),
			MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
			S3: S3Config{
				Bucket:    v.GetString("S3_BUCKET"),
				Region:    v.GetString("S3_REGION"),
				Endpoint:  v.GetString("S3_ENDPOINT"),
				PathStyle: v.GetBool("S3_PATH_STYLE"),
			},
		},
		RateLimit: RateLimitConfig{
			Max:    v.GetInt("RATE_LIMIT_MAX"),
			Window: v.GetDuration("RATE_LIMIT_WINDOW"),
		},
	}

	if cfg.Database.MongoURI == "" {
		cfg.Database.MongoURI = defaultMongoURI
	}
	if cfg.Database.MongoDatabase == "" {
		cfg.Database.MongoDatabase = databaseFromURI(cfg.Database.MongoURI)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverMongo, DriverMySQL, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Images.Store {
	case ImageStoreLocal:
	case ImageStoreS3:
		if c.Images.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when IMAGE_STORE=s3")
		}
	default:
		return fmt.Errorf("unsupported IMAGE_STORE %q", c.Images.Store)
	}
	if c.Images.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.RateLimit.Max <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// databaseFromURI takes the database name from the path of a MongoDB
// connection string, falling back to "inventory-db".
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "inventory-db"
	}
	name := strings.Trim(u.Path, "/")
	if name == "" {
		return "inventory-db"
	}
	return name
}
