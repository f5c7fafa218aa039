package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key the loader reads; viper ignores empty values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "APP_ENV", "SHUTDOWN_TIMEOUT", "DB_DRIVER", "MONGODB_URI", "MONGODB_DATABASE",
		"DB_DSN_PRIMARY", "IMAGE_STORE", "UPLOAD_DIR", "UPLOAD_PUBLIC_PATH", "MAX_UPLOAD_BYTES",
		"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_PATH_STYLE", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Server.Development())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "mongodb://127.0.0.1/inventory-db", cfg.Database.MongoURI)
	assert.Equal(t, "inventory-db", cfg.Database.MongoDatabase)
	assert.Equal(t, ImageStoreLocal, cfg.Images.Store)
	assert.Equal(t, int64(5<<20), cfg.Images.MaxUploadBytes)
	assert.Equal(t, 20, cfg.RateLimit.Max)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MONGODB_URI", "mongodb://db.internal:27017/stock?retryWrites=true")
	t.Setenv("RATE_LIMIT_MAX", "100")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("DB_DRIVER", "MEMORY")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.False(t, cfg.Server.Development())
	assert.Equal(t, "stock", cfg.Database.MongoDatabase)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoadRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{name: "Unknown driver", env: map[string]string{"DB_DRIVER": "postgres"}},
		{name: "S3 without bucket", env: map[string]string{"IMAGE_STORE": "s3"}},
		{name: "Unknown image store", env: map[string]string{"IMAGE_STORE": "ftp"}},
		{name: "Zero rate limit", env: map[string]string{"RATE_LIMIT_MAX": "0"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(New())
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	loaded, err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.False(t, loaded)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("INVENTORY_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("INVENTORY_TEST_KEY", "")
	os.Unsetenv("INVENTORY_TEST_KEY")

	loaded, err = LoadEnvFile(path)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "from-file", os.Getenv("INVENTORY_TEST_KEY"))
}
