package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("PORT", "")
	cfg, err := load(newViper())
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Addr)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, 5*time.Second, cfg.StorageTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_DRIVER", "Mongo")
	t.Setenv("MONGO_DATABASE", "shelf")
	t.Setenv("DB_TIMEOUT", "250ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:5173")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := load(newViper())
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverMongo, cfg.StorageDriver)
	assert.Equal(t, "shelf", cfg.MongoDatabase)
	assert.Equal(t, 250*time.Millisecond, cfg.StorageTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestLoad_ListenAddr(t *testing.T) {
	tests := []struct {
		name    string
		appAddr string
		port    string
		want    string
	}{
		{"defaults", "", "", ":4000"},
		{"port only", "", "5000", ":5000"},
		{"port with colon", "", ":5001", ":5001"},
		{"app addr wins", "127.0.0.1:8080", "5000", "127.0.0.1:8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ADDR", tt.appAddr)
			t.Setenv("PORT", tt.port)

			cfg, err := load(newViper())
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Addr)
		})
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := load(newViper())
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\nMONGO_COLLECTION=from_file\n"), 0644))

	t.Setenv("DB_DSN", "from_env")
	t.Setenv("MONGO_COLLECTION", "")
	os.Unsetenv("MONGO_COLLECTION")

	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
	assert.Equal(t, "from_file", os.Getenv("MONGO_COLLECTION"))
}
