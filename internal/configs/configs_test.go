package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS",
	"STORE_DRIVER", "DATABASE_URL", "SQLITE_PATH", "BOLT_PATH",
	"STORAGE_DRIVER", "UPLOADS_DIR",
	"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_PUBLIC_URL",
}

// clearEnv blanks every variable and moves into an empty directory so no .env file is picked up.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, "massg.db", cfg.SQLitePath)
	assert.Equal(t, StorageLocal, cfg.StorageDriver)
	assert.Equal(t, "uploads", cfg.UploadsDir)
}

func TestLoadConfigOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "non numeric port", env: map[string]string{"PORT": "http"}},
		{name: "privileged port", env: map[string]string{"PORT": "80"}},
		{name: "port too large", env: map[string]string{"PORT": "70000"}},
		{name: "unknown store", env: map[string]string{"STORE_DRIVER": "mongo"}},
		{name: "unknown storage", env: map[string]string{"STORAGE_DRIVER": "ftp"}},
		{name: "postgres without dsn in production", env: map[string]string{"ENVIRONMENT": "production", "STORE_DRIVER": "postgres"}},
		{name: "s3 without bucket", env: map[string]string{"STORAGE_DRIVER": "s3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigPostgresDevelopmentDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "POSTGRES")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Contains(t, cfg.DatabaseDSN, "massg")
}

func TestLoadConfigS3(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET_NAME", "chat")
	t.Setenv("S3_ENDPOINT", "https://s3.example.com")
	t.Setenv("S3_ACCESS_KEY_ID", "id")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
	t.Setenv("S3_PUBLIC_URL", "https://cdn.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "chat", cfg.S3BucketName)
	assert.Equal(t, "https://cdn.example.com", cfg.S3PublicURL)
}

func TestLoadConfigS3PublicURLOptional(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET_NAME", "chat")
	t.Setenv("S3_ENDPOINT", "https://s3.example.com")
	t.Setenv("S3_ACCESS_KEY_ID", "id")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.S3PublicURL)
}
