package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so no stray .env file is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 120, cfg.Import.PreviewLines)
	assert.Equal(t, "INR", cfg.Import.Currency)
	assert.Equal(t, "Karnataka", cfg.Import.Region)
	assert.Equal(t, "Uncategorized", cfg.Import.CategoryName)
	assert.Equal(t, 30*24*time.Hour, cfg.Storage.Retention)
	assert.False(t, cfg.Storage.ArchiveEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	chdir(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("IMPORT_STATUS_REGION", "Tamil Nadu")
	t.Setenv("STORAGE_RETENTION", "48h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "Tamil Nadu", cfg.Import.Region)
	assert.Equal(t, 48*time.Hour, cfg.Storage.Retention)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=from-file\nPOSTGRES_PORT=6543\n"), 0o600))
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Cleanup(func() { os.Unsetenv("POSTGRES_PORT") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoad_RequiresSecret(t *testing.T) {
	chdir(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "require"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=require", c.DSN())
}
