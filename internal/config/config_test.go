package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  address: ":9090"
database:
  driver: memory
s3:
  mock: true
auth:
  provider: jwt
  jwt:
    secret: s3cr3t
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "api", cfg.Server.AuthRealm)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.True(t, cfg.S3.Mock)
	assert.Equal(t, 15*time.Minute, cfg.S3.URLExpiry)
	assert.Equal(t, ProviderJWT, cfg.Auth.Provider)
	assert.Equal(t, "s3cr3t", cfg.Auth.JWT.Secret)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "fitness_tracker", cfg.Metrics.Namespace)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("auth:\n  provider: insecure\n"), 0o600))
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("SERVER_AUTH_REALM", "fitness")
	t.Setenv("CATALOG_PATH", "/etc/fitness/catalog.yaml")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "fitness", cfg.Server.AuthRealm)
	assert.Equal(t, "/etc/fitness/catalog.yaml", cfg.Catalog.Path)
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("AUTH_PROVIDER", "insecure")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Driver: DriverMemory},
		Auth:     AuthConfig{Provider: ProviderInsecure},
		S3:       S3Config{Mock: true},
	}
	require.NoError(t, valid.Validate())

	badDriver := valid
	badDriver.Database.Driver = "postgres"
	assert.Error(t, badDriver.Validate())

	missingSecret := valid
	missingSecret.Auth.Provider = ProviderJWT
	assert.Error(t, missingSecret.Validate())

	missingApp := valid
	missingApp.Auth.Provider = ProviderFacebook
	assert.Error(t, missingApp.Validate())

	noBucket := valid
	noBucket.S3.Mock = false
	assert.Error(t, noBucket.Validate())
}
