package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designclub49123/kalakranti/internal/config"
)

const testConfigYAML = `api:
  environment: "development"
  base_url: "localhost:8080"
  port: "8080"
  jwt_signing_key: "test-signing-key"
  allowed_cors_domains:
    - "kalakranti.designclub.app"

gin:
  mode: "debug"

postgres:
  host: "localhost"
  port: "5432"
  user: "postgres"
  password: "postgres"
  db: "kalakranti"

uploads:
  dir: "./uploads"
  base_url: "http://localhost:8080/uploads"
`

func writeConfigFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := config.Load(writeConfigFile(t))

	require.NoError(t, err)
	assert.Equal(t, "development", conf.API.Environment)
	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, "test-signing-key", conf.API.JWTSigningKey)
	assert.Equal(t, []string{"kalakranti.designclub.app"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "debug", conf.Gin.Mode)
	assert.Equal(t, "kalakranti", conf.Postgres.DB)
	assert.Equal(t, "./uploads", conf.Uploads.Dir)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("API_PORT", "9090")

	conf, err := config.Load(writeConfigFile(t))

	require.NoError(t, err)
	assert.Equal(t, "9090", conf.API.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))

	assert.Error(t, err)
}

func TestLoad_KeepsSnapshotAfterFileChange(t *testing.T) {
	path := writeConfigFile(t)

	conf, err := config.Load(path)
	require.NoError(t, err)

	changed := []byte("api:\n  port: \"7070\"\n")
	require.NoError(t, os.WriteFile(path, changed, 0o600))

	assert.Equal(t, "8080", conf.API.Port)
}
