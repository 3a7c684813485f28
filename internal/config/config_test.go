package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, SourceDir, cfg.Data.Source)
	assert.Equal(t, "./data/magpie", cfg.Data.Dir)
	assert.Equal(t, "magpie", cfg.S3.Dataset)
	assert.Zero(t, cfg.Concurrency)
}

func TestLoad(t *testing.T) {
	t.Run("NoFile", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, SourceDir, cfg.Data.Source)
	})

	t.Run("YAMLFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "matgo.yaml")

		doc := `
data:
  source: s3
s3:
  bucket: matgo-tables
  prefix: magpie/
  units_table: matgo-units
materials:
  api_key: file-key
concurrency: 8
`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, SourceS3, cfg.Data.Source)
		assert.Equal(t, "matgo-tables", cfg.S3.Bucket)
		assert.Equal(t, "magpie/", cfg.S3.Prefix)
		assert.Equal(t, "matgo-units", cfg.S3.UnitsTable)
		assert.Equal(t, "file-key", cfg.Materials.APIKey)
		assert.Equal(t, 8, cfg.Concurrency)

		// Fields the file does not set keep their defaults.
		assert.Equal(t, "./data/magpie", cfg.Data.Dir)
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "matgo.yaml")
		require.NoError(t, os.WriteFile(path, []byte("materials:\n  api_key: file-key\n"), 0o600))

		t.Setenv("MATGO_MP_API_KEY", "env-key")
		t.Setenv("MATGO_DATA_DIR", "/var/lib/matgo")
		t.Setenv("MATGO_DATA_SOURCE", SourceMinio)
		t.Setenv("MATGO_MINIO_ENDPOINT", "localhost:9000")
		t.Setenv("MATGO_S3_UNITS_TABLE", "units-prod")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "env-key", cfg.Materials.APIKey)
		assert.Equal(t, "/var/lib/matgo", cfg.Data.Dir)
		assert.Equal(t, SourceMinio, cfg.Data.Source)
		assert.Equal(t, "localhost:9000", cfg.Minio.Endpoint)
		assert.Equal(t, "units-prod", cfg.S3.UnitsTable)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "matgo.yaml")
		require.NoError(t, os.WriteFile(path, []byte("data: [broken"), 0o600))

		_, err := Load(path)
		assert.ErrorContains(t, err, "parse")
	})

	t.Run("BadConcurrency", func(t *testing.T) {
		t.Setenv("MATGO_CONCURRENCY", "many")

		_, err := Load("")
		assert.ErrorContains(t, err, "MATGO_CONCURRENCY")
	})
}
