package config

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePublicConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(path.Join(dir, "public.yaml"), []byte(content), 0644)
	require.NoError(t, err)
	return dir
}

func TestMustLoad(t *testing.T) {
	dir := writePublicConfig(t, `
address: "0.0.0.0:8080"
sqlite_path: "data/archive.db"
log_level: "debug"
log_json: true
allowed_origins:
  - "http://localhost:8081"
catalog_batch_reads: true
`)

	cfg := MustLoad(dir)
	assert.Equal(t, "0.0.0.0:8080", cfg.Public.Address)
	assert.Equal(t, "data/archive.db", cfg.Public.SqlitePath)
	assert.Equal(t, "debug", cfg.Public.LogLevel)
	assert.True(t, cfg.Public.LogJSON)
	assert.Equal(t, []string{"http://localhost:8081"}, cfg.Public.AllowedOrigins)
	assert.True(t, cfg.Public.CatalogBatchReads)
}

func TestMustLoadMissingFile(t *testing.T) {
	require.Panics(t, func() { MustLoad(t.TempDir()) })
}

func TestMustLoadMissingRequiredFields(t *testing.T) {
	dir := writePublicConfig(t, `
log_level: "info"
`)
	require.Panics(t, func() { MustLoad(dir) })
}

func TestMustLoadRejectsBadAddress(t *testing.T) {
	dir := writePublicConfig(t, `
address: "not-an-address"
sqlite_path: "data/archive.db"
`)
	require.Panics(t, func() { MustLoad(dir) })
}
