package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
DB_HOST: localhost
DB_PORT: "5432"
USDA_API_KEY: from-file
LOG_FORMAT: console
`), 0o600))

	t.Setenv("USDA_API_KEY", "from-env")

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Get("DB_HOST"))
	assert.Equal(t, "5432", cfg.Get("DB_PORT"))
	assert.Equal(t, "from-env", cfg.Get("USDA_API_KEY"))
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "", cfg.Get("NOT_A_KEY"))
}

func TestReadConfig_MissingFile(t *testing.T) {
	t.Setenv("DRAFT_BACKEND", "s3")

	cfg, err := ReadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "s3", cfg.DraftBackend)
}

func TestReadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_HOST: [unclosed"), 0o600))

	_, err := ReadConfig(path)
	assert.Error(t, err)
}
