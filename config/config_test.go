package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = Config{
	Workdir:      "/var/parent-sheets",
	Store:        "sheet",
	LogRetention: 30,
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	require.NoError(t, err)

	assert.Equal(t, "/var/parent-sheets", c.Workdir)
	assert.Equal(t, "/var/parent-sheets/.google/credentials.json", c.Credentials)
	assert.Equal(t, "sheet", c.Store)
	assert.Equal(t, uint(30), c.LogRetention)
	assert.False(t, c.Debug)
}

func TestLoadFile(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "parent-sheets.toml")
	toml := `
workdir = "/tmp/sheets"
url = "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"
store = "file"
debug = true

[log]
range = "Log!A1:G"
retention = 7
`
	require.NoError(t, os.WriteFile(path, []byte(toml), 0660))

	c, err := Load(path, defaults)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/sheets", c.Workdir)
	assert.Equal(t, "/tmp/sheets/.google/credentials.json", c.Credentials)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", c.URL)
	assert.Equal(t, "file", c.Store)
	assert.True(t, c.Debug)
	assert.Equal(t, "Log!A1:G", c.LogRange)
	assert.Equal(t, uint(7), c.LogRetention)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "parent-sheets.toml")
	require.NoError(t, os.WriteFile(path, []byte("store = \"file\"\n[log]\nretention = 7\n"), 0660))

	t.Setenv("PARENT_SHEETS_STORE", "sheet")
	t.Setenv("PARENT_SHEETS_LOG_RETENTION", "14")

	c, err := Load(path, defaults)
	require.NoError(t, err)

	assert.Equal(t, "sheet", c.Store)
	assert.Equal(t, uint(14), c.LogRetention)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Setenv("PARENT_SHEETS_CREDENTIALS", "")
	os.Unsetenv("PARENT_SHEETS_CREDENTIALS")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PARENT_SHEETS_CREDENTIALS=/etc/sheets/credentials.json\n"), 0660))

	c, err := Load("", defaults)
	require.NoError(t, err)

	assert.Equal(t, "/etc/sheets/credentials.json", c.Credentials)
}

func TestLoadInvalidFile(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "parent-sheets.toml")
	require.NoError(t, os.WriteFile(path, []byte("workdir = [unterminated"), 0660))

	_, err := Load(path, defaults)
	assert.Error(t, err)
}
