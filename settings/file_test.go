package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "settings", "parent-sheets.yaml"))

	values, err := store.Get(ctx, Keys()...)
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, Set(ctx, store, UserList, "Alice, Bob"))
	require.NoError(t, Set(ctx, store, TitleAppend, " - 2024"))
	require.NoError(t, Set(ctx, store, ProtectionBool, "yes"))

	s, err := Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, s.Users)
	assert.Equal(t, " - 2024", s.TitleAppend)
	assert.True(t, s.Protect)

	reopened := NewFileStore(store.Path)
	values, err = reopened.Get(ctx, "USER_LIST", "FOLDER_ID")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"USER_LIST": "Alice,Bob"}, values)

	require.NoError(t, Clear(ctx, reopened))

	s, err = Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, Settings{Users: []string{}, Admins: []string{}}, *s)
}

func TestFileStoreKeepsUnrelatedKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "parent-sheets.yaml")

	require.NoError(t, os.WriteFile(path, []byte("NOTES: keep me\nFOLDER_ID: abc\n"), 0660))

	store := NewFileStore(path)
	require.NoError(t, Clear(ctx, store))

	values, err := store.Get(ctx, "NOTES", "FOLDER_ID")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"NOTES": "keep me"}, values)
}

func TestFileStoreWithInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parent-sheets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0660))

	_, err := NewFileStore(path).Get(context.Background(), Keys()...)
	assert.Error(t, err)
}
