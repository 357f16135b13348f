package credential

import (
	"os"
	"path/filepath"
	"testing"

	"canopus/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionFixture() *entity.Session {
	return &entity.Session{
		User: &entity.User{
			ID:    "u1",
			Name:  "Asha",
			Email: "asha@example.com",
			Role:  entity.RoleAdmin,
		},
		Token: "tok-123",
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewStoreAt(path)

	require.NoError(t, store.Save(sessionFixture()))
	assert.Equal(t, "tok-123", store.Token())

	// A fresh store at the same path sees the persisted session.
	fresh := NewStoreAt(path)
	assert.Empty(t, fresh.Token())

	loaded, err := fresh.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "u1", loaded.User.ID)
	assert.Equal(t, entity.RoleAdmin, loaded.User.Role)
	assert.Equal(t, "tok-123", fresh.Token())
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "absent.json"))

	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Empty(t, store.Token())
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStoreAt(path)
	_, err := store.Load()
	require.Error(t, err)
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStoreAt(path)

	require.NoError(t, store.Save(sessionFixture()))
	require.NoError(t, store.Clear())

	assert.Nil(t, store.Current())
	assert.Empty(t, store.Token())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestStore_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStoreAt(path)

	require.NoError(t, store.Save(sessionFixture()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "credential file must not be group or world readable")
}

func TestStore_TokenWithoutSession(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	assert.Empty(t, store.Token())
	assert.Nil(t, store.Current())
}
