package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/store"
)

func newTestStore(t *testing.T) (*store.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".agentflow", "data.json")
	return store.NewFileStore(path, nil), path
}

func strPtr(s string) *string { return &s }

func sampleDataset() *store.Dataset {
	created := store.NewTimestamp(time.Date(2026, 3, 4, 5, 6, 7, 123456000, time.UTC))
	used := store.NewTimestamp(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
	return &store.Dataset{
		Users: []store.User{
			{
				ID:           "u-1",
				Email:        "a@b.com",
				PasswordHash: "$2a$04$hash",
				Name:         "A",
				APIKeys: []store.APIKey{
					{Key: "afk_one", Name: "Default Key", IsActive: true, CreatedAt: created, LastUsedAt: &used},
					{Key: "afk_two", Name: "CI", IsActive: false, CreatedAt: created},
				},
				CreatedAt: created,
			},
		},
		Organizations: []store.Organization{
			{ID: "o-1", OwnerID: "u-1", Name: "Acme", Slug: "acme", Description: strPtr("Widgets"), CreatedAt: created},
		},
		Projects: []store.Project{
			{ID: "p-1", OrganizationID: "o-1", Name: "Web", Slug: "web", GithubURL: strPtr("https://github.com/acme/web"), IsActive: true, CreatedAt: created},
		},
	}
}

func TestLoad_MissingFileReturnsEmptyDataset(t *testing.T) {
	s, path := newTestStore(t)

	ds, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, ds.Users)
	assert.Empty(t, ds.Organizations)
	assert.Empty(t, ds.Projects)
	assert.NotNil(t, ds.Users, "collections should be empty, not nil")

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "load must not create the file")
}

func TestSave_CreatesDirectoryAndWritesEmptyLists(t *testing.T) {
	s, path := newTestStore(t)

	require.NoError(t, s.Save(&store.Dataset{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[],"organizations":[],"projects":[]}`, string(data))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s, path := newTestStore(t)
	original := sampleDataset()

	require.NoError(t, s.Save(original))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)

	require.NoError(t, s.Save(loaded))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "save(load()) must not change the document")
}

func TestSave_SerializesNullsAndSnakeCase(t *testing.T) {
	s, path := newTestStore(t)
	ds := sampleDataset()
	require.NoError(t, s.Save(ds))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `"password_hash": "$2a$04$hash"`)
	assert.Contains(t, text, `"owner_id": "u-1"`)
	assert.Contains(t, text, `"organization_id": "o-1"`)
	assert.Contains(t, text, `"last_used_at": null`)
	assert.Contains(t, text, `"description": null`)
	assert.Contains(t, text, `"created_at": "2026-03-04T05:06:07.123456Z"`)
}

func TestLoad_MalformedFileIsStorageError(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [`), 0o600))

	_, err := s.Load()
	require.Error(t, err)
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))

	var parseErr *store.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, path, parseErr.Path)
}

func TestLoad_WrongShapeIsStorageError(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"users": {"not": "a list"}}`), 0o600))

	_, err := s.Load()
	require.Error(t, err)
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
}

func TestLoad_ToleratesCommentsAndTrailingCommas(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	content := `{
  // hand edited
  "users": [],
  "organizations": [
    {"id": "o-1", "owner_id": "u-1", "name": "Acme", "slug": "acme", "description": null, "created_at": "2026-01-01T00:00:00Z",},
  ],
  "projects": [],
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ds, err := s.Load()
	require.NoError(t, err)
	require.Len(t, ds.Organizations, 1)
	assert.Equal(t, "acme", ds.Organizations[0].Slug)
}

func TestLoad_AcceptsNaiveTimestamps(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	content := `{"users": [], "organizations": [
	  {"id": "o-1", "owner_id": "u-1", "name": "Acme", "slug": "acme", "description": null, "created_at": "2025-11-02T09:15:30.250000"}
	], "projects": []}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ds, err := s.Load()
	require.NoError(t, err)
	require.Len(t, ds.Organizations, 1)
	want := time.Date(2025, 11, 2, 9, 15, 30, 250000000, time.UTC)
	assert.True(t, want.Equal(ds.Organizations[0].CreatedAt.Time))
}

func TestLoad_MissingCollectionsAreNormalized(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [{"id": "u-1", "email": "a@b.com", "created_at": "2026-01-01T00:00:00Z"}]}`), 0o600))

	ds, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, ds.Organizations)
	assert.NotNil(t, ds.Projects)
	require.Len(t, ds.Users, 1)
	assert.NotNil(t, ds.Users[0].APIKeys)
}

func TestSave_FailureLeavesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	s := store.NewFileStore(filepath.Join(blocker, "data.json"), nil)

	err := s.Save(&store.Dataset{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	var ts store.Timestamp
	assert.Error(t, ts.UnmarshalJSON([]byte(`"yesterday"`)))
	assert.Error(t, ts.UnmarshalJSON([]byte(`12345`)))
}
