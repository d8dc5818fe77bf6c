package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/session"
)

func contextPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".agentflow", "config.yaml")
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	state, err := session.Load(contextPath(t))
	require.NoError(t, err)

	assert.Equal(t, "", state.CurrentUserEmail())
	assert.Equal(t, "", state.CurrentAPIKey())
	assert.Equal(t, "", state.CurrentOrganization())
	assert.Equal(t, "", state.CurrentProject())
	assert.False(t, state.Dirty())
}

func TestLoad_ExistingFile(t *testing.T) {
	path := contextPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("key: value\nnumber: 42\ncurrent_organization: acme\n"), 0o600))

	state, err := session.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "value", state.Get("key"))
	assert.Equal(t, "42", state.Get("number"))
	assert.Equal(t, "acme", state.CurrentOrganization())
}

func TestLoad_NullValueIsAbsent(t *testing.T) {
	path := contextPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("current_project: null\n"), 0o600))

	state, err := session.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "", state.CurrentProject())
}

func TestLoad_EmptyFileIsEmpty(t *testing.T) {
	path := contextPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	state, err := session.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "", state.Label())
}

func TestLoad_MalformedIsStorageError(t *testing.T) {
	path := contextPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a list\n"), 0o600))

	_, err := session.Load(path)
	require.Error(t, err)
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
}

func TestSetAndGet_AllPointers(t *testing.T) {
	state := session.New(contextPath(t))

	state.SetCurrentUserEmail("test@example.com")
	state.SetCurrentAPIKey("afk_test_key")
	state.SetCurrentOrganization("test-org")
	state.SetCurrentProject("test-project")

	assert.Equal(t, "test@example.com", state.CurrentUserEmail())
	assert.Equal(t, "afk_test_key", state.CurrentAPIKey())
	assert.Equal(t, "test-org", state.CurrentOrganization())
	assert.Equal(t, "test-project", state.CurrentProject())
	assert.True(t, state.Dirty())
}

func TestSave_PersistsAndPreservesUnknownKeys(t *testing.T) {
	path := contextPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("editor: vim\n"), 0o600))

	state, err := session.Load(path)
	require.NoError(t, err)
	state.SetCurrentUserEmail("a@b.com")
	require.NoError(t, state.Save())
	assert.False(t, state.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "vim", raw["editor"])
	assert.Equal(t, "a@b.com", raw[session.KeyCurrentUserEmail])

	reloaded, err := session.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", reloaded.CurrentUserEmail())
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := contextPath(t)
	state := session.New(path)
	state.SetCurrentOrganization("acme")

	require.NoError(t, state.Save())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSet_SameValueIsNotDirty(t *testing.T) {
	path := contextPath(t)
	state := session.New(path)
	state.SetCurrentOrganization("acme")
	require.NoError(t, state.Save())

	state.SetCurrentOrganization("acme")
	assert.False(t, state.Dirty())

	state.SetCurrentOrganization("globex")
	assert.True(t, state.Dirty())
}

func TestClearProject_RemovesOnlyProject(t *testing.T) {
	state := session.New(contextPath(t))
	state.SetCurrentOrganization("acme")
	state.SetCurrentProject("web")

	state.ClearProject()

	assert.Equal(t, "", state.CurrentProject())
	assert.Equal(t, "acme", state.CurrentOrganization())
}

func TestClearProject_WhenAbsentIsNotDirty(t *testing.T) {
	state := session.New(contextPath(t))
	state.ClearProject()
	assert.False(t, state.Dirty())
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name    string
		org     string
		project string
		want    string
	}{
		{name: "nothing set", want: ""},
		{name: "org only", org: "my-org", want: "[my-org]"},
		{name: "org and project", org: "my-org", project: "my-project", want: "[my-org / my-project]"},
		{name: "project without org", project: "my-project", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := session.New(contextPath(t))
			if tt.org != "" {
				state.SetCurrentOrganization(tt.org)
			}
			if tt.project != "" {
				state.SetCurrentProject(tt.project)
			}
			assert.Equal(t, tt.want, state.Label())
		})
	}
}
