// Package session persists the "current" pointers (user, API key,
// organization, project) between command invocations. It stores
// references only; the entities live in the data store.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/fsutil"
)

// Keys of the context file.
const (
	KeyCurrentUserEmail    = "current_user_email"
	KeyCurrentAPIKey       = "current_api_key"
	KeyCurrentOrganization = "current_organization"
	KeyCurrentProject      = "current_project"
)

// State is the in-memory copy of the context file. It is loaded once per
// invocation and saved once after the command succeeds.
type State struct {
	path   string
	values map[string]any
	dirty  bool
}

// New returns an empty state that will be saved to path.
func New(path string) *State {
	return &State{path: path, values: map[string]any{}}
}

// Load reads the context file at path. A missing or empty file yields an
// empty state. Keys other than the four known ones are kept and written
// back unchanged.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(path), nil
		}
		return nil, apperror.Storage("reading context file %s: %w", path, err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, apperror.Storage("context file %s is not valid: %w", path, err)
	}
	if values == nil {
		values = map[string]any{}
	}

	return &State{path: path, values: values}, nil
}

// Path returns the context file path.
func (s *State) Path() string {
	return s.path
}

// Dirty reports whether the state changed since it was loaded or saved.
func (s *State) Dirty() bool {
	return s.dirty
}

// Save writes the whole map back to disk and clears the dirty flag.
func (s *State) Save() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return apperror.Storage("encoding context: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return apperror.Storage("saving context file: %w", err)
	}
	s.dirty = false
	return nil
}

// Get returns the value stored under key, or "" when it is absent or null.
func (s *State) Get(key string) string {
	v, ok := s.values[key]
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Set stores value under key.
func (s *State) Set(key, value string) {
	if current, ok := s.values[key]; ok && current == value {
		return
	}
	s.values[key] = value
	s.dirty = true
}

// Delete removes key.
func (s *State) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.dirty = true
}

// CurrentUserEmail returns the authenticated user's email.
func (s *State) CurrentUserEmail() string { return s.Get(KeyCurrentUserEmail) }

// SetCurrentUserEmail records the authenticated user's email.
func (s *State) SetCurrentUserEmail(email string) { s.Set(KeyCurrentUserEmail, email) }

// CurrentAPIKey returns the active API key.
func (s *State) CurrentAPIKey() string { return s.Get(KeyCurrentAPIKey) }

// SetCurrentAPIKey records the active API key.
func (s *State) SetCurrentAPIKey(key string) { s.Set(KeyCurrentAPIKey, key) }

// CurrentOrganization returns the active organization slug.
func (s *State) CurrentOrganization() string { return s.Get(KeyCurrentOrganization) }

// SetCurrentOrganization records the active organization slug.
func (s *State) SetCurrentOrganization(slug string) { s.Set(KeyCurrentOrganization, slug) }

// CurrentProject returns the active project slug.
func (s *State) CurrentProject() string { return s.Get(KeyCurrentProject) }

// SetCurrentProject records the active project slug.
func (s *State) SetCurrentProject(slug string) { s.Set(KeyCurrentProject, slug) }

// ClearProject removes only the project pointer. A project belongs to one
// organization, so switching organizations must drop it.
func (s *State) ClearProject() { s.Delete(KeyCurrentProject) }

// Label renders the prompt-style context: "[org / project]", "[org]", or
// "" when no organization is set. A project without an organization is
// not shown.
func (s *State) Label() string {
	org := s.CurrentOrganization()
	project := s.CurrentProject()

	switch {
	case org != "" && project != "":
		return fmt.Sprintf("[%s / %s]", org, project)
	case org != "":
		return fmt.Sprintf("[%s]", org)
	default:
		return ""
	}
}
