package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/fsutil"
)

// Store loads and persists the whole dataset as one document.
type Store interface {
	Load() (*Dataset, error)
	Save(ds *Dataset) error
	// Path names the backing document, for display.
	Path() string
}

// ParseError is returned (wrapped in a storage error) when the data file
// exists but cannot be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("data file %s is not valid: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FileStore implements Store over a single JSON file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a FileStore backed by path. A nil logger uses
// slog.Default().
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the data file. A missing file yields an empty dataset.
// Comments and trailing commas are stripped before decoding so that
// hand-edited files still load.
func (s *FileStore) Load() (*Dataset, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("data file not found, starting empty", "path", s.path)
			ds := &Dataset{}
			ds.normalize()
			return ds, nil
		}
		return nil, apperror.Storage("reading data file %s: %w", s.path, err)
	}

	var ds Dataset
	if err := json.Unmarshal(jsonc.ToJSON(data), &ds); err != nil {
		return nil, apperror.Storage("%w", &ParseError{Path: s.path, Err: err})
	}
	ds.normalize()

	s.logger.Debug("dataset loaded",
		"path", s.path,
		"users", len(ds.Users),
		"organizations", len(ds.Organizations),
		"projects", len(ds.Projects),
	)
	return &ds, nil
}

// Save serializes ds and atomically replaces the data file.
func (s *FileStore) Save(ds *Dataset) error {
	ds.normalize()

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return apperror.Storage("encoding dataset: %w", err)
	}
	data = append(data, '\n')

	if err := fsutil.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return apperror.Storage("saving data file: %w", err)
	}

	s.logger.Debug("dataset saved", "path", s.path, "bytes", len(data))
	return nil
}
