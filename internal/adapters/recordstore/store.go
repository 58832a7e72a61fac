// Package recordstore persists the cache record as a single JSON file,
// written atomically so a reader never observes a partial record.
package recordstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/oaspect/oaspect/internal/core/domain"
)

// DefaultFileName is the canonical cache file name inside the cache
// directory.
const DefaultFileName = ".oaspect.cache.json"

const filePerm = 0o644

// Store reads and writes the cache record at a fixed path.
type Store struct {
	path string
}

// New creates a store for the record file inside dir.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, DefaultFileName)}
}

// Path returns the canonical record file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and deserializes the persisted record. A missing file and a
// malformed file are reported as distinct errors so the cache layer can tell
// a cold start from a corrupted one.
func (s *Store) Load() (*domain.CacheRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.WithDetail(domain.ErrCacheNotFound, "path", s.path)
		}
		corruptErr := domain.WithDetail(domain.ErrCacheCorrupted, "path", s.path)
		return nil, zerr.With(corruptErr, "cause", err.Error())
	}

	var record domain.CacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		corruptErr := domain.WithDetail(domain.ErrCacheCorrupted, "path", s.path)
		return nil, zerr.With(corruptErr, "cause", err.Error())
	}
	return &record, nil
}

// Save serializes the record to a temporary file in the same directory and
// renames it over the canonical path.
func (s *Store) Save(record *domain.CacheRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return domain.WithDetail(domain.ErrCacheWriteFailed, "cause", err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return domain.WithDetail(domain.ErrCacheWriteFailed, "path", s.path)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), DefaultFileName+".tmp")
	if err != nil {
		return domain.WithDetail(domain.ErrCacheWriteFailed, "path", s.path)
	}
	tmpName := tmpFile.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return domain.WithDetail(domain.ErrCacheWriteFailed, "path", s.path)
	}
	if err := tmpFile.Close(); err != nil {
		return domain.WithDetail(domain.ErrCacheWriteFailed, "path", s.path)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return domain.WithDetail(domain.ErrCacheWriteFailed, "path", s.path)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return domain.WithDetail(domain.ErrCacheWriteFailed, "path", s.path)
	}
	return nil
}
