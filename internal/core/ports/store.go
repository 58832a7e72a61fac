package ports

import "github.com/oaspect/oaspect/internal/core/domain"

// RecordStore persists the single cache record for a project directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Load reads the persisted record. It returns domain.ErrCacheNotFound
	// when no record exists and domain.ErrCacheCorrupted when the record
	// cannot be deserialized.
	Load() (*domain.CacheRecord, error)

	// Save writes the record atomically.
	Save(record *domain.CacheRecord) error
}
