package cache

import (
	"context"
	"errors"
	"time"

	"github.com/oaspect/oaspect/internal/core/domain"
)

// Status is a read-only report of the persisted record relative to a source.
// It is built entirely from the record's denormalized summary; the embedded
// model is checked for presence and integrity but never deserialized further.
type Status struct {
	Present bool `json:"present"`

	Source      string `json:"source,omitempty"`
	SourceMatch bool   `json:"source_match,omitempty"`

	SchemaVersion      int  `json:"schema_version,omitempty"`
	SchemaVersionMatch bool `json:"schema_version_match,omitempty"`

	LastFetch  time.Time `json:"last_fetch,omitzero"`
	TTLSeconds int64     `json:"ttl_seconds,omitempty"`
	Expired    bool      `json:"expired,omitempty"`

	ContentHash string `json:"content_hash,omitempty"`
	HasModel    bool   `json:"has_model,omitempty"`
	ModelIntact bool   `json:"model_intact,omitempty"`

	HTTPCache  domain.HTTPValidators  `json:"http_cache,omitzero"`
	LocalCache domain.LocalValidators `json:"local_cache,omitzero"`
	Meta       domain.RecordMeta      `json:"meta,omitzero"`
}

// Status inspects the persisted record without resolving the source. A
// missing record reports Present false; a corrupted record is an error.
func (m *Manager) Status(ctx context.Context, source string) (*Status, error) {
	_, span := m.tracer.Start(ctx, "cache.status")
	defer span.End()
	span.SetAttribute("source", source)

	record, err := m.store.Load()
	if err != nil {
		if errors.Is(err, domain.ErrCacheNotFound) {
			return &Status{Present: false}, nil
		}
		span.RecordError(err)
		return nil, err
	}

	return &Status{
		Present:            true,
		Source:             record.Source,
		SourceMatch:        record.Source == source,
		SchemaVersion:      record.SchemaVersion,
		SchemaVersionMatch: record.SchemaVersion == domain.RecordSchemaVersion,
		LastFetch:          record.LastFetch,
		TTLSeconds:         record.TTLSeconds,
		Expired:            record.Expired(m.now()),
		ContentHash:        record.ContentHash,
		HasModel:           record.Spec != nil,
		ModelIntact:        record.Spec != nil && record.Spec.ContentHash == record.ContentHash,
		HTTPCache:          record.HTTPCache,
		LocalCache:         record.LocalCache,
		Meta:               record.Meta,
	}, nil
}
