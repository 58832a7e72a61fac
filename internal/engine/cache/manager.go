// Package cache implements the resolution layer between callers and raw
// sources. A resolution either reuses the persisted record, when every
// validity stage passes, or falls through to a cold fetch-and-normalize.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/oaspect/oaspect/internal/core/domain"
	"github.com/oaspect/oaspect/internal/core/ports"
	"github.com/oaspect/oaspect/internal/engine/normalizer"
)

// Manager resolves sources through the persisted cache record.
type Manager struct {
	fetcher    ports.Fetcher
	store      ports.RecordStore
	logger     ports.Logger
	tracer     ports.Tracer
	memo       *normalizer.Memo
	now        func() time.Time
	defaultTTL time.Duration
}

// NewManager wires a cache manager from its collaborators.
func NewManager(
	fetcher ports.Fetcher,
	store ports.RecordStore,
	logger ports.Logger,
	tracer ports.Tracer,
	memo *normalizer.Memo,
) *Manager {
	return &Manager{
		fetcher:    fetcher,
		store:      store,
		logger:     logger,
		tracer:     tracer,
		memo:       memo,
		now:        time.Now,
		defaultTTL: domain.DefaultTTL,
	}
}

// WithClock overrides the manager's clock. Used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// WithDefaultTTL overrides the freshness window written into fresh records.
func (m *Manager) WithDefaultTTL(ttl time.Duration) *Manager {
	if ttl > 0 {
		m.defaultTTL = ttl
	}
	return m
}

// ResolveOptions adjust a single resolution.
type ResolveOptions struct {
	// TTLOverride replaces the record's stored TTL for the freshness check
	// and is written into the fresh record on a cold fetch. Zero means use
	// the stored or default TTL.
	TTLOverride time.Duration
	// NoCache skips validation entirely and forces a cold fetch.
	NoCache bool
}

// Resolve returns the normalized model for a source, reusing the persisted
// record when it is still valid. It fails only when the cold
// fetch-and-normalize path fails; every cache-validity failure is recovered
// locally by fetching fresh.
func (m *Manager) Resolve(ctx context.Context, source string, opts ResolveOptions) (*domain.UnifiedSpec, error) {
	ctx, span := m.tracer.Start(ctx, "cache.resolve")
	defer span.End()
	span.SetAttribute("source", source)

	if !opts.NoCache {
		if record, reason := m.validate(ctx, source, opts.TTLOverride); record != nil {
			span.SetAttribute("cache", "hit")
			m.logger.Info(fmt.Sprintf("cache hit for %s", source))
			return record.Spec, nil
		} else if reason != "" {
			span.SetAttribute("cache", "miss")
			m.logger.Info(fmt.Sprintf("cache miss for %s: %s", source, reason))
		}
	}

	spec, err := m.fetchFresh(ctx, source, opts.TTLOverride)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return spec, nil
}

// validate runs the validity cascade against the persisted record. It returns
// the record when every stage passes and the embedded model is intact;
// otherwise it returns nil and the first failing stage's reason.
func (m *Manager) validate(ctx context.Context, source string, ttlOverride time.Duration) (*domain.CacheRecord, string) {
	record, err := m.store.Load()
	if err != nil {
		return nil, "record not readable: " + err.Error()
	}

	stages := []struct {
		name  string
		check func() (bool, string)
	}{
		{"schema_version", func() (bool, string) {
			if record.SchemaVersion != domain.RecordSchemaVersion {
				return false, fmt.Sprintf("record schema version %d, expected %d",
					record.SchemaVersion, domain.RecordSchemaVersion)
			}
			return true, ""
		}},
		{"source", func() (bool, string) {
			if record.Source != source {
				return false, "record belongs to " + record.Source
			}
			return true, ""
		}},
		{"freshness", func() (bool, string) {
			ttl := record.TTL()
			if ttlOverride > 0 {
				ttl = ttlOverride
			}
			if m.now().Sub(record.LastFetch) > ttl {
				return false, "ttl elapsed"
			}
			return m.fetcher.Revalidate(ctx, source, record)
		}},
		{"integrity", func() (bool, string) {
			if record.Spec == nil {
				return false, "no embedded model"
			}
			if record.Spec.ContentHash != record.ContentHash {
				return false, "content hash mismatch"
			}
			return true, ""
		}},
	}

	for _, stage := range stages {
		if ok, reason := stage.check(); !ok {
			return nil, stage.name + ": " + reason
		}
	}
	return record, ""
}

// fetchFresh runs the cold path: fetch raw bytes, normalize, persist a fresh
// record. Persistence is best effort; a failed write is logged and the model
// is still returned.
func (m *Manager) fetchFresh(ctx context.Context, source string, ttlOverride time.Duration) (*domain.UnifiedSpec, error) {
	payload, err := m.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	spec, err := m.memo.Normalize(payload.Content, source)
	if err != nil {
		return nil, err
	}

	ttl := m.defaultTTL
	if ttlOverride > 0 {
		ttl = ttlOverride
	}

	record := &domain.CacheRecord{
		Version:       domain.RecordFormatVersion,
		SchemaVersion: domain.RecordSchemaVersion,
		LastFetch:     m.now().UTC(),
		ContentHash:   spec.ContentHash,
		Source:        source,
		TTLSeconds:    int64(ttl / time.Second),
		HTTPCache:     payload.HTTP,
		LocalCache:    payload.Local,
		Meta: domain.RecordMeta{
			Title:         spec.Metadata.Title,
			Version:       spec.Metadata.Version,
			Dialect:       spec.Metadata.Dialect,
			EndpointCount: spec.Metadata.EndpointCount,
			SchemaCount:   spec.Metadata.SchemaCount,
		},
		Spec: spec,
	}

	if err := m.store.Save(record); err != nil {
		m.logger.Warn("cache write failed: " + err.Error())
	}

	return spec, nil
}
