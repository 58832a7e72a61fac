package domain

import "time"

// RecordFormatVersion is the on-disk format version string written to every
// cache record.
const RecordFormatVersion = "1.0.0"

// RecordSchemaVersion gates forward compatibility of persisted records. Bump
// it whenever the UnifiedSpec shape changes; records written with a different
// value are discarded without inspection.
const RecordSchemaVersion = 2

// DefaultTTL is how long a cached record is trusted without revalidation.
// API descriptions rarely change mid-day, so a full day is reasonable.
const DefaultTTL = 86400 * time.Second

// HTTPValidators are the remote change-detection signals captured from a
// fetch response.
type HTTPValidators struct {
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// LocalValidators are the local-file change-detection signals.
type LocalValidators struct {
	// MTime is the file's modification time in RFC3339, empty for remote
	// sources.
	MTime string `json:"mtime,omitempty"`
}

// RecordMeta is a small denormalized summary of the cached spec, readable
// without deserializing the embedded model.
type RecordMeta struct {
	Title         string  `json:"title"`
	Version       string  `json:"version"`
	Dialect       Dialect `json:"dialect"`
	EndpointCount int     `json:"endpoint_count"`
	SchemaCount   int     `json:"schema_count"`
}

// CacheRecord is the sole persisted state of the cache manager. It is created
// or overwritten on every cold fetch and read-only everywhere else.
type CacheRecord struct {
	Version       string          `json:"version"`
	SchemaVersion int             `json:"schema_version"`
	LastFetch     time.Time       `json:"last_fetch"`
	ContentHash   string          `json:"content_hash"`
	Source        string          `json:"source"`
	TTLSeconds    int64           `json:"ttl_seconds"`
	HTTPCache     HTTPValidators  `json:"http_cache"`
	LocalCache    LocalValidators `json:"local_cache"`
	Meta          RecordMeta      `json:"meta"`
	// Spec is the full normalized model. When present and intact it allows a
	// cache hit to skip re-parsing entirely.
	Spec *UnifiedSpec `json:"parsed_spec"`
}

// TTL returns the record's time-to-live as a duration.
func (r *CacheRecord) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// Expired reports whether the record's TTL has elapsed at the given instant.
func (r *CacheRecord) Expired(now time.Time) bool {
	return now.Sub(r.LastFetch) > r.TTL()
}
