package domain

import "go.trai.ch/zerr"

// WithDetail attaches a key/value pair to a sentinel error while keeping the
// sentinel reachable through errors.Is. zerr.With on a *zerr.Error decorates
// a detached copy, so the sentinel must first be wrapped as the cause.
func WithDetail(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}

var (
	// ErrFileNotFound is returned when a local spec file does not exist.
	ErrFileNotFound = zerr.New("spec file not found")

	// ErrPermissionDenied is returned when a local spec file cannot be read due to permissions.
	ErrPermissionDenied = zerr.New("permission denied reading spec file")

	// ErrPathTraversal is returned when a local source path contains a parent-directory segment.
	ErrPathTraversal = zerr.New("path traversal attempt rejected")

	// ErrReadFailed is returned when a local spec file cannot be read for any other reason.
	ErrReadFailed = zerr.New("failed to read spec file")

	// ErrConnectionFailed is returned when a remote fetch fails at the network layer.
	ErrConnectionFailed = zerr.New("failed to connect to spec source")

	// ErrHTTPStatus is returned when a remote fetch receives a non-success HTTP status.
	ErrHTTPStatus = zerr.New("spec source returned non-success status")

	// ErrInvalidJSON is returned when a document cannot be parsed as JSON.
	ErrInvalidJSON = zerr.New("invalid JSON document")

	// ErrInvalidYAML is returned when a document cannot be parsed as YAML.
	ErrInvalidYAML = zerr.New("invalid YAML document")

	// ErrMissingField is returned when a document lacks a field required for classification.
	ErrMissingField = zerr.New("missing required field")

	// ErrUnsupportedVersion is returned when a document declares an unrecognized dialect version.
	ErrUnsupportedVersion = zerr.New("unsupported OpenAPI version")

	// ErrCacheNotFound is returned when no cache record exists on disk.
	ErrCacheNotFound = zerr.New("cache record not found")

	// ErrCacheCorrupted is returned when a cache record cannot be deserialized.
	ErrCacheCorrupted = zerr.New("cache record corrupted")

	// ErrCacheWriteFailed is returned when persisting a cache record fails.
	ErrCacheWriteFailed = zerr.New("failed to write cache record")

	// ErrUnknownAnchor is returned when a dependency query names a node absent from the graph.
	ErrUnknownAnchor = zerr.New("anchor not found in dependency graph")

	// ErrUnknownTarget is returned when code generation is requested for an unsupported target.
	ErrUnknownTarget = zerr.New("unsupported generation target")

	// ErrWatchRemoteSource is returned when watch mode is requested for a remote URL.
	ErrWatchRemoteSource = zerr.New("watch mode supports local files only")

	// ErrInvalidFormat is returned when an output format selector is not recognized.
	ErrInvalidFormat = zerr.New("invalid output format")
)
