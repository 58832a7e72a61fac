// Package app implements the application layer for oaspect.
package app

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/oaspect/oaspect/internal/core/domain"
	"github.com/oaspect/oaspect/internal/core/ports"
	"github.com/oaspect/oaspect/internal/engine/cache"
	"github.com/oaspect/oaspect/internal/engine/codegen"
	"github.com/oaspect/oaspect/internal/engine/diff"
)

// Resolver is the slice of the cache manager the app depends on.
type Resolver interface {
	Resolve(ctx context.Context, source string, opts cache.ResolveOptions) (*domain.UnifiedSpec, error)
	Status(ctx context.Context, source string) (*cache.Status, error)
}

// App exposes the tool operations over the resolution core.
type App struct {
	resolver Resolver
	watcher  ports.Watcher
	logger   ports.Logger
}

// New creates an App from its collaborators.
func New(resolver Resolver, watcher ports.Watcher, logger ports.Logger) *App {
	return &App{
		resolver: resolver,
		watcher:  watcher,
		logger:   logger,
	}
}

// CacheOptions are the caching knobs shared by every operation that resolves
// a source.
type CacheOptions struct {
	NoCache     bool
	TTLOverride time.Duration
}

func (o CacheOptions) resolveOptions() cache.ResolveOptions {
	return cache.ResolveOptions{NoCache: o.NoCache, TTLOverride: o.TTLOverride}
}

// ParseOptions configure the Parse operation.
type ParseOptions struct {
	CacheOptions
	Source string
	// Format selects which sections of the result are populated. Empty means
	// summary.
	Format string
	// Limit and Offset paginate listings. A zero limit means DefaultLimit.
	Limit  int
	Offset int
	// Tag filters endpoints by tag, case-insensitively.
	Tag string
	// PathPrefix filters endpoints whose path starts with the prefix.
	PathPrefix string
}

// Parse resolves a source and projects the model into the requested view.
func (a *App) Parse(ctx context.Context, opts ParseOptions) (*ParseResult, error) {
	format := opts.Format
	if format == "" {
		format = FormatSummary
	}
	switch format {
	case FormatSummary, FormatEndpointsList, FormatSchemasList, FormatEndpoints, FormatSchemas, FormatFull:
	default:
		return nil, domain.WithDetail(domain.ErrInvalidFormat, "format", opts.Format)
	}

	spec, err := a.resolver.Resolve(ctx, opts.Source, opts.resolveOptions())
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Metadata:   spec.Metadata,
		GraphStats: domain.BuildGraph(spec).Stats(),
	}

	switch format {
	case FormatSummary:
		// Metadata and graph stats only.
	case FormatFull:
		result.Spec = spec
	case FormatEndpointsList:
		keys, page := paginate(a.filteredEndpointKeys(spec, opts), opts)
		result.EndpointKeys = keys
		result.Page = page
	case FormatSchemasList:
		names, page := paginate(spec.SchemaNames(), opts)
		result.SchemaNames = names
		result.Page = page
	case FormatEndpoints:
		keys, page := paginate(a.filteredEndpointKeys(spec, opts), opts)
		result.Endpoints = make([]EndpointSummary, 0, len(keys))
		for _, key := range keys {
			e := spec.Endpoints[key]
			result.Endpoints = append(result.Endpoints, EndpointSummary{
				Key:         key,
				Path:        e.Path,
				Method:      e.Method,
				OperationID: e.OperationID,
				Tags:        e.Tags,
				Deprecated:  e.Deprecated,
				SchemaRefs:  e.SchemaRefs,
			})
		}
		result.Page = page
	case FormatSchemas:
		names, page := paginate(spec.SchemaNames(), opts)
		result.Schemas = make([]SchemaSummary, 0, len(names))
		for _, name := range names {
			s := spec.Schemas[name]
			result.Schemas = append(result.Schemas, SchemaSummary{
				Name:        name,
				Refs:        s.Refs,
				Description: s.Description,
			})
		}
		result.Page = page
	}

	return result, nil
}

// filteredEndpointKeys applies the tag and path-prefix filters and returns
// sorted endpoint keys.
func (a *App) filteredEndpointKeys(spec *domain.UnifiedSpec, opts ParseOptions) []string {
	keys := make([]string, 0, len(spec.Endpoints))
	for key, e := range spec.Endpoints {
		if opts.PathPrefix != "" && !strings.HasPrefix(e.Path, opts.PathPrefix) {
			continue
		}
		if opts.Tag != "" && !hasTag(e.Tags, opts.Tag) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

// paginate slices items to the requested window and reports the page bounds.
func paginate(items []string, opts ParseOptions) ([]string, *PageInfo) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := max(opts.Offset, 0)

	total := len(items)
	start := min(offset, total)
	end := min(start+limit, total)
	window := items[start:end]

	return window, &PageInfo{
		Limit:    limit,
		Offset:   offset,
		Total:    total,
		Returned: len(window),
	}
}

// DepsOptions configure a dependency query.
type DepsOptions struct {
	CacheOptions
	Source    string
	Anchor    string
	Direction string
}

// Deps resolves a source and answers a reachability query over its reference
// graph.
func (a *App) Deps(ctx context.Context, opts DepsOptions) (*DepsResult, error) {
	direction, err := domain.ParseDirection(opts.Direction)
	if err != nil {
		return nil, err
	}

	spec, err := a.resolver.Resolve(ctx, opts.Source, opts.resolveOptions())
	if err != nil {
		return nil, err
	}

	graph := domain.BuildGraph(spec)
	affected, err := graph.Query(opts.Anchor, direction)
	if err != nil {
		return nil, err
	}

	return &DepsResult{
		Anchor:    opts.Anchor,
		Direction: direction,
		Affected:  affected,
		Stats:     graph.Stats(),
	}, nil
}

// DiffOptions configure a comparison of two sources.
type DiffOptions struct {
	CacheOptions
	OldSource string
	NewSource string
}

// Diff resolves both sources and compares the models.
func (a *App) Diff(ctx context.Context, opts DiffOptions) (*DiffResult, error) {
	oldSpec, err := a.resolver.Resolve(ctx, opts.OldSource, opts.resolveOptions())
	if err != nil {
		return nil, err
	}
	newSpec, err := a.resolver.Resolve(ctx, opts.NewSource, opts.resolveOptions())
	if err != nil {
		return nil, err
	}

	return &DiffResult{
		OldSource: opts.OldSource,
		NewSource: opts.NewSource,
		Diff:      diff.Compare(oldSpec, newSpec),
	}, nil
}

// GenerateOptions configure a code generation run.
type GenerateOptions struct {
	CacheOptions
	Source string
	// Target selects the generator; empty means TypeScript types.
	Target string
	// Names restricts generation to the named schemas.
	Names    []string
	Readonly bool
	Indent   int
}

// Generate resolves a source and renders its schemas for the target language.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	target := opts.Target
	if target == "" {
		target = codegen.TargetTypeScript
	}

	spec, err := a.resolver.Resolve(ctx, opts.Source, opts.resolveOptions())
	if err != nil {
		return nil, err
	}

	artifact, err := codegen.Generate(spec, target, codegen.Options{
		Names:    opts.Names,
		Readonly: opts.Readonly,
		Indent:   opts.Indent,
	})
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		Files:     []GeneratedFile{{Name: artifact.FileName, Content: artifact.Content}},
		TypeCount: artifact.TypeCount,
		FileCount: 1,
	}, nil
}

// StatusOptions configure a cache status report.
type StatusOptions struct {
	Source string
}

// Status reports the persisted cache record's state relative to a source
// without fetching or parsing anything.
func (a *App) Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	status, err := a.resolver.Status(ctx, opts.Source)
	if err != nil {
		return nil, err
	}
	return &StatusResult{
		Source: opts.Source,
		Cache:  status,
	}, nil
}

// WatchOptions configure watch mode.
type WatchOptions struct {
	CacheOptions
	Source string
}

// Watch resolves a local source, then re-resolves on every file change and
// invokes the callback with the diff against the previous model. It returns
// when ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts WatchOptions, callback func(*domain.SpecDiff)) error {
	if strings.HasPrefix(opts.Source, "http://") || strings.HasPrefix(opts.Source, "https://") {
		return domain.WithDetail(domain.ErrWatchRemoteSource, "source", opts.Source)
	}

	previous, err := a.resolver.Resolve(ctx, opts.Source, opts.resolveOptions())
	if err != nil {
		return err
	}

	changes, err := a.watcher.Start(ctx, opts.Source)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.logger.Info("watching " + opts.Source)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			// The file changed on disk; skip the cache so the model is
			// rebuilt from the new bytes.
			next, err := a.resolver.Resolve(ctx, opts.Source, cache.ResolveOptions{
				NoCache:     true,
				TTLOverride: opts.TTLOverride,
			})
			if err != nil {
				// A half-written file often fails to parse; keep watching.
				a.logger.Error(err)
				continue
			}
			if d := diff.Compare(previous, next); !d.Empty() {
				callback(d)
			}
			previous = next
		}
	}
}
