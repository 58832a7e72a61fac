// Package diff compares two normalized specs and reports added, removed, and
// modified endpoints and schemas. Modification is detected through the
// per-item content hashes the normalizer computed, so a change anywhere in an
// operation's raw body registers even when the modeled fields are identical.
package diff

import (
	"sort"

	"github.com/oaspect/oaspect/internal/core/domain"
)

// Compare produces the structured difference from old to new. All result
// slices are sorted.
func Compare(oldSpec, newSpec *domain.UnifiedSpec) *domain.SpecDiff {
	d := &domain.SpecDiff{
		OldVersion: oldSpec.Metadata.Version,
		NewVersion: newSpec.Metadata.Version,
	}

	d.AddedEndpoints, d.RemovedEndpoints, d.ModifiedEndpoints = compareKeyed(
		len(oldSpec.Endpoints), len(newSpec.Endpoints),
		func(yield func(key, hash string)) {
			for key, e := range oldSpec.Endpoints {
				yield(key, e.ContentHash)
			}
		},
		func(yield func(key, hash string)) {
			for key, e := range newSpec.Endpoints {
				yield(key, e.ContentHash)
			}
		},
	)

	d.AddedSchemas, d.RemovedSchemas, d.ModifiedSchemas = compareKeyed(
		len(oldSpec.Schemas), len(newSpec.Schemas),
		func(yield func(key, hash string)) {
			for name, s := range oldSpec.Schemas {
				yield(name, s.ContentHash)
			}
		},
		func(yield func(key, hash string)) {
			for name, s := range newSpec.Schemas {
				yield(name, s.ContentHash)
			}
		},
	)

	return d
}

// compareKeyed diffs two key-to-hash collections, exposed as iteration
// callbacks so endpoints and schemas share one implementation.
func compareKeyed(
	oldLen, newLen int,
	iterOld, iterNew func(yield func(key, hash string)),
) (added, removed, modified []string) {
	oldHashes := make(map[string]string, oldLen)
	iterOld(func(key, hash string) {
		oldHashes[key] = hash
	})

	seen := make(map[string]struct{}, newLen)
	iterNew(func(key, hash string) {
		seen[key] = struct{}{}
		oldHash, exists := oldHashes[key]
		switch {
		case !exists:
			added = append(added, key)
		case oldHash != hash:
			modified = append(modified, key)
		}
	})

	for key := range oldHashes {
		if _, exists := seen[key]; !exists {
			removed = append(removed, key)
		}
	}

	sort.Strings(added)
	sort.Strings(removed)
	sort.Strings(modified)
	return added, removed, modified
}
