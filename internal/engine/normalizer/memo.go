package normalizer

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oaspect/oaspect/internal/core/domain"
)

// Memo caches normalization results keyed by the raw content digest and
// source. Normalization is pure, so identical bytes from the same source
// always yield the same model and the entry can never go stale.
type Memo struct {
	cache *lru.Cache[string, *domain.UnifiedSpec]
}

// NewMemo builds a memoizer holding at most size entries.
func NewMemo(size int) (*Memo, error) {
	cache, err := lru.New[string, *domain.UnifiedSpec](size)
	if err != nil {
		return nil, err
	}
	return &Memo{cache: cache}, nil
}

// Normalize returns the cached model for this content and source, parsing it
// on first sight.
func (m *Memo) Normalize(content []byte, source string) (*domain.UnifiedSpec, error) {
	key := fmt.Sprintf("%016x|%s", xxhash.Sum64(content), source)
	if spec, ok := m.cache.Get(key); ok {
		return spec, nil
	}
	spec, err := Normalize(content, source)
	if err != nil {
		return nil, err
	}
	m.cache.Add(key, spec)
	return spec, nil
}
