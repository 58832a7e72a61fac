package normalizer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	refPrefixDefinitions = "#/definitions/"
	refPrefixComponents  = "#/components/schemas/"
)

// stripRefPrefix reduces a $ref target to the bare schema name, regardless of
// which dialect's prefix it carries.
func stripRefPrefix(ref string) string {
	if name, ok := strings.CutPrefix(ref, refPrefixDefinitions); ok {
		return name
	}
	if name, ok := strings.CutPrefix(ref, refPrefixComponents); ok {
		return name
	}
	return ref
}

// refsAndHash walks a raw sub-document once, collecting every $ref target
// beneath it and computing its structural digest in the same traversal. The
// returned refs are deduplicated and sorted.
func refsAndHash(value any) ([]string, string) {
	digest := xxhash.New()
	seen := make(map[string]struct{})
	walkValue(value, digest, seen)

	refs := make([]string, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	return refs, fmt.Sprintf("%016x", digest.Sum64())
}

// hashValue computes the structural digest of a raw value without collecting
// references.
func hashValue(value any) string {
	digest := xxhash.New()
	walkValue(value, digest, nil)
	return fmt.Sprintf("%016x", digest.Sum64())
}

// walkValue feeds a raw value into the digest. Object keys are visited in
// sorted order so the digest is independent of document key ordering, while
// array elements keep their positions. Scalars are fed as type-tagged text:
// strings quoted, numbers in canonical form, booleans and null literally.
// When refs is non-nil, $ref string values are recorded with their dialect
// prefix stripped.
func walkValue(value any, digest *xxhash.Digest, refs map[string]struct{}) {
	switch v := value.(type) {
	case map[string]any:
		_, _ = digest.WriteString("{")
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = digest.WriteString(k)
			_, _ = digest.WriteString(":")
			child := v[k]
			if refs != nil && k == "$ref" {
				if target, ok := child.(string); ok {
					refs[stripRefPrefix(target)] = struct{}{}
				}
			}
			walkValue(child, digest, refs)
		}
		_, _ = digest.WriteString("}")
	case []any:
		_, _ = digest.WriteString("[")
		for _, elem := range v {
			walkValue(elem, digest, refs)
		}
		_, _ = digest.WriteString("]")
	case string:
		_, _ = digest.WriteString(`"`)
		_, _ = digest.WriteString(v)
		_, _ = digest.WriteString(`"`)
	case json.Number:
		_, _ = digest.WriteString(v.String())
	case bool:
		if v {
			_, _ = digest.WriteString("true")
		} else {
			_, _ = digest.WriteString("false")
		}
	case nil:
		_, _ = digest.WriteString("null")
	case int:
		_, _ = digest.WriteString(strconv.Itoa(v))
	case int64:
		_, _ = digest.WriteString(strconv.FormatInt(v, 10))
	case uint64:
		_, _ = digest.WriteString(strconv.FormatUint(v, 10))
	case float64:
		_, _ = digest.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	default:
		// YAML can yield scalar types outside the JSON set (e.g. timestamps).
		_, _ = fmt.Fprintf(digest, "%v", v)
	}
}
