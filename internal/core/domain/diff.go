package domain

// SpecDiff is the structured comparison of two normalized specs. Identity is
// by endpoint key / schema name; modification is detected by per-item content
// hash, so changes in fields the normalizer does not model still register.
type SpecDiff struct {
	OldVersion string `json:"old_version"`
	NewVersion string `json:"new_version"`

	AddedEndpoints    []string `json:"added_endpoints"`
	RemovedEndpoints  []string `json:"removed_endpoints"`
	ModifiedEndpoints []string `json:"modified_endpoints"`

	AddedSchemas    []string `json:"added_schemas"`
	RemovedSchemas  []string `json:"removed_schemas"`
	ModifiedSchemas []string `json:"modified_schemas"`
}

// Empty reports whether the diff contains no changes.
func (d *SpecDiff) Empty() bool {
	return len(d.AddedEndpoints) == 0 && len(d.RemovedEndpoints) == 0 &&
		len(d.ModifiedEndpoints) == 0 && len(d.AddedSchemas) == 0 &&
		len(d.RemovedSchemas) == 0 && len(d.ModifiedSchemas) == 0
}
