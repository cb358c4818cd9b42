package report

// SnippetDeduplicator remembers the snippets reported by the previous
// undefined step so that each snippet is shown once per run.
type SnippetDeduplicator struct {
	last map[string]struct{}
}

// NewSnippetDeduplicator creates a deduplicator with no baseline.
func NewSnippetDeduplicator() *SnippetDeduplicator {
	return &SnippetDeduplicator{}
}

// New returns the snippets of all that were not in the previous call's
// input, keeping their order, and makes all the new baseline. The first
// call returns all unchanged.
func (d *SnippetDeduplicator) New(all []string) []string {
	fresh := make([]string, 0, len(all))
	for _, snippet := range all {
		if d.last != nil {
			if _, seen := d.last[snippet]; seen {
				continue
			}
		}
		fresh = append(fresh, snippet)
	}

	d.last = make(map[string]struct{}, len(all))
	for _, snippet := range all {
		d.last[snippet] = struct{}{}
	}

	return fresh
}
