package moderation

// View projects the store into the visible working set for kind: status
// filter AND text search, insertion order preserved, never re-sorted. It is a
// pure function of the store contents and its arguments; it holds no iterator
// state and never mutates the store.
//
// When the last load was already server-filtered the store only holds matching
// entities and the filter test passes trivially, so both filtering modes
// (in-memory and filtered-refetch) compose through the same code path.
func View(store *Store, kind Kind, statusFilter Status, term string) []Entity {
	out := make([]Entity, 0, store.Len(kind))
	for _, e := range store.All(kind) {
		if statusFilter != FilterAll && e.Status != statusFilter {
			continue
		}
		if !e.Matches(term) {
			continue
		}
		out = append(out, e)
	}
	return out
}
