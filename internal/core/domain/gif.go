package domain

// GifRecord is one saved GIF: its identifier and the link stored in src.
type GifRecord struct {
	// ID is the key of the entry, usually the Tenor page URL.
	ID string `json:"id" yaml:"id"`

	// Src is the direct media link. Empty when the entry was kept despite
	// having no usable src.
	Src string `json:"src" yaml:"src"`
}

// Link returns the link for the given target.
func (r GifRecord) Link(target OpenTarget) string {
	if target == OpenTargetID {
		return r.ID
	}
	return r.Src
}

// ResultSet is an ordered mapping from identifier to link.
// Identifiers are unique and kept in the order they appeared in the
// document. A ResultSet is immutable after NewResultSet returns.
type ResultSet struct {
	records []GifRecord
	index   map[string]int
}

// NewResultSet builds a set from records. A later record with an
// identifier already present replaces the earlier one in place.
func NewResultSet(records []GifRecord) *ResultSet {
	rs := &ResultSet{
		records: make([]GifRecord, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, r := range records {
		if i, ok := rs.index[r.ID]; ok {
			rs.records[i] = r
			continue
		}
		rs.index[r.ID] = len(rs.records)
		rs.records = append(rs.records, r)
	}
	return rs
}

// Len returns the number of entries. Safe on a nil set.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.records)
}

// Empty reports whether the set has no entries.
func (rs *ResultSet) Empty() bool { return rs.Len() == 0 }

// Get returns the link stored for id.
func (rs *ResultSet) Get(id string) (string, bool) {
	if rs == nil {
		return "", false
	}
	i, ok := rs.index[id]
	if !ok {
		return "", false
	}
	return rs.records[i].Src, true
}

// Records returns a copy of the entries in order.
func (rs *ResultSet) Records() []GifRecord {
	if rs == nil {
		return nil
	}
	out := make([]GifRecord, len(rs.records))
	copy(out, rs.records)
	return out
}

// Map returns the entries as a plain id -> link map.
func (rs *ResultSet) Map() map[string]string {
	out := make(map[string]string, rs.Len())
	if rs == nil {
		return out
	}
	for _, r := range rs.records {
		out[r.ID] = r.Src
	}
	return out
}

// EntryIssue records a list entry that had no usable src.
type EntryIssue struct {
	ID     string `json:"id" yaml:"id"`
	Reason string `json:"reason" yaml:"reason"`
}

// Result is the outcome of a successful search.
type Result struct {
	// Path is the key path that was searched.
	Path KeyPath

	// Set holds the resolved links. It may be empty.
	Set *ResultSet

	// Issues lists entries skipped or kept without a link.
	Issues []EntryIssue
}

// Empty reports whether the search found the list but it had no entries.
// A list whose entries were all skipped is not empty: its issues remain.
func (r *Result) Empty() bool {
	return r == nil || (r.Set.Empty() && len(r.Issues) == 0)
}
