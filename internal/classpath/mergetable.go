// SPDX-License-Identifier: MPL-2.0

package classpath

const (
	// KindLibrary is a library referenced by filesystem path.
	KindLibrary EntryKind = "lib"
	// KindVariable is a library referenced through a classpath variable.
	KindVariable EntryKind = "var"
)

type (
	// EntryKind is the "kind" attribute of a binary classpath entry.
	EntryKind string

	// BinaryEntry is a resolved library or variable entry ready to be
	// written. Empty SourcePath and JavadocLocation mean "absent".
	BinaryEntry struct {
		Kind            EntryKind
		Path            string
		Exported        bool
		SourcePath      string
		JavadocLocation string
	}

	// MergeTable is an insertion-ordered set of binary entries keyed by
	// Path. The zero value is not usable; call NewMergeTable.
	MergeTable struct {
		index   map[string]int
		entries []BinaryEntry
	}
)

// NewMergeTable returns an empty table.
func NewMergeTable() *MergeTable {
	return &MergeTable{index: make(map[string]int)}
}

// Upsert stores e. A new path is appended; a known path is overwritten in
// place, keeping its original position. It reports whether e was new.
func (t *MergeTable) Upsert(e BinaryEntry) bool {
	if i, ok := t.index[e.Path]; ok {
		t.entries[i] = e
		return false
	}
	t.index[e.Path] = len(t.entries)
	t.entries = append(t.entries, e)
	return true
}

// Get returns the entry stored for path.
func (t *MergeTable) Get(path string) (BinaryEntry, bool) {
	i, ok := t.index[path]
	if !ok {
		return BinaryEntry{}, false
	}
	return t.entries[i], true
}

// Len returns the number of distinct paths.
func (t *MergeTable) Len() int { return len(t.entries) }

// Entries returns the entries in first-seen order.
func (t *MergeTable) Entries() []BinaryEntry {
	out := make([]BinaryEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Count returns the number of entries of the given kind.
func (t *MergeTable) Count(kind EntryKind) int {
	n := 0
	for _, e := range t.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
