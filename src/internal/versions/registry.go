// Package versions discovers Maven installations under an install root
package versions

import (
	"path/filepath"
	"sort"

	"github.com/blang/semver/v4"
)

// Entry is one discovered installation
type Entry struct {
	Version string // Version string (e.g., "3.9.6", "4.0.0-rc-4")
	Path    string // Installation root, the parent of bin/
}

// Registry maps version strings to installations. It is a point-in-time
// snapshot; callers rescan instead of keeping one around.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Add records an entry. A later entry for the same version replaces the earlier one.
func (r *Registry) Add(e Entry) {
	r.entries[e.Version] = e
}

// Get looks up a version by exact string match
func (r *Registry) Get(version string) (Entry, bool) {
	e, ok := r.entries[version]
	return e, ok
}

// Has reports whether a version is present
func (r *Registry) Has(version string) bool {
	_, ok := r.entries[version]
	return ok
}

// Len returns the number of versions
func (r *Registry) Len() int {
	return len(r.entries)
}

// FindByPath returns the entry installed at path, if any
func (r *Registry) FindByPath(path string) (Entry, bool) {
	if path == "" {
		return Entry{}, false
	}
	want := filepath.Clean(path)
	for _, e := range r.entries {
		if filepath.Clean(e.Path) == want {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns all entries ordered by semantic version. Versions that do
// not parse as semver sort after the ones that do, in string order.
func (r *Registry) Entries() []Entry {
	list := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		list = append(list, e)
	}

	sort.Slice(list, func(i, j int) bool {
		vi, erri := semver.ParseTolerant(list[i].Version)
		vj, errj := semver.ParseTolerant(list[j].Version)
		switch {
		case erri == nil && errj == nil:
			if c := vi.Compare(vj); c != 0 {
				return c < 0
			}
			return list[i].Version < list[j].Version
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return list[i].Version < list[j].Version
		}
	})

	return list
}
